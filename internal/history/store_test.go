package history_test

import (
	"context"
	"testing"
	"time"

	"ytcatalog/internal/history"
	"ytcatalog/internal/testsupport"
)

func TestRecordAndListNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	runs := []history.Run{
		{ID: "run-1", ChannelName: "KB", ChannelID: "UCx", OutputPath: "/tmp/a.json", Videos: 10, Categories: 2, Status: history.StatusSucceeded, StartedAt: base, FinishedAt: base.Add(3 * time.Second)},
		{ID: "run-2", ChannelName: "KB", Status: history.StatusFailed, Error: "quota exceeded", StartedAt: base.Add(time.Hour), FinishedAt: base.Add(time.Hour + time.Second)},
		{ID: "run-3", ChannelName: "KB", Status: history.StatusSucceeded, StartedAt: base.Add(500 * time.Millisecond), FinishedAt: base.Add(time.Second)},
	}
	for _, run := range runs {
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("Record(%s): %v", run.ID, err)
		}
	}

	got, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("unexpected run count: got %d want 3", len(got))
	}
	wantOrder := []string{"run-2", "run-3", "run-1"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("unexpected order at %d: got %q want %q", i, got[i].ID, id)
		}
	}

	failed := got[0]
	if failed.Status != history.StatusFailed || failed.Error != "quota exceeded" {
		t.Fatalf("unexpected failed run: %+v", failed)
	}
	first := got[2]
	if first.Videos != 10 || first.Categories != 2 || first.ChannelID != "UCx" || first.OutputPath != "/tmp/a.json" {
		t.Fatalf("unexpected run fields: %+v", first)
	}
	if !first.StartedAt.Equal(base) || first.Duration() != 3*time.Second {
		t.Fatalf("unexpected timing: started=%v duration=%v", first.StartedAt, first.Duration())
	}
	if first.Error != "" {
		t.Fatalf("expected empty error, got %q", first.Error)
	}

	limited, err := store.List(ctx, 1)
	if err != nil {
		t.Fatalf("List limited: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "run-2" {
		t.Fatalf("unexpected limited result: %+v", limited)
	}
}

func TestRecordRejectsIncompleteRuns(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	ctx := context.Background()

	if err := store.Record(ctx, history.Run{Status: history.StatusSucceeded}); err == nil {
		t.Fatal("expected error for missing id")
	}
	if err := store.Record(ctx, history.Run{ID: "x"}); err == nil {
		t.Fatal("expected error for missing status")
	}
}

func TestReopenKeepsRunsAndSkipsAppliedMigrations(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	first, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	now := time.Now()
	if err := first.Record(ctx, history.Run{ID: "keep", Status: history.StatusSucceeded, StartedAt: now, FinishedAt: now}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second := testsupport.MustOpenHistory(t, cfg)
	runs, err := second.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "keep" {
		t.Fatalf("expected persisted run, got %+v", runs)
	}
	if second.Path() != cfg.History.Path {
		t.Fatalf("unexpected path: got %q want %q", second.Path(), cfg.History.Path)
	}
}
