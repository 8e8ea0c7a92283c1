package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ytcatalog/internal/config"
	"ytcatalog/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	fake       *testsupport.FakeYouTube
	configPath string
	baseDir    string
}

const testChannelID = "UCkbkbkbkbkbkbkbkbkbkbkb"

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	fake := testsupport.NewFakeYouTube(t, "cli-key")
	opts = append([]testsupport.ConfigOption{testsupport.WithFakeYouTube(fake)}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)

	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("YT_API_KEY", "")

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		fake:       fake,
		configPath: configPath,
		baseDir:    base,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[youtube]
api_key = %q
base_url = %q
request_interval_ms = %d
playlist_interval_ms = %d

[channel]
name = %q
id = %q

[output]
path = %q
indent = %d

[history]
enabled = %t
path = %q
`,
		cfg.YouTube.APIKey,
		cfg.YouTube.BaseURL,
		cfg.YouTube.RequestIntervalMS,
		cfg.YouTube.PlaylistIntervalMS,
		cfg.Channel.Name,
		cfg.Channel.ID,
		cfg.Output.Path,
		cfg.Output.Indent,
		cfg.History.Enabled,
		cfg.History.Path,
	)
	testsupport.WriteFile(t, path, content)
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}

func seedChannel(fake *testsupport.FakeYouTube) {
	fake.SetSearch(testsupport.SearchResult(testChannelID, "Knowledge Boat"))
	fake.SetPlaylists(testChannelID,
		[]testsupport.Resource{
			testsupport.PlaylistResource("PLphy", "Physics", 2),
			testsupport.PlaylistResource("PLempty", "Empty", 0),
		},
		[]testsupport.Resource{
			testsupport.PlaylistResource("PLbio", "biology", 1),
		},
	)
	fake.SetPlaylistItems("PLphy", []testsupport.Resource{
		testsupport.PlaylistItemResource("p1", "Motion", "2024-01-01T00:00:00Z", 0, nil),
		testsupport.PlaylistItemResource("p2", "Light", "2024-03-01T00:00:00Z", 1, nil),
	})
	fake.SetPlaylistItems("PLbio", []testsupport.Resource{
		testsupport.PlaylistItemResource("b1", "Cells", "2023-09-09T00:00:00Z", 0, nil),
	})
}
