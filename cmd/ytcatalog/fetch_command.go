package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ytcatalog/internal/catalog"
	"ytcatalog/internal/channel"
	"ytcatalog/internal/config"
	"ytcatalog/internal/history"
	"ytcatalog/internal/logging"
	"ytcatalog/internal/youtube"
)

const missingKeyMessage = "Missing API key. Provide --api-key or set YT_API_KEY."

type fetchOptions struct {
	apiKey      string
	channelName string
	channelID   string
	handle      string
	url         string
	out         string
}

// bindFetchFlags registers the fetch flags on cmd. The root command and the
// fetch subcommand share them so `ytcatalog --out x` and `ytcatalog fetch
// --out x` behave the same.
func bindFetchFlags(cmd *cobra.Command, opts *fetchOptions) {
	flags := cmd.Flags()
	flags.StringVar(&opts.apiKey, "api-key", "", "YouTube Data API key (defaults to YT_API_KEY)")
	flags.StringVar(&opts.channelName, "channel-name", "", "Channel display name to search for")
	flags.StringVar(&opts.channelID, "channel-id", "", "Channel id (UC...), skips the search")
	flags.StringVar(&opts.handle, "handle", "", "Channel handle (@name), resolved from its page")
	flags.StringVar(&opts.url, "url", "", "Channel page URL, resolved from its page")
	flags.StringVar(&opts.out, "out", "", "Output JSON path")
	flags.SetNormalizeFunc(fetchFlagAliases)
}

// fetchFlagAliases accepts the short spellings --channel and --channelId.
func fetchFlagAliases(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "channel":
		name = "channel-name"
	case "channelId", "channel_id":
		name = "channel-id"
	case "api_key", "apiKey":
		name = "api-key"
	}
	return pflag.NormalizedName(name)
}

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var opts fetchOptions
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the channel's playlists and write the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, ctx, &opts)
		},
	}
	bindFetchFlags(cmd, &opts)
	return cmd
}

// applyFetchOverrides returns a copy of base with command-line values applied.
// Any channel flag replaces the configured id/handle/url selection so a
// configured id cannot shadow an explicit --handle.
func applyFetchOverrides(base *config.Config, opts *fetchOptions) config.Config {
	cfg := *base
	if key := strings.TrimSpace(opts.apiKey); key != "" {
		cfg.YouTube.APIKey = key
	}
	name := strings.TrimSpace(opts.channelName)
	id := strings.TrimSpace(opts.channelID)
	handle := strings.TrimSpace(opts.handle)
	url := strings.TrimSpace(opts.url)
	if name != "" || id != "" || handle != "" || url != "" {
		if name != "" {
			cfg.Channel.Name = name
		}
		cfg.Channel.ID = id
		cfg.Channel.Handle = handle
		cfg.Channel.URL = url
	}
	if out := strings.TrimSpace(opts.out); out != "" {
		cfg.Output.Path = out
	}
	return cfg
}

func runFetch(cmd *cobra.Command, ctx *commandContext, opts *fetchOptions) error {
	baseCfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	cfg := applyFetchOverrides(baseCfg, opts)
	if err := cfg.RequireAPIKey(); err != nil {
		return &exitError{code: 2, message: missingKeyMessage}
	}

	logger, err := ctx.newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	runCtx := logging.WithRunID(cmd.Context(), runID)
	logger = logging.WithContext(runCtx, logger)

	run := history.Run{
		ID:          runID,
		ChannelName: cfg.Channel.Name,
		OutputPath:  cfg.Output.Path,
		StartedAt:   time.Now(),
	}

	cat, fetchErr := fetchCatalog(runCtx, &cfg, logger)
	if fetchErr == nil {
		if err := cfg.EnsureDirectories(); err != nil {
			fetchErr = err
		} else {
			fetchErr = catalog.Write(cfg.Output.Path, cat, cfg.Output.Indent)
		}
	}

	run.FinishedAt = time.Now()
	if cat != nil {
		run.ChannelName = cat.Channel.Name
		run.ChannelID = cat.Channel.ID
		run.Videos = cat.VideoCount()
		run.Categories = len(cat.Categories)
	}
	if fetchErr != nil {
		run.Status = history.StatusFailed
		run.Error = fetchErr.Error()
	} else {
		run.Status = history.StatusSucceeded
	}
	recordRun(context.WithoutCancel(runCtx), &cfg, run, logger)

	if fetchErr != nil {
		if errors.Is(fetchErr, context.Canceled) {
			logger.Warn("fetch cancelled", logging.String(logging.FieldEventType, "cancelled"))
			return fetchErr
		}
		logger.Error("fetch failed",
			logging.String(logging.FieldEventType, "fetch_failed"),
			logging.Error(fetchErr),
		)
		return &exitError{code: 1, message: "Error while fetching data", err: fetchErr}
	}

	logger.Info("catalog written",
		logging.String("path", cfg.Output.Path),
		logging.Int("videos", run.Videos),
		logging.Int("categories", run.Categories),
		logging.Duration("elapsed", run.Duration()),
	)
	fmt.Fprintln(cmd.OutOrStdout(), catalog.CompletionMessage(cfg.Output.Path, cat))
	return nil
}

func fetchCatalog(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*catalog.Catalog, error) {
	httpClient := &http.Client{Timeout: cfg.RequestTimeout()}

	client, err := youtube.New(cfg.YouTube.APIKey, cfg.YouTube.BaseURL,
		youtube.WithHTTPClient(httpClient),
		youtube.WithPageSize(cfg.YouTube.PageSize),
		youtube.WithSearchResults(cfg.YouTube.SearchResults),
		youtube.WithRequestInterval(cfg.RequestInterval()),
		youtube.WithUserAgent(cfg.YouTube.UserAgent),
		youtube.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	resolver := channel.NewResolver(client,
		channel.WithHTTPClient(channel.NewPageClient(cfg.RequestTimeout())),
		channel.WithUserAgent(cfg.YouTube.UserAgent),
		channel.WithLogger(logger),
	)
	ref, err := resolver.Resolve(ctx, channel.Query{
		Name:   cfg.Channel.Name,
		ID:     cfg.Channel.ID,
		Handle: cfg.Channel.Handle,
		URL:    cfg.Channel.URL,
	})
	if err != nil {
		return nil, err
	}

	sampler := logging.NewProgressSampler(10)
	return catalog.Build(ctx, client, ref,
		catalog.WithPlaylistPause(cfg.PlaylistInterval()),
		catalog.WithLogger(logger),
		catalog.WithProgress(func(index, total int, pl youtube.Playlist, videos int) {
			level := slog.LevelDebug
			if sampler.ShouldLog(index, total) {
				level = slog.LevelInfo
			}
			logger.LogAttrs(ctx, level, "playlist fetched",
				logging.String(logging.FieldPlaylistID, pl.ID),
				logging.String("title", pl.Title),
				logging.Int("videos", videos),
				logging.String("progress", fmt.Sprintf("%d/%d", index, total)),
			)
		}),
	)
}

// recordRun stores run in the history database when enabled. Failures are
// logged and never change the command's outcome.
func recordRun(ctx context.Context, cfg *config.Config, run history.Run, logger *slog.Logger) {
	if !cfg.History.Enabled {
		return
	}
	store, err := history.Open(cfg)
	if err != nil {
		logger.Warn("history unavailable",
			logging.String(logging.FieldEventType, "history_open_failed"),
			logging.Error(err),
		)
		return
	}
	defer store.Close()
	if err := store.Record(ctx, run); err != nil {
		logger.Warn("history record failed",
			logging.String(logging.FieldEventType, "history_record_failed"),
			logging.Error(err),
		)
	}
}
