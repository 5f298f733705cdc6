// Command matchbot is the main entrypoint for the FURIA match bot.
// It:
//   - Loads configuration and initializes structured logging.
//   - Resolves the team identity once against the match-data provider.
//   - Connects the chat front end when bot credentials are configured.
//   - Exposes a minimal HTTP server with /healthz, /status, and /metrics.
//
// Shutdown is graceful on SIGINT/SIGTERM.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/furiafans/matchbot/bot"
	"github.com/furiafans/matchbot/config"
	"github.com/furiafans/matchbot/matches"
	"github.com/furiafans/matchbot/pandascore"
	"github.com/furiafans/matchbot/server"
	"github.com/furiafans/matchbot/streams"
	"github.com/furiafans/matchbot/telemetry"
	"github.com/furiafans/matchbot/twitchapi"
)

func main() {
	// Load .env file if present (local dev convenience only; production relies on real env)
	_ = godotenv.Load(".env")

	// Configure logging (level + format). Defaults: level=info, format=text.
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	case "info", "":
		// keep default
	default:
		tmp := slog.New(slog.NewTextHandler(os.Stdout, nil))
		tmp.Warn("unknown LOG_LEVEL, using info", slog.String("value", os.Getenv("LOG_LEVEL")))
	}
	var handler slog.Handler
	switch strings.ToLower(os.Getenv("LOG_FORMAT")) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	}
	slog.SetDefault(slog.New(handler))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	telemetry.Init()
	shutdownTracing, err := telemetry.InitTracing("matchbot", "1.0.0")
	if err != nil {
		slog.Error("tracing initialization failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer shutdownTracing()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	psClient := &pandascore.Client{Token: cfg.PandascoreToken}
	resolver := &pandascore.Resolver{Client: psClient, Name: cfg.TeamName}

	// Resolve the team identity once at startup. A failure here degrades all
	// team-scoped commands for the process lifetime; the bot still runs.
	if cfg.MatchDataReady() {
		rctx, cancel := context.WithTimeout(ctx, 8*time.Second)
		if _, ok := resolver.Resolve(rctx); !ok {
			slog.Warn("team unresolved; team-scoped commands degraded", slog.String("team", cfg.TeamName))
		}
		cancel()
	} else {
		slog.Info("match data token not set; match commands disabled")
	}

	matchSvc := &matches.Service{Client: psClient, Resolver: resolver}
	streamSvc := &streams.Service{Client: &twitchapi.Client{
		ClientID:     cfg.TwitchClientID,
		ClientSecret: cfg.TwitchClientSecret,
	}}

	if err := cfg.ValidateChatReady(); err != nil {
		slog.Info("chat creds not set; running without chat front end", slog.Any("err", err))
	} else {
		b := &bot.Bot{Cfg: cfg, Matches: matchSvc, Streams: streamSvc}
		go func() {
			if err := b.Run(ctx); err != nil {
				slog.Error("chat front end stopped", slog.Any("err", err))
			}
		}()
	}

	if err := server.Start(ctx, server.NewHandlers(cfg, resolver), cfg.HTTPAddr); err != nil {
		slog.Error("http server stopped", slog.Any("err", err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}
