package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"

	"blossom/internal/adapters/console"
	"blossom/internal/adapters/discord"
	"blossom/internal/adapters/host"
	"blossom/internal/application"
	"blossom/internal/config"
	"blossom/internal/infrastructure/database"
	"blossom/internal/infrastructure/logging"
	"blossom/internal/infrastructure/worker"
	"blossom/internal/ports/input"
	"blossom/internal/ports/output"
)

func main() {
	level := new(slog.LevelVar)
	cfg, err := config.LoadRuntime()
	if err != nil {
		fatal(logging.New(os.Stderr, level, false), "Invalid configuration.", err)
	}
	logger := logging.New(os.Stderr, level, cfg.NoColor)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prefs, closePrefs, err := openPreferences(ctx, cfg, logger)
	if err != nil {
		fatal(logger, "Open language preferences failed.", err)
	}
	defer closePrefs()

	runner, err := worker.NewRunner(application.PluginName, cfg.Workers, logger)
	if err != nil {
		fatal(logger, "Create task runner failed.", err)
	}
	defer runner.Close()

	h := host.New(host.Options{
		Metadata:   application.Metadata(),
		Language:   cfg.Language,
		DataFolder: cfg.DataDir,
		Logger:     logger,
	}, func(_ context.Context, server output.Server) (input.Plugin, error) {
		return application.NewPlugin(server, application.Dependencies{
			Logger:      logger,
			Level:       level,
			Runner:      runner,
			Preferences: prefs,
		})
	})
	if err := h.Start(ctx); err != nil {
		fatal(logger, "Start plugin failed.", err)
	}
	defer h.Stop()

	if cfg.DiscordToken != "" {
		pluginCfg, err := config.Load(cfg.DataDir)
		if err != nil {
			logger.Warn("Load plugin configuration failed.", tint.Err(err))
		}
		if pluginCfg == nil {
			pluginCfg = config.Default()
		}
		startup := pluginCfg.PrimaryPrefix()
		handler := discord.NewHandler(h, prefs, func() string {
			return h.PrimaryPrefix(startup)
		}, logger)
		bot, err := discord.NewBot(cfg, handler, logger)
		if err != nil {
			fatal(logger, "Create Discord bot failed.", err)
		}
		if err := bot.Start(); err != nil {
			fatal(logger, "Start Discord bot failed.", err)
		}
		defer bot.Stop()
	}

	logger.Info("Blossom ready. Type !!help for help.", slog.String("data", cfg.DataDir))
	err = console.New(h, os.Stdin, os.Stdout, prefs, cfg.Language, logger).Run(ctx)
	switch {
	case errors.Is(err, context.Canceled):
	case err != nil:
		logger.Error("Console stopped.", tint.Err(err))
	default:
		// stdin closed, keep serving until interrupted
		<-ctx.Done()
	}
	logger.Info("Shutting down.")
}

// openPreferences uses PostgreSQL when a database URL is configured and an
// in-memory store otherwise.
func openPreferences(ctx context.Context, cfg *config.Runtime, logger *slog.Logger) (output.LanguagePreferences, func(), error) {
	if cfg.DatabaseURL == "" {
		return database.NewMemoryPreferences(), func() {}, nil
	}
	if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
		return nil, nil, err
	}
	pool, err := database.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, nil, err
	}
	return database.NewPreferenceRepository(pool), pool.Close, nil
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, tint.Err(err))
	os.Exit(1)
}
