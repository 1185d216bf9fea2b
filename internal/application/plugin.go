package application

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync/atomic"

	"github.com/lmittmann/tint"

	"blossom/internal/config"
	"blossom/internal/domain"
	"blossom/internal/infrastructure/i18n"
	"blossom/internal/infrastructure/logging"
	"blossom/internal/ports/input"
	"blossom/internal/ports/output"
	"blossom/internal/resources"
)

// Plugin identity.
const (
	PluginID   = "blossom"
	PluginName = "Blossom"
	Version    = "0.1.0"
)

// Metadata describes this plugin to a host.
func Metadata() domain.Metadata {
	return domain.Metadata{ID: PluginID, Name: PluginName, Version: Version}
}

var _ input.Plugin = (*Plugin)(nil)

// Dependencies are the collaborators a Plugin is built from.
type Dependencies struct {
	Logger *slog.Logger
	// Level is switched to Debug when the configuration asks for verbosity.
	Level       *slog.LevelVar
	Runner      output.TaskRunner
	Preferences output.LanguagePreferences
	// Resources holds the bundled translation files under LangDir.
	// Defaults to the files embedded in the binary.
	Resources fs.FS
	LangDir   string
}

// Plugin is the context object every component of the plugin receives. One
// Plugin exists per load; a reload builds a new one.
type Plugin struct {
	server      output.Server
	logger      *slog.Logger
	level       *slog.LevelVar
	config      *config.Configuration
	translator  *i18n.Translator
	runner      output.TaskRunner
	preferences *PreferenceService
	commands    *CommandManager
	verbose     atomic.Bool
}

// NewPlugin loads the configuration from the server's data folder and the
// bundled translations. A malformed config.yml is logged and replaced by
// defaults; a data folder blocked by a file is returned as an error.
func NewPlugin(server output.Server, deps Dependencies) (*Plugin, error) {
	if deps.Preferences == nil {
		return nil, errors.New("language preferences are required")
	}
	if deps.Runner == nil {
		return nil, errors.New("task runner is required")
	}
	meta := server.Metadata()
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("plugin", meta.ID))

	cfg, err := config.Load(server.DataFolder())
	switch {
	case errors.Is(err, domain.ErrDirectoryOccupied):
		return nil, fmt.Errorf("load configuration: %w", err)
	case cfg == nil:
		return nil, fmt.Errorf("load configuration: %w", err)
	case err != nil:
		logger.Warn("Load configuration failed, using defaults.", tint.Err(err))
	}

	translator := i18n.NewTranslator(meta.ID, logger.With(slog.String("subsystem", "i18n")), server.Language())
	bundled, dir := deps.Resources, deps.LangDir
	if bundled == nil {
		bundled, dir = resources.FS, resources.LangDir
	}
	loaded := translator.RegisterBundledTranslations(bundled, dir)

	p := &Plugin{
		server:      server,
		logger:      logger,
		level:       deps.Level,
		config:      cfg,
		translator:  translator,
		runner:      deps.Runner,
		preferences: NewPreferenceService(deps.Preferences, logger),
	}
	p.commands = NewCommandManager(p)
	p.SetVerbose(cfg.Verbose())
	p.Debug("Translations loaded.", false, slog.Int("files", loaded), slog.Any("languages", translator.Languages()))
	return p, nil
}

func (p *Plugin) Server() output.Server { return p.server }

// Config returns a copy of the loaded configuration. Changes to it do not
// reach the running plugin; edit config.yml and reload instead.
func (p *Plugin) Config() *config.Configuration { return p.config.Clone() }

func (p *Plugin) Translator() *i18n.Translator { return p.translator }

func (p *Plugin) Logger() *slog.Logger { return p.logger }

func (p *Plugin) Preferences() *PreferenceService { return p.preferences }

func (p *Plugin) Commands() *CommandManager { return p.commands }

func (p *Plugin) Verbose() bool { return p.verbose.Load() }

// Rtr is a shortcut for a namespaced lazy translation.
func (p *Plugin) Rtr(key string, args ...any) *i18n.Handle {
	return p.translator.Rtr(key, args...)
}

// SetVerbose toggles debug logging.
func (p *Plugin) SetVerbose(verbose bool) {
	p.verbose.Store(verbose)
	if p.level != nil {
		logging.SetVerbose(p.level, verbose)
	}
	if verbose {
		p.Debug("Verbose mode enabled.", false)
	}
}

// Debug logs msg at debug level. With noCheck it is shown even when verbose
// mode is off.
func (p *Plugin) Debug(msg string, noCheck bool, args ...any) {
	if noCheck && !p.Verbose() {
		p.logger.Info(msg, args...)
		return
	}
	p.logger.Debug(msg, args...)
}

// OnLoad registers the help message and the command tree with the host.
func (p *Plugin) OnLoad(context.Context) error {
	p.server.RegisterHelpMessage(p.config.PrimaryPrefix(), p.Rtr("help.mcdr"))
	if err := p.commands.Register(); err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	p.logger.Info("Plugin loaded.", slog.String("version", p.server.Metadata().Version))
	return nil
}

// CommandFailed translates err as the reply to a failed command.
func (p *Plugin) CommandFailed(err error) domain.Resolvable {
	return p.Rtr("command.failed", err.Error())
}

func (p *Plugin) OnUnload() {
	p.logger.Info("Plugin unloaded.")
}

// Reload asks the host to load the plugin again.
func (p *Plugin) Reload(ctx context.Context) error {
	return p.server.ReloadPlugin(ctx, p.server.Metadata().ID)
}
