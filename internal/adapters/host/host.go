package host

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"go.minekube.com/brigodier"
	"go.minekube.com/common/minecraft/component"

	"blossom/internal/domain"
	"blossom/internal/ports/input"
	"blossom/internal/ports/output"
)

var (
	_ output.Server        = (*Host)(nil)
	_ input.CommandUseCase = (*Host)(nil)
)

// HelpCommand lists the help messages registered by the plugin.
const HelpCommand = "!!help"

// Loader builds a fresh plugin bound to server.
type Loader func(ctx context.Context, server output.Server) (input.Plugin, error)

// Options describe the embedding environment.
type Options struct {
	Metadata   domain.Metadata
	Language   string
	DataFolder string
	Logger     *slog.Logger
}

// Host embeds a single plugin in a standalone process: it owns the command
// dispatcher and the help registry and rebuilds both on reload.
type Host struct {
	opts   Options
	logger *slog.Logger
	load   Loader

	reloadMu sync.Mutex

	mu         sync.RWMutex
	dispatcher *brigodier.Dispatcher
	help       map[string]domain.Resolvable
	primary    string
	plugin     input.Plugin
}

func New(opts Options, load Loader) *Host {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Host{
		opts:       opts,
		logger:     logger.With(slog.String("subsystem", "host")),
		load:       load,
		dispatcher: &brigodier.Dispatcher{},
		help:       make(map[string]domain.Resolvable),
	}
}

func (h *Host) Metadata() domain.Metadata { return h.opts.Metadata }

func (h *Host) Language() string { return h.opts.Language }

func (h *Host) DataFolder() string { return h.opts.DataFolder }

func (h *Host) RegisterCommand(node brigodier.LiteralNodeBuilder) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dispatcher.Register(node)
	return nil
}

func (h *Host) RegisterHelpMessage(prefix string, message domain.Resolvable) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.primary == "" {
		h.primary = prefix
	}
	h.help[prefix] = message
}

// PrimaryPrefix is the prefix of the first help message the running plugin
// registered, or fallback while none is registered.
func (h *Host) PrimaryPrefix(fallback string) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.primary == "" {
		return fallback
	}
	return h.primary
}

// Start loads the plugin.
func (h *Host) Start(ctx context.Context) error {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()
	return h.loadPlugin(ctx)
}

// Stop unloads the plugin and forgets its commands.
func (h *Host) Stop() {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()
	if old := h.reset(); old != nil {
		old.OnUnload()
	}
}

// ReloadPlugin unloads the running plugin and loads a fresh one. Commands
// executing meanwhile see either the old or the new command tree.
func (h *Host) ReloadPlugin(ctx context.Context, id string) error {
	if id != h.opts.Metadata.ID {
		return fmt.Errorf("%w: %s", domain.ErrUnknownPlugin, id)
	}
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()

	if old := h.reset(); old != nil {
		old.OnUnload()
	}
	if err := h.loadPlugin(ctx); err != nil {
		return err
	}
	h.logger.Info("Plugin reloaded.", slog.String("id", id))
	return nil
}

func (h *Host) reset() input.Plugin {
	h.mu.Lock()
	defer h.mu.Unlock()
	old := h.plugin
	h.plugin = nil
	h.dispatcher = &brigodier.Dispatcher{}
	h.help = make(map[string]domain.Resolvable)
	h.primary = ""
	return old
}

// loadPlugin must be called with reloadMu held. The plugin registers its
// commands through h while loading, so h.mu is not held here.
func (h *Host) loadPlugin(ctx context.Context) error {
	p, err := h.load(ctx, h)
	if err != nil {
		return fmt.Errorf("load plugin %s: %w", h.opts.Metadata.ID, err)
	}
	if err := p.OnLoad(ctx); err != nil {
		return fmt.Errorf("load plugin %s: %w", h.opts.Metadata.ID, err)
	}
	h.mu.Lock()
	h.plugin = p
	h.mu.Unlock()
	return nil
}

// Execute parses line and runs the matching command as src. Errors are
// replied to src and returned.
func (h *Host) Execute(ctx context.Context, src output.Source, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if line == HelpCommand {
		for _, entry := range h.HelpMessages() {
			src.Reply(entry)
		}
		return nil
	}

	h.mu.RLock()
	d, p := h.dispatcher, h.plugin
	h.mu.RUnlock()

	if err := d.Do(output.WithSource(ctx, src), line); err != nil {
		h.logger.Debug("Command failed.", slog.String("source", src.ID()), slog.String("line", line), slog.Any("err", err))
		if p != nil {
			src.Reply(p.CommandFailed(err))
		} else {
			src.Reply(domain.Literal("§c" + err.Error()))
		}
		return err
	}
	return nil
}

// HelpEntry is one line of the help listing.
type HelpEntry struct {
	Prefix  string
	Message domain.Resolvable
}

// Resolve renders the entry as "<prefix>: <message>".
func (e HelpEntry) Resolve(language string) (component.Component, error) {
	message, err := e.Message.Resolve(language)
	if err != nil {
		return nil, err
	}
	return &component.Text{
		Content: "§7" + e.Prefix + "§r: ",
		Extra:   []component.Component{message},
	}, nil
}

// HelpMessages returns the registered help messages sorted by prefix.
func (h *Host) HelpMessages() []HelpEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	entries := make([]HelpEntry, 0, len(h.help))
	for prefix, message := range h.help {
		entries = append(entries, HelpEntry{Prefix: prefix, Message: message})
	}
	slices.SortFunc(entries, func(a, b HelpEntry) int { return strings.Compare(a.Prefix, b.Prefix) })
	return entries
}
