package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/lmittmann/tint"
	"go.minekube.com/brigodier"

	"blossom/internal/domain"
	"blossom/internal/ports/output"
)

var errNoSource = errors.New("command context carries no source")

// CommandManager builds the plugin's command tree and registers it once.
type CommandManager struct {
	plugin *Plugin

	mu         sync.Mutex
	registered bool
}

func NewCommandManager(p *Plugin) *CommandManager {
	return &CommandManager{plugin: p}
}

// Register hands one command tree per configured prefix to the host.
func (m *CommandManager) Register() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.registered {
		return domain.ErrAlreadyRegistered
	}
	for _, root := range m.Tree() {
		if err := m.plugin.server.RegisterCommand(root); err != nil {
			return err
		}
	}
	m.registered = true
	return nil
}

// Tree builds the command nodes without registering them.
//
//	<prefix>                    help
//	<prefix> reload             reload the plugin
//	<prefix> language [<code>]  show or set the caller's language
//	<prefix> debug translate <key>
//	<prefix> debug order        only with debug: true
func (m *CommandManager) Tree() []brigodier.LiteralNodeBuilder {
	prefixes := m.plugin.config.Prefixes()
	roots := make([]brigodier.LiteralNodeBuilder, 0, len(prefixes))
	for _, prefix := range prefixes {
		roots = append(roots, m.root(prefix))
	}
	return roots
}

func (m *CommandManager) root(prefix string) brigodier.LiteralNodeBuilder {
	root := brigodier.Literal(prefix).Executes(m.run(m.showHelp))

	root = root.Then(m.permed("reload").Executes(m.run(m.reloadSelf)))
	root = root.Then(m.permed("language").
		Executes(m.run(m.showLanguage)).
		Then(brigodier.Argument("code", brigodier.StringWord).
			Executes(m.run(m.setLanguage)),
		),
	)

	if m.plugin.config.DebugCommandsEnabled() {
		root = root.Then(m.permed("debug").
			Then(brigodier.Literal("translate").
				Then(brigodier.Argument("key", brigodier.StringWord).
					Executes(m.run(m.debugTranslate)),
				),
			).
			Then(brigodier.Literal("order").Executes(m.run(m.debugOrder))),
		)
	}
	return root
}

// permed returns a literal guarded by the permission level configured for it.
func (m *CommandManager) permed(literal string) brigodier.LiteralNodeBuilder {
	return brigodier.Literal(literal).Requires(requires(m.plugin.config.PermissionChecker(literal)))
}

func requires(pred domain.PermissionPredicate) brigodier.RequireFn {
	return func(ctx context.Context) bool {
		src, _ := output.SourceFromContext(ctx)
		return pred(src)
	}
}

type handler func(c *brigodier.CommandContext, src output.Source) error

func (m *CommandManager) run(h handler) brigodier.Command {
	return brigodier.CommandFunc(func(c *brigodier.CommandContext) error {
		src, ok := output.SourceFromContext(c)
		if !ok {
			return errNoSource
		}
		return h(c, src)
	})
}

func (m *CommandManager) showHelp(_ *brigodier.CommandContext, src output.Source) error {
	meta := m.plugin.server.Metadata()
	cfg := m.plugin.config
	src.Reply(m.plugin.translator.Htr("help.detailed", cfg.Prefixes(), domain.Named{
		"prefix": cfg.PrimaryPrefix(),
		"name":   meta.Name,
		"ver":    meta.Version,
	}))
	return nil
}

func (m *CommandManager) reloadSelf(_ *brigodier.CommandContext, src output.Source) error {
	return m.plugin.runner.Go("Reload", func(ctx context.Context) error {
		if err := m.plugin.Reload(ctx); err != nil {
			src.Reply(m.plugin.Rtr("loading.failed", err.Error()))
			return err
		}
		src.Reply(m.plugin.Rtr("loading.reloaded"))
		return nil
	})
}

func (m *CommandManager) showLanguage(c *brigodier.CommandContext, src output.Source) error {
	order := m.plugin.translator.Order(m.plugin.preferences.LanguageOf(c, src))
	src.Reply(m.plugin.Rtr("language.current", order[0], strings.Join(order, ", ")))
	return nil
}

func (m *CommandManager) setLanguage(c *brigodier.CommandContext, src output.Source) error {
	code := c.String("code")
	language, err := m.plugin.preferences.SetLanguage(c, src, code)
	switch {
	case errors.Is(err, domain.ErrInvalidLanguage):
		src.Reply(m.plugin.Rtr("language.invalid", code))
	case err != nil:
		m.plugin.logger.Warn("Store language preference failed.", slog.String("source", src.ID()), tint.Err(err))
		src.Reply(m.plugin.Rtr("language.failed", err.Error()))
	default:
		src.Reply(m.plugin.Rtr("language.set", language))
	}
	return nil
}

// debugTranslate shows the stored format string of key in the caller's order.
func (m *CommandManager) debugTranslate(c *brigodier.CommandContext, src output.Source) error {
	key := c.String("key")
	order := m.plugin.translator.Order(m.plugin.preferences.LanguageOf(c, src))
	text, ok := m.plugin.translator.Store().Lookup(key, order)
	if !ok {
		src.Reply(m.plugin.Rtr("debug.missing", key))
		return nil
	}
	src.Reply(m.plugin.Rtr("debug.translate", domain.Named{"key": key, "text": text}))
	return nil
}

func (m *CommandManager) debugOrder(c *brigodier.CommandContext, src output.Source) error {
	order := m.plugin.translator.Order(m.plugin.preferences.LanguageOf(c, src))
	src.Reply(m.plugin.Rtr("debug.order", strings.Join(order, ", ")))
	return nil
}
