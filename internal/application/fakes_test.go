package application_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.minekube.com/brigodier"

	"blossom/internal/application"
	"blossom/internal/domain"
	"blossom/internal/infrastructure/database"
	"blossom/internal/infrastructure/worker"
	"blossom/internal/ports/output"
)

type fakeServer struct {
	dir      string
	language string

	mu         sync.Mutex
	dispatcher brigodier.Dispatcher
	help       map[string]domain.Resolvable
	reloads    atomic.Int32
	reloadErr  error
}

func (s *fakeServer) Metadata() domain.Metadata { return application.Metadata() }
func (s *fakeServer) DataFolder() string        { return s.dir }

func (s *fakeServer) Language() string {
	if s.language == "" {
		return "en_us"
	}
	return s.language
}

func (s *fakeServer) RegisterCommand(node brigodier.LiteralNodeBuilder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatcher.Register(node)
	return nil
}

func (s *fakeServer) RegisterHelpMessage(prefix string, message domain.Resolvable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.help == nil {
		s.help = make(map[string]domain.Resolvable)
	}
	s.help[prefix] = message
}

func (s *fakeServer) ReloadPlugin(context.Context, string) error {
	s.reloads.Add(1)
	return s.reloadErr
}

func (s *fakeServer) exec(src output.Source, line string) error {
	return s.dispatcher.Do(output.WithSource(context.Background(), src), line)
}

type fakeSource struct {
	id    string
	level int

	mu      sync.Mutex
	replies []domain.Resolvable
}

func (s *fakeSource) ID() string                   { return s.id }
func (s *fakeSource) Name() string                 { return s.id }
func (s *fakeSource) HasPermission(level int) bool { return s.level >= level }

func (s *fakeSource) Reply(message domain.Resolvable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, message)
}

type texter interface {
	Text(language string) (string, error)
}

// texts renders every reply in language.
func (s *fakeSource) texts(t *testing.T, language string) []string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.replies))
	for _, r := range s.replies {
		tx, ok := r.(texter)
		require.True(t, ok, "reply %T has no plain text", r)
		text, err := tx.Text(language)
		require.NoError(t, err)
		out = append(out, text)
	}
	return out
}

type fixture struct {
	server *fakeServer
	runner *worker.Runner
	prefs  *database.MemoryPreferences
	plugin *application.Plugin
}

// newFixture loads a plugin whose data folder holds configYAML as config.yml.
// An empty configYAML lets the plugin write its defaults.
func newFixture(t *testing.T, configYAML string) *fixture {
	t.Helper()
	return newFixtureIn(t, "", configYAML)
}

// newFixtureIn is newFixture on a host whose language is language.
func newFixtureIn(t *testing.T, language, configYAML string) *fixture {
	t.Helper()
	dir := t.TempDir()
	if configYAML != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(configYAML), 0o644))
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	runner, err := worker.NewRunner(application.PluginName, 2, logger)
	require.NoError(t, err)
	t.Cleanup(runner.Close)

	f := &fixture{server: &fakeServer{dir: dir, language: language}, runner: runner, prefs: database.NewMemoryPreferences()}
	f.plugin, err = application.NewPlugin(f.server, application.Dependencies{
		Logger:      logger,
		Level:       new(slog.LevelVar),
		Runner:      runner,
		Preferences: f.prefs,
	})
	require.NoError(t, err)
	require.NoError(t, f.plugin.OnLoad(context.Background()))
	return f
}

var errReloadRefused = errors.New("reload refused")
