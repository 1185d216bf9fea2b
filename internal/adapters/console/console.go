package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/lmittmann/tint"

	"blossom/internal/domain"
	"blossom/internal/infrastructure/i18n"
	"blossom/internal/ports/input"
	"blossom/internal/ports/output"
)

// SourceID identifies the console principal, e.g. for its stored language.
const SourceID = "console"

var _ output.Source = (*Source)(nil)

// Source is the operator at the terminal. It holds every permission.
type Source struct {
	out      io.Writer
	mu       *sync.Mutex
	prefs    output.LanguagePreferences
	fallback string
}

func (s *Source) ID() string   { return SourceID }
func (s *Source) Name() string { return "Console" }

func (s *Source) HasPermission(level int) bool {
	return level <= domain.PermissionOwner
}

// Language is the stored console language, or the host language.
func (s *Source) Language() string {
	if s.prefs != nil {
		if language, ok, err := s.prefs.Language(context.Background(), SourceID); err == nil && ok {
			return language
		}
	}
	return s.fallback
}

// Reply prints message resolved in the console language, without formatting codes.
func (s *Source) Reply(message domain.Resolvable) {
	c, err := message.Resolve(s.Language())
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		fmt.Fprintf(s.out, "<%v>\n", err)
		return
	}
	fmt.Fprintln(s.out, i18n.PlainText(c))
}

// Console feeds lines read from in to a command use case.
type Console struct {
	exec   input.CommandUseCase
	in     io.Reader
	src    *Source
	logger *slog.Logger
}

// New creates a console. language is used for replies until the console
// operator picks one with the language command.
func New(exec input.CommandUseCase, in io.Reader, out io.Writer, prefs output.LanguagePreferences, language string, logger *slog.Logger) *Console {
	return &Console{
		exec:   exec,
		in:     in,
		src:    &Source{out: out, mu: &sync.Mutex{}, prefs: prefs, fallback: language},
		logger: logger.With(slog.String("subsystem", "console")),
	}
}

// Source returns the console principal.
func (c *Console) Source() *Source {
	return c.src
}

// Run executes every line until in is exhausted or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if err := c.exec.Execute(ctx, c.src, line); err != nil {
				c.logger.Debug("Console command failed.", slog.String("line", line), tint.Err(err))
			}
		}
	}
}
