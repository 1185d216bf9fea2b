package output

import (
	"context"

	"go.minekube.com/brigodier"

	"blossom/internal/domain"
)

// Server is the host framework as seen from the plugin.
type Server interface {
	Metadata() domain.Metadata
	// Language returns the language configured for the host itself.
	Language() string
	DataFolder() string
	RegisterCommand(node brigodier.LiteralNodeBuilder) error
	RegisterHelpMessage(prefix string, message domain.Resolvable)
	// ReloadPlugin unloads the plugin identified by id and loads it again.
	ReloadPlugin(ctx context.Context, id string) error
}

// TaskRunner runs named background work. Failures are logged by the runner
// and never reach the caller of fn.
type TaskRunner interface {
	Go(name string, fn func(ctx context.Context) error) error
}
