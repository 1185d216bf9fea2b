package input

import (
	"context"

	"blossom/internal/domain"
)

// Plugin is the lifecycle a host drives.
type Plugin interface {
	OnLoad(ctx context.Context) error
	OnUnload()
	// CommandFailed is the reply for a command line that could not be run.
	CommandFailed(err error) domain.Resolvable
}
