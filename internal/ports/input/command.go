package input

import (
	"context"

	"blossom/internal/ports/output"
)

// CommandUseCase runs a command line on behalf of src. Replies go to src;
// the returned error reports a line that did not parse or a failed command.
type CommandUseCase interface {
	Execute(ctx context.Context, src output.Source, line string) error
}
