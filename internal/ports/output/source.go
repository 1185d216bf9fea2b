package output

import (
	"context"

	"blossom/internal/domain"
)

// Source is the principal issuing a command.
type Source interface {
	domain.PermissionHolder
	// ID identifies the principal across sessions, e.g. for stored preferences.
	ID() string
	Name() string
	// Reply shows message to the principal, resolved in the principal's language.
	Reply(message domain.Resolvable)
}

type sourceKey struct{}

// WithSource attaches the command source to ctx so command nodes can reach it.
func WithSource(ctx context.Context, src Source) context.Context {
	return context.WithValue(ctx, sourceKey{}, src)
}

// SourceFromContext returns the command source attached by WithSource.
func SourceFromContext(ctx context.Context) (Source, bool) {
	src, ok := ctx.Value(sourceKey{}).(Source)
	return src, ok && src != nil
}
