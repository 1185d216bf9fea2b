package output

import "blossom/internal/domain"

// Translator exposes the i18n contract used by command handlers.
// Lookups follow the translator's language order; messages returned as
// Resolvable are resolved again for every viewer.
type Translator interface {
	// Tr resolves key right away. domain.Named values in args are used as
	// named arguments. Missing keys resolve to the key itself.
	Tr(key string, args ...any) string
	// Message defers the lookup of key (prefixed with the plugin namespace).
	Message(key string, args ...any) domain.Resolvable
	// Hint is like Message but turns lines carrying one of the command
	// prefixes into clickable command suggestions.
	Hint(key string, prefixes []string, args ...any) domain.Resolvable
	SetLanguage(code string)
	Languages() []string
}
