package output

import "context"

// LanguagePreferences stores the language each principal wants to read messages in.
type LanguagePreferences interface {
	// Language returns the stored language of sourceID; ok is false when none is stored.
	Language(ctx context.Context, sourceID string) (language string, ok bool, err error)
	SetLanguage(ctx context.Context, sourceID, language string) error
}
