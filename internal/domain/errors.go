package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors.
var (
	ErrTranslationNotFound = errors.New("translation not found")
	ErrFormat              = errors.New("failed to apply translation arguments")
	ErrResourceLoad        = errors.New("failed to load resource")
	ErrUnsupportedResource = errors.New("unsupported resource file")
	ErrDirectoryOccupied   = errors.New("data folder structure is occupied by existing file")
	ErrAlreadyRegistered   = errors.New("commands already registered")
	ErrUnknownPlugin       = errors.New("unknown plugin")
	ErrInvalidLanguage     = errors.New("invalid language code")
)

// LookupError reports a translation key that is absent in every language of the
// resolving order.
type LookupError struct {
	Key       string
	Languages []string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("translation key %q not found with language %s", e.Key, QuoteLanguages(e.Languages))
}

func (e *LookupError) Unwrap() error {
	return ErrTranslationNotFound
}

// FormatError reports a mismatch between a translated format string and the
// arguments applied to it.
type FormatError struct {
	Format string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("apply args to translated text %q: %v", e.Format, e.Err)
}

func (e *FormatError) Unwrap() []error {
	return []error{ErrFormat, e.Err}
}

// ResourceLoadError reports a malformed or unreadable resource file.
type ResourceLoadError struct {
	Path string
	Err  error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("load resource %s: %v", e.Path, e.Err)
}

func (e *ResourceLoadError) Unwrap() []error {
	return []error{ErrResourceLoad, e.Err}
}

// QuoteLanguages renders a language order as `"a", "b"` for log lines and errors.
func QuoteLanguages(languages []string) string {
	quoted := make([]string, len(languages))
	for i, l := range languages {
		quoted[i] = fmt.Sprintf("%q", l)
	}
	return strings.Join(quoted, ", ")
}
