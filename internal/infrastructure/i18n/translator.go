package i18n

import (
	"errors"
	"log/slog"
	"maps"
	"strings"

	"github.com/lmittmann/tint"
	"go.minekube.com/common/minecraft/component"

	"blossom/internal/domain"
	"blossom/internal/ports/output"
)

// Ensure Translator implements the output.Translator port.
var _ output.Translator = (*Translator)(nil)

// Translator resolves translation keys against a Store following a
// LanguageOrder. Keys registered from resource files live under namespace.
type Translator struct {
	namespace string
	logger    *slog.Logger
	store     *Store
	order     *LanguageOrder
}

// NewTranslator builds a Translator for namespace. languages seeds the order,
// most preferred first; en_us is used when none is given.
func NewTranslator(namespace string, logger *slog.Logger, languages ...string) *Translator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Translator{
		namespace: namespace,
		logger:    logger,
		store:     NewStore(),
		order:     NewLanguageOrder(languages...),
	}
}

// Option tunes a single translation.
type Option func(*options)

type options struct {
	language string
	strict   bool
	quiet    bool
	fallback *string
}

// WithLanguage tries code before the rest of the language order.
func WithLanguage(code string) Option {
	return func(o *options) {
		if code != "" {
			o.language = code
		}
	}
}

// Strict makes a missing key an error instead of a fallback text.
func Strict() Option {
	return func(o *options) { o.strict = true }
}

// Quiet suppresses the error log of a missing key.
func Quiet() Option {
	return func(o *options) { o.quiet = true }
}

// WithFallback sets the text returned for a missing key. Defaults to the key.
func WithFallback(text string) Option {
	return func(o *options) { o.fallback = &text }
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Namespace returns the top-level key every registered translation lives under.
func (t *Translator) Namespace() string {
	return t.namespace
}

// Store exposes the underlying translation store.
func (t *Translator) Store() *Store {
	return t.store
}

// SetLanguage makes code the most preferred language.
func (t *Translator) SetLanguage(code string) {
	t.order.Set(code)
}

// Languages returns the current language order.
func (t *Translator) Languages() []string {
	return t.order.Snapshot()
}

// Order returns the language order a lookup preferring language would use.
func (t *Translator) Order(language string) []string {
	return t.order.With(language)
}

// WithLanguage runs body with a translator that prefers code. The view shares
// the store but owns a copy of the order, so the order of t is the same after
// body returns, fails or panics. An empty code leaves the order as is.
func (t *Translator) WithLanguage(code string, body func(*Translator) error) error {
	order := t.order.Clone()
	order.Set(code)
	view := &Translator{
		namespace: t.namespace,
		logger:    t.logger,
		store:     t.store,
		order:     order,
	}
	return body(view)
}

// Has reports whether key has a translation in language or any language of
// the order.
func (t *Translator) Has(key, language string) bool {
	return t.store.Has(key, t.order.With(language))
}

// Key prepends the namespace to key unless it already carries it.
func (t *Translator) Key(key string) string {
	prefix := t.Prefix()
	if strings.HasPrefix(key, prefix) {
		return key
	}
	return prefix + key
}

// Prefix returns the dotted key prefix of the namespace extended by parts,
// with a trailing dot, e.g. Prefix("help") == "blossom.help.".
func (t *Translator) Prefix(parts ...string) string {
	segments := append(strings.Split(strings.TrimSuffix(t.namespace, "."), "."), parts...)
	return strings.Join(segments, ".") + "."
}

// Translate looks key up in the language order and applies args and kwargs.
//
// A missing key yields the fallback text (the key itself by default) and is
// logged, unless Strict is given in which case a *domain.LookupError is
// returned. Argument mismatches always return a *domain.FormatError.
func (t *Translator) Translate(key string, args []any, kwargs map[string]any, opts ...Option) (string, error) {
	return t.resolve(key, key, func(order []string) (string, bool) {
		return t.store.Lookup(key, order)
	}, args, kwargs, collect(opts))
}

// Tr translates key right away. domain.Named values and Options may be mixed
// into args. Format errors are logged and answered with the key; use
// Translate to handle them.
func (t *Translator) Tr(key string, args ...any) string {
	pos, named, opts := splitArgs(args)
	text, err := t.Translate(key, pos, named, opts...)
	if err != nil {
		t.logger.Error("Translate text failed.", slog.String("key", key), tint.Err(err))
		return key
	}
	return text
}

func (t *Translator) resolve(label, defaultFallback string, lookup func([]string) (string, bool), args []any, kwargs map[string]any, o options) (string, error) {
	order := t.order.With(o.language)
	text, ok := lookup(order)
	if !ok {
		err := &domain.LookupError{Key: label, Languages: order}
		if o.strict {
			return "", err
		}
		if !o.quiet {
			t.logger.Error("Translate text failed.",
				slog.String("key", label),
				slog.String("languages", domain.QuoteLanguages(order)),
				tint.Err(err),
			)
		}
		if o.fallback != nil {
			return *o.fallback, nil
		}
		return defaultFallback, nil
	}
	pos, named, err := renderArgs(args, kwargs, order[0])
	if err != nil {
		return "", &domain.FormatError{Format: text, Err: err}
	}
	out, err := format(text, pos, named)
	if err != nil {
		return "", &domain.FormatError{Format: text, Err: err}
	}
	return out, nil
}

// texter is implemented by handles that can produce plain text directly.
type texter interface {
	Text(language string) (string, error)
}

// renderArgs turns resolvable and rich-text arguments into text in language.
func renderArgs(args []any, kwargs map[string]any, language string) ([]any, map[string]any, error) {
	var errs []error
	render := func(v any) any {
		switch a := v.(type) {
		case domain.Literal:
			return string(a)
		case texter:
			text, err := a.Text(language)
			if err != nil {
				errs = append(errs, err)
				return ""
			}
			return text
		case domain.Resolvable:
			c, err := a.Resolve(language)
			if err != nil {
				errs = append(errs, err)
				return ""
			}
			return LegacyText(c)
		case component.Component:
			return LegacyText(a)
		}
		return v
	}
	pos := make([]any, len(args))
	for i, a := range args {
		pos[i] = render(a)
	}
	named := make(map[string]any, len(kwargs))
	for k, v := range kwargs {
		named[k] = render(v)
	}
	return pos, named, errors.Join(errs...)
}

// splitArgs separates positional arguments from domain.Named maps and Options.
func splitArgs(args []any) (pos []any, named map[string]any, opts []Option) {
	for _, a := range args {
		switch v := a.(type) {
		case domain.Named:
			if named == nil {
				named = make(map[string]any, len(v))
			}
			maps.Copy(named, v)
		case Option:
			opts = append(opts, v)
		default:
			pos = append(pos, a)
		}
	}
	return pos, named, opts
}

// Rtr returns a lazy handle of key, prefixed with the namespace.
func (t *Translator) Rtr(key string, args ...any) *Handle {
	return t.newHandle(t.Key(key), args)
}

// Ktr is Rtr for keys that may legitimately be missing: the unprefixed key is
// the fallback and failures are not logged.
func (t *Translator) Ktr(key string, args ...any) *Handle {
	pos, named, opts := splitArgs(args)
	opts = append([]Option{Quiet(), WithFallback(key)}, opts...)
	return &Handle{tr: t, key: t.Key(key), args: pos, kwargs: named, opts: opts}
}

// Htr returns a hint handle: lines of the text that show a command starting
// with one of prefixes become clickable suggestions.
func (t *Translator) Htr(key string, prefixes []string, args ...any) *HintHandle {
	return newHintHandle(t.Rtr(key, args...), prefixes)
}

// Dtr returns a lazy handle resolving from texts (language -> text) instead
// of the store.
func (t *Translator) Dtr(texts map[string]string, args ...any) *DictHandle {
	pos, named, opts := splitArgs(args)
	return &DictHandle{tr: t, texts: normalizeTexts(texts), args: pos, kwargs: named, opts: opts}
}

// Message implements output.Translator.
func (t *Translator) Message(key string, args ...any) domain.Resolvable {
	return t.Rtr(key, args...)
}

// Hint implements output.Translator.
func (t *Translator) Hint(key string, prefixes []string, args ...any) domain.Resolvable {
	return t.Htr(key, prefixes, args...)
}

func (t *Translator) newHandle(key string, args []any) *Handle {
	pos, named, opts := splitArgs(args)
	return &Handle{tr: t, key: key, args: pos, kwargs: named, opts: opts}
}
