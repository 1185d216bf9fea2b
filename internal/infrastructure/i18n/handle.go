package i18n

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/lmittmann/tint"
	"go.minekube.com/common/minecraft/component"

	"blossom/internal/domain"
)

var (
	_ domain.Resolvable = (*Handle)(nil)
	_ domain.Resolvable = (*DictHandle)(nil)
)

// Handle is a translation key with its arguments, translated each time it is
// resolved. The result follows the language order at resolution time.
type Handle struct {
	tr     *Translator
	key    string
	args   []any
	kwargs map[string]any
	opts   []Option
}

// Key returns the full translation key.
func (h *Handle) Key() string {
	return h.key
}

// Args returns copies of the positional and named arguments.
func (h *Handle) Args() ([]any, map[string]any) {
	return slices.Clone(h.args), maps.Clone(h.kwargs)
}

// Text translates the handle preferring language, or the current order when
// language is empty.
func (h *Handle) Text(language string) (string, error) {
	return h.tr.Translate(h.key, h.args, h.kwargs, h.withLanguage(language)...)
}

func (h *Handle) withLanguage(language string) []Option {
	return append(slices.Clip(h.opts), WithLanguage(language))
}

func (h *Handle) Resolve(language string) (component.Component, error) {
	text, err := h.Text(language)
	if err != nil {
		return nil, err
	}
	return &component.Text{Content: text}, nil
}

// String translates with the current order. On error it logs and returns
// the key.
func (h *Handle) String() string {
	text, err := h.Text("")
	if err != nil {
		h.tr.logger.Error("Translate text failed.", slog.String("key", h.key), tint.Err(err))
		return h.key
	}
	return text
}

// DictHandle translates from an inline language -> text map.
type DictHandle struct {
	tr     *Translator
	texts  map[string]string
	args   []any
	kwargs map[string]any
	opts   []Option
}

const dictFallback = "<Translation failed>"

func (h *DictHandle) Text(language string) (string, error) {
	o := collect(append(slices.Clip(h.opts), WithLanguage(language)))
	return h.tr.resolve("<dict>", dictFallback, func(order []string) (string, bool) {
		return lookupIn(h.texts, order)
	}, h.args, h.kwargs, o)
}

func (h *DictHandle) Resolve(language string) (component.Component, error) {
	text, err := h.Text(language)
	if err != nil {
		return nil, err
	}
	return &component.Text{Content: text}, nil
}

func (h *DictHandle) String() string {
	text, err := h.Text("")
	if err != nil {
		h.tr.logger.Error("Translate text failed.", slog.String("key", "<dict>"), tint.Err(err))
		return dictFallback
	}
	return text
}
