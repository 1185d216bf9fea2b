package i18n_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.minekube.com/common/minecraft/component"

	"blossom/internal/domain"
	"blossom/internal/infrastructure/i18n"
)

func TestHandleIsNotMemoized(t *testing.T) {
	t.Parallel()

	tr := newTranslator("en_us")
	tr.Store().Register("blossom.greeting", map[string]string{"en_us": "Hello", "zh_cn": "你好"})
	tr.Store().Register("blossom.same", map[string]string{"en_us": "OK", "zh_cn": "OK"})

	greeting := tr.Rtr("greeting")
	same := tr.Rtr("same")
	beforeGreeting, beforeSame := greeting.String(), same.String()

	tr.SetLanguage("zh_cn")

	assert.Equal(t, "Hello", beforeGreeting)
	assert.Equal(t, "你好", greeting.String())
	assert.Equal(t, beforeSame, same.String())
}

func TestHandleConstructionDoesNotLookUp(t *testing.T) {
	t.Parallel()

	tr := newTranslator()
	h := tr.Rtr("later", "x")
	assert.Equal(t, "blossom.later", h.Key())
	assert.Equal(t, "blossom.later", h.String())

	tr.Store().Register("blossom.later", map[string]string{"en_us": "now {0}"})
	assert.Equal(t, "now x", h.String())
}

func TestHandleResolvePerViewer(t *testing.T) {
	t.Parallel()

	tr := hiTranslator("en_us")
	tr.Store().Register("blossom.hi", map[string]string{"en_us": "Hello {0}", "zh_cn": "你好 {0}"})
	h := tr.Rtr("hi", "Bob")

	for language, want := range map[string]string{"zh_cn": "你好 Bob", "en_us": "Hello Bob", "": "Hello Bob"} {
		c, err := h.Resolve(language)
		require.NoError(t, err)
		text, ok := c.(*component.Text)
		require.True(t, ok)
		assert.Equal(t, want, text.Content)
	}
	assert.Equal(t, []string{"en_us"}, tr.Languages())
}

func TestHandleResolveFormatError(t *testing.T) {
	t.Parallel()

	tr := newTranslator()
	tr.Store().Register("blossom.hi", map[string]string{"en_us": "Hello {0}"})

	_, err := tr.Rtr("hi").Resolve("")
	assert.ErrorIs(t, err, domain.ErrFormat)
}

func TestHandleStringLogsFormatError(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	tr := i18n.NewTranslator("blossom", slog.New(slog.NewTextHandler(&logs, nil)))
	tr.Store().Register("blossom.hi", map[string]string{"en_us": "Hello {0}"})

	assert.Equal(t, "blossom.hi", tr.Rtr("hi").String())
	assert.Contains(t, logs.String(), "Translate text failed.")
	assert.Contains(t, logs.String(), "key=blossom.hi")

	logs.Reset()
	assert.Equal(t, "<Translation failed>", tr.Dtr(map[string]string{"en_us": "{0} and {1}"}, "one").String())
	assert.Contains(t, logs.String(), "Translate text failed.")
}

func TestKtr(t *testing.T) {
	t.Parallel()

	tr := newTranslator()
	assert.Equal(t, "maybe.missing", tr.Ktr("maybe.missing").String())
	assert.Equal(t, "other", tr.Ktr("maybe.missing", i18n.WithFallback("other")).String())

	tr.Store().Register("blossom.maybe.missing", map[string]string{"en_us": "found"})
	assert.Equal(t, "found", tr.Ktr("maybe.missing").String())
}

func TestDtr(t *testing.T) {
	t.Parallel()

	tr := newTranslator("en_us")
	h := tr.Dtr(map[string]string{"en_us": "Hi {0}", "zh_cn": "嗨 {0}"}, "Bob")

	got, err := h.Text("zh_cn")
	require.NoError(t, err)
	assert.Equal(t, "嗨 Bob", got)
	assert.Equal(t, "Hi Bob", h.String())

	missing := tr.Dtr(map[string]string{"ja_jp": "やあ"})
	assert.Equal(t, "<Translation failed>", missing.String())
}

func TestHtr(t *testing.T) {
	t.Parallel()

	tr := newTranslator("en_us")
	tr.Store().Register("blossom.help.detailed", map[string]string{
		"en_us": "{name} v{ver}\n§7{prefix} reload§r Reload\nplain line",
	})
	tr.Store().Register("blossom.hover.suggest", map[string]string{"en_us": "Click to fill {0}"})

	h := tr.Htr("help.detailed", []string{"!!blossom"},
		domain.Named{"name": "Blossom", "ver": "0.1.0", "prefix": "!!blossom"})

	c, err := h.Resolve("")
	require.NoError(t, err)
	root, ok := c.(*component.Text)
	require.True(t, ok)
	require.Len(t, root.Extra, 5, "three lines joined by two breaks")

	first := root.Extra[0].(*component.Text)
	assert.Equal(t, "Blossom v0.1.0", first.Content)
	assert.Nil(t, first.S.ClickEvent)

	hinted := root.Extra[2].(*component.Text)
	assert.Equal(t, "§7!!blossom reload§r Reload", hinted.Content)
	assert.NotNil(t, hinted.S.ClickEvent)
	assert.NotNil(t, hinted.S.HoverEvent)

	assert.Equal(t, "\n", root.Extra[1].(*component.Text).Content)
	assert.Nil(t, root.Extra[4].(*component.Text).S.ClickEvent)
}

func TestHtrEmptyText(t *testing.T) {
	t.Parallel()

	tr := newTranslator()
	tr.Store().Register("blossom.empty", map[string]string{"en_us": ""})

	c, err := tr.Htr("empty", []string{"!!blossom"}).Resolve("")
	require.NoError(t, err)
	assert.Empty(t, c.(*component.Text).Extra)
}
