package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		args    []any
		kwargs  map[string]any
		want    string
	}{
		{name: "no fields", pattern: "Hello", want: "Hello"},
		{name: "indexed", pattern: "Hello {0}, {1} and {0}", args: []any{"Bob", "Alice"}, want: "Hello Bob, Alice and Bob"},
		{name: "automatic", pattern: "{} + {} = {}", args: []any{1, 2, 3}, want: "1 + 2 = 3"},
		{name: "named", pattern: "{name} v{ver}", kwargs: map[string]any{"name": "Blossom", "ver": "0.1.0"}, want: "Blossom v0.1.0"},
		{name: "escaped braces", pattern: "{{literal}} {0}", args: []any{"x"}, want: "{literal} x"},
		{name: "spec with verb", pattern: "{0:.2f}", args: []any{3.14159}, want: "3.14"},
		{name: "spec without verb", pattern: "[{0:5}]", args: []any{"ab"}, want: "[   ab]"},
		{name: "zero padded", pattern: "{n:03d}", kwargs: map[string]any{"n": 7}, want: "007"},
		{name: "section codes untouched", pattern: "§7{0}§r", args: []any{"!!blossom"}, want: "§7!!blossom§r"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := format(tt.pattern, tt.args, tt.kwargs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		args    []any
		kwargs  map[string]any
		target  error
	}{
		{name: "index out of range", pattern: "Hello {1}", args: []any{"Bob"}},
		{name: "missing positional", pattern: "Hello {0}"},
		{name: "missing named", pattern: "Hello {name}"},
		{name: "unclosed", pattern: "Hello {0", args: []any{"Bob"}, target: errUnclosedField},
		{name: "unopened", pattern: "Hello }", target: errUnopenedField},
		{name: "manual then automatic", pattern: "{0} {}", args: []any{1, 2}, target: errNumberingMixed},
		{name: "automatic then manual", pattern: "{} {0}", args: []any{1, 2}, target: errNumberingMixed},
		{name: "bad spec", pattern: "{0:>10}", args: []any{1}, target: errInvalidSpec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := format(tt.pattern, tt.args, tt.kwargs)
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}
