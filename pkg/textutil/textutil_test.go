package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blossom/pkg/textutil"
)

func TestCapitalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", textutil.Capitalize(""))
	assert.Equal(t, "Blossom", textutil.Capitalize("blossom"))
	assert.Equal(t, "ÉTé", textutil.Capitalize("éTé"))
}

func TestToCamelCase(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in    string
		upper bool
		want  string
	}{
		"upper":       {in: "my_plugin", upper: true, want: "MyPlugin"},
		"lower":       {in: "my_plugin", want: "myPlugin"},
		"single word": {in: "blossom", upper: true, want: "Blossom"},
		"empty":       {in: "", want: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, textutil.ToCamelCase(tt.in, "_", tt.upper))
		})
	}
}

func TestYAMLDump(t *testing.T) {
	t.Parallel()

	out, err := textutil.YAMLDump(map[string]any{"a": map[string]int{"b": 1}})
	require.NoError(t, err)
	assert.Equal(t, "a:\n  b: 1\n", out)
}
