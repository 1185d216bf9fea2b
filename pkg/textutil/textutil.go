package textutil

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Capitalize upper-cases the first rune of s and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return ""
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ToCamelCase joins the divider-separated words of s with each word capitalized.
// With upper false the very first rune is lower-cased ("my_plugin" -> "myPlugin").
func ToCamelCase(s, divider string, upper bool) string {
	words := strings.Split(s, divider)
	for i, w := range words {
		words[i] = Capitalize(w)
	}
	out := strings.Join(words, "")
	if upper {
		return out
	}
	r, size := utf8.DecodeRuneInString(out)
	if size == 0 {
		return ""
	}
	return string(unicode.ToLower(r)) + out[size:]
}

// YAMLDump renders v as a YAML document indented with two spaces.
func YAMLDump(v any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
