package i18n

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Formatting errors, wrapped into *domain.FormatError by the translator.
var (
	errUnclosedField  = errors.New("single '{' encountered in format string")
	errUnopenedField  = errors.New("single '}' encountered in format string")
	errNumberingMixed = errors.New("cannot mix manual and automatic field numbering")
	errInvalidSpec    = errors.New("invalid format spec")
)

// verbSpec is the subset of fmt directives accepted after ':' in a field,
// e.g. {0:.2f} or {count:03d}.
var verbSpec = regexp.MustCompile(`^[-+# 0]*\d*(?:\.\d+)?[bcdeEfFgGoqsxXv]?$`)

// format substitutes brace fields in pattern: {} and {0} take positional
// arguments, {name} takes a named one, {{ and }} are literal braces.
func format(pattern string, args []any, kwargs map[string]any) (string, error) {
	if !strings.ContainsAny(pattern, "{}") {
		return pattern, nil
	}
	var (
		b      strings.Builder
		auto   int
		manual bool
	)
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '}':
			if i+1 < len(pattern) && pattern[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return "", errUnopenedField
		case '{':
			if i+1 < len(pattern) && pattern[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(pattern[i+1:], '}')
			if end < 0 {
				return "", errUnclosedField
			}
			field := pattern[i+1 : i+1+end]
			i += end + 1

			name, spec, _ := strings.Cut(field, ":")
			var value any
			switch {
			case name == "":
				if manual {
					return "", errNumberingMixed
				}
				if auto >= len(args) {
					return "", fmt.Errorf("replacement index %d out of range for %d positional args", auto, len(args))
				}
				value = args[auto]
				auto++
			case isIndex(name):
				if auto > 0 {
					return "", errNumberingMixed
				}
				manual = true
				idx, _ := strconv.Atoi(name)
				if idx >= len(args) {
					return "", fmt.Errorf("replacement index %d out of range for %d positional args", idx, len(args))
				}
				value = args[idx]
			default:
				v, ok := kwargs[name]
				if !ok {
					return "", fmt.Errorf("missing named argument %q", name)
				}
				value = v
			}
			s, err := formatValue(value, spec)
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

func formatValue(v any, spec string) (string, error) {
	if spec == "" {
		return fmt.Sprint(v), nil
	}
	if !verbSpec.MatchString(spec) {
		return "", fmt.Errorf("%w %q", errInvalidSpec, spec)
	}
	last := spec[len(spec)-1]
	if last < 'A' || (last > 'Z' && last < 'a') || last > 'z' {
		spec += "v"
	}
	return fmt.Sprintf("%"+spec, v), nil
}

func isIndex(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
