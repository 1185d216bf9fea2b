package i18n

import (
	"regexp"
	"strings"

	"go.minekube.com/common/minecraft/component"

	"blossom/internal/domain"
	"blossom/pkg/fileutil"
)

var _ domain.Resolvable = (*HintHandle)(nil)

// hoverKey is the translation shown when hovering a suggested command.
const hoverKey = "hover.suggest"

// HintHandle resolves like Handle, then turns every line holding a gray
// (§7) command that starts with one of the prefixes into a clickable
// suggestion of that command.
type HintHandle struct {
	*Handle
	prefixes []string
	patterns []*regexp.Regexp
}

func newHintHandle(h *Handle, prefixes []string) *HintHandle {
	patterns := make([]*regexp.Regexp, 0, len(prefixes))
	for _, p := range prefixes {
		if p == "" {
			continue
		}
		patterns = append(patterns, regexp.MustCompile(`§7(`+regexp.QuoteMeta(p)+`[\S ]*?)§`))
	}
	return &HintHandle{Handle: h, prefixes: prefixes, patterns: patterns}
}

func (h *HintHandle) Resolve(language string) (component.Component, error) {
	text, err := h.Text(language)
	if err != nil {
		return nil, err
	}
	root := &component.Text{}
	for i, line := range splitLines(text) {
		if i > 0 {
			root.Extra = append(root.Extra, &component.Text{Content: "\n"})
		}
		command, ok := matchHint(line, h.patterns)
		if !ok {
			root.Extra = append(root.Extra, &component.Text{Content: line})
			continue
		}
		hover, err := h.tr.Rtr(hoverKey, command).Resolve(language)
		if err != nil {
			return nil, err
		}
		root.Extra = append(root.Extra, &component.Text{
			Content: line,
			S: component.Style{
				ClickEvent: component.SuggestCommand(command),
				HoverEvent: component.ShowText(hover),
			},
		})
	}
	return root, nil
}

// matchHint returns the command shown on line, with a trailing space, for the
// first pattern that matches.
func matchHint(line string, patterns []*regexp.Regexp) (string, bool) {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(line); m != nil {
			return m[1] + " ", true
		}
	}
	return "", false
}

// splitLines splits on any line break and drops a single trailing one.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(fileutil.ToLF(text), "\n")
	return strings.Split(text, "\n")
}
