package i18n

import (
	"regexp"
	"strings"

	"go.minekube.com/common/minecraft/component"
	"go.minekube.com/common/minecraft/component/codec/legacy"
)

var sectionCodec = &legacy.Legacy{Char: legacy.SectionChar}

var formattingCode = regexp.MustCompile(`§[0-9a-fk-orA-FK-OR]`)

// LegacyText renders c with § formatting codes, the form chat consoles and
// the translation files use.
func LegacyText(c component.Component) string {
	if c == nil {
		return ""
	}
	var b strings.Builder
	if err := sectionCodec.Marshal(&b, c); err != nil {
		return ""
	}
	return b.String()
}

// StripFormatting removes § formatting codes from s.
func StripFormatting(s string) string {
	return formattingCode.ReplaceAllString(s, "")
}

// PlainText renders c without any formatting codes.
func PlainText(c component.Component) string {
	return StripFormatting(LegacyText(c))
}
