package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"blossom/internal/domain"
)

// normalizeCode lower-cases a language code and uses '_' as separator, the way
// language files are named (en_us, zh_cn).
func normalizeCode(code string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(code)), "-", "_")
}

// ParseLanguage validates a BCP 47 or underscore style language code and
// returns it as <language>_<region>. A missing region is filled with the most
// likely one, so "fr" becomes "fr_fr" and "zh-Hant" becomes "zh_tw".
func ParseLanguage(code string) (string, error) {
	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(code), "_", "-"))
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", domain.ErrInvalidLanguage, code, err)
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return "", fmt.Errorf("%w %q", domain.ErrInvalidLanguage, code)
	}
	region, confidence := tag.Region()
	if confidence == language.No {
		return normalizeCode(base.String()), nil
	}
	return normalizeCode(base.String() + "_" + region.String()), nil
}
