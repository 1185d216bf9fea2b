package i18n

import (
	"slices"
	"sync"
)

// DefaultLanguage is the last resort of every language order.
const DefaultLanguage = "en_us"

// LanguageOrder is the ranked list of languages tried on lookup, most
// preferred first, without duplicates.
type LanguageOrder struct {
	mu    sync.RWMutex
	codes []string
}

// NewLanguageOrder starts from DefaultLanguage and moves codes to the front,
// so codes[0] ends up most preferred and DefaultLanguage stays in the order.
func NewLanguageOrder(codes ...string) *LanguageOrder {
	o := &LanguageOrder{codes: []string{DefaultLanguage}}
	for i := len(codes) - 1; i >= 0; i-- {
		o.codes = prefer(o.codes, codes[i])
	}
	return o
}

// Set moves code to the front, removing any earlier occurrence.
func (o *LanguageOrder) Set(code string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.codes = prefer(o.codes, code)
}

// Snapshot returns a copy of the current order.
func (o *LanguageOrder) Snapshot() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return slices.Clone(o.codes)
}

// With returns the current order with code moved to the front, leaving
// the order itself untouched. An empty code returns the current order.
func (o *LanguageOrder) With(code string) []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return prefer(o.codes, code)
}

// Clone returns an independent copy.
func (o *LanguageOrder) Clone() *LanguageOrder {
	return &LanguageOrder{codes: o.Snapshot()}
}

// prefer returns a new slice with code in front of codes minus code.
func prefer(codes []string, code string) []string {
	code = normalizeCode(code)
	if code == "" {
		return slices.Clone(codes)
	}
	out := make([]string, 0, len(codes)+1)
	out = append(out, code)
	for _, c := range codes {
		if c != code {
			out = append(out, c)
		}
	}
	return out
}
