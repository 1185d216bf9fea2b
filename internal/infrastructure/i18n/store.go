package i18n

import (
	"maps"
	"sync"
)

// Store maps translation keys to their text per language. Entries are merged,
// never removed.
type Store struct {
	mu      sync.RWMutex
	entries map[string]map[string]string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[string]map[string]string)}
}

// Register merges texts (language -> text) into the entry of key. The last
// registration for a (key, language) pair wins. Language codes are stored
// normalized, "en-US" as "en_us".
func (s *Store) Register(key string, texts map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mergeLocked(key, normalizeTexts(texts))
}

// RegisterLanguage merges a flat key -> text map for a single language.
func (s *Store) RegisterLanguage(language string, flat map[string]string) {
	language = normalizeCode(language)
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, text := range flat {
		s.mergeLocked(key, map[string]string{language: text})
	}
}

func (s *Store) mergeLocked(key string, texts map[string]string) {
	entry, ok := s.entries[key]
	if !ok {
		entry = make(map[string]string, len(texts))
		s.entries[key] = entry
	}
	maps.Copy(entry, texts)
}

// Lookup returns the text of key in the first language of order that has one.
// An empty string stored for a language is a hit.
func (s *Store) Lookup(key string, order []string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lookupIn(s.entries[key], order)
}

// Has reports whether key has a text in any language of order.
func (s *Store) Has(key string, order []string) bool {
	_, ok := s.Lookup(key, order)
	return ok
}

func normalizeTexts(texts map[string]string) map[string]string {
	out := make(map[string]string, len(texts))
	for language, text := range texts {
		out[normalizeCode(language)] = text
	}
	return out
}

func lookupIn(texts map[string]string, order []string) (string, bool) {
	for _, language := range order {
		if text, ok := texts[language]; ok {
			return text, true
		}
	}
	return "", false
}
