package database

import (
	"context"
	"sync"

	"blossom/internal/ports/output"
)

var _ output.LanguagePreferences = (*MemoryPreferences)(nil)

// MemoryPreferences keeps language preferences for the lifetime of the
// process. Used when no database is configured.
type MemoryPreferences struct {
	mu        sync.RWMutex
	languages map[string]string
}

func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{languages: make(map[string]string)}
}

func (m *MemoryPreferences) Language(_ context.Context, sourceID string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	language, ok := m.languages[sourceID]
	return language, ok, nil
}

func (m *MemoryPreferences) SetLanguage(_ context.Context, sourceID, language string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.languages[sourceID] = language
	return nil
}
