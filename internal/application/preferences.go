package application

import (
	"context"
	"log/slog"

	"github.com/lmittmann/tint"

	"blossom/internal/infrastructure/i18n"
	"blossom/internal/ports/output"
)

// PreferenceService remembers which language each principal reads messages in.
type PreferenceService struct {
	store  output.LanguagePreferences
	logger *slog.Logger
}

func NewPreferenceService(store output.LanguagePreferences, logger *slog.Logger) *PreferenceService {
	return &PreferenceService{store: store, logger: logger}
}

// LanguageOf returns the stored language of src, or "" when none is stored or
// the store failed.
func (s *PreferenceService) LanguageOf(ctx context.Context, src output.Source) string {
	language, ok, err := s.store.Language(ctx, src.ID())
	if err != nil {
		s.logger.Warn("Read language preference failed.", slog.String("source", src.ID()), tint.Err(err))
		return ""
	}
	if !ok {
		return ""
	}
	return language
}

// SetLanguage validates code and stores it for src. It returns the code in
// the form translation files use, e.g. "zh-CN" -> "zh_cn".
func (s *PreferenceService) SetLanguage(ctx context.Context, src output.Source, code string) (string, error) {
	language, err := i18n.ParseLanguage(code)
	if err != nil {
		return "", err
	}
	if err := s.store.SetLanguage(ctx, src.ID(), language); err != nil {
		return "", err
	}
	s.logger.Debug("Language preference stored.", slog.String("source", src.ID()), slog.String("language", language))
	return language, nil
}
