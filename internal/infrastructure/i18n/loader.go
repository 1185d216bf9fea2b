package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"blossom/internal/domain"
	"blossom/pkg/fileutil"
)

// decoders by resource file extension.
var decoders = map[string]func([]byte, any) error{
	"json": json.Unmarshal,
	"yml":  yaml.Unmarshal,
	"yaml": yaml.Unmarshal,
	"toml": toml.Unmarshal,
}

// RegisterTranslation flattens a nested translation document into dotted keys
// and stores it for language. Only the namespace subtree is kept.
func (t *Translator) RegisterTranslation(language string, document map[string]any) int {
	flat := make(map[string]string)
	for k, v := range document {
		if k != t.namespace {
			continue
		}
		flatten(flat, k, v)
	}
	t.store.RegisterLanguage(normalizeCode(language), flat)
	return len(flat)
}

func flatten(dst map[string]string, key string, v any) {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			flatten(dst, key+"."+k, child)
		}
	case map[any]any:
		for k, child := range node {
			flatten(dst, key+"."+fmt.Sprint(k), child)
		}
	case nil:
		// A null value is an intentionally blank translation.
		dst[key] = ""
	case string:
		dst[key] = node
	default:
		dst[key] = fmt.Sprint(node)
	}
}

// RegisterTranslationFile loads <language>.<json|yml|yaml|toml> from fsys.
// Parse failures come back as *domain.ResourceLoadError and leave the store
// untouched. A document that is not a mapping is ignored.
func (t *Translator) RegisterTranslationFile(fsys fs.FS, name string) error {
	language, ext, ok := splitResourceName(name)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedResource, name)
	}
	decode, ok := decoders[ext]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedResource, name)
	}
	text, err := fileutil.LFReadFS(fsys, name)
	if err != nil {
		return &domain.ResourceLoadError{Path: name, Err: err}
	}
	var document any
	if err := decode([]byte(text), &document); err != nil {
		return &domain.ResourceLoadError{Path: name, Err: err}
	}
	if m, ok := document.(map[string]any); ok {
		n := t.RegisterTranslation(language, m)
		t.logger.Debug("Translation file registered.", slog.String("file", name), slog.Int("keys", n))
	}
	return nil
}

// RegisterTranslationPath loads a translation file from disk.
func (t *Translator) RegisterTranslationPath(file string) error {
	dir, name := filepath.Split(file)
	if dir == "" {
		dir = "."
	}
	return t.RegisterTranslationFile(os.DirFS(dir), name)
}

// RegisterBundledTranslations loads every translation file directly under dir
// of fsys. Files that fail are logged and skipped. It returns the number of
// files loaded.
func (t *Translator) RegisterBundledTranslations(fsys fs.FS, dir string) int {
	names, err := fileutil.ListBundled(fsys, dir)
	if err != nil {
		t.logger.Error("List bundled translations failed.", slog.String("dir", dir), tint.Err(err))
		return 0
	}
	loaded := 0
	for _, name := range names {
		if err := t.RegisterTranslationFile(fsys, path.Join(dir, name)); err != nil {
			t.logger.Debug("Skipping translation file.", slog.String("file", name), tint.Err(err))
			continue
		}
		loaded++
	}
	return loaded
}

func splitResourceName(name string) (language, ext string, ok bool) {
	base := path.Base(name)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return "", "", false
	}
	return base[:i], strings.ToLower(base[i+1:]), true
}
