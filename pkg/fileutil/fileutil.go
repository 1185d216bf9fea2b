package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"blossom/internal/domain"
)

// Delete removes a file or a whole directory. A missing path is not an error.
func Delete(target string) error {
	info, err := os.Stat(target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return os.RemoveAll(target)
	}
	return os.Remove(target)
}

// SafeWrite writes target through a sibling .tmp file that replaces target only
// once write returned without error.
func SafeWrite(target string, write func(w io.Writer) error) (err error) {
	tmp := target + ".tmp"
	if err := Delete(tmp); err != nil {
		return fmt.Errorf("remove stale temp file: %w", err)
	}
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

// LFRead reads a file from disk with CRLF and CR line breaks turned into LF.
func LFRead(target string) (string, error) {
	data, err := os.ReadFile(target)
	if err != nil {
		return "", err
	}
	return ToLF(string(data)), nil
}

// LFReadFS is LFRead for bundled files.
func LFReadFS(fsys fs.FS, name string) (string, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return "", err
	}
	return ToLF(string(data)), nil
}

// ToLF normalizes line breaks to LF.
func ToLF(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// EnsureDir creates dir and its parents. It fails with domain.ErrDirectoryOccupied
// when a regular file already sits at dir.
func EnsureDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("%w: %s", domain.ErrDirectoryOccupied, dir)
	case err == nil:
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}
	return os.MkdirAll(filepath.Clean(dir), 0o755)
}

// ListBundled returns the names of the files directly inside dir of fsys.
func ListBundled(fsys fs.FS, dir string) ([]string, error) {
	dir = strings.Trim(path.Clean(strings.ReplaceAll(dir, "\\", "/")), "/")
	if dir == "" {
		dir = "."
	}
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
