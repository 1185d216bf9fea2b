package fileutil_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blossom/internal/domain"
	"blossom/pkg/fileutil"
)

func TestSafeWrite(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "out.yml")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o644))

	err := fileutil.SafeWrite(target, func(w io.Writer) error {
		_, err := io.WriteString(w, "new")
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.NoFileExists(t, target+".tmp")
}

func TestSafeWriteFailureKeepsTarget(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "out.yml")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o644))
	boom := errors.New("boom")

	err := fileutil.SafeWrite(target, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	require.ErrorIs(t, err, boom)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
	assert.NoFileExists(t, target+".tmp")
}

func TestDelete(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	require.NoError(t, fileutil.Delete(file))
	require.NoError(t, fileutil.Delete(filepath.Join(dir, "a")))
	require.NoError(t, fileutil.Delete(filepath.Join(dir, "missing")))
	assert.NoFileExists(t, file)
	assert.NoDirExists(t, nested)
}

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "x", "y")
	require.NoError(t, fileutil.EnsureDir(dir))
	require.NoError(t, fileutil.EnsureDir(dir))
	assert.DirExists(t, dir)

	occupied := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(occupied, nil, 0o644))
	assert.ErrorIs(t, fileutil.EnsureDir(occupied), domain.ErrDirectoryOccupied)
}

func TestLFRead(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "crlf.txt")
	require.NoError(t, os.WriteFile(target, []byte("a\r\nb\rc\n"), 0o644))

	text, err := fileutil.LFRead(target)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", text)

	fsys := fstest.MapFS{"lang/x.txt": {Data: []byte("1\r\n2")}}
	text, err = fileutil.LFReadFS(fsys, "lang/x.txt")
	require.NoError(t, err)
	assert.Equal(t, "1\n2", text)
}

func TestListBundled(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"lang/en_us.yml":     {},
		"lang/zh_cn.yml":     {},
		"lang/extra/ja.json": {},
		"other.txt":          {},
	}

	names, err := fileutil.ListBundled(fsys, "/lang/")
	require.NoError(t, err)
	assert.Equal(t, []string{"en_us.yml", "zh_cn.yml"}, names)

	_, err = fileutil.ListBundled(fsys, "missing")
	assert.Error(t, err)
}
