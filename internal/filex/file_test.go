package filex

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesNestedDirectory(t *testing.T) {
	base := t.TempDir()
	want := filepath.Join(base, "videos", "processed")

	got, err := EnsureDir(want)
	require.NoError(t, err)
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "videos")

	first, err := EnsureDir(dir)
	require.NoError(t, err)
	second, err := EnsureDir(dir)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureDir_FailsOnRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "videos")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := EnsureDir(path)
	require.Error(t, err)
}

func TestWriteAtomic_WritesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_1.mp4")

	require.NoError(t, WriteAtomic(path, strings.NewReader("frames")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "frames", string(got))
}

type failingReader struct{ sent bool }

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.sent {
		r.sent = true
		return copy(p, "partial"), nil
	}
	return 0, errors.New("connection reset")
}

func TestWriteAtomic_LeavesNothingOnReadError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "processed_2.mp4")

	err := WriteAtomic(path, &failingReader{})
	require.ErrorContains(t, err, "connection reset")

	require.False(t, Exists(path))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "pending file must be cleaned up")
}

func TestWriteAtomic_KeepsOldContentOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	require.Error(t, WriteAtomic(path, &failingReader{}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "old", string(got))
}

func TestCopyFileAtomic(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mp4")
	dst := filepath.Join(dir, "dst.mp4")
	require.NoError(t, os.WriteFile(src, []byte("video"), 0o600))

	require.NoError(t, CopyFileAtomic(dst, src))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "video", string(got))
}

func TestCopyFileAtomic_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyFileAtomic(filepath.Join(dir, "dst.mp4"), filepath.Join(dir, "nope.mp4"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

