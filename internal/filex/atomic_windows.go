//go:build windows

package filex

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteAtomic streams r into a temp file next to path and renames it into
// place once r is fully consumed.
func WriteAtomic(path string, r io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("write pending file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close pending file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
