//go:build !windows

package filex

import (
	"fmt"
	"io"

	"github.com/google/renameio/v2"
)

// WriteAtomic streams r into path. The data goes to a pending temp file in
// the same directory, which is fsynced and renamed over path only after r
// is fully consumed; on any error the temp file is removed and path keeps
// its previous content (or stays absent).
func WriteAtomic(path string, r io.Reader) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o640))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer pending.Cleanup() //nolint:errcheck

	if _, err := io.Copy(pending, r); err != nil {
		return fmt.Errorf("write pending file: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
