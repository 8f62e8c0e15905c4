package gallery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/dmitrijs2005/barbelltracker/internal/client/models"
	"github.com/dmitrijs2005/barbelltracker/internal/common"
	"github.com/dmitrijs2005/barbelltracker/internal/filex"
)

// Dir keeps albums as directories under a root folder.
type Dir struct {
	root  string
	album string
}

func NewDir(root, album string) *Dir {
	return &Dir{root: root, album: albumOrDefault(album)}
}

func (d *Dir) Album() string { return d.album }

// AlbumPath returns the directory that receives saved videos.
func (d *Dir) AlbumPath() string {
	return filepath.Join(d.root, d.album)
}

// Save copies f into the album, creating it on first use. Existing files
// with the same name are replaced.
func (d *Dir) Save(ctx context.Context, f models.LocalFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir, err := filex.EnsureDir(d.AlbumPath())
	if err != nil {
		return d.wrap(err)
	}

	if err := filex.CopyFileAtomic(filepath.Join(dir, f.Name()), f.Path); err != nil {
		return d.wrap(err)
	}
	return nil
}

func (d *Dir) wrap(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: album %s: %v", common.ErrPermissionDenied, d.AlbumPath(), err)
	}
	return &GalleryWriteError{Album: d.album, Err: err}
}
