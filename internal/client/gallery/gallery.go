// Package gallery exports processed videos to an album outside the tracker
// library: a directory on disk or a key prefix in an S3 bucket.
package gallery

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/barbelltracker/internal/client/models"
)

// DefaultAlbum is the album name used when none is configured.
const DefaultAlbum = "Barbell Tracker"

var ErrGalleryWrite = errors.New("failed to save video to gallery")

// GalleryWriteError wraps the failure of a gallery export.
type GalleryWriteError struct {
	Album string
	Err   error
}

func (e *GalleryWriteError) Error() string {
	return fmt.Sprintf("save to album %q: %v", e.Album, e.Err)
}

func (e *GalleryWriteError) Unwrap() []error { return []error{ErrGalleryWrite, e.Err} }

// Gallery saves a copy of a local video into the user's album.
type Gallery interface {
	Save(ctx context.Context, f models.LocalFile) error
	Album() string
}

func albumOrDefault(name string) string {
	if name == "" {
		return DefaultAlbum
	}
	return name
}
