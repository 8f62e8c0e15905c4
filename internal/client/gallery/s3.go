package gallery

import (
	"context"
	"path"

	"github.com/dmitrijs2005/barbelltracker/internal/client/cloud"
	"github.com/dmitrijs2005/barbelltracker/internal/client/models"
)

// S3 keeps an album as the key prefix "<album>/" in a bucket.
type S3 struct {
	bucket cloud.Bucket
	album  string
}

func NewS3(bucket cloud.Bucket, album string) *S3 {
	return &S3{bucket: bucket, album: albumOrDefault(album)}
}

func (s *S3) Album() string { return s.album }

// Key returns the object key f is stored under.
func (s *S3) Key(f models.LocalFile) string {
	return path.Join(s.album, f.Name())
}

func (s *S3) Save(ctx context.Context, f models.LocalFile) error {
	if err := s.bucket.PutFile(ctx, s.Key(f), f.Path); err != nil {
		return &GalleryWriteError{Album: s.album, Err: err}
	}
	return nil
}
