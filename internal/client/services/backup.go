package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/barbelltracker/internal/client/cloud"
	"github.com/dmitrijs2005/barbelltracker/internal/client/models"
	"github.com/dmitrijs2005/barbelltracker/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// BackupService copies library videos that are not yet synced to the cloud
// bucket and records which ones made it.
type BackupService interface {
	// Backup uploads every pending record of lib and returns the updated
	// library together with the number of uploaded videos. Records uploaded
	// before a failure are still marked as synced.
	Backup(ctx context.Context, lib models.Library) (models.Library, int, error)
}

type backupService struct {
	bucket      cloud.Bucket
	library     LibraryService
	parallelism int
	logger      logging.Logger
	now         func() time.Time
}

func NewBackupService(bucket cloud.Bucket, library LibraryService, parallelism int, logger logging.Logger) BackupService {
	if parallelism < 1 {
		parallelism = 1
	}
	return &backupService{
		bucket:      bucket,
		library:     library,
		parallelism: parallelism,
		logger:      logger,
		now:         time.Now,
	}
}

// BackupKey returns a fresh object key for a video uploaded at t.
func BackupKey(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("library/%04d/%02d/%02d/%s.mp4", t.Year(), t.Month(), t.Day(), uuid.New())
}

func (s *backupService) Backup(ctx context.Context, lib models.Library) (models.Library, int, error) {
	pending := lib.Pending()
	if len(pending) == 0 {
		return lib, 0, nil
	}

	var (
		mu     sync.Mutex
		synced []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for _, rec := range pending {
		rec := rec
		g.Go(func() error {
			key := BackupKey(s.now())
			if err := s.bucket.PutFile(gctx, key, rec.LocalURI); err != nil {
				s.logger.Warn(gctx, "backup upload failed", "id", rec.ID, "error", err)
				return fmt.Errorf("back up %s: %w", rec.ID, err)
			}
			s.logger.Debug(gctx, "video backed up", "id", rec.ID, "key", key)

			mu.Lock()
			synced = append(synced, rec.ID)
			mu.Unlock()
			return nil
		})
	}
	uploadErr := g.Wait()

	if len(synced) == 0 {
		return lib, 0, uploadErr
	}

	next, err := s.library.MarkSynced(ctx, synced, lib)
	if err != nil {
		return lib, 0, errors.Join(uploadErr, err)
	}

	s.logger.Info(ctx, "backup finished", "uploaded", len(synced), "pending", len(pending)-len(synced))
	return next, len(synced), uploadErr
}
