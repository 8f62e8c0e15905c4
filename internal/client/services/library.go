// Package services holds the client's persistence-facing services: the
// saved-video library and its cloud backup.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/barbelltracker/internal/client/models"
	"github.com/dmitrijs2005/barbelltracker/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/barbelltracker/internal/dbx"
	"github.com/dmitrijs2005/barbelltracker/internal/logging"
)

// LibraryKey is the metadata slot holding the JSON-encoded library.
const LibraryKey = "savedVideos"

// LibraryService reads and writes the saved-video library as one value.
// Add, Remove and MarkSynced never modify the collection passed in.
type LibraryService interface {
	Load(ctx context.Context) models.Library
	Save(ctx context.Context, lib models.Library) error
	Add(ctx context.Context, rec models.SavedVideo, lib models.Library) (models.Library, error)
	Remove(ctx context.Context, id string, lib models.Library) (models.Library, error)
	MarkSynced(ctx context.Context, ids []string, lib models.Library) (models.Library, error)
}

type libraryService struct {
	db     *sql.DB
	logger logging.Logger
}

func NewLibraryService(db *sql.DB, logger logging.Logger) LibraryService {
	return &libraryService{db: db, logger: logger}
}

// Load returns the stored library. A missing, unreadable or corrupt slot
// yields an empty library; the cause is only logged.
func (s *libraryService) Load(ctx context.Context) models.Library {
	raw, err := metadata.NewSQLiteRepository(s.db).Get(ctx, LibraryKey)
	if errors.Is(err, metadata.ErrNotFound) {
		return models.Library{}
	}
	if err != nil {
		s.logger.Warn(ctx, "failed to load saved videos", "key", LibraryKey, "error", err)
		return models.Library{}
	}

	var lib models.Library
	if err := json.Unmarshal(raw, &lib); err != nil {
		s.logger.Warn(ctx, "failed to load saved videos", "key", LibraryKey, "error", err)
		return models.Library{}
	}
	if lib == nil {
		lib = models.Library{}
	}
	return lib
}

func (s *libraryService) Save(ctx context.Context, lib models.Library) error {
	if lib == nil {
		lib = models.Library{}
	}
	raw, err := json.Marshal(lib)
	if err != nil {
		return &StorageError{Op: "encode library", Err: err}
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Set(ctx, LibraryKey, raw)
	})
	if err != nil {
		return &StorageError{Op: "save library", Err: err}
	}

	s.logger.Debug(ctx, "library saved", "videos", len(lib))
	return nil
}

func (s *libraryService) Add(ctx context.Context, rec models.SavedVideo, lib models.Library) (models.Library, error) {
	next := lib.Prepend(rec)
	if err := s.Save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *libraryService) Remove(ctx context.Context, id string, lib models.Library) (models.Library, error) {
	next := lib.Without(id)
	if err := s.Save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *libraryService) MarkSynced(ctx context.Context, ids []string, lib models.Library) (models.Library, error) {
	next := lib.Synced(ids...)
	if err := s.Save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}
