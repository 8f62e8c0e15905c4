package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/barbelltracker/internal/client/client"
	"github.com/dmitrijs2005/barbelltracker/internal/client/gallery"
	"github.com/dmitrijs2005/barbelltracker/internal/client/media"
	"github.com/dmitrijs2005/barbelltracker/internal/client/models"
	"github.com/dmitrijs2005/barbelltracker/internal/client/services"
	"github.com/dmitrijs2005/barbelltracker/internal/common"
	"github.com/dmitrijs2005/barbelltracker/internal/logging"
)

// Controller owns the current State and the in-memory library.
type Controller struct {
	picker   media.Picker
	client   client.Client
	gallery  gallery.Gallery
	library  services.LibraryService
	backup   services.BackupService
	notifier Notifier
	logger   logging.Logger
	now      func() time.Time

	observers []func(State)

	mu    sync.Mutex
	state State
	lib   models.Library
	busy  bool
}

type Option func(*Controller)

func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithObserver registers fn to be called on every state change, transient
// states included. fn runs on the goroutine of the operation.
func WithObserver(fn func(State)) Option {
	return func(c *Controller) { c.observers = append(c.observers, fn) }
}

// WithBackup enables Backup.
func WithBackup(b services.BackupService) Option {
	return func(c *Controller) { c.backup = b }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New builds a Controller in the Idle state with the library loaded from
// storage.
func New(ctx context.Context, picker media.Picker, proc client.Client, gal gallery.Gallery, lib services.LibraryService, opts ...Option) *Controller {
	c := &Controller{
		picker:   picker,
		client:   proc,
		gallery:  gal,
		library:  lib,
		notifier: nopNotifier{},
		logger:   logging.Discard(),
		now:      time.Now,
		state:    Idle{},
	}
	for _, o := range opts {
		o(c)
	}
	c.lib = lib.Load(ctx)
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Library returns a copy of the saved videos, newest first.
func (c *Controller) Library() models.Library {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lib.Clone()
}

// Busy reports whether an operation is running.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Upload asks the picker for a video and processes it. A cancelled pick
// leaves the controller Idle and returns nil.
func (c *Controller) Upload(ctx context.Context) error {
	if _, err := c.begin("upload", isIdle); err != nil {
		return err
	}
	defer c.end()

	f, err := c.picker.Pick(ctx)
	if err != nil {
		if errors.Is(err, common.ErrPermissionDenied) {
			c.notifier.Notify(ctx, "Permission needed", "Please grant photo library access to upload videos")
		} else {
			c.notifier.Notify(ctx, "Error", fmt.Sprintf("Failed to pick video: %v", err))
		}
		c.logger.Warn(ctx, "pick failed", "error", err)
		return fmt.Errorf("pick video: %w", err)
	}
	if f == nil {
		c.logger.Debug(ctx, "pick cancelled")
		return nil
	}

	c.set(Selected{File: *f})
	c.set(Processing{File: *f})

	out, err := c.client.Process(ctx, *f)
	if err != nil {
		c.notifier.Notify(ctx, "Error", fmt.Sprintf("Failed to process video: %v", err))
		c.set(Idle{})
		return fmt.Errorf("process video: %w", err)
	}

	c.set(Ready{File: out})
	return nil
}

// PlayFromLibrary opens the library record id for review.
func (c *Controller) PlayFromLibrary(id string) error {
	if _, err := c.begin("play", isIdleOrReady); err != nil {
		return err
	}
	defer c.end()

	rec, ok := c.Library().Find(id)
	if !ok {
		return fmt.Errorf("video %s: %w", id, common.ErrNotFound)
	}

	c.set(Ready{File: models.LocalFile{Path: rec.LocalURI}, FromLibrary: true, RecordID: rec.ID})
	return nil
}

// SaveToLibrary stores the freshly processed video in the library. On
// failure the video stays Ready.
func (c *Controller) SaveToLibrary(ctx context.Context) error {
	st, err := c.begin("save to library", isReady)
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			c.notifier.Notify(ctx, "Error", "No processed video to save")
		}
		return err
	}
	defer c.end()

	ready := st.(Ready)
	if ready.FromLibrary {
		return ErrAlreadyInLibrary
	}

	lib := c.Library()
	rec := models.NewSavedVideo(ready.File.Path, c.now(), lib)

	next, err := c.library.Add(ctx, rec, lib)
	if err != nil {
		c.notifier.Notify(ctx, "Error", "Failed to save video to library")
		c.logger.Error(ctx, "save to library failed", "error", err)
		return err
	}

	c.mu.Lock()
	c.lib = next
	c.mu.Unlock()

	c.notifier.Notify(ctx, "Saved!", "Video saved to your library")
	c.set(SavedToLibrary{Record: rec})
	c.set(Idle{})
	return nil
}

// SaveToGallery exports the video under review to the gallery album. On
// failure the video stays Ready.
func (c *Controller) SaveToGallery(ctx context.Context) error {
	st, err := c.begin("save to gallery", isReady)
	if err != nil {
		return err
	}
	defer c.end()

	ready := st.(Ready)
	if err := c.gallery.Save(ctx, ready.File); err != nil {
		if errors.Is(err, common.ErrPermissionDenied) {
			c.notifier.Notify(ctx, "Permission needed", "Please grant media library access to save videos")
		} else {
			c.notifier.Notify(ctx, "Error", "Failed to save video")
		}
		c.logger.Error(ctx, "save to gallery failed", "error", err)
		return err
	}

	c.notifier.Notify(ctx, "Saved!", fmt.Sprintf("Video saved to your photo library in %q album", c.gallery.Album()))
	c.set(SavedToGallery{File: ready.File})
	c.set(Idle{})
	return nil
}

// Discard drops the video under review without persisting anything.
func (c *Controller) Discard() error {
	if _, err := c.begin("discard", isReady); err != nil {
		return err
	}
	defer c.end()

	c.set(Discarded{})
	c.set(Idle{})
	return nil
}

// DeleteFromLibrary removes record id from the library. When that record is
// the one under review the controller returns to Idle.
func (c *Controller) DeleteFromLibrary(ctx context.Context, id string) error {
	st, err := c.begin("delete", isIdleOrReady)
	if err != nil {
		return err
	}
	defer c.end()

	lib := c.Library()
	if !lib.Contains(id) {
		return fmt.Errorf("video %s: %w", id, common.ErrNotFound)
	}

	next, err := c.library.Remove(ctx, id, lib)
	if err != nil {
		c.notifier.Notify(ctx, "Error", "Failed to delete video")
		c.logger.Error(ctx, "delete from library failed", "id", id, "error", err)
		return err
	}

	c.mu.Lock()
	c.lib = next
	c.mu.Unlock()

	if r, ok := st.(Ready); ok && r.FromLibrary && r.RecordID == id {
		c.set(Idle{})
	}
	return nil
}

// Backup uploads library videos that are not yet synced. It does not
// change the lifecycle state and returns the number of uploaded videos.
func (c *Controller) Backup(ctx context.Context) (int, error) {
	if c.backup == nil {
		return 0, ErrBackupDisabled
	}
	if _, err := c.begin("backup", func(State) bool { return true }); err != nil {
		return 0, err
	}
	defer c.end()

	next, n, err := c.backup.Backup(ctx, c.Library())

	c.mu.Lock()
	c.lib = next
	c.mu.Unlock()

	if err != nil {
		c.notifier.Notify(ctx, "Error", fmt.Sprintf("Backup incomplete: %d uploaded, %v", n, err))
		return n, err
	}
	c.notifier.Notify(ctx, "Backed up!", fmt.Sprintf("%d video(s) uploaded", n))
	return n, nil
}

// begin claims the controller for one operation if the current state
// satisfies allowed.
func (c *Controller) begin(op string, allowed func(State) bool) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return nil, ErrBusy
	}
	if !allowed(c.state) {
		return nil, &TransitionError{Op: op, From: c.state}
	}
	c.busy = true
	return c.state, nil
}

func (c *Controller) end() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

func (c *Controller) set(s State) {
	c.mu.Lock()
	prev := c.state
	c.state = s
	c.mu.Unlock()

	c.logger.Debug(context.Background(), "state changed", "from", prev.Name(), "to", s.Name())
	for _, fn := range c.observers {
		fn(s)
	}
}

func isIdle(s State) bool {
	_, ok := s.(Idle)
	return ok
}

func isReady(s State) bool {
	_, ok := s.(Ready)
	return ok
}

func isIdleOrReady(s State) bool {
	return isIdle(s) || isReady(s)
}
