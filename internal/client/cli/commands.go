package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/barbelltracker/internal/client/controller"
	"github.com/dmitrijs2005/barbelltracker/internal/common"
)

func (a *App) state() controller.State { return a.ctrl.State() }

func (a *App) Upload(ctx context.Context) error {
	err := a.ctrl.Upload(ctx)
	if err == nil && isIdle(a.ctrl.State()) {
		printlnFn("Upload cancelled")
	}
	return a.explain(err)
}

func (a *App) SaveToLibrary(ctx context.Context) error {
	err := a.ctrl.SaveToLibrary(ctx)
	if errors.Is(err, controller.ErrInvalidTransition) {
		return err
	}
	return a.explain(err)
}

func (a *App) SaveToGallery(ctx context.Context) error {
	return a.explain(a.ctrl.SaveToGallery(ctx))
}

func (a *App) Discard(context.Context) error {
	err := a.ctrl.Discard()
	if err == nil {
		printlnFn("Video discarded")
	}
	return a.explain(err)
}

func (a *App) List(context.Context) error {
	lib := a.ctrl.Library()
	if len(lib) == 0 {
		printlnFn("No saved videos yet")
		return nil
	}
	for _, v := range lib {
		synced := ""
		if v.CloudSynced {
			synced = " (backed up)"
		}
		printlnFn(fmt.Sprintf("%s  %s  %s  %s%s", v.ID, v.Title, v.Date, v.LocalURI, synced))
	}
	return nil
}

func (a *App) Play(_ context.Context, id string) error {
	return a.explain(a.ctrl.PlayFromLibrary(id))
}

func (a *App) Delete(ctx context.Context, id string) error {
	if !a.ctrl.Library().Contains(id) {
		return a.explain(fmt.Errorf("video %s: %w", id, common.ErrNotFound))
	}

	w := a.out
	if a.quiet {
		w = io.Discard
	}
	ok, err := Confirm(a.reader, "Are you sure you want to remove this video from your library?", w)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Delete cancelled")
		return nil
	}

	err = a.ctrl.DeleteFromLibrary(ctx, id)
	if err == nil {
		printlnFn("Deleted", id)
	}
	return a.explain(err)
}

func (a *App) Ping(ctx context.Context) error {
	msg, err := a.api.Ping(ctx)
	if err != nil {
		a.logger.Warn(ctx, "connection test failed", "error", err)
		a.notify(ctx, "Connection Failed", "Cannot reach "+a.config.ServerBaseURL)
		return err
	}
	a.notify(ctx, "Success!", "Connected: "+msg)
	return nil
}

func (a *App) Backup(ctx context.Context) error {
	_, err := a.ctrl.Backup(ctx)
	return a.explain(err)
}

// explain prints errors the controller does not report itself.
func (a *App) explain(err error) error {
	switch {
	case err == nil:
	case errors.Is(err, controller.ErrInvalidTransition),
		errors.Is(err, controller.ErrBusy),
		errors.Is(err, controller.ErrAlreadyInLibrary),
		errors.Is(err, controller.ErrBackupDisabled),
		errors.Is(err, common.ErrNotFound):
		printlnFn("Error:", err)
	}
	return err
}

func isIdle(s controller.State) bool {
	_, ok := s.(controller.Idle)
	return ok
}
