package controller

import (
	"fmt"

	"github.com/dmitrijs2005/barbelltracker/internal/client/models"
)

// State is one of Idle, Selected, Processing, Ready, SavedToLibrary,
// SavedToGallery or Discarded. The last three are transient: observers see
// them right before the controller returns to Idle.
type State interface {
	Name() string
	isState()
}

type Idle struct{}

// Selected holds the source video chosen by the user.
type Selected struct {
	File models.LocalFile
}

// Processing holds the source video while the server works on it.
type Processing struct {
	File models.LocalFile
}

// Ready holds a video available for review. FromLibrary marks a video
// opened from the library; RecordID is then its library id.
type Ready struct {
	File        models.LocalFile
	FromLibrary bool
	RecordID    string
}

type SavedToLibrary struct {
	Record models.SavedVideo
}

type SavedToGallery struct {
	File models.LocalFile
}

type Discarded struct{}

func (Idle) Name() string           { return "idle" }
func (Selected) Name() string       { return "selected" }
func (Processing) Name() string     { return "processing" }
func (Ready) Name() string          { return "ready" }
func (SavedToLibrary) Name() string { return "saved-to-library" }
func (SavedToGallery) Name() string { return "saved-to-gallery" }
func (Discarded) Name() string      { return "discarded" }

func (Idle) isState()           {}
func (Selected) isState()       {}
func (Processing) isState()     {}
func (Ready) isState()          {}
func (SavedToLibrary) isState() {}
func (SavedToGallery) isState() {}
func (Discarded) isState()      {}

func (s Ready) String() string {
	if s.FromLibrary {
		return fmt.Sprintf("ready (library %s): %s", s.RecordID, s.File)
	}
	return fmt.Sprintf("ready: %s", s.File)
}

func (s Processing) String() string { return fmt.Sprintf("processing: %s", s.File) }
func (s Selected) String() string   { return fmt.Sprintf("selected: %s", s.File) }
