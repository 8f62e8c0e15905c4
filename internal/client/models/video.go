// Package models defines the client-side data types of the tracker: saved
// library records and references to local video files.
package models

import (
	"path/filepath"
	"strconv"
	"time"
)

// SavedVideo is one entry of the local library. Field names follow the
// persisted JSON layout.
type SavedVideo struct {
	// ID is derived from the creation time (Unix milliseconds) and unique
	// within a Library.
	ID string `json:"id"`

	// Title is generated at save time, e.g. "Workout Oct 19, 2026".
	Title string `json:"title"`

	// Date is the ISO-8601 creation timestamp in UTC (see DateLayout).
	Date string `json:"date"`

	// LocalURI is the path of the processed video on disk. It is not
	// checked for existence.
	LocalURI string `json:"localUri"`

	// CloudSynced is set once the video has been backed up to the bucket.
	CloudSynced bool `json:"cloudSynced,omitempty"`
}

// Library is the ordered collection of saved videos, newest first.
type Library []SavedVideo

// Find returns the record with the given id.
func (l Library) Find(id string) (SavedVideo, bool) {
	for _, v := range l {
		if v.ID == id {
			return v, true
		}
	}
	return SavedVideo{}, false
}

// Contains reports whether a record with id exists.
func (l Library) Contains(id string) bool {
	_, ok := l.Find(id)
	return ok
}

// Prepend returns a new Library with v in front. l is not modified.
func (l Library) Prepend(v SavedVideo) Library {
	out := make(Library, 0, len(l)+1)
	out = append(out, v)
	return append(out, l...)
}

// Without returns a new Library lacking the record with id. l is not
// modified.
func (l Library) Without(id string) Library {
	out := make(Library, 0, len(l))
	for _, v := range l {
		if v.ID != id {
			out = append(out, v)
		}
	}
	return out
}

// Pending returns the records not yet backed up.
func (l Library) Pending() Library {
	out := make(Library, 0, len(l))
	for _, v := range l {
		if !v.CloudSynced {
			out = append(out, v)
		}
	}
	return out
}

// Synced returns a copy of l with CloudSynced set on the given ids.
func (l Library) Synced(ids ...string) Library {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	out := l.Clone()
	for i := range out {
		if _, ok := set[out[i].ID]; ok {
			out[i].CloudSynced = true
		}
	}
	return out
}

// Clone returns a copy that shares no backing array with l.
func (l Library) Clone() Library {
	out := make(Library, len(l))
	copy(out, l)
	return out
}

// NewSavedVideo builds a record for the processed video at path, created at
// now. The id is the Unix millisecond timestamp, bumped until it does not
// collide with an existing record of existing.
func NewSavedVideo(path string, now time.Time, existing Library) SavedVideo {
	ms := now.UnixMilli()
	id := strconv.FormatInt(ms, 10)
	for existing.Contains(id) {
		ms++
		id = strconv.FormatInt(ms, 10)
	}

	return SavedVideo{
		ID:       id,
		Title:    "Workout " + now.Local().Format("Jan 2, 2006"),
		Date:     now.UTC().Format(DateLayout),
		LocalURI: path,
	}
}

// DateLayout is the ISO-8601 layout used for SavedVideo.Date.
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

// LocalFile references a video file on the local file system.
type LocalFile struct {
	Path string
}

// Name is the base name of the file.
func (f LocalFile) Name() string {
	return filepath.Base(f.Path)
}

func (f LocalFile) String() string {
	return f.Path
}
