// Package common defines sentinel errors shared by several client layers.
// Match them with errors.Is.
package common

import "errors"

var (
	// ErrPermissionDenied means the OS refused access to a video file,
	// album directory or bucket.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound means a library record does not exist.
	ErrNotFound = errors.New("not found")
)
