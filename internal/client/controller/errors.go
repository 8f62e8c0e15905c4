package controller

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("operation not allowed in current state")
	ErrBusy              = errors.New("another operation is in progress")
	ErrAlreadyInLibrary  = errors.New("video is already in the library")
	ErrBackupDisabled    = errors.New("cloud backup is not configured")
)

// TransitionError names the rejected operation and the state it was
// attempted in.
type TransitionError struct {
	Op   string
	From State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: not allowed while %s", e.Op, e.From.Name())
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
