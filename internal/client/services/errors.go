package services

import (
	"errors"
	"fmt"
)

var ErrStorage = errors.New("failed to save video")

// StorageError is a failed write of the library slot.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }
