package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable          = errors.New("processing server unavailable")
	ErrServer               = errors.New("processing server error")
	ErrMalformedResponse    = errors.New("invalid JSON response from server")
	ErrInvalidResponseShape = errors.New("invalid response: missing success or download_url")
	ErrDownload             = errors.New("download of processed video failed")
	ErrLocalWrite           = errors.New("writing processed video failed")
)

// ServerError is a non-2xx reply to an upload or ping.
type ServerError struct {
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("Server error %d: %s", e.StatusCode, e.Body)
}

func (e *ServerError) Unwrap() error { return ErrServer }

// MalformedResponseError is a 2xx reply whose body is not JSON.
type MalformedResponseError struct {
	Body string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMalformedResponse.Error(), e.Body)
}

func (e *MalformedResponseError) Unwrap() error { return ErrMalformedResponse }

// DownloadError is a failed fetch of the download URL. StatusCode is zero
// when no response arrived; Err holds the transport or read failure.
type DownloadError struct {
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("download failed (status %d): %v", e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("download failed with status %d", e.StatusCode)
	default:
		return fmt.Sprintf("download failed: %v", e.Err)
	}
}

func (e *DownloadError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDownload}
	}
	return []error{ErrDownload, e.Err}
}

// LocalWriteError is a failure to store the processed video on disk.
type LocalWriteError struct {
	Path string
	Err  error
}

func (e *LocalWriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *LocalWriteError) Unwrap() []error { return []error{ErrLocalWrite, e.Err} }
