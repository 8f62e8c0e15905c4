// Package media selects source videos from the local file system.
package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/barbelltracker/internal/client/models"
	"github.com/dmitrijs2005/barbelltracker/internal/common"
)

// ErrNotVideo means the chosen path is not a video file.
var ErrNotVideo = errors.New("not a video file")

// Picker lets the user choose a source video. A nil file with a nil error
// means the user cancelled.
type Picker interface {
	Pick(ctx context.Context) (*models.LocalFile, error)
}

// PromptFunc asks the user for a path. An empty answer cancels.
type PromptFunc func(ctx context.Context) (string, error)

var videoExts = map[string]struct{}{
	".mp4": {}, ".mov": {}, ".m4v": {}, ".avi": {},
	".mkv": {}, ".webm": {}, ".3gp": {}, ".mpeg": {}, ".mpg": {},
}

// IsVideo reports whether path has a known video extension.
func IsVideo(path string) bool {
	_, ok := videoExts[strings.ToLower(filepath.Ext(path))]
	return ok
}

type filePicker struct {
	prompt PromptFunc
}

// NewFilePicker returns a Picker that reads a path through prompt and
// checks that it names a readable video file.
func NewFilePicker(prompt PromptFunc) Picker {
	return &filePicker{prompt: prompt}
}

func (p *filePicker) Pick(ctx context.Context) (*models.LocalFile, error) {
	answer, err := p.prompt(ctx)
	if err != nil {
		return nil, err
	}

	path := strings.TrimSpace(answer)
	if path == "" {
		return nil, nil
	}
	if !IsVideo(path) {
		return nil, fmt.Errorf("%w: %s", ErrNotVideo, path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(abs)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %s", common.ErrPermissionDenied, abs)
		}
		return nil, fmt.Errorf("open %s: %w", abs, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", abs, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotVideo, abs)
	}

	return &models.LocalFile{Path: abs}, nil
}
