package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/barbelltracker/internal/client/gallery"
)

// Gallery backends.
const (
	GalleryDir = "dir"
	GalleryS3  = "s3"
)

// Config holds runtime settings for the tracker CLI.
//
// Durations are time.Duration values; the -t flag takes whole seconds.
type Config struct {
	ServerBaseURL  string
	DatabasePath   string
	VideoDir       string
	ProcessTimeout time.Duration
	MaxAttempts    int
	RetryBackoff   time.Duration

	GalleryBackend string
	GalleryDir     string
	AlbumName      string

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string

	BackupParallelism int
	LogLevel          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000"
	c.DatabasePath = "library.db"
	c.VideoDir = "videos"
	c.ProcessTimeout = 10 * time.Minute
	c.MaxAttempts = 1
	c.RetryBackoff = time.Second

	c.GalleryBackend = GalleryDir
	c.GalleryDir = "gallery"
	c.AlbumName = gallery.DefaultAlbum

	c.S3Region = "us-east-1"

	c.BackupParallelism = 4
	c.LogLevel = "info"
}

// Validate reports settings the client cannot run with.
func (c *Config) Validate() error {
	switch c.GalleryBackend {
	case GalleryDir:
	case GalleryS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("gallery backend %q needs a bucket (-b)", c.GalleryBackend)
		}
	default:
		return fmt.Errorf("unknown gallery backend %q", c.GalleryBackend)
	}
	if c.ServerBaseURL == "" {
		return fmt.Errorf("server base url is empty")
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", c.MaxAttempts)
	}
	if c.ProcessTimeout < 0 {
		return fmt.Errorf("process timeout must not be negative")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
