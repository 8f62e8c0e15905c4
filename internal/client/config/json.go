package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/barbelltracker/internal/flagx"
	"github.com/dmitrijs2005/barbelltracker/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Durations
// are timex.Duration, so "10m" and integer nanoseconds both work.
type JSONConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	DatabasePath   string         `json:"database_path"`
	VideoDir       string         `json:"video_dir"`
	ProcessTimeout timex.Duration `json:"process_timeout"`
	MaxAttempts    int            `json:"max_attempts"`
	RetryBackoff   timex.Duration `json:"retry_backoff"`

	GalleryBackend string `json:"gallery_backend"`
	GalleryDir     string `json:"gallery_dir"`
	AlbumName      string `json:"album_name"`

	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
	S3AccessKey    string `json:"s3_access_key"`
	S3SecretKey    string `json:"s3_secret_key"`

	BackupParallelism int    `json:"backup_parallelism"`
	LogLevel          string `json:"log_level"`
}

// parseJSON overlays cfg with the JSON file named by -c or -config. Keys
// missing from the file keep their current values.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	jc := toJSON(cfg)
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	fromJSON(cfg, jc)
	return nil
}

func toJSON(c *Config) JSONConfig {
	return JSONConfig{
		ServerBaseURL:     c.ServerBaseURL,
		DatabasePath:      c.DatabasePath,
		VideoDir:          c.VideoDir,
		ProcessTimeout:    timex.Duration{Duration: c.ProcessTimeout},
		MaxAttempts:       c.MaxAttempts,
		RetryBackoff:      timex.Duration{Duration: c.RetryBackoff},
		GalleryBackend:    c.GalleryBackend,
		GalleryDir:        c.GalleryDir,
		AlbumName:         c.AlbumName,
		S3Bucket:          c.S3Bucket,
		S3Region:          c.S3Region,
		S3BaseEndpoint:    c.S3BaseEndpoint,
		S3AccessKey:       c.S3AccessKey,
		S3SecretKey:       c.S3SecretKey,
		BackupParallelism: c.BackupParallelism,
		LogLevel:          c.LogLevel,
	}
}

func fromJSON(c *Config, jc JSONConfig) {
	c.ServerBaseURL = jc.ServerBaseURL
	c.DatabasePath = jc.DatabasePath
	c.VideoDir = jc.VideoDir
	c.ProcessTimeout = jc.ProcessTimeout.Duration
	c.MaxAttempts = jc.MaxAttempts
	c.RetryBackoff = jc.RetryBackoff.Duration
	c.GalleryBackend = jc.GalleryBackend
	c.GalleryDir = jc.GalleryDir
	c.AlbumName = jc.AlbumName
	c.S3Bucket = jc.S3Bucket
	c.S3Region = jc.S3Region
	c.S3BaseEndpoint = jc.S3BaseEndpoint
	c.S3AccessKey = jc.S3AccessKey
	c.S3SecretKey = jc.S3SecretKey
	c.BackupParallelism = jc.BackupParallelism
	c.LogLevel = jc.LogLevel
}
