package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/barbelltracker/internal/flagx"
)

var knownFlags = []string{
	"-a", "-d", "-o", "-t", "-r", "-k", "-g", "-m",
	"-b", "-n", "-e", "-u", "-p", "-j", "-l",
}

// parseFlags overrides cfg with short command-line flags. Only the flags
// listed in knownFlags are looked at, so -c/-config never collide.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("tracker", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the processing server")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local library database")
	fs.StringVar(&cfg.VideoDir, "o", cfg.VideoDir, "directory for processed videos")
	timeout := fs.Int("t", int(cfg.ProcessTimeout.Seconds()), "processing timeout in seconds (0 disables)")
	fs.IntVar(&cfg.MaxAttempts, "r", cfg.MaxAttempts, "attempts per processing request")

	fs.StringVar(&cfg.GalleryBackend, "k", cfg.GalleryBackend, "gallery backend: dir or s3")
	fs.StringVar(&cfg.GalleryDir, "g", cfg.GalleryDir, "root directory of the dir gallery")
	fs.StringVar(&cfg.AlbumName, "m", cfg.AlbumName, "gallery album name")

	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Region, "n", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 endpoint URL (MinIO)")
	fs.StringVar(&cfg.S3AccessKey, "u", cfg.S3AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3SecretKey, "p", cfg.S3SecretKey, "S3 secret key")

	fs.IntVar(&cfg.BackupParallelism, "j", cfg.BackupParallelism, "concurrent backup uploads")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(flagx.Pick(args, knownFlags...)); err != nil {
		return err
	}

	cfg.ProcessTimeout = time.Duration(*timeout) * time.Second
	return nil
}
