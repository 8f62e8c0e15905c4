// Package config loads runtime configuration for the tracker CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the processing server
//	-d string   path of the local library database
//	-o string   directory for processed videos
//	-t int      processing timeout in seconds, 0 disables it
//	-r int      attempts per processing request
//	-k string   gallery backend, "dir" or "s3"
//	-g string   root directory of the dir gallery
//	-m string   gallery album name
//	-b string   S3 bucket (gallery "s3" backend and backups)
//	-n string   S3 region
//	-e string   S3 endpoint URL, e.g. a local MinIO
//	-u string   S3 access key
//	-p string   S3 secret key
//	-j int      concurrent backup uploads
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "10m" or
// integer nanoseconds:
//
//	{
//	  "server_base_url": "http://192.168.1.20:8000",
//	  "video_dir": "videos",
//	  "process_timeout": "10m",
//	  "max_attempts": 3,
//	  "retry_backoff": "2s",
//	  "gallery_backend": "s3",
//	  "album_name": "Barbell Tracker",
//	  "s3_bucket": "lifts",
//	  "s3_base_endpoint": "http://127.0.0.1:9000"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values. S3 credentials left empty fall
// back to the default AWS credential chain.
package config
