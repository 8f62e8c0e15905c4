// Package client contains the client-side building blocks of the barbell
// tracker.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) for the remote
//     processing API: Ping and Process.
//  2. A concrete HTTP implementation (see HTTPClient) that uploads a video as
//     multipart form data, parses the JSON reply, downloads the processed
//     file and writes it atomically into the local video directory.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations),
//     wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Failures are reported as typed errors (ServerError, MalformedResponseError,
// DownloadError, LocalWriteError) that unwrap to sentinels callers can match
// with errors.Is: ErrUnavailable, ErrServer, ErrMalformedResponse,
// ErrInvalidResponseShape, ErrDownload, ErrLocalWrite.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation and timeouts.
package client
