// Package cli provides the interactive barbell tracker command-line client.
//
// It wires configuration, the local library database, the processing API
// client, the gallery backend and an interactive REPL on top of the video
// lifecycle controller. Typical flow: upload a video, wait for processing,
// then save it to the library or the gallery, or discard it.
//
// Key features:
//   - upload / save / gallery / discard for the video under review
//   - list / play / delete for the saved library
//   - ping to check the processing server
//   - backup of library videos to an S3 bucket
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
