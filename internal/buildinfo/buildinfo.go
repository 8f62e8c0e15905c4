// Package buildinfo exposes link-time build metadata.
//
// Values are injected with -ldflags, e.g.:
//
//	go build -ldflags "-X github.com/dmitrijs2005/barbelltracker/internal/buildinfo.Version=v1.0.0" ./cmd/tracker
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

// PrintBuildData writes version, date and commit, one per line.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", Date)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
