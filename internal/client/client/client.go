package client

import (
	"context"

	"github.com/dmitrijs2005/barbelltracker/internal/client/models"
)

// Client is the contract for talking to the remote video processing API.
type Client interface {
	// Ping checks that the server answers and returns its greeting.
	Ping(ctx context.Context) (string, error)

	// Process uploads in, waits for the server to annotate it and returns
	// the processed copy stored in the local video directory. in is never
	// modified.
	Process(ctx context.Context, in models.LocalFile) (models.LocalFile, error)
}
