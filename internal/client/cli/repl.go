package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/barbelltracker/internal/client/controller"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	state() controller.State
	Upload(ctx context.Context) error
	SaveToLibrary(ctx context.Context) error
	SaveToGallery(ctx context.Context) error
	Discard(ctx context.Context) error
	List(ctx context.Context) error
	Play(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Backup(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the tracker CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, on context cancellation, or when the user
// types "exit" or "quit".
//
// Prompt & Commands
//
// promptFn renders the prompt with the current status (from statusFn).
// Commands:
//
//	Any state:
//	  - help            show the commands offered in the current state
//	  - (l)ist          list saved videos
//	  - play <id>       open a saved video
//	  - delete <id>     remove a saved video (asks for confirmation)
//	  - ping            check the processing server
//	  - backup          upload unsynced library videos to the bucket
//	  - exit | quit     leave the program
//
//	Idle:
//	  - upload          pick a video and send it for processing
//
//	Reviewing a video:
//	  - save            keep a freshly processed video in the library
//	  - gallery         export the video to the gallery album
//	  - discard         drop the video
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, promptFn func(string)) {
	for {
		if ctx.Err() != nil {
			return
		}
		promptFn(statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText(a.state()))

		case "upload":
			_ = a.Upload(ctx)

		case "save":
			_ = a.SaveToLibrary(ctx)

		case "gallery":
			_ = a.SaveToGallery(ctx)

		case "discard":
			_ = a.Discard(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "play":
			if len(args) == 0 {
				printlnFn("Usage: play <id>")
				continue
			}
			_ = a.Play(ctx, args[0])

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "ping":
			_ = a.Ping(ctx)

		case "backup":
			_ = a.Backup(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func helpText(s controller.State) string {
	anywhere := "(l)ist, play <id>, delete <id>, ping, backup, exit"
	switch st := s.(type) {
	case controller.Ready:
		if st.FromLibrary {
			return "Available commands: gallery, discard, " + anywhere
		}
		return "Available commands: save, gallery, discard, " + anywhere
	default:
		return "Available commands: upload, " + anywhere
	}
}
