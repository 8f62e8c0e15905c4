package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/barbelltracker/internal/client/client"
	"github.com/dmitrijs2005/barbelltracker/internal/client/cloud"
	"github.com/dmitrijs2005/barbelltracker/internal/client/config"
	"github.com/dmitrijs2005/barbelltracker/internal/client/controller"
	"github.com/dmitrijs2005/barbelltracker/internal/client/gallery"
	"github.com/dmitrijs2005/barbelltracker/internal/client/media"
	"github.com/dmitrijs2005/barbelltracker/internal/client/services"
	"github.com/dmitrijs2005/barbelltracker/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config *config.Config
	db     *sql.DB
	api    client.Client
	ctrl   *controller.Controller
	logger logging.Logger

	reader *bufio.Reader
	out    io.Writer
	quiet  bool
}

// NewApp wires the tracker from cfg, reading commands from stdin.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel)
	quiet := !isTerminal(int(os.Stdin.Fd()))
	return newApp(ctx, c, os.Stdin, os.Stdout, logger, quiet)
}

func newApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer, logger logging.Logger, quiet bool) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	api := client.NewHTTPClient(c.ServerBaseURL, c.VideoDir,
		client.WithTimeout(c.ProcessTimeout),
		client.WithRetry(c.MaxAttempts, c.RetryBackoff),
		client.WithLogger(logger.With("component", "api")),
	)

	var bucket cloud.Bucket
	if c.S3Bucket != "" {
		b, err := cloud.NewS3Bucket(ctx, cloud.Config{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		})
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		bucket = b
	}

	var gal gallery.Gallery
	switch c.GalleryBackend {
	case config.GalleryS3:
		if bucket == nil {
			_ = db.Close()
			return nil, fmt.Errorf("gallery backend %q needs a bucket", c.GalleryBackend)
		}
		gal = gallery.NewS3(bucket, c.AlbumName)
	default:
		gal = gallery.NewDir(c.GalleryDir, c.AlbumName)
	}

	a := &App{
		config: c,
		db:     db,
		api:    api,
		logger: logger,
		reader: bufio.NewReader(in),
		out:    out,
		quiet:  quiet,
	}

	library := services.NewLibraryService(db, logger.With("component", "library"))
	opts := []controller.Option{
		controller.WithLogger(logger.With("component", "controller")),
		controller.WithNotifier(controller.NotifierFunc(a.notify)),
		controller.WithObserver(a.onStateChange),
	}
	if bucket != nil {
		backup := services.NewBackupService(bucket, library, c.BackupParallelism, logger.With("component", "backup"))
		opts = append(opts, controller.WithBackup(backup))
	}

	a.ctrl = controller.New(ctx, media.NewFilePicker(a.promptPath), api, gal, library, opts...)
	return a, nil
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Welcome to Barbell Tracker CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader, a.prompt)
}

func (a *App) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn(context.Background(), "close database", "error", err)
	}
}

func (a *App) prompt(s string) {
	if a.quiet {
		return
	}
	fmt.Fprintf(a.out, "tracker %s> ", s)
}

func (a *App) notify(_ context.Context, title, message string) {
	printlnFn(fmt.Sprintf("[%s] %s", title, message))
}

func (a *App) onStateChange(s controller.State) {
	switch st := s.(type) {
	case controller.Processing:
		printlnFn("Processing video, please wait...")
	case controller.Ready:
		if st.FromLibrary {
			printlnFn("Playing", st.File.Path)
		} else {
			printlnFn("Processed video ready:", st.File.Path)
		}
	}
}

func (a *App) promptPath(context.Context) (string, error) {
	w := a.out
	if a.quiet {
		w = io.Discard
	}
	return GetSimpleText(a.reader, "Enter path of the video to upload (empty to cancel)", w)
}

func (a *App) status() string {
	s := a.ctrl.State().Name()
	if r, ok := a.ctrl.State().(controller.Ready); ok && r.FromLibrary {
		s += " library:" + r.RecordID
	}
	return fmt.Sprintf("(%s, %d saved)", s, len(a.ctrl.Library()))
}
