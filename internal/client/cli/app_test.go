package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/barbelltracker/internal/client/config"
	"github.com/dmitrijs2005/barbelltracker/internal/client/controller"
	"github.com/dmitrijs2005/barbelltracker/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func processingAPI(t *testing.T) *httptest.Server {
	t.Helper()
	var ts *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"message":"Barbell tracker API is running"}`)
	})
	mux.HandleFunc("/process", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		_, _ = io.WriteString(w, `{"success":true,"download_url":"`+ts.URL+`/out/result.mp4"}`)
	})
	mux.HandleFunc("/out/result.mp4", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "annotated")
	})
	ts = httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func testConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ServerBaseURL = serverURL
	cfg.DatabasePath = filepath.Join(dir, "library.db")
	cfg.VideoDir = filepath.Join(dir, "videos")
	cfg.GalleryDir = filepath.Join(dir, "gallery")
	return cfg
}

func sourceVideo(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "squat.mp4")
	require.NoError(t, os.WriteFile(p, []byte("raw"), 0o600))
	return p
}

func runApp(t *testing.T, cfg *config.Config, lines ...string) string {
	t.Helper()
	out := capturePrintln(t)

	var prompts bytes.Buffer
	a, err := newApp(context.Background(), cfg, strings.NewReader(strings.Join(lines, "\n")+"\n"), &prompts, logging.Discard(), true)
	require.NoError(t, err)
	a.Run(context.Background())
	assert.Empty(t, prompts.String(), "quiet mode prints no prompts")
	return out.String()
}

func TestApp_UploadSaveList(t *testing.T) {
	ts := processingAPI(t)
	cfg := testConfig(t, ts.URL)

	out := runApp(t, cfg, "upload", sourceVideo(t), "save", "list", "exit")

	assert.Contains(t, out, "Processing video, please wait...")
	assert.Contains(t, out, "Processed video ready:")
	assert.Contains(t, out, "[Saved!] Video saved to your library")
	assert.Contains(t, out, "Workout ")

	entries, err := os.ReadDir(cfg.VideoDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "processed_"))

	// The library survives a restart.
	out = runApp(t, cfg, "list", "exit")
	assert.Contains(t, out, filepath.Join(cfg.VideoDir, entries[0].Name()))
}

func TestApp_UploadCancelled(t *testing.T) {
	cfg := testConfig(t, processingAPI(t).URL)

	out := runApp(t, cfg, "upload", "", "list", "exit")
	assert.Contains(t, out, "Upload cancelled")
	assert.Contains(t, out, "No saved videos yet")
}

func TestApp_ProcessFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed", http.StatusInternalServerError)
	}))
	defer ts.Close()
	cfg := testConfig(t, ts.URL)

	out := runApp(t, cfg, "upload", sourceVideo(t), "save", "exit")
	assert.Contains(t, out, "[Error] Failed to process video: Server error 500")
	assert.Contains(t, out, "[Error] No processed video to save")
}

func TestApp_GalleryAndDiscard(t *testing.T) {
	cfg := testConfig(t, processingAPI(t).URL)
	src := sourceVideo(t)

	out := runApp(t, cfg, "upload", src, "gallery", "upload", src, "discard", "discard", "exit")
	assert.Contains(t, out, `[Saved!] Video saved to your photo library in "Barbell Tracker" album`)
	assert.Contains(t, out, "Video discarded")
	assert.Contains(t, out, "Error: discard: not allowed while idle")

	albums, err := os.ReadDir(filepath.Join(cfg.GalleryDir, "Barbell Tracker"))
	require.NoError(t, err)
	assert.Len(t, albums, 1)
}

func TestApp_PlayDelete(t *testing.T) {
	cfg := testConfig(t, processingAPI(t).URL)
	runApp(t, cfg, "upload", sourceVideo(t), "save", "exit")

	a, err := newApp(context.Background(), cfg, strings.NewReader(""), io.Discard, logging.Discard(), true)
	require.NoError(t, err)
	lib := a.ctrl.Library()
	a.Close()
	require.Len(t, lib, 1)
	id := lib[0].ID

	out := runApp(t, cfg,
		"play "+id,
		"save",
		"delete "+id, "n",
		"delete "+id, "y",
		"delete "+id,
		"list",
		"exit",
	)
	assert.Contains(t, out, "Playing")
	assert.Contains(t, out, "Error: video is already in the library")
	assert.Contains(t, out, "Delete cancelled")
	assert.Contains(t, out, "Deleted "+id)
	assert.Contains(t, out, "not found")
	assert.Contains(t, out, "No saved videos yet")
}

func TestApp_Ping(t *testing.T) {
	cfg := testConfig(t, processingAPI(t).URL)
	out := runApp(t, cfg, "ping", "exit")
	assert.Contains(t, out, "[Success!] Connected: Barbell tracker API is running")

	down := httptest.NewServer(http.NotFoundHandler())
	url := down.URL
	down.Close()

	cfg = testConfig(t, url)
	out = runApp(t, cfg, "ping", "exit")
	assert.Contains(t, out, "[Connection Failed] Cannot reach "+url)
}

func TestApp_BackupDisabledWithoutBucket(t *testing.T) {
	cfg := testConfig(t, processingAPI(t).URL)
	out := runApp(t, cfg, "backup", "exit")
	assert.Contains(t, out, controller.ErrBackupDisabled.Error())
}

func TestApp_Status(t *testing.T) {
	cfg := testConfig(t, processingAPI(t).URL)
	a, err := newApp(context.Background(), cfg, strings.NewReader(""), io.Discard, logging.Discard(), true)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "(idle, 0 saved)", a.status())
}

func TestApp_PromptsWhenInteractive(t *testing.T) {
	capturePrintln(t)
	cfg := testConfig(t, processingAPI(t).URL)

	var prompts bytes.Buffer
	a, err := newApp(context.Background(), cfg, strings.NewReader("exit\n"), &prompts, logging.Discard(), false)
	require.NoError(t, err)
	a.Run(context.Background())

	assert.Equal(t, "tracker (idle, 0 saved)> ", prompts.String())
}

func TestNewApp_BadDatabasePath(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.DatabasePath = filepath.Join(t.TempDir(), "missing", "dir", "library.db")

	_, err := newApp(context.Background(), cfg, strings.NewReader(""), io.Discard, logging.Discard(), true)
	require.Error(t, err)
}
