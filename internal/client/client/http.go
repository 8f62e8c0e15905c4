package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/barbelltracker/internal/client/models"
	"github.com/dmitrijs2005/barbelltracker/internal/filex"
	"github.com/dmitrijs2005/barbelltracker/internal/logging"
	"github.com/dmitrijs2005/barbelltracker/internal/netx"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

const (
	uploadField       = "file"
	uploadFilename    = "video.mp4"
	uploadContentType = "video/mp4"

	defaultBackoff = time.Second
)

// processResponse is the reply of POST /process.
type processResponse struct {
	Success     bool   `json:"success"`
	DownloadURL string `json:"download_url"`
}

type pingResponse struct {
	Message string `json:"message"`
}

// HTTPClient implements Client over the processing server's HTTP API.
type HTTPClient struct {
	baseURL     string
	videoDir    string
	http        *http.Client
	timeout     time.Duration
	maxAttempts int
	backoff     time.Duration
	logger      logging.Logger
	now         func() time.Time
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTimeout bounds a whole Process call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) { h.timeout = d }
}

// WithRetry enables up to maxAttempts tries per Process call with
// exponential backoff starting at base.
func WithRetry(maxAttempts int, base time.Duration) Option {
	return func(h *HTTPClient) {
		h.maxAttempts = maxAttempts
		h.backoff = base
	}
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.logger = l }
}

// NewHTTPClient returns a client for the server at baseURL that stores
// processed videos in videoDir.
func NewHTTPClient(baseURL, videoDir string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		videoDir:    videoDir,
		http:        &http.Client{},
		maxAttempts: 1,
		backoff:     defaultBackoff,
		logger:      logging.Discard(),
		now:         time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	if c.maxAttempts < 1 {
		c.maxAttempts = 1
	}
	if c.backoff <= 0 {
		c.backoff = defaultBackoff
	}
	return c
}

func (c *HTTPClient) Ping(ctx context.Context) (string, error) {
	var resp pingResponse
	if err := netx.GetJSON(ctx, c.http, c.baseURL+"/", &resp); err != nil {
		var se *netx.StatusError
		if errors.As(err, &se) {
			return "", &ServerError{StatusCode: se.Code, Body: se.Body}
		}
		if errors.Is(err, netx.ErrDecode) {
			return "", &MalformedResponseError{Body: err.Error()}
		}
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return resp.Message, nil
}

func (c *HTTPClient) Process(ctx context.Context, in models.LocalFile) (models.LocalFile, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	log := c.logger.With("session", uuid.NewString(), "source", in.Path)

	var (
		out     models.LocalFile
		attempt int
	)
	b := retry.WithMaxRetries(uint64(c.maxAttempts-1), retry.NewExponential(c.backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		log.Debug(ctx, "uploading video", "attempt", attempt)

		res, err := c.processOnce(ctx, in)
		if err != nil {
			if attempt < c.maxAttempts && retryable(err) {
				log.Warn(ctx, "process attempt failed, retrying", "attempt", attempt, "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		log.Error(ctx, "process failed", "attempts", attempt, "error", err)
		return models.LocalFile{}, err
	}

	log.Info(ctx, "video processed", "path", out.Path, "attempts", attempt)
	return out, nil
}

func (c *HTTPClient) processOnce(ctx context.Context, in models.LocalFile) (models.LocalFile, error) {
	downloadURL, err := c.upload(ctx, in)
	if err != nil {
		return models.LocalFile{}, err
	}
	return c.download(ctx, downloadURL)
}

// upload posts the video and returns the download URL from the reply.
func (c *HTTPClient) upload(ctx context.Context, in models.LocalFile) (string, error) {
	f, err := os.Open(in.Path)
	if err != nil {
		return "", fmt.Errorf("open video: %w", err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, uploadField, uploadFilename))
		h.Set("Content-Type", uploadContentType)

		part, err := mw.CreatePart(h)
		if err == nil {
			_, err = io.Copy(part, f)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/process", pr)
	if err != nil {
		pr.Close()
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if !netx.IsSuccess(resp.StatusCode) {
		return "", &ServerError{StatusCode: resp.StatusCode, Body: netx.ReadErrorBody(resp.Body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read reply: %w", ErrUnavailable, err)
	}
	return parseProcessResponse(body)
}

func parseProcessResponse(body []byte) (string, error) {
	if !json.Valid(body) {
		return "", &MalformedResponseError{Body: string(body)}
	}

	var r processResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidResponseShape, err)
	}
	if !r.Success || r.DownloadURL == "" {
		return "", ErrInvalidResponseShape
	}
	return r.DownloadURL, nil
}

// download stores the processed video under a fresh name in videoDir.
func (c *HTTPClient) download(ctx context.Context, url string) (models.LocalFile, error) {
	body, err := netx.Open(ctx, c.http, url)
	if err != nil {
		var se *netx.StatusError
		if errors.As(err, &se) {
			return models.LocalFile{}, &DownloadError{StatusCode: se.Code}
		}
		return models.LocalFile{}, &DownloadError{Err: err}
	}
	defer body.Close()

	dir, err := filex.EnsureDir(c.videoDir)
	if err != nil {
		return models.LocalFile{}, &LocalWriteError{Path: c.videoDir, Err: err}
	}
	path := c.nextPath(dir)

	src := &trackingReader{r: body}
	if err := filex.WriteAtomic(path, src); err != nil {
		if src.err != nil {
			return models.LocalFile{}, &DownloadError{StatusCode: http.StatusOK, Err: src.err}
		}
		return models.LocalFile{}, &LocalWriteError{Path: path, Err: err}
	}
	return models.LocalFile{Path: path}, nil
}

// nextPath returns dir/processed_<unix-ms>.mp4, moving the timestamp
// forward while the name is taken.
func (c *HTTPClient) nextPath(dir string) string {
	ms := c.now().UnixMilli()
	for {
		p := filepath.Join(dir, fmt.Sprintf("processed_%d.mp4", ms))
		if !filex.Exists(p) {
			return p
		}
		ms++
	}
}

// trackingReader remembers the first non-EOF read error so network
// failures can be told apart from disk failures.
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF && t.err == nil {
		t.err = err
	}
	return n, err
}

// retryable reports whether err is a transport failure or a 5xx reply.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *ServerError
	if errors.As(err, &se) {
		return se.StatusCode >= 500
	}
	var de *DownloadError
	if errors.As(err, &de) {
		return de.StatusCode >= 500 || de.Err != nil
	}
	return errors.Is(err, ErrUnavailable)
}

var _ Client = (*HTTPClient)(nil)
