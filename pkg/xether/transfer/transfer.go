// Package transfer moves file content to and from object storage through
// pre-signed URLs. Requests carry no backend credentials; the URL itself
// authorizes them.
package transfer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"slices"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ProgressFunc receives the bytes moved so far and the expected total, which
// is -1 when unknown.
type ProgressFunc func(transferred, total int64)

type StorageError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StorageError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("storage %s failed (%d)", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("storage %s failed (%d): %s", e.Op, e.StatusCode, e.Body)
}

type contentLengthKey struct{}

type Client struct {
	http *resty.Client
}

type Option func(*Client)

// WithTLSConfig sets the TLS settings used towards storage endpoints. A nil
// config keeps the defaults.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(c *Client) {
		if cfg != nil {
			c.http.SetTLSClientConfig(cfg)
		}
	}
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.http.SetLogger(log)
		}
	}
}

func New(opts ...Option) *Client {
	rc := resty.New().
		SetLogger(zap.NewNop().Sugar()).
		SetPreRequestHook(func(_ *resty.Client, req *http.Request) error {
			// Stream the body with an explicit length; storage backends
			// reject chunked uploads.
			if n, ok := req.Context().Value(contentLengthKey{}).(int64); ok && n >= 0 {
				req.ContentLength = n
			}
			return nil
		})
	c := &Client{http: rc}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Upload PUTs size bytes from body to a pre-signed URL. Only 200 and 201 are
// accepted as success.
func (c *Client) Upload(ctx context.Context, url string, body io.Reader, size int64, contentType string, progress ProgressFunc) error {
	if url == "" {
		return errors.New("upload URL is empty")
	}
	reader := &progressReader{r: body, total: size, fn: progress}
	req := c.http.R().
		SetContext(context.WithValue(ctx, contentLengthKey{}, size)).
		SetBody(reader)
	if contentType != "" {
		req.SetHeader("Content-Type", contentType)
	}
	resp, err := req.Put(url)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	if !slices.Contains([]int{http.StatusOK, http.StatusCreated}, resp.StatusCode()) {
		return &StorageError{Op: "upload", StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}

// Download streams a pre-signed URL into w and returns the bytes written.
// Anything but 200 is a StorageError.
func (c *Client) Download(ctx context.Context, url string, w io.Writer, progress ProgressFunc) (int64, error) {
	if url == "" {
		return 0, errors.New("download URL is empty")
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return 0, fmt.Errorf("download failed: %w", err)
	}
	body := resp.RawBody()
	defer func() {
		_ = body.Close()
	}()
	if resp.StatusCode() != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(body, 4096))
		return 0, &StorageError{Op: "download", StatusCode: resp.StatusCode(), Body: string(snippet)}
	}
	total := int64(-1)
	if resp.RawResponse != nil && resp.RawResponse.ContentLength >= 0 {
		total = resp.RawResponse.ContentLength
	}
	n, err := io.Copy(w, &progressReader{r: body, total: total, fn: progress})
	if err != nil {
		return n, fmt.Errorf("download interrupted after %d bytes: %w", n, err)
	}
	return n, nil
}

// UploadFile uploads the file at path.
func (c *Client) UploadFile(ctx context.Context, url, path, contentType string, progress ProgressFunc) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	return c.Upload(ctx, url, f, info.Size(), contentType, progress)
}

// DownloadFile writes the content at url to dest. A partially written file
// is removed on failure.
func (c *Client) DownloadFile(ctx context.Context, url, dest string, progress ProgressFunc) (int64, error) {
	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, err
	}
	n, err := c.Download(ctx, url, f, progress)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dest)
		return n, err
	}
	return n, nil
}

type progressReader struct {
	r     io.Reader
	n     int64
	total int64
	fn    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.n += int64(n)
		if p.fn != nil {
			p.fn(p.n, p.total)
		}
	}
	return n, err
}
