// Package imagehost wraps the third-party image hosting API. Uploads return
// a public link plus an opaque delete hash; deletions require that hash.
// Every call is a single attempt with a bounded timeout, and every failure
// surfaces as one of the sentinel errors below — transport faults never
// cross this boundary unwrapped.
package imagehost

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vskc23/user-profile-integration/internal/logger"
)

// Sentinel failures of the two remote operations. Callers match with
// errors.Is; the wrapped detail carries the underlying cause.
var (
	ErrUploadFailed   = errors.New("image upload failed")
	ErrDeletionFailed = errors.New("image deletion failed")
)

const defaultTimeout = 15 * time.Second

// Config carries the remote provider's credential and endpoints. Supplied
// from configuration at startup so providers can be swapped without a
// rebuild.
type Config struct {
	ClientID  string        // sent as "Authorization: Client-ID <id>"
	UploadURL string        // POST target for uploads
	DeleteURL string        // DELETE target; the delete hash is appended as a path segment
	Timeout   time.Duration // per-call HTTP timeout; defaultTimeout when zero
}

// UploadResult is the usable part of a successful upload response.
type UploadResult struct {
	Link       string
	DeleteHash string
}

// Client is a thin, retry-free wrapper over the remote host's HTTP API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *logger.Logger
}

func NewClient(cfg Config, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// hostResponse mirrors the remote API's envelope: a boolean success flag
// and, on upload, a nested object with the link and delete hash.
type hostResponse struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Data    struct {
		Link       string `json:"link"`
		DeleteHash string `json:"deletehash"`
	} `json:"data"`
}

// Upload sends the image bytes to the remote host and returns the public
// link and delete hash. The payload travels base64-encoded in a form body,
// per the provider's API. Any network error, non-success flag, or missing
// field yields ErrUploadFailed.
func (c *Client) Upload(ctx context.Context, data []byte) (*UploadResult, error) {
	form := url.Values{}
	form.Set("image", base64.StdEncoding.EncodeToString(data))
	form.Set("type", "base64")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.UploadURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.authorize(req)

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	var resp hostResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUploadFailed, err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("%w: host reported failure (status %d)", ErrUploadFailed, resp.Status)
	}
	if resp.Data.Link == "" || resp.Data.DeleteHash == "" {
		return nil, fmt.Errorf("%w: response missing link or deletehash", ErrUploadFailed)
	}

	if c.log != nil {
		c.log.Infow("image_upload_ok", "link", resp.Data.Link)
	}
	return &UploadResult{Link: resp.Data.Link, DeleteHash: resp.Data.DeleteHash}, nil
}

// Delete asks the remote host to remove the image behind deleteHash. Any
// network error or non-success flag yields ErrDeletionFailed; the caller
// must then keep its local record so the remote resource stays reachable.
func (c *Client) Delete(ctx context.Context, deleteHash string) error {
	target := strings.TrimSuffix(c.cfg.DeleteURL, "/") + "/" + url.PathEscape(deleteHash)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, target, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrDeletionFailed, err)
	}
	c.authorize(req)

	body, err := c.do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeletionFailed, err)
	}

	var resp hostResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrDeletionFailed, err)
	}
	if !resp.Success {
		return fmt.Errorf("%w: host reported failure (status %d)", ErrDeletionFailed, resp.Status)
	}

	if c.log != nil {
		c.log.Infow("image_delete_ok")
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Client-ID "+c.cfg.ClientID)
}

// do issues the request and returns the raw body. HTTP-level failures and
// non-2xx statuses are plain errors; the caller wraps them in its sentinel.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s %s: %w", req.Method, req.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
