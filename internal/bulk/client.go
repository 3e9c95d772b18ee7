package bulk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

// Download in fixed 8 KiB chunks so the multi-hundred-megabyte payload is
// never materialized in memory.
const downloadChunkSize = 8 * 1024

const defaultTimeout = 35 * time.Second

var (
	errMissingManifestURL = errors.New("bulk: manifest URL is required")
	errMissingUserAgent   = errors.New("bulk: user agent is required")
	errMissingDownloadURI = errors.New("bulk: manifest has no download URI")
)

// ClientConfig carries the settings for a Client.
type ClientConfig struct {
	ManifestURL string
	// UserAgent identifies this application; the upstream provider rejects
	// requests without a custom User-Agent header.
	UserAgent string
	Timeout   time.Duration
	Logger    *zap.Logger
}

// Client downloads the upstream manifest and card payload to local storage.
// Failures are reported as errors, never as a crash, and nothing is retried
// automatically: the caller re-invokes on the next run.
type Client struct {
	httpClient  *http.Client
	manifestURL string
	userAgent   string
	timeout     time.Duration
	logger      *zap.Logger
}

// NewClient validates the configuration and returns a Client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.ManifestURL == "" {
		return nil, errMissingManifestURL
	}
	if cfg.UserAgent == "" {
		return nil, errMissingUserAgent
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	// The timeout bounds connection setup and time-to-first-header, never the
	// body read: the payload runs to hundreds of megabytes, and a transfer
	// that is still moving bytes is not a failure however long it takes.
	transport := &http.Transport{
		DialContext:           (&net.Dialer{Timeout: timeout}).DialContext,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
	}
	return &Client{
		httpClient:  &http.Client{Transport: transport},
		manifestURL: cfg.ManifestURL,
		userAgent:   cfg.UserAgent,
		timeout:     timeout,
		logger:      logger,
	}, nil
}

// FetchManifest retrieves the manifest document, persists it to destPath, and
// returns the parsed result. The manifest is a few hundred bytes, so the whole
// exchange runs under one deadline.
func (c *Client) FetchManifest(ctx context.Context, destPath string) (*Manifest, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	response, err := c.get(ctx, c.manifestURL)
	if err != nil {
		return nil, fmt.Errorf("fetch manifest: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("read manifest response: %w", err)
	}

	manifest, err := parseManifest(body)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(destPath, body, 0o644); err != nil {
		return nil, fmt.Errorf("persist manifest: %w", err)
	}

	c.logger.Info("manifest downloaded",
		zap.String("path", destPath),
		zap.Time("updated_at", manifest.UpdatedAt))
	return manifest, nil
}

// FetchPayload streams the payload referenced by the manifest to destPath.
func (c *Client) FetchPayload(ctx context.Context, manifest *Manifest, destPath string) error {
	if manifest == nil || manifest.DownloadURI == "" {
		return errMissingDownloadURI
	}

	c.logger.Info("downloading card payload", zap.String("uri", manifest.DownloadURI))

	response, err := c.get(ctx, manifest.DownloadURI)
	if err != nil {
		return fmt.Errorf("fetch payload: %w", err)
	}
	defer response.Body.Close()

	file, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create payload file: %w", err)
	}

	written, err := io.CopyBuffer(file, response.Body, make([]byte, downloadChunkSize))
	if err != nil {
		file.Close()
		return fmt.Errorf("stream payload to disk: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close payload file: %w", err)
	}

	c.logger.Info("card payload downloaded",
		zap.String("path", destPath),
		zap.Int64("bytes", written))
	return nil
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("User-Agent", c.userAgent)
	request.Header.Set("Accept", "*/*")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		response.Body.Close()
		return nil, fmt.Errorf("unexpected status %s from %s", response.Status, url)
	}
	return response, nil
}
