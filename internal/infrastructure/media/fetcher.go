package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// LinkedIn's CDN rejects requests without a browser user agent.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Fetcher downloads profile images and returns them base64 encoded for
// Odoo's image_1920 field. All failures degrade to an empty string so a
// broken avatar never blocks a contact import.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
	logger   *zap.Logger
}

// NewFetcher creates an image fetcher with the given timeout and size cap.
func NewFetcher(timeout time.Duration, maxBytes int64, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
		logger:   logger.Named("media"),
	}
}

// FetchBase64 downloads url and returns its body as a base64 string.
// Returns "" on any failure.
func (f *Fetcher) FetchBase64(ctx context.Context, url string) string {
	if url == "" {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		f.logger.Warn("Failed to build image request", zap.String("url", url), zap.Error(err))
		return ""
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warn("Failed to download image", zap.String("url", url), zap.Error(err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.logger.Warn("Failed to download image",
			zap.String("url", url),
			zap.Error(fmt.Errorf("unexpected status %d", resp.StatusCode)))
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		f.logger.Warn("Failed to read image body", zap.String("url", url), zap.Error(err))
		return ""
	}

	return base64.StdEncoding.EncodeToString(body)
}
