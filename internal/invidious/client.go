// Package invidious talks to an Invidious instance: video search and
// thumbnail downloads.
package invidious

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	// Register decoders for thumbnail formats served by instances
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"

	"github.com/mmcdole/vidsearch/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "vidsearch/1.0"

	// Upper bounds on response bodies
	maxSearchBody = 8 << 20
	maxImageBody  = 4 << 20

	// Thumbnails are downscaled to fit this box before reaching the UI
	thumbMaxWidth  = 160
	thumbMaxHeight = 90
)

// Search result type filters accepted by /api/v1/search
const (
	TypeAll      = "all"
	TypeVideo    = "video"
	TypePlaylist = "playlist"
	TypeChannel  = "channel"
)

// Options tune a Client
type Options struct {
	Timeout    time.Duration
	SearchType string // one of the Type* constants, default TypeAll
	Region     string // ISO 3166 country code, empty = instance default
}

// Client implements domain.SearchProvider and domain.ThumbnailFetcher
type Client struct {
	baseURL    *url.URL
	searchType string
	region     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Invidious API client
func NewClient(baseURL string, logger *slog.Logger, opts Options) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid instance url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid instance url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid instance url %q: missing host", baseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	searchType := opts.SearchType
	switch searchType {
	case TypeAll, TypeVideo, TypePlaylist, TypeChannel:
	case "":
		searchType = TypeAll
	default:
		return nil, fmt.Errorf("invalid search type %q", opts.SearchType)
	}

	return &Client{
		baseURL:    u,
		searchType: searchType,
		region:     opts.Region,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// BaseURL returns the instance URL
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// doRequest performs a GET and returns the body of a 200 response
func (c *Client) doRequest(ctx context.Context, reqURL string, accept string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("invidious request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Error("invidious request failed", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("invidious request error", "status", resp.StatusCode, "bodyLen", len(body))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}

// searchURL builds /api/v1/search for query
func (c *Client) searchURL(query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", c.searchType)
	if c.region != "" {
		params.Set("region", c.region)
	}

	u := c.baseURL.JoinPath("api", "v1", "search")
	u.RawQuery = params.Encode()
	return u.String()
}

// Search returns the first page of results for query in provider order
func (c *Client) Search(ctx context.Context, query string) ([]domain.ResultItem, error) {
	body, err := c.doRequest(ctx, c.searchURL(query), "application/json", maxSearchBody)
	if err != nil {
		return nil, err
	}

	var raw rawResults
	if err := json.Unmarshal(body, &raw); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	items := MapResults(raw, c.baseURL)
	c.logger.Debug("search complete", "query", query, "results", len(items))
	return items, nil
}

// FetchImageData downloads raw image bytes
func (c *Client) FetchImageData(ctx context.Context, imageURL string) ([]byte, error) {
	return c.doRequest(ctx, resolveURL(c.baseURL, imageURL), "image/*", maxImageBody)
}

// FetchThumbnail downloads and decodes one preview image
func (c *Client) FetchThumbnail(ctx context.Context, imageURL string) (image.Image, error) {
	data, err := c.FetchImageData(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	return DecodeThumbnail(data)
}

// DecodeThumbnail decodes image bytes and downsizes them for terminal display
func DecodeThumbnail(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, errors.New("empty image data")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return resize.Thumbnail(thumbMaxWidth, thumbMaxHeight, img, resize.Bilinear), nil
}
