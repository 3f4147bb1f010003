package service

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/mmcdole/vidsearch/internal/domain"
	"github.com/mmcdole/vidsearch/internal/invidious"
)

// imageSource downloads raw image bytes (consumer-defined interface)
type imageSource interface {
	FetchImageData(ctx context.Context, url string) ([]byte, error)
}

// byteCache stores downloaded image bytes (consumer-defined interface)
type byteCache interface {
	Get(url string) ([]byte, bool)
	Put(url string, data []byte) error
}

// ThumbnailService implements domain.ThumbnailFetcher with a byte cache
// in front of the network. Safe for concurrent use.
type ThumbnailService struct {
	source imageSource
	cache  byteCache
	logger *slog.Logger
}

// NewThumbnailService creates a new thumbnail service. cache may be nil.
func NewThumbnailService(source imageSource, cache byteCache, logger *slog.Logger) *ThumbnailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ThumbnailService{
		source: source,
		cache:  cache,
		logger: logger,
	}
}

// FetchThumbnail returns the decoded, downsized image at url
func (s *ThumbnailService) FetchThumbnail(ctx context.Context, url string) (image.Image, error) {
	if s.cache != nil {
		if data, ok := s.cache.Get(url); ok {
			img, err := invidious.DecodeThumbnail(data)
			if err == nil {
				return img, nil
			}
			s.logger.Debug("discarding undecodable cached thumbnail", "url", url, "error", err)
		}
	}

	data, err := s.source.FetchImageData(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrThumbnail, err)
	}

	img, err := invidious.DecodeThumbnail(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrThumbnail, err)
	}

	if s.cache != nil {
		if err := s.cache.Put(url, data); err != nil {
			s.logger.Warn("failed to cache thumbnail", "url", url, "error", err)
		}
	}
	return img, nil
}
