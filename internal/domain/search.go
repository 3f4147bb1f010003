package domain

import (
	"context"
	"image"
	"strings"
	"unicode"
)

// SearchProvider performs one "search videos by query" call.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]ResultItem, error)
}

// ThumbnailFetcher downloads and decodes one preview image.
type ThumbnailFetcher interface {
	FetchThumbnail(ctx context.Context, url string) (image.Image, error)
}

// NormalizeQuery strips control characters and surrounding whitespace
func NormalizeQuery(query string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, query)
	return strings.TrimSpace(cleaned)
}
