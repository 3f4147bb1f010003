package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/vidsearch/internal/domain"
)

const defaultThumbnailWorkers = 4

// FetchTask performs one search and its thumbnail sub-fetches.
// It never touches the result store; callers receive values.
type FetchTask struct {
	provider   domain.SearchProvider
	thumbnails domain.ThumbnailFetcher // nil disables thumbnails
	workers    int
	logger     *slog.Logger
}

// NewFetchTask creates a fetch task. thumbnails may be nil.
func NewFetchTask(provider domain.SearchProvider, thumbnails domain.ThumbnailFetcher, workers int, logger *slog.Logger) *FetchTask {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = defaultThumbnailWorkers
	}
	return &FetchTask{
		provider:   provider,
		thumbnails: thumbnails,
		workers:    workers,
		logger:     logger,
	}
}

type searchOutcome struct {
	items []domain.ResultItem
	err   error
}

// Run executes the provider call, racing it against cancellation.
// Cancellation first returns domain.ErrCancelled and no items.
// Provider failures satisfy errors.Is(err, domain.ErrProvider).
func (t *FetchTask) Run(ctx context.Context, query string) ([]domain.ResultItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.ErrCancelled
	}

	// Buffered: the provider may answer after cancellation wins
	done := make(chan searchOutcome, 1)
	go func() {
		items, err := t.provider.Search(ctx, query)
		done <- searchOutcome{items: items, err: err}
	}()

	select {
	case <-ctx.Done():
		t.logger.Debug("search cancelled", "query", query)
		return nil, domain.ErrCancelled

	case out := <-done:
		if out.err != nil {
			if errors.Is(out.err, context.Canceled) || ctx.Err() != nil {
				return nil, domain.ErrCancelled
			}
			t.logger.Error("search failed", "query", query, "error", out.err)
			return nil, fmt.Errorf("%w: %w", domain.ErrProvider, out.err)
		}
		if ctx.Err() != nil {
			return nil, domain.ErrCancelled
		}
		return out.items, nil
	}
}

// ThumbnailsEnabled reports whether FetchThumbnails does anything
func (t *FetchTask) ThumbnailsEnabled() bool {
	return t.thumbnails != nil
}

// FetchThumbnails downloads every item's thumbnail with bounded concurrency.
// Each fetch is independent and best-effort: failures are logged and the
// item is skipped. emit is called from worker goroutines.
func (t *FetchTask) FetchThumbnails(ctx context.Context, items []domain.ResultItem, emit func(index int, img image.Image)) {
	if t.thumbnails == nil {
		return
	}

	var g errgroup.Group
	g.SetLimit(t.workers)

	for i, item := range items {
		if !item.Thumbnail.HasURL() {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		index, url := i, item.Thumbnail.URL
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			img, err := t.thumbnails.FetchThumbnail(ctx, url)
			if err != nil {
				if ctx.Err() == nil {
					t.logger.Debug("thumbnail fetch failed", "index", index, "url", url, "error", err)
				}
				return nil
			}
			emit(index, img)
			return nil
		})
	}

	_ = g.Wait()
}

// ThumbnailIndexes returns the indexes FetchThumbnails will attempt
func (t *FetchTask) ThumbnailIndexes(items []domain.ResultItem) []int {
	if t.thumbnails == nil {
		return nil
	}
	var indexes []int
	for i, item := range items {
		if item.Thumbnail.HasURL() {
			indexes = append(indexes, i)
		}
	}
	return indexes
}
