package service

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"sync"

	"github.com/mmcdole/vidsearch/internal/domain"
	"github.com/mmcdole/vidsearch/internal/results"
)

const eventBuffer = 64

// Event is a completion notification from a fetch task
type Event interface {
	Generation() uint64
}

// ResultsEvent carries a completed search
type ResultsEvent struct {
	Gen   uint64
	Query string
	Items []domain.ResultItem
}

// FailedEvent carries a provider failure
type FailedEvent struct {
	Gen   uint64
	Query string
	Err   error
}

// ThumbnailEvent carries one decoded preview image
type ThumbnailEvent struct {
	Gen   uint64
	Index int
	Image image.Image
}

func (e ResultsEvent) Generation() uint64   { return e.Gen }
func (e FailedEvent) Generation() uint64    { return e.Gen }
func (e ThumbnailEvent) Generation() uint64 { return e.Gen }

// fetchHandle is the coordinator's grip on its running task
type fetchHandle struct {
	gen    uint64
	query  string
	cancel context.CancelFunc
	done   chan struct{}
}

// Coordinator owns at most one running FetchTask and decides which
// completions reach the result store.
type Coordinator struct {
	task   *FetchTask
	events chan Event
	logger *slog.Logger

	mu         sync.Mutex
	generation uint64
	handle     *fetchHandle
	closed     bool
}

// NewCoordinator creates a coordinator around task
func NewCoordinator(task *FetchTask, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		task:   task,
		events: make(chan Event, eventBuffer),
		logger: logger,
	}
}

// Events delivers completion notifications. Cancelled tasks emit nothing.
func (c *Coordinator) Events() <-chan Event {
	return c.events
}

// Start cancels and joins any running task, then spawns a new one for query.
// An empty query after normalization starts nothing and returns ok=false.
func (c *Coordinator) Start(query string) (uint64, bool) {
	query = domain.NormalizeQuery(query)

	c.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()

	if query == "" || c.closed {
		return 0, false
	}

	c.generation++
	ctx, cancel := context.WithCancel(context.Background())
	h := &fetchHandle{
		gen:    c.generation,
		query:  query,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	c.handle = h

	c.logger.Info("search started", "query", query, "generation", h.gen)
	go c.run(ctx, h)

	return h.gen, true
}

// Stop cancels the running task and blocks until it has returned.
// Safe to call with no task running.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	h := c.handle
	c.handle = nil
	if h != nil {
		// Anything the old task already queued is now stale
		c.generation++
	}
	c.mu.Unlock()

	if h == nil {
		return
	}

	h.cancel()
	<-h.done
	c.logger.Debug("search stopped", "query", h.query, "generation", h.gen)
}

// Close stops the running task and refuses further starts
func (c *Coordinator) Close() {
	c.Stop()
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// Active reports whether a search or its thumbnails are still in flight
func (c *Coordinator) Active() bool {
	c.mu.Lock()
	h := c.handle
	c.mu.Unlock()

	if h == nil {
		return false
	}
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// Current returns the generation whose events Apply accepts
func (c *Coordinator) Current() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Apply publishes ev into store. Events of superseded tasks are ignored.
// Must be called from the goroutine that owns store.
func (c *Coordinator) Apply(store *results.Store, ev Event) bool {
	if ev == nil || ev.Generation() != c.Current() {
		return false
	}

	switch e := ev.(type) {
	case ResultsEvent:
		store.Replace(e.Items)
		for _, i := range c.task.ThumbnailIndexes(e.Items) {
			store.MarkPending(i)
		}
		return true

	case ThumbnailEvent:
		return store.SetThumbnail(e.Index, e.Image)

	case FailedEvent:
		// Previous results stay visible
		return true

	default:
		return false
	}
}

// run is the task goroutine
func (c *Coordinator) run(ctx context.Context, h *fetchHandle) {
	defer close(h.done)
	defer h.cancel()

	items, err := c.task.Run(ctx, h.query)
	if err != nil {
		if errors.Is(err, domain.ErrCancelled) {
			return
		}
		c.send(ctx, FailedEvent{Gen: h.gen, Query: h.query, Err: err})
		return
	}

	c.logger.Info("search complete", "query", h.query, "generation", h.gen, "results", len(items))
	if !c.send(ctx, ResultsEvent{Gen: h.gen, Query: h.query, Items: items}) {
		return
	}

	c.task.FetchThumbnails(ctx, items, func(index int, img image.Image) {
		c.send(ctx, ThumbnailEvent{Gen: h.gen, Index: index, Image: img})
	})
}

// send delivers ev unless the task is cancelled first
func (c *Coordinator) send(ctx context.Context, ev Event) bool {
	select {
	case c.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
