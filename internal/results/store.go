// Package results holds the latest completed search results and the
// selection cursor. A Store has a single writer: the UI event loop.
// Background work reaches it only through messages.
package results

import (
	"image"

	"github.com/mmcdole/vidsearch/internal/domain"
)

// noSelection marks an empty cursor
const noSelection = -1

// Store is an ordered result sequence plus a selection index.
// The selection is either none or a valid index into items.
type Store struct {
	items    []domain.ResultItem
	selected int
}

// New creates an empty store
func New() *Store {
	return &Store{selected: noSelection}
}

// Replace swaps the whole sequence and clears the selection
func (s *Store) Replace(items []domain.ResultItem) {
	next := make([]domain.ResultItem, len(items))
	copy(next, items)
	s.items = next
	s.selected = noSelection
}

// Clear empties the store
func (s *Store) Clear() {
	s.items = nil
	s.selected = noSelection
}

// Len returns the number of items
func (s *Store) Len() int {
	return len(s.items)
}

// Items returns the items in provider order. Callers must not mutate it.
func (s *Store) Items() []domain.ResultItem {
	return s.items
}

// Item returns the item at index i
func (s *Store) Item(i int) (domain.ResultItem, bool) {
	if i < 0 || i >= len(s.items) {
		return domain.ResultItem{}, false
	}
	return s.items[i], true
}

// SelectNext moves the cursor forward, wrapping from last to first.
// From no selection it selects the first item. No-op on an empty store.
func (s *Store) SelectNext() {
	n := len(s.items)
	if n == 0 {
		s.selected = noSelection
		return
	}
	i, ok := s.SelectedIndex()
	if !ok {
		s.selected = 0
		return
	}
	s.selected = (i + 1) % n
}

// SelectPrevious moves the cursor backward, wrapping from first to last.
// From no selection it selects the last item. No-op on an empty store.
func (s *Store) SelectPrevious() {
	n := len(s.items)
	if n == 0 {
		s.selected = noSelection
		return
	}
	i, ok := s.SelectedIndex()
	if !ok {
		s.selected = n - 1
		return
	}
	s.selected = (i + n - 1) % n
}

// Select sets the cursor directly. An out of range index clears it.
func (s *Store) Select(i int) {
	if i < 0 || i >= len(s.items) {
		s.selected = noSelection
		return
	}
	s.selected = i
}

// SelectedIndex returns the cursor, treating a stale index as no selection
func (s *Store) SelectedIndex() (int, bool) {
	if s.selected < 0 || s.selected >= len(s.items) {
		return noSelection, false
	}
	return s.selected, true
}

// Selected returns the item under the cursor
func (s *Store) Selected() (domain.ResultItem, bool) {
	i, ok := s.SelectedIndex()
	if !ok {
		return domain.ResultItem{}, false
	}
	return s.items[i], true
}

// MarkPending flags the thumbnail at index as requested.
// Out of range indexes are ignored.
func (s *Store) MarkPending(index int) bool {
	if index < 0 || index >= len(s.items) {
		return false
	}
	return s.items[index].Thumbnail.MarkPending()
}

// SetThumbnail resolves the thumbnail at index.
// Late results for an index that no longer exists are dropped.
func (s *Store) SetThumbnail(index int, img image.Image) bool {
	if index < 0 || index >= len(s.items) {
		return false
	}
	return s.items[index].Thumbnail.Resolve(img)
}
