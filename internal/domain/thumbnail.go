package domain

import "image"

// ThumbnailState is the lifecycle of a preview image
type ThumbnailState int

const (
	ThumbnailNotRequested ThumbnailState = iota
	ThumbnailPending
	ThumbnailResolved
)

// Thumbnail holds the preview image reference of a result item.
// State only moves forward: NotRequested -> Pending -> Resolved.
type Thumbnail struct {
	URL   string
	State ThumbnailState
	Image image.Image // non-nil only when Resolved
}

// HasURL returns true if there is something to fetch
func (t Thumbnail) HasURL() bool {
	return t.URL != ""
}

// MarkPending moves a NotRequested thumbnail to Pending.
// Returns false if the thumbnail was already requested.
func (t *Thumbnail) MarkPending() bool {
	if t.State != ThumbnailNotRequested {
		return false
	}
	t.State = ThumbnailPending
	return true
}

// Resolve stores the decoded image. A resolved thumbnail is never replaced.
func (t *Thumbnail) Resolve(img image.Image) bool {
	if t.State == ThumbnailResolved || img == nil {
		return false
	}
	t.State = ThumbnailResolved
	t.Image = img
	return true
}
