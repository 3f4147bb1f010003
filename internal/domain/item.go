package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ResultKind tags the variant carried by a ResultItem
type ResultKind int

const (
	KindUnknown ResultKind = iota
	KindVideo
	KindPlaylist
	KindChannel
)

// String returns the lowercase kind name
func (k ResultKind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindPlaylist:
		return "playlist"
	case KindChannel:
		return "channel"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ResultItem is one entry of a search response.
// Kind selects which of the variant fields are meaningful.
type ResultItem struct {
	Kind ResultKind
	ID   string // videoId, playlistId or authorId depending on Kind

	// Shared display fields
	Title       string // Video/playlist title or channel name
	Author      string // Uploader (video, playlist)
	AuthorID    string
	Description string // Video or channel description

	// Video
	Duration  time.Duration
	Views     int64
	Published string // Provider-formatted relative date, e.g. "3 days ago"
	Live      bool

	// Playlist and channel
	VideoCount int

	// Channel
	Subscribers int64

	// Unknown: the undecoded provider object, kept for diagnostics
	RawType string
	Raw     json.RawMessage

	Thumbnail Thumbnail
}

// DisplayTitle returns the text shown in the results list
func (r ResultItem) DisplayTitle() string {
	switch r.Kind {
	case KindVideo, KindPlaylist, KindChannel:
		return r.Title
	case KindUnknown:
		if r.RawType != "" {
			return fmt.Sprintf("<unknown: %s>", r.RawType)
		}
		return "<unknown>"
	default:
		return "<unknown>"
	}
}

// IsPlayable returns true if the item can be handed to the media player
func (r ResultItem) IsPlayable() bool {
	return r.Kind == KindVideo && r.ID != ""
}

// FormattedDuration returns the duration as H:MM:SS or M:SS
func (r ResultItem) FormattedDuration() string {
	if r.Live {
		return "LIVE"
	}
	total := int64(r.Duration.Seconds())
	if total <= 0 {
		return ""
	}
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
