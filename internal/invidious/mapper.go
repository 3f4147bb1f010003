package invidious

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/vidsearch/internal/domain"
)

// Preferred video thumbnail qualities, smallest useful first.
// A terminal pane never needs more than a few hundred pixels.
var thumbnailQualities = []string{"medium", "high", "sddefault", "default"}

// MapResults converts raw search objects to domain items, keeping provider order.
// Objects that cannot be decoded become KindUnknown carrying the raw JSON.
func MapResults(raw []json.RawMessage, baseURL *url.URL) []domain.ResultItem {
	items := make([]domain.ResultItem, 0, len(raw))
	for _, obj := range raw {
		items = append(items, mapResult(obj, baseURL))
	}
	return items
}

func mapResult(obj json.RawMessage, baseURL *url.URL) domain.ResultItem {
	var env searchEnvelope
	if err := json.Unmarshal(obj, &env); err != nil {
		return unknownItem("", obj)
	}

	switch env.Type {
	case "video":
		var v SearchVideo
		if err := json.Unmarshal(obj, &v); err != nil {
			return unknownItem(env.Type, obj)
		}
		return mapVideo(v, baseURL)

	case "playlist":
		var p SearchPlaylist
		if err := json.Unmarshal(obj, &p); err != nil {
			return unknownItem(env.Type, obj)
		}
		return mapPlaylist(p, baseURL)

	case "channel":
		var c SearchChannel
		if err := json.Unmarshal(obj, &c); err != nil {
			return unknownItem(env.Type, obj)
		}
		return mapChannel(c, baseURL)

	default:
		return unknownItem(env.Type, obj)
	}
}

func mapVideo(v SearchVideo, baseURL *url.URL) domain.ResultItem {
	return domain.ResultItem{
		Kind:        domain.KindVideo,
		ID:          v.VideoID,
		Title:       v.Title,
		Author:      v.Author,
		AuthorID:    v.AuthorID,
		Description: v.Description,
		Duration:    time.Duration(v.LengthSeconds) * time.Second,
		Views:       v.ViewCount,
		Published:   v.PublishedText,
		Live:        v.LiveNow,
		Thumbnail: domain.Thumbnail{
			URL: resolveURL(baseURL, pickVideoThumbnail(v.VideoThumbnails)),
		},
	}
}

func mapPlaylist(p SearchPlaylist, baseURL *url.URL) domain.ResultItem {
	thumb := p.PlaylistThumbnail
	if thumb == "" && len(p.Videos) > 0 {
		thumb = pickVideoThumbnail(p.Videos[0].VideoThumbnails)
	}
	return domain.ResultItem{
		Kind:       domain.KindPlaylist,
		ID:         p.PlaylistID,
		Title:      p.Title,
		Author:     p.Author,
		AuthorID:   p.AuthorID,
		VideoCount: p.VideoCount,
		Thumbnail:  domain.Thumbnail{URL: resolveURL(baseURL, thumb)},
	}
}

func mapChannel(c SearchChannel, baseURL *url.URL) domain.ResultItem {
	return domain.ResultItem{
		Kind:        domain.KindChannel,
		ID:          c.AuthorID,
		Title:       c.Author,
		Description: c.Description,
		Subscribers: c.SubCount,
		VideoCount:  c.VideoCount,
		Thumbnail: domain.Thumbnail{
			URL: resolveURL(baseURL, pickLargest(c.AuthorThumbnails)),
		},
	}
}

func unknownItem(kind string, obj json.RawMessage) domain.ResultItem {
	raw := make(json.RawMessage, len(obj))
	copy(raw, obj)
	return domain.ResultItem{
		Kind:    domain.KindUnknown,
		RawType: kind,
		Raw:     raw,
	}
}

// pickVideoThumbnail prefers a mid-sized rendition
func pickVideoThumbnail(thumbs []ImageObject) string {
	for _, quality := range thumbnailQualities {
		for _, t := range thumbs {
			if t.Quality == quality && t.URL != "" {
				return t.URL
			}
		}
	}
	for _, t := range thumbs {
		if t.URL != "" {
			return t.URL
		}
	}
	return ""
}

// pickLargest returns the widest image, used for channel avatars
func pickLargest(thumbs []ImageObject) string {
	best := ""
	bestWidth := -1
	for _, t := range thumbs {
		if t.URL != "" && t.Width > bestWidth {
			best = t.URL
			bestWidth = t.Width
		}
	}
	return best
}

// resolveURL makes protocol-relative and instance-relative references absolute
func resolveURL(baseURL *url.URL, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "//") {
		return "https:" + ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if u.IsAbs() || baseURL == nil {
		return u.String()
	}
	return baseURL.ResolveReference(u).String()
}
