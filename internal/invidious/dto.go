package invidious

import "encoding/json"

// searchEnvelope peeks at the type tag of a search result object
type searchEnvelope struct {
	Type string `json:"type"`
}

// ImageObject is an entry of videoThumbnails / authorThumbnails
type ImageObject struct {
	Quality string `json:"quality,omitempty"`
	URL     string `json:"url"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// SearchVideo is a "video" search result
type SearchVideo struct {
	Type            string        `json:"type"`
	Title           string        `json:"title"`
	VideoID         string        `json:"videoId"`
	Author          string        `json:"author"`
	AuthorID        string        `json:"authorId"`
	AuthorURL       string        `json:"authorUrl,omitempty"`
	VideoThumbnails []ImageObject `json:"videoThumbnails,omitempty"`
	Description     string        `json:"description,omitempty"`
	ViewCount       int64         `json:"viewCount"`
	Published       int64         `json:"published,omitempty"`
	PublishedText   string        `json:"publishedText,omitempty"`
	LengthSeconds   int64         `json:"lengthSeconds"`
	LiveNow         bool          `json:"liveNow,omitempty"`
	IsUpcoming      bool          `json:"isUpcoming,omitempty"`
}

// PlaylistVideo is an entry of SearchPlaylist.Videos
type PlaylistVideo struct {
	Title           string        `json:"title"`
	VideoID         string        `json:"videoId"`
	LengthSeconds   int64         `json:"lengthSeconds"`
	VideoThumbnails []ImageObject `json:"videoThumbnails,omitempty"`
}

// SearchPlaylist is a "playlist" search result
type SearchPlaylist struct {
	Type              string          `json:"type"`
	Title             string          `json:"title"`
	PlaylistID        string          `json:"playlistId"`
	PlaylistThumbnail string          `json:"playlistThumbnail,omitempty"`
	Author            string          `json:"author"`
	AuthorID          string          `json:"authorId"`
	AuthorURL         string          `json:"authorUrl,omitempty"`
	VideoCount        int             `json:"videoCount"`
	Videos            []PlaylistVideo `json:"videos,omitempty"`
}

// SearchChannel is a "channel" search result
type SearchChannel struct {
	Type             string        `json:"type"`
	Author           string        `json:"author"`
	AuthorID         string        `json:"authorId"`
	AuthorURL        string        `json:"authorUrl,omitempty"`
	AuthorThumbnails []ImageObject `json:"authorThumbnails,omitempty"`
	AutoGenerated    bool          `json:"autoGenerated,omitempty"`
	SubCount         int64         `json:"subCount"`
	VideoCount       int           `json:"videoCount"`
	Description      string        `json:"description,omitempty"`
}

// rawResults is the top-level search response
type rawResults []json.RawMessage
