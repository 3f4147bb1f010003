package domain

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "rust", "rust"},
		{"surrounding spaces", "  rust lang ", "rust lang"},
		{"control characters", "ru\x00st\x1b", "rust"},
		{"tabs and newlines", "\trust\n", "rust"},
		{"empty", "", ""},
		{"only controls", "\x07\x08", ""},
		{"unicode kept", "café ☕", "café ☕"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeQuery(tt.input); got != tt.expected {
				t.Errorf("NormalizeQuery(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestResultItem_DisplayTitle(t *testing.T) {
	tests := []struct {
		name     string
		item     ResultItem
		expected string
	}{
		{"video", ResultItem{Kind: KindVideo, Title: "A"}, "A"},
		{"playlist", ResultItem{Kind: KindPlaylist, Title: "Mix"}, "Mix"},
		{"channel", ResultItem{Kind: KindChannel, Title: "Chan"}, "Chan"},
		{"unknown with type", ResultItem{Kind: KindUnknown, RawType: "hashtag"}, "<unknown: hashtag>"},
		{"unknown bare", ResultItem{Kind: KindUnknown}, "<unknown>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.item.DisplayTitle())
		})
	}
}

func TestResultItem_IsPlayable(t *testing.T) {
	assert.True(t, ResultItem{Kind: KindVideo, ID: "abc"}.IsPlayable())
	assert.False(t, ResultItem{Kind: KindVideo}.IsPlayable())
	assert.False(t, ResultItem{Kind: KindPlaylist, ID: "PL1"}.IsPlayable())
	assert.False(t, ResultItem{Kind: KindChannel, ID: "UC1"}.IsPlayable())
}

func TestResultItem_FormattedDuration(t *testing.T) {
	tests := []struct {
		item     ResultItem
		expected string
	}{
		{ResultItem{Duration: 59 * time.Second}, "0:59"},
		{ResultItem{Duration: 4*time.Minute + 5*time.Second}, "4:05"},
		{ResultItem{Duration: time.Hour + 2*time.Minute + 3*time.Second}, "1:02:03"},
		{ResultItem{}, ""},
		{ResultItem{Live: true}, "LIVE"},
	}

	for _, tt := range tests {
		if got := tt.item.FormattedDuration(); got != tt.expected {
			t.Errorf("FormattedDuration(%v) = %q, want %q", tt.item.Duration, got, tt.expected)
		}
	}
}

func TestThumbnail_Lifecycle(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	other := image.NewRGBA(image.Rect(0, 0, 4, 4))

	var th Thumbnail
	assert.Equal(t, ThumbnailNotRequested, th.State)

	assert.True(t, th.MarkPending())
	assert.False(t, th.MarkPending(), "pending twice")
	assert.Equal(t, ThumbnailPending, th.State)

	assert.False(t, th.Resolve(nil), "nil image must not resolve")
	assert.True(t, th.Resolve(img))
	assert.Equal(t, ThumbnailResolved, th.State)

	assert.False(t, th.Resolve(other), "resolved thumbnail must not be replaced")
	assert.Same(t, img, th.Image)
	assert.False(t, th.MarkPending(), "never reverts to pending")
}

func TestResultKind_String(t *testing.T) {
	assert.Equal(t, "video", KindVideo.String())
	assert.Equal(t, "playlist", KindPlaylist.String())
	assert.Equal(t, "channel", KindChannel.String())
	assert.Equal(t, "unknown", KindUnknown.String())
	assert.Equal(t, "kind(42)", ResultKind(42).String())
}
