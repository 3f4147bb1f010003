package service

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/mmcdole/vidsearch/internal/domain"
)

// DefaultURLTemplate turns a video id into a watch page URL
const DefaultURLTemplate = "https://www.youtube.com/watch?v=%s"

// launcher abstracts media player launching (consumer-defined interface)
type launcher interface {
	Launch(url string) error
}

// PlaybackService hands playable results to the external player
type PlaybackService struct {
	launcher    launcher
	urlTemplate string
	logger      *slog.Logger
}

// NewPlaybackService creates a new playback service
func NewPlaybackService(launcher launcher, urlTemplate string, logger *slog.Logger) *PlaybackService {
	if logger == nil {
		logger = slog.Default()
	}
	if !strings.Contains(urlTemplate, "%s") {
		logger.Warn("player url template has no %s verb, using default", "template", urlTemplate)
		urlTemplate = DefaultURLTemplate
	}
	return &PlaybackService{
		launcher:    launcher,
		urlTemplate: urlTemplate,
		logger:      logger,
	}
}

// WatchURL builds the URL passed to the player
func (s *PlaybackService) WatchURL(item domain.ResultItem) (string, error) {
	if !item.IsPlayable() {
		return "", domain.ErrNotPlayable
	}
	return fmt.Sprintf(s.urlTemplate, url.QueryEscape(item.ID)), nil
}

// Play launches the player for a video item. Other kinds are refused.
func (s *PlaybackService) Play(item domain.ResultItem) error {
	watchURL, err := s.WatchURL(item)
	if err != nil {
		s.logger.Debug("refusing to play item", "kind", item.Kind, "id", item.ID)
		return err
	}

	s.logger.Info("launching playback", "title", item.Title, "videoID", item.ID, "url", watchURL)

	if err := s.launcher.Launch(watchURL); err != nil {
		s.logger.Error("failed to launch player", "error", err, "videoID", item.ID)
		return err
	}
	return nil
}
