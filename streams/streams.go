// Package streams is the stream lookup service: it obtains a fresh app token,
// queries live-stream metadata for one channel, and normalizes it into a
// display-ready StreamInfo. Offline channels and upstream failures both
// collapse to an absent result; only the logs tell them apart.
package streams

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/furiafans/matchbot/telemetry"
	"github.com/furiafans/matchbot/twitchapi"
)

// Thumbnails are rendered at a fixed size.
const (
	thumbWidth  = "320"
	thumbHeight = "180"
)

// StreamInfo is a display-ready live stream: title, directly renderable
// thumbnail URL, and the public channel URL.
type StreamInfo struct {
	Title        string
	ThumbnailURL string
	ChannelURL   string
}

// Service looks up live streams through the Twitch client.
type Service struct {
	Client *twitchapi.Client
}

// Lookup returns the live stream for channel, or nil when the channel is
// offline, the feature is unconfigured, or any upstream call failed.
func (s *Service) Lookup(ctx context.Context, channel string) *StreamInfo {
	token, err := s.Client.AppToken(ctx)
	if err != nil {
		logUnavailable(ctx, "app token", err)
		return nil
	}
	data, err := s.Client.LookupStream(ctx, token, channel)
	if err != nil {
		logUnavailable(ctx, "stream lookup", err)
		return nil
	}
	if data == nil {
		// Offline: a normal outcome, not a failure.
		return nil
	}
	return &StreamInfo{
		Title:        data.Title,
		ThumbnailURL: RenderThumbnail(data.ThumbnailURL),
		ChannelURL:   "https://twitch.tv/" + channel,
	}
}

// RenderThumbnail substitutes the Helix template placeholders with fixed
// pixel values so the URL is directly renderable.
func RenderThumbnail(template string) string {
	out := strings.ReplaceAll(template, "{width}", thumbWidth)
	return strings.ReplaceAll(out, "{height}", thumbHeight)
}

func logUnavailable(ctx context.Context, op string, err error) {
	l := telemetry.LoggerWithCorr(ctx)
	if errors.Is(err, twitchapi.ErrNotConfigured) {
		l.Debug("stream lookup unconfigured", slog.String("op", op))
		return
	}
	l.Warn("stream lookup unavailable", slog.String("op", op), slog.Any("err", err))
}
