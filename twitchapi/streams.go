package twitchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/furiafans/matchbot/telemetry"
)

// StreamData is the raw per-stream shape from the Helix streams endpoint.
// ThumbnailURL still contains the {width}/{height} placeholder tokens.
type StreamData struct {
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// LookupStream queries the streams endpoint filtered by login name. A nil
// result with nil error means the channel is offline, a normal outcome.
func (c *Client) LookupStream(ctx context.Context, token, login string) (*StreamData, error) {
	ctx, span := telemetry.StartSpan(ctx, "twitch", "GET helix/streams")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base()+"/streams", nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("user_login", login)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Client-ID", c.ClientID)
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.http().Do(req)
	if err != nil {
		telemetry.ObserveUpstream("twitch", telemetry.OutcomeTransport, time.Since(start))
		telemetry.RecordError(span, err)
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close response body", slog.Any("err", err))
		}
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		telemetry.ObserveUpstream("twitch", telemetry.OutcomeStatus, time.Since(start))
		err := fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
		telemetry.RecordError(span, err)
		return nil, err
	}
	var body struct {
		Data []StreamData `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		telemetry.ObserveUpstream("twitch", telemetry.OutcomeShape, time.Since(start))
		err = fmt.Errorf("%w: %v", ErrBadShape, err)
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.ObserveUpstream("twitch", telemetry.OutcomeOK, time.Since(start))
	telemetry.SetSpanSuccess(span)
	if len(body.Data) == 0 {
		return nil, nil
	}
	return &body.Data[0], nil
}
