// Package twitchapi contains minimal helpers to interact with the Twitch
// OAuth and Helix streams APIs using an app access token.
package twitchapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/furiafans/matchbot/telemetry"
)

const (
	defaultTokenURL = "https://id.twitch.tv/oauth2/token"
	defaultHelixURL = "https://api.twitch.tv/helix"
)

var (
	ErrNotConfigured = errors.New("twitch: missing client id/secret")
	ErrBadStatus     = errors.New("twitch: unexpected status")
	ErrBadShape      = errors.New("twitch: unexpected payload")
)

// Client talks to the Twitch OAuth and Helix endpoints.
type Client struct {
	ClientID     string
	ClientSecret string
	TokenURL     string // defaults to the public OAuth endpoint
	BaseURL      string // defaults to the public Helix endpoint
	HTTPClient   *http.Client
}

var defaultHTTPClient = &http.Client{Timeout: 10 * time.Second}

func (c *Client) http() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return defaultHTTPClient
}

func (c *Client) tokenURL() string {
	if c.TokenURL != "" {
		return c.TokenURL
	}
	return defaultTokenURL
}

func (c *Client) base() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultHelixURL
}

// AppToken performs one client-credentials exchange and returns a fresh app
// access token. There is no caching and no local expiry tracking: a token is
// requested on every dependent operation. That costs one extra round trip
// per call and removes every stale-token failure mode.
func (c *Client) AppToken(ctx context.Context) (string, error) {
	if c.ClientID == "" || c.ClientSecret == "" {
		return "", ErrNotConfigured
	}
	ctx, span := telemetry.StartSpan(ctx, "twitch", "POST oauth2/token")
	defer span.End()

	cc := &clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     c.tokenURL(),
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http())

	start := time.Now()
	tok, err := cc.Token(ctx)
	if err != nil {
		telemetry.ObserveUpstream("twitch_oauth", telemetry.OutcomeTransport, time.Since(start))
		telemetry.RecordError(span, err)
		return "", err
	}
	if tok.AccessToken == "" {
		telemetry.ObserveUpstream("twitch_oauth", telemetry.OutcomeShape, time.Since(start))
		telemetry.RecordError(span, ErrBadShape)
		return "", ErrBadShape
	}
	telemetry.ObserveUpstream("twitch_oauth", telemetry.OutcomeOK, time.Since(start))
	telemetry.SetSpanSuccess(span)
	return tok.AccessToken, nil
}
