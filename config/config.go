// Package config loads environment variables and provides a typed Config used across the service.
// Every credential is optional: a missing value disables the feature that needs it and nothing
// else. Use the *Ready helpers to check a feature's precondition before calling into it.
package config

import (
	"fmt"
	"os"
)

type Config struct {
	// PandaScore (match data)
	PandascoreToken string

	// Twitch app (stream lookup)
	TwitchClientID     string
	TwitchClientSecret string

	// Twitch chat bot (front end)
	BotUsername   string
	BotOAuthToken string
	BotChannel    string

	// Domain
	TeamName      string
	StreamChannel string

	// HTTP
	HTTPAddr string
}

// Load reads environment variables and applies defaults. It never fails on missing
// credentials; callers gate features on the *Ready helpers instead.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.PandascoreToken = os.Getenv("PANDASCORE_TOKEN")
	cfg.TwitchClientID = os.Getenv("TWITCH_CLIENT_ID")
	cfg.TwitchClientSecret = os.Getenv("TWITCH_CLIENT_SECRET")

	cfg.BotUsername = os.Getenv("BOT_USERNAME")
	cfg.BotOAuthToken = os.Getenv("BOT_OAUTH_TOKEN")
	cfg.BotChannel = os.Getenv("BOT_CHANNEL")

	cfg.TeamName = os.Getenv("TEAM_NAME")
	if cfg.TeamName == "" {
		cfg.TeamName = "furia"
	}
	cfg.StreamChannel = os.Getenv("STREAM_CHANNEL")
	if cfg.StreamChannel == "" {
		cfg.StreamChannel = "furia"
	}

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	return cfg, nil
}

// MatchDataReady reports whether match-data queries are configured.
func (c *Config) MatchDataReady() bool { return c.PandascoreToken != "" }

// StreamReady reports whether stream lookups are configured.
func (c *Config) StreamReady() bool {
	return c.TwitchClientID != "" && c.TwitchClientSecret != ""
}

// ValidateChatReady checks required fields for connecting the chat front end.
func (c *Config) ValidateChatReady() error {
	if c.BotChannel == "" || c.BotUsername == "" || c.BotOAuthToken == "" {
		return fmt.Errorf("missing chat env: require BOT_CHANNEL, BOT_USERNAME, BOT_OAUTH_TOKEN")
	}
	return nil
}
