// Package config defines the configuration surface for the goalwatch
// processes. Configuration is loaded once at process startup and is immutable
// thereafter. It follows 12-Factor principles: all values come from the
// environment (optionally seeded from a .env file), never from persisted
// config files.
//
// Any missing required value or invalid format aborts startup before the
// poll loop is entered (fail fast).
package config

import (
	"fmt"
	"time"

	"goalwatch/internal/types"
)

// SecretString is an alias for types.SecretString, the redacted secret type
// used for delivery channel credentials.
type SecretString = types.SecretString

// Config is the top-level configuration struct shared by all goalwatch
// entrypoints. Sub-components receive only the specific subsets they require.
type Config struct {
	Environment string `envconfig:"APP_ENV" default:"local" validate:"oneof=local dev prod"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	Team     TeamConfig
	Poll     PollConfig
	Upstream UpstreamConfig
	SMS      SMSConfig
	Display  DisplayConfig
}

// TeamConfig identifies the favorite team to monitor and highlight.
type TeamConfig struct {
	// Favorite is the 3-letter team abbreviation, e.g. "PHI".
	Favorite string `envconfig:"FAVORITE_TEAM" default:"PHI" validate:"required,len=3,alpha"`
}

// PollConfig holds the polling cadences. The goal check interval and the
// display refresh interval are independent; displays refresh far less often
// than the goal notifier ticks.
type PollConfig struct {
	CheckInterval   time.Duration `envconfig:"CHECK_INTERVAL" default:"30s" validate:"min=1s"`
	DisplayInterval time.Duration `envconfig:"DISPLAY_INTERVAL" default:"120s" validate:"min=5s"`
}

// UpstreamConfig holds settings for the NHL web API client.
type UpstreamConfig struct {
	BaseURL   string        `envconfig:"NHL_API_BASE_URL" default:"https://api-web.nhle.com/v1" validate:"url"`
	Timeout   time.Duration `envconfig:"NHL_API_TIMEOUT" default:"10s"`
	UserAgent string        `envconfig:"NHL_API_USER_AGENT" default:"goalwatch/1.0"`
	// RateLimit caps outbound requests per second; Burst allows short spikes
	// when several live games are checked in one tick.
	RateLimit float64 `envconfig:"NHL_API_RATE_LIMIT" default:"5"`
	Burst     int     `envconfig:"NHL_API_BURST" default:"5"`
}

// SMSConfig holds the email-to-SMS gateway settings for goal notifications.
// The fields are optional at the Config level because the display processes
// never send SMS; the notifier entrypoint calls Validate before use.
type SMSConfig struct {
	// PhoneNumber is the target number, digits only. The CLI positional
	// argument overrides it.
	PhoneNumber string `envconfig:"PHONE_NUMBER"`
	// GatewayDomain is the carrier's email-to-SMS relay domain. The
	// destination address is "<PhoneNumber>@<GatewayDomain>".
	GatewayDomain string       `envconfig:"SMS_GATEWAY_DOMAIN" default:"msg.telus.com" validate:"required,fqdn"`
	SMTPServer    string       `envconfig:"SMTP_SERVER"`
	SMTPPort      int          `envconfig:"SMTP_PORT" default:"587" validate:"min=1,max=65535"`
	SMTPUsername  string       `envconfig:"SMTP_USERNAME" validate:"omitempty,email"`
	SMTPPassword  SecretString `envconfig:"SMTP_PASSWORD"`
}

// Validate checks that the SMS delivery channel is fully configured. Called
// by the goal-notifier entrypoint only; a missing value there is a fatal
// configuration error per the startup policy.
func (c SMSConfig) Validate() error {
	missing := ""
	switch {
	case c.PhoneNumber == "":
		missing = "PHONE_NUMBER"
	case c.SMTPServer == "":
		missing = "SMTP_SERVER"
	case c.SMTPUsername == "":
		missing = "SMTP_USERNAME"
	case c.SMTPPassword.Unmask() == "":
		missing = "SMTP_PASSWORD"
	}
	if missing != "" {
		return types.NewAppError(types.ErrCodeConfigMissing,
			fmt.Sprintf("SMS delivery requires %s to be set", missing), nil)
	}
	return nil
}

// DisplayConfig holds settings for the terminal and e-ink renderers.
type DisplayConfig struct {
	// Timezone is the IANA zone used for scheduled game start times.
	Timezone string `envconfig:"DISPLAY_TIMEZONE" default:"America/Denver"`
	// OutputPath is where the e-ink renderer writes its PNG when no panel
	// hardware is driven directly (simulation mode).
	OutputPath string `envconfig:"EINK_OUTPUT_PATH" default:"nhl_scores.png"`
	// MaxGames bounds the per-day game rows that fit on the panel.
	MaxGames int `envconfig:"EINK_MAX_GAMES" default:"8" validate:"min=1"`
}
