package auth

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
)

const (
	defaultLeeway           = 30 * time.Second
	defaultFallbackLifetime = time.Hour
	defaultGrantTimeout     = 10 * time.Second

	envPrefix = "OADR3_"
)

// ClientAuthStyle selects how client credentials are presented to the
// token endpoint.
type ClientAuthStyle string

const (
	// AuthStyleAuto probes the endpoint and remembers what worked.
	AuthStyleAuto ClientAuthStyle = "auto"
	// AuthStyleBasic sends id and secret as an HTTP Basic header.
	AuthStyleBasic ClientAuthStyle = "basic"
	// AuthStyleBody sends client_id and client_secret in the form body.
	AuthStyleBody ClientAuthStyle = "body"
)

// Config describes how the provider obtains access tokens.
type Config struct {
	// TokenURL is the OAuth2 token endpoint of the authorization server.
	TokenURL string `env:"TOKEN_URL"`

	// ClientID and ClientSecret authenticate the client credentials grant.
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`

	// Scopes to request with the token. Comma-delimited in the environment.
	Scopes []string `env:"SCOPES"`

	// Audience to request with the token, for authorization servers that
	// require one. Empty requests no audience.
	Audience string `env:"AUDIENCE"`

	// AuthStyle selects HTTP Basic or body-encoded client authentication.
	AuthStyle ClientAuthStyle `env:"AUTH_STYLE"`

	// Leeway forces a refresh this long before the declared expiry, so a
	// token never expires mid-flight.
	Leeway time.Duration `env:"TOKEN_LEEWAY"`

	// FallbackLifetime bounds the cached lifetime of tokens whose
	// response declared no expiry and whose token carries no exp claim.
	FallbackLifetime time.Duration `env:"TOKEN_FALLBACK_LIFETIME"`

	// GrantTimeout bounds each request to the token endpoint.
	GrantTimeout time.Duration `env:"GRANT_TIMEOUT"`

	Logger *log.Logger `env:"-"`
}

// FromEnv builds a Config from OADR3_* environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, newError(ErrCodeConfig, err)
	}
	return cfg, nil
}

// normalize sets default values for optional fields.
func (c *Config) normalize() {
	if c.AuthStyle == "" {
		c.AuthStyle = AuthStyleAuto
	}
	if c.Leeway <= 0 {
		c.Leeway = defaultLeeway
	}
	if c.FallbackLifetime <= 0 {
		c.FallbackLifetime = defaultFallbackLifetime
	}
	if c.GrantTimeout <= 0 {
		c.GrantTimeout = defaultGrantTimeout
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
}

// validate ensures the configuration is usable before any network call.
func (c Config) validate() error {
	switch {
	case c.TokenURL == "":
		return newError(ErrCodeConfig, errors.New("token URL is required"))
	case c.ClientID == "":
		return newError(ErrCodeConfig, errors.New("client id is required"))
	case c.ClientSecret == "":
		return newError(ErrCodeConfig, errors.New("client secret is required"))
	}
	switch c.AuthStyle {
	case AuthStyleAuto, AuthStyleBasic, AuthStyleBody:
		return nil
	}
	return newError(ErrCodeConfig, errors.New("unknown auth style "+string(c.AuthStyle)))
}

func (c Config) oauthStyle() oauth2.AuthStyle {
	switch c.AuthStyle {
	case AuthStyleBasic:
		return oauth2.AuthStyleInHeader
	case AuthStyleBody:
		return oauth2.AuthStyleInParams
	default:
		return oauth2.AuthStyleAutoDetect
	}
}
