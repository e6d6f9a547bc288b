package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// GrantFunc performs a single client credentials grant. It exists so tests
// can stub the token endpoint round-trip.
type GrantFunc func(ctx context.Context) (*oauth2.Token, error)

// Provider supplies a currently valid bearer token for outgoing VTN calls,
// minimizing round-trips to the token endpoint.
//
// A single token is cached and reused until it comes within the configured
// leeway of its expiry; the next call then performs one new grant. Callers
// racing on an empty or expired cache serialize on an internal lock, so at
// most one grant request is in flight at a time. The provider never retries
// a failed grant; a failure leaves the prior cache state untouched and
// surfaces to the caller.
type Provider struct {
	mu     sync.Mutex
	cfg    Config
	conf   *clientcredentials.Config
	grant  GrantFunc
	logger *log.Logger
	now    func() time.Time

	token *oauth2.Token
}

// NewProvider constructs a Provider from the given configuration.
func NewProvider(cfg Config) (*Provider, error) {
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	p := &Provider{
		cfg:    cfg,
		logger: cfg.Logger.WithPrefix("oauth"),
		now:    time.Now,
	}
	// One Config for the provider's lifetime: under AuthStyleAuto the
	// oauth2 package remembers which client auth style the endpoint
	// accepted on the Config itself, so a refresh stays a single request.
	p.conf = &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       cfg.Scopes,
		AuthStyle:    cfg.oauthStyle(),
	}
	if cfg.Audience != "" {
		p.conf.EndpointParams = url.Values{"audience": {cfg.Audience}}
	}
	p.grant = p.fetchGrant
	return p, nil
}

// Token returns a valid access token, performing a client credentials
// grant when no still-valid token is cached.
func (p *Provider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != nil && p.valid(p.token) {
		p.logger.Debug("returning cached access token")
		return p.token.AccessToken, nil
	}

	p.logger.Debug("fetching new access token", "token_url", p.cfg.TokenURL)
	tok, err := p.grant(ctx)
	if err != nil {
		return "", mapGrantError(err)
	}
	if tok.AccessToken == "" {
		return "", newError(ErrCodeBadTokenResponse, errors.New("access token missing from token response"))
	}

	tok.Expiry = p.expiry(tok)
	p.token = tok
	return tok.AccessToken, nil
}

// Header returns a ready-to-use Authorization header value.
func (p *Provider) Header(ctx context.Context) (string, error) {
	tok, err := p.Token(ctx)
	if err != nil {
		return "", err
	}
	return "Bearer " + tok, nil
}

// Transport returns a RoundTripper that attaches a bearer token to every
// request. A nil base uses http.DefaultTransport.
func (p *Provider) Transport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &bearerTransport{provider: p, base: base}
}

// valid reports whether the token is still usable, leaving the configured
// leeway before the declared expiry.
func (p *Provider) valid(tok *oauth2.Token) bool {
	return p.now().Before(tok.Expiry.Add(-p.cfg.Leeway))
}

// expiry resolves the absolute expiry of a freshly issued token. The
// oauth2 package fills Expiry from expires_in when the endpoint declares
// one; otherwise fall back to the token's exp claim when it parses as a
// JWT, and finally to the configured lifetime.
func (p *Provider) expiry(tok *oauth2.Token) time.Time {
	if !tok.Expiry.IsZero() {
		return tok.Expiry
	}
	if parsed, err := jwt.ParseInsecure([]byte(tok.AccessToken)); err == nil {
		if exp := parsed.Expiration(); !exp.IsZero() {
			p.logger.Debug("token expiry taken from exp claim", "expiry", exp)
			return exp
		}
	}
	return p.now().Add(p.cfg.FallbackLifetime)
}

func (p *Provider) fetchGrant(ctx context.Context) (*oauth2.Token, error) {
	grantCtx, cancel := context.WithTimeout(ctx, p.cfg.GrantTimeout)
	defer cancel()
	return p.conf.Token(grantCtx)
}

// mapGrantError classifies errors from the grant round-trip. A response
// from the endpoint (any status) is a rejection or a malformed body;
// everything else never reached the endpoint.
func mapGrantError(err error) error {
	var retrieve *oauth2.RetrieveError
	if errors.As(err, &retrieve) {
		return newError(ErrCodeGrantRejected, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return newError(ErrCodeEndpointUnreachable, err)
	}
	if strings.Contains(err.Error(), "oauth2:") {
		return newError(ErrCodeBadTokenResponse, err)
	}
	return newError(ErrCodeEndpointUnreachable, err)
}

type bearerTransport struct {
	provider *Provider
	base     http.RoundTripper
}

// RoundTrip attaches the bearer token to the request. Any Authorization
// header already present is replaced.
func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	header, err := t.provider.Header(req.Context())
	if err != nil {
		return nil, err
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", header)
	return t.base.RoundTrip(clone)
}
