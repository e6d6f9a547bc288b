package vtn

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/elaadnl/openadr3-go/auth"
)

const defaultHTTPTimeout = 30 * time.Second

// Options tunes the HTTP behavior of a VTN client.
type Options struct {
	// HTTPTimeout bounds each request to the VTN.
	HTTPTimeout time.Duration

	// TLSSkipVerify disables certificate verification. Not recommended
	// outside of development setups.
	TLSSkipVerify bool

	// CABundlePEM holds a custom CA certificate bundle for VTNs behind a
	// self-signed CA. The bundle must contain the full chain, including
	// intermediates.
	CABundlePEM []byte

	// RequireHTTPS rejects plain HTTP base URLs. OpenADR 3.1 mandates
	// HTTPS on all VTN traffic.
	RequireHTTPS bool

	Logger *log.Logger
}

// Client is the HTTP plumbing shared by the resource clients: base URL,
// bearer authentication, TLS options, and response decoding.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// NewClient builds a VTN client rooted at baseURL. Requests carry a
// bearer token from the provider; a nil provider makes an anonymous
// client, used only for the discovery endpoint.
func NewClient(baseURL string, tokens *auth.Provider, opts Options) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("vtn base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse vtn base URL: %w", err)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return nil, fmt.Errorf("vtn base URL %q must be http(s)", baseURL)
	}
	if opts.RequireHTTPS && parsed.Scheme != "https" {
		return nil, fmt.Errorf("https is enforced, refusing plain http URL %q", baseURL)
	}

	tlsCfg := &tls.Config{}
	if opts.TLSSkipVerify {
		tlsCfg.InsecureSkipVerify = true
	}
	if len(opts.CABundlePEM) > 0 {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(opts.CABundlePEM) {
			return nil, errors.New("no certificates found in CA bundle")
		}
		tlsCfg.RootCAs = pool
	}

	timeout := opts.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	var transport http.RoundTripper = &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: tlsCfg,
	}
	if tokens != nil {
		transport = tokens.Transport(transport)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout, Transport: transport},
		logger:  logger.WithPrefix("vtn"),
	}, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	op := method + " " + path

	u := c.baseURL + "/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("request", "method", method, "url", u)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(op, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) statusError(op string, resp *http.Response) error {
	se := &StatusError{Op: op, StatusCode: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && len(data) > 0 {
		var problem Problem
		if json.Unmarshal(data, &problem) == nil {
			se.Problem = &problem
		}
	}
	c.logger.Debug("vtn error response", "op", op, "status", resp.StatusCode)
	return se
}
