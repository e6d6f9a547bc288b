// Package ven provides the OpenADR3 client for the virtual end node
// role: the party that consumes programs and events and reports back its
// own telemetry and subscriptions.
package ven

import (
	"context"

	"github.com/elaadnl/openadr3-go/auth"
	"github.com/elaadnl/openadr3-go/vtn"
)

// Config wires a virtual end node client to a VTN.
type Config struct {
	// BaseURL is the root of the VTN's OpenADR3 interface.
	BaseURL string

	// Auth configures the client credentials grant. When Auth.TokenURL is
	// empty the factory asks the VTN's discovery endpoint for it.
	Auth auth.Config

	// HTTP tunes timeouts and TLS of the VTN connection.
	HTTP vtn.Options
}

// FromEnv builds a Config from OADR3_* environment variables.
func FromEnv() (Config, error) {
	authCfg, err := auth.FromEnv()
	if err != nil {
		return Config{}, err
	}
	baseURL, err := vtn.BaseURLFromEnv()
	if err != nil {
		return Config{}, err
	}
	return Config{BaseURL: baseURL, Auth: authCfg}, nil
}

// Client bundles the VTN collections with virtual end node access:
// events and programs read-only, reports, VENs, and subscriptions
// read-write.
type Client struct {
	Events        vtn.EventsReader
	Programs      vtn.ProgramsReader
	Reports       vtn.Reports
	Vens          vtn.Vens
	Subscriptions vtn.Subscriptions
}

// NewHTTPClient builds a virtual end node client talking to the VTN at
// cfg.BaseURL. When no token URL is configured it is discovered from the
// VTN before the token provider is built.
func NewHTTPClient(ctx context.Context, cfg Config) (*Client, error) {
	conn, err := vtn.Dial(ctx, cfg.BaseURL, cfg.Auth, cfg.HTTP)
	if err != nil {
		return nil, err
	}
	return &Client{
		Events:        vtn.NewEventsClient(conn),
		Programs:      vtn.NewProgramsClient(conn),
		Reports:       vtn.NewReportsClient(conn),
		Vens:          vtn.NewVensClient(conn),
		Subscriptions: vtn.NewSubscriptionsClient(conn),
	}, nil
}
