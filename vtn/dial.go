package vtn

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/elaadnl/openadr3-go/auth"
)

type envConfig struct {
	BaseURL string `env:"VTN_URL"`
}

// BaseURLFromEnv reads the VTN base URL from OADR3_VTN_URL.
func BaseURLFromEnv() (string, error) {
	var cfg envConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "OADR3_"}); err != nil {
		return "", fmt.Errorf("parse vtn environment: %w", err)
	}
	return cfg.BaseURL, nil
}

// Dial opens an authenticated connection to the VTN at baseURL. When the
// auth configuration carries no token URL, it is discovered from the
// VTN's auth/server endpoint first.
func Dial(ctx context.Context, baseURL string, authCfg auth.Config, opts Options) (*Client, error) {
	if authCfg.TokenURL == "" {
		anon, err := NewClient(baseURL, nil, opts)
		if err != nil {
			return nil, err
		}
		info, err := anon.AuthServer(ctx)
		if err != nil {
			return nil, fmt.Errorf("discover token endpoint: %w", err)
		}
		authCfg.TokenURL = info.TokenURL
	}

	tokens, err := auth.NewProvider(authCfg)
	if err != nil {
		return nil, err
	}
	return NewClient(baseURL, tokens, opts)
}
