package auth

import (
	"testing"
	"time"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("OADR3_TOKEN_URL", "https://auth.example/token")
	t.Setenv("OADR3_CLIENT_ID", "bl-client")
	t.Setenv("OADR3_CLIENT_SECRET", "secret")
	t.Setenv("OADR3_SCOPES", "read_all,write_events")
	t.Setenv("OADR3_AUDIENCE", "https://vtn.example")
	t.Setenv("OADR3_TOKEN_LEEWAY", "45s")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.TokenURL != "https://auth.example/token" {
		t.Fatalf("unexpected token URL %q", cfg.TokenURL)
	}
	if len(cfg.Scopes) != 2 || cfg.Scopes[0] != "read_all" || cfg.Scopes[1] != "write_events" {
		t.Fatalf("unexpected scopes %v", cfg.Scopes)
	}
	if cfg.Audience != "https://vtn.example" {
		t.Fatalf("unexpected audience %q", cfg.Audience)
	}
	if cfg.Leeway != 45*time.Second {
		t.Fatalf("unexpected leeway %v", cfg.Leeway)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := Config{
		TokenURL:     "https://auth.example/token",
		ClientID:     "id",
		ClientSecret: "secret",
	}
	cfg.normalize()

	if cfg.Leeway != defaultLeeway {
		t.Fatalf("unexpected default leeway %v", cfg.Leeway)
	}
	if cfg.FallbackLifetime != defaultFallbackLifetime {
		t.Fatalf("unexpected default fallback lifetime %v", cfg.FallbackLifetime)
	}
	if cfg.GrantTimeout != defaultGrantTimeout {
		t.Fatalf("unexpected default grant timeout %v", cfg.GrantTimeout)
	}
	if cfg.AuthStyle != AuthStyleAuto {
		t.Fatalf("unexpected default auth style %q", cfg.AuthStyle)
	}
}
