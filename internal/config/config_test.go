package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/web3-frozen/perp-vault-dashboard/internal/yield"
)

func TestEnvOr(t *testing.T) {
	// Unset key returns fallback
	os.Unsetenv("TEST_ENVOR_KEY")
	if got := envOr("TEST_ENVOR_KEY", "default"); got != "default" {
		t.Errorf("envOr unset key = %q, want %q", got, "default")
	}

	// Set key returns value
	os.Setenv("TEST_ENVOR_KEY", "custom")
	defer os.Unsetenv("TEST_ENVOR_KEY")
	if got := envOr("TEST_ENVOR_KEY", "default"); got != "custom" {
		t.Errorf("envOr set key = %q, want %q", got, "custom")
	}

	// Empty string returns fallback
	os.Setenv("TEST_ENVOR_KEY", "")
	if got := envOr("TEST_ENVOR_KEY", "fallback"); got != "fallback" {
		t.Errorf("envOr empty key = %q, want %q", got, "fallback")
	}
}

func TestDurationOr(t *testing.T) {
	t.Setenv("TEST_DURATION_KEY", "15s")
	if got := durationOr("TEST_DURATION_KEY", time.Minute); got != 15*time.Second {
		t.Errorf("durationOr = %v, want 15s", got)
	}

	t.Setenv("TEST_DURATION_KEY", "soon")
	if got := durationOr("TEST_DURATION_KEY", time.Minute); got != time.Minute {
		t.Errorf("durationOr invalid = %v, want 1m", got)
	}

	t.Setenv("TEST_DURATION_KEY", "-5s")
	if got := durationOr("TEST_DURATION_KEY", time.Minute); got != time.Minute {
		t.Errorf("durationOr negative = %v, want 1m", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	// Clear all relevant env vars
	for _, k := range []string{"PORT", "FRONTEND_ORIGIN", "REDIS_URL", "REDIS_PASSWORD", "CACHE_TTL", "POLL_INTERVAL", "DASHBOARD_API_URL", "INFISICAL_CLIENT_ID", "INFISICAL_CLIENT_SECRET"} {
		os.Unsetenv(k)
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if len(cfg.FrontendOrigins) != 1 || cfg.FrontendOrigins[0] != "*" {
		t.Errorf("FrontendOrigins = %v, want [*]", cfg.FrontendOrigins)
	}
	if cfg.RedisURL != "" {
		t.Errorf("RedisURL = %q, want empty", cfg.RedisURL)
	}
	if cfg.CacheTTL != time.Minute || cfg.PollInterval != time.Minute {
		t.Errorf("CacheTTL = %v, PollInterval = %v, want 1m", cfg.CacheTTL, cfg.PollInterval)
	}
	if cfg.DashboardAPI != "http://localhost:8080/api" {
		t.Errorf("DashboardAPI = %q", cfg.DashboardAPI)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FRONTEND_ORIGIN", "http://localhost:3000, https://vaults.example.com")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CACHE_TTL", "30s")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9090")
	}
	if len(cfg.FrontendOrigins) != 2 || cfg.FrontendOrigins[1] != "https://vaults.example.com" {
		t.Errorf("FrontendOrigins = %v", cfg.FrontendOrigins)
	}
	if cfg.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("RedisURL = %q", cfg.RedisURL)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v, want 30s", cfg.CacheTTL)
	}
	if cfg.DashboardAPI != "http://localhost:9090/api" {
		t.Errorf("DashboardAPI = %q", cfg.DashboardAPI)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"no venues", func(c *Config) { c.Venues = nil }, "no venues"},
		{"duplicate name", func(c *Config) {
			c.Venues[1].Name = c.Venues[0].Name
		}, "duplicate venue"},
		{"duplicate yield key", func(c *Config) {
			c.Venues[1].YieldKey = c.Venues[0].YieldKey
		}, "yield key"},
		{"volumes key reserved", func(c *Config) {
			c.Venues[0].YieldKey = VolumesKey
		}, "yield key"},
		{"bad address", func(c *Config) {
			c.Venues[0].VaultAddress = "0x123"
		}, "invalid vault address"},
		{"negative fallback", func(c *Config) {
			c.Venues[0].FallbackVolume = -1
		}, "non-negative"},
		{"bad chain", func(c *Config) {
			c.Chains[0].ID = 0
		}, "invalid chain"},
		{"bad lighter period", func(c *Config) {
			c.Lighter.Periods["2y"] = 1
		}, "unknown period"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Venues: DefaultVenues(), Chains: DefaultChains(), Lighter: DefaultLighterMock()}
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadVenues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "venues.yaml")
	body := `
venues:
  - name: Hyperliquid
    yield_key: hlYields
    yield_path: /yields
    vault_address: "0xdfc24b077bc1425ad1dea75bcb6f8158e10df303"
    vault_url: https://app.hyperliquid.xyz/vaults/0xdfc24b077bc1425ad1dea75bcb6f8158e10df303
    asset: USDC
    volume_slug: hyperliquid
    fallback_volume: 1000
    fallback_apr: 5
    fallback_tvl: 2000
lighter:
  current: 3.5
  tvl: 100
  periods:
    24h: 1.5
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := Config{Venues: DefaultVenues(), Chains: DefaultChains(), Lighter: DefaultLighterMock()}
	if err := cfg.LoadVenues(path); err != nil {
		t.Fatalf("LoadVenues: %v", err)
	}
	if len(cfg.Venues) != 1 || cfg.Venues[0].FallbackVolume != 1000 {
		t.Errorf("Venues = %+v", cfg.Venues)
	}
	if len(cfg.Chains) != 2 {
		t.Errorf("Chains should keep defaults, got %d", len(cfg.Chains))
	}
	if cfg.Lighter.Current != 3.5 || cfg.Lighter.Periods[yield.Period24h] != 1.5 {
		t.Errorf("Lighter = %+v", cfg.Lighter)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadVenuesMissingFile(t *testing.T) {
	cfg := Config{}
	if err := cfg.LoadVenues(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestVenueLookup(t *testing.T) {
	cfg := Config{Venues: DefaultVenues()}
	v, ok := cfg.Venue(HyperliquidKey)
	if !ok || v.Name != "Hyperliquid" {
		t.Errorf("Venue(hlYields) = %+v, %v", v, ok)
	}
	if _, ok := cfg.Venue("nope"); ok {
		t.Error("Venue(nope) should not be found")
	}
	if got := v.Vault().Hex(); !strings.EqualFold(got, v.VaultAddress) {
		t.Errorf("Vault() = %s, want %s", got, v.VaultAddress)
	}
}

func TestChainHexID(t *testing.T) {
	if got := DefaultChains()[0].HexID(); got != "0xa4b1" {
		t.Errorf("HexID = %q, want 0xa4b1", got)
	}
}
