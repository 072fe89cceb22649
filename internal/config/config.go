package config

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	infisical "github.com/infisical/go-sdk"
)

type Config struct {
	Port            string
	FrontendOrigins []string
	RedisURL        string
	RedisPassword   string
	CacheTTL        time.Duration
	PollInterval    time.Duration
	HyperliquidAPI  string
	DefiLlamaAPI    string
	DashboardAPI    string
	VenuesFile      string

	Venues  []Venue
	Chains  []Chain
	Lighter LighterMock
}

func Load() Config {
	port := envOr("PORT", "8080")
	cfg := Config{
		Port:            port,
		FrontendOrigins: splitList(envOr("FRONTEND_ORIGIN", "*")),
		RedisURL:        os.Getenv("REDIS_URL"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		CacheTTL:        durationOr("CACHE_TTL", 60*time.Second),
		PollInterval:    durationOr("POLL_INTERVAL", 60*time.Second),
		HyperliquidAPI:  envOr("HYPERLIQUID_API_URL", "https://api.hyperliquid.xyz/info"),
		DefiLlamaAPI:    envOr("DEFILLAMA_API_URL", "https://api.llama.fi"),
		DashboardAPI:    envOr("DASHBOARD_API_URL", "http://localhost:"+port+"/api"),
		VenuesFile:      os.Getenv("VENUES_FILE"),
		Venues:          DefaultVenues(),
		Chains:          DefaultChains(),
		Lighter:         DefaultLighterMock(),
	}

	// If Infisical credentials are available, fetch secrets from Infisical
	clientID := os.Getenv("INFISICAL_CLIENT_ID")
	clientSecret := os.Getenv("INFISICAL_CLIENT_SECRET")
	if clientID != "" && clientSecret != "" {
		loadFromInfisical(&cfg, clientID, clientSecret)
	}

	return cfg
}

func loadFromInfisical(cfg *Config, clientID, clientSecret string) {
	siteURL := envOr("INFISICAL_SITE_URL", "https://app.infisical.com")
	projectID := os.Getenv("INFISICAL_PROJECT_ID")
	envSlug := envOr("INFISICAL_ENV", "prod")

	if projectID == "" {
		slog.Warn("INFISICAL_PROJECT_ID not set, skipping Infisical")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := infisical.NewInfisicalClient(ctx, infisical.Config{
		SiteUrl:          siteURL,
		AutoTokenRefresh: false,
	})

	_, err := client.Auth().UniversalAuthLogin(clientID, clientSecret)
	if err != nil {
		slog.Error("infisical auth failed", "error", err)
		return
	}

	secrets := map[string]*string{
		"REDIS_URL":      &cfg.RedisURL,
		"REDIS_PASSWORD": &cfg.RedisPassword,
	}

	for key, target := range secrets {
		if *target != "" {
			continue // env var already set, skip
		}
		secret, err := client.Secrets().Retrieve(infisical.RetrieveSecretOptions{
			SecretKey:   key,
			Environment: envSlug,
			ProjectID:   projectID,
			SecretPath:  "/",
		})
		if err != nil {
			slog.Warn("failed to retrieve secret from infisical", "key", key, "error", err)
			continue
		}
		*target = secret.SecretValue
		slog.Info("loaded secret from infisical", "key", key)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
