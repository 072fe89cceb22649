package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/web3-frozen/perp-vault-dashboard/internal/cache"
	"github.com/web3-frozen/perp-vault-dashboard/internal/config"
	"github.com/web3-frozen/perp-vault-dashboard/internal/dashboard"
	"github.com/web3-frozen/perp-vault-dashboard/internal/handler"
	"github.com/web3-frozen/perp-vault-dashboard/internal/middleware"
	"github.com/web3-frozen/perp-vault-dashboard/internal/monitor"
	"github.com/web3-frozen/perp-vault-dashboard/internal/monitor/sources"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	cfg := config.Load()

	if cfg.VenuesFile != "" {
		if err := cfg.LoadVenues(cfg.VenuesFile); err != nil {
			logger.Error("failed to load venues file", "path", cfg.VenuesFile, "error", err)
			os.Exit(1)
		}
		logger.Info("venues loaded", "path", cfg.VenuesFile, "venues", len(cfg.Venues))
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Response cache: Redis when configured (retry up to 30s for
	// ExternalSecret to sync), in-process otherwise.
	var store cache.Store
	if cfg.RedisURL != "" {
		var rc *cache.Redis
		var err error
		for i := 0; i < 6; i++ {
			rc, err = cache.NewRedis(cfg.RedisURL, cfg.RedisPassword)
			if err == nil {
				break
			}
			logger.Warn("redis not ready, retrying...", "attempt", i+1, "error", err)
			time.Sleep(5 * time.Second)
		}
		if err != nil {
			logger.Error("failed to connect to redis after retries", "error", err)
			os.Exit(1)
		}
		store = rc
		logger.Info("redis connected for response cache")
	} else {
		mem, err := cache.NewMemory()
		if err != nil {
			logger.Error("failed to create memory cache", "error", err)
			os.Exit(1)
		}
		store = mem
		logger.Info("using in-process response cache")
	}
	defer store.Close()

	// Adapters
	svc := monitor.NewService(logger, store, cfg.CacheTTL, cfg.Venues, sources.NewDefiLlama(cfg.DefiLlamaAPI))
	registered := make(map[string]bool)
	for _, v := range cfg.Venues {
		var src monitor.YieldSource
		switch v.YieldKey {
		case config.HyperliquidKey:
			src = sources.NewHyperliquid(cfg.HyperliquidAPI, v.Name, v.Vault())
		case config.LighterYieldsKey:
			src = sources.NewLighter(v.Name, cfg.Lighter)
		default:
			logger.Warn("no yield source for venue", "venue", v.Name, "key", v.YieldKey)
			continue
		}
		if err := svc.Register(v.YieldKey, src); err != nil {
			logger.Error("failed to register yield source", "error", err)
			os.Exit(1)
		}
		registered[v.YieldKey] = true
	}

	// Dashboard polls the adapters through the public API.
	client := dashboard.NewClient(cfg.DashboardAPI)
	poller := dashboard.NewPoller(logger, cfg.PollInterval)
	poller.Register(config.VolumesKey, client.FetchFunc("/volumes"))
	for _, v := range cfg.Venues {
		if registered[v.YieldKey] {
			poller.Register(v.YieldKey, client.FetchFunc(v.YieldPath))
		}
	}

	// HTTP routes
	r := chi.NewRouter()
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.FrontendOrigins))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", handler.Health())
	r.Get("/readyz", handler.Ready(store))
	r.Get("/", handler.Dashboard(poller, cfg.Venues, cfg.Chains, logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/volumes", handler.Volumes(svc))
		for _, v := range cfg.Venues {
			if registered[v.YieldKey] {
				r.Get(v.YieldPath, handler.Yields(svc, v.YieldKey))
			}
		}
		r.Get("/venues", handler.Venues(cfg.Venues))
		r.Get("/chains", handler.Chains(cfg.Chains))
		r.Get("/dashboard", handler.DashboardJSON(poller, cfg.Venues))
		r.Post("/refresh", handler.Refresh(poller))
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Listen before polling so the first poll can reach the API.
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		logger.Error("failed to listen", "addr", srv.Addr, "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()
	go poller.Run(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down gracefully")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
