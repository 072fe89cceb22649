package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/web3-frozen/perp-vault-dashboard/internal/cache"
	"github.com/web3-frozen/perp-vault-dashboard/internal/config"
	"github.com/web3-frozen/perp-vault-dashboard/internal/metrics"
	"github.com/web3-frozen/perp-vault-dashboard/internal/yield"
)

type registeredYield struct {
	venue config.Venue
	src   YieldSource
}

// Service is the adapter layer between upstream sources and the HTTP API.
// Every call returns a well-formed value: upstream failures are logged and
// replaced by the venue's static fallback, and live results are memoized
// under the source's cache key.
type Service struct {
	logger *slog.Logger
	cache  cache.Store
	ttl    time.Duration
	venues []config.Venue
	volume VolumeSource
	yields map[string]registeredYield
}

func NewService(logger *slog.Logger, store cache.Store, ttl time.Duration, venues []config.Venue, volume VolumeSource) *Service {
	return &Service{
		logger: logger,
		cache:  store,
		ttl:    ttl,
		venues: venues,
		volume: volume,
		yields: make(map[string]registeredYield),
	}
}

// Register binds a yield source to the venue configured under yieldKey.
func (s *Service) Register(yieldKey string, src YieldSource) error {
	for _, v := range s.venues {
		if v.YieldKey == yieldKey {
			s.yields[yieldKey] = registeredYield{venue: v, src: src}
			s.logger.Info("registered yield source", "key", yieldKey, "venue", v.Name)
			return nil
		}
	}
	return fmt.Errorf("no venue configured for yield key %q", yieldKey)
}

// Volumes returns one entry per configured venue, in configuration order.
func (s *Service) Volumes(ctx context.Context) []yield.VenueVolume {
	var cached []yield.VenueVolume
	if s.cached(ctx, config.VolumesKey, &cached) {
		return cached
	}

	out := make([]yield.VenueVolume, 0, len(s.venues))
	live := true
	for _, v := range s.venues {
		vol, ok := s.venueVolume(ctx, v)
		if !ok {
			live = false
		}
		metrics.VenueVolume.WithLabelValues(v.Name).Set(vol)
		out = append(out, yield.VenueVolume{Venue: v.Name, Volume: vol})
	}

	// Lists containing a fallback value are not memoized so the next
	// request retries the failed venue.
	if live {
		s.store(ctx, config.VolumesKey, out)
	}
	return out
}

// venueVolume reports false when a failed fetch was replaced by the fallback.
// Venues without a slug always serve their static value.
func (s *Service) venueVolume(ctx context.Context, v config.Venue) (float64, bool) {
	if v.VolumeSlug == "" || s.volume == nil {
		return v.FallbackVolume, true
	}

	source := s.volume.Name() + ":" + v.VolumeSlug
	start := time.Now()
	vol, err := s.volume.FetchVolume(ctx, v.VolumeSlug)
	s.observe(source, start, err)
	if err != nil {
		s.logger.Error("fetch volume failed, using fallback", "venue", v.Name, "error", err)
		metrics.FallbackTotal.WithLabelValues(source).Inc()
		return v.FallbackVolume, false
	}
	return vol, true
}

// Yield returns the record for yieldKey. The bool is false only when no
// source is registered under that key.
func (s *Service) Yield(ctx context.Context, yieldKey string) (yield.VenueYield, bool) {
	reg, ok := s.yields[yieldKey]
	if !ok {
		return yield.VenueYield{}, false
	}

	var cached yield.VenueYield
	if s.cached(ctx, yieldKey, &cached) {
		return cached, true
	}

	start := time.Now()
	y, err := reg.src.FetchYield(ctx)
	s.observe(yieldKey, start, err)
	if err != nil {
		s.logger.Error("fetch yield failed, using fallback", "venue", reg.venue.Name, "error", err)
		metrics.FallbackTotal.WithLabelValues(yieldKey).Inc()
		return yield.Fallback(reg.venue.Name, reg.venue.FallbackAPR, reg.venue.FallbackTVL), true
	}

	metrics.VenueAPR.WithLabelValues(y.Venue).Set(y.Current)
	metrics.VenueTVL.WithLabelValues(y.Venue).Set(y.TVL)
	s.store(ctx, yieldKey, y)
	return y, true
}

// YieldKeys returns the registered yield keys in venue order.
func (s *Service) YieldKeys() []string {
	keys := make([]string, 0, len(s.yields))
	for _, v := range s.venues {
		if _, ok := s.yields[v.YieldKey]; ok {
			keys = append(keys, v.YieldKey)
		}
	}
	return keys
}

func (s *Service) observe(source string, start time.Time, err error) {
	metrics.FetchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.FetchTotal.WithLabelValues(source, status).Inc()
}

func (s *Service) cached(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	b, ok := s.cache.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		s.logger.Warn("discarding unreadable cache entry", "key", key, "error", err)
		return false
	}
	metrics.CacheHitsTotal.WithLabelValues(key).Inc()
	return true
}

func (s *Service) store(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("marshal cache entry failed", "key", key, "error", err)
		return
	}
	s.cache.Set(ctx, key, b, s.ttl)
}
