package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/web3-frozen/perp-vault-dashboard/internal/yield"
)

type VolumeProvider interface {
	Volumes(ctx context.Context) []yield.VenueVolume
}

type YieldProvider interface {
	Yield(ctx context.Context, yieldKey string) (yield.VenueYield, bool)
}

// Volumes serves the 24h volume of every venue. It always answers 200:
// venues whose upstream failed carry their fallback value.
func Volumes(p VolumeProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(p.Volumes(r.Context()))
	}
}

// Yields serves the yield record registered under yieldKey.
func Yields(p YieldProvider, yieldKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		y, ok := p.Yield(r.Context(), yieldKey)
		if !ok {
			http.Error(w, `{"error":"unknown venue"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(y)
	}
}
