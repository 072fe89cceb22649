package monitor

import (
	"context"

	"github.com/web3-frozen/perp-vault-dashboard/internal/yield"
)

// YieldSource fetches the normalized yield record of one vault.
// To add a venue, implement this interface and register it with the Service.
type YieldSource interface {
	// Name returns the venue name shown on the dashboard (e.g., "Hyperliquid").
	Name() string

	// FetchYield returns the live record or an error; the Service owns the
	// fallback policy.
	FetchYield(ctx context.Context) (yield.VenueYield, error)
}

// VolumeSource fetches 24h trading volume from a market-data aggregator.
type VolumeSource interface {
	Name() string

	// FetchVolume returns the 24h volume for an aggregator-specific slug.
	FetchVolume(ctx context.Context, slug string) (float64, error)
}
