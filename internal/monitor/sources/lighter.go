package sources

import (
	"context"

	"github.com/web3-frozen/perp-vault-dashboard/internal/config"
	"github.com/web3-frozen/perp-vault-dashboard/internal/yield"
)

// Lighter serves the configured placeholder record. Lighter public pools have
// no stable performance endpoint yet.
type Lighter struct {
	venue string
	mock  config.LighterMock
}

func NewLighter(venue string, mock config.LighterMock) *Lighter {
	return &Lighter{venue: venue, mock: mock}
}

func (l *Lighter) Name() string { return l.venue }

// FetchYield never fails. Missing periods are prorated from Current.
func (l *Lighter) FetchYield(context.Context) (yield.VenueYield, error) {
	return yield.Complete(yield.VenueYield{
		Venue:   l.venue,
		Current: l.mock.Current,
		Periods: l.mock.Periods,
		TVL:     l.mock.TVL,
	}), nil
}
