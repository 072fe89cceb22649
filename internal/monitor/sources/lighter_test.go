package sources

import (
	"context"
	"testing"

	"github.com/web3-frozen/perp-vault-dashboard/internal/config"
	"github.com/web3-frozen/perp-vault-dashboard/internal/yield"
)

func TestLighterFetchYield(t *testing.T) {
	l := NewLighter("Lighter", config.DefaultLighterMock())
	y, err := l.FetchYield(context.Background())
	if err != nil {
		t.Fatalf("FetchYield: %v", err)
	}
	if y.Venue != "Lighter" || y.Current != 10.2 || y.TVL != 5_000_000 {
		t.Errorf("header = %+v", y)
	}
	if y.Periods[yield.Period24h] != 12.5 || y.Periods[yield.PeriodAllTime] != 450.1 {
		t.Errorf("periods = %v", y.Periods)
	}
}

func TestLighterFillsMissingPeriods(t *testing.T) {
	mock := config.LighterMock{
		Current: 3.65,
		Periods: map[yield.PeriodKey]float64{yield.Period24h: 1},
	}
	y, _ := NewLighter("Lighter", mock).FetchYield(context.Background())
	if len(y.Periods) != 7 {
		t.Fatalf("len(Periods) = %d, want 7", len(y.Periods))
	}
	if y.Periods[yield.Period1y] != 3.65 {
		t.Errorf("1y = %v, want 3.65", y.Periods[yield.Period1y])
	}
	// The configured map must not be mutated.
	if len(mock.Periods) != 1 {
		t.Errorf("mock periods mutated: %v", mock.Periods)
	}
}
