package yield

import (
	"github.com/shopspring/decimal"
)

// VenueVolume is the 24h trading volume of one venue in quote-currency units.
type VenueVolume struct {
	Venue  string  `json:"dex"`
	Volume float64 `json:"volume"`
}

// VenueYield is the normalized yield view of one vault. Periods always holds
// every key returned by Periods.
type VenueYield struct {
	Venue   string                `json:"dex"`
	Current float64               `json:"current"`
	Periods map[PeriodKey]float64 `json:"periods"`
	TVL     float64               `json:"tvl"`
}

// Point is one (timestamp, decimal string) sample of an upstream history.
type Point struct {
	Time  int64
	Value string
}

// History is a time-ordered series of samples.
type History []Point

// Last parses the most recent sample. Empty histories and unparsable values
// both report false.
func (h History) Last() (decimal.Decimal, bool) {
	if len(h) == 0 {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(h[len(h)-1].Value)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Window holds the PnL and account-value histories of one look-back window.
type Window struct {
	PnL          History
	AccountValue History
}

// RawVault is an upstream vault payload, already mapped onto period keys.
// APR is a fraction (0.0729 means 7.29%).
type RawVault struct {
	APR     float64
	Windows map[PeriodKey]Window
}

var hundred = decimal.NewFromInt(100)

// ComputeVenueYield converts a raw vault payload into a VenueYield. It has no
// side effects and returns the same output for the same input.
func ComputeVenueYield(venue string, raw RawVault) VenueYield {
	current := decimal.NewFromFloat(raw.APR).Mul(hundred).InexactFloat64()

	out := VenueYield{
		Venue:   venue,
		Current: current,
		Periods: make(map[PeriodKey]float64, len(periodOrder)),
		TVL:     tvl(raw),
	}
	for _, p := range periodOrder {
		out.Periods[p] = periodYield(current, p.Days(), raw.Windows[p])
	}
	return out
}

// Fallback builds the static record served when a venue cannot be fetched.
// apr is already a percentage.
func Fallback(venue string, apr, tvl float64) VenueYield {
	out := VenueYield{
		Venue:   venue,
		Current: apr,
		Periods: make(map[PeriodKey]float64, len(periodOrder)),
		TVL:     tvl,
	}
	for _, p := range periodOrder {
		out.Periods[p] = Prorate(apr, p.Days())
	}
	return out
}

// Complete fills any missing period of y with the prorated current APR.
func Complete(y VenueYield) VenueYield {
	periods := make(map[PeriodKey]float64, len(periodOrder))
	for _, p := range periodOrder {
		if v, ok := y.Periods[p]; ok {
			periods[p] = v
			continue
		}
		periods[p] = Prorate(y.Current, p.Days())
	}
	y.Periods = periods
	return y
}

// RealizedYield returns the latest PnL over the latest account value as a
// percentage. It reports false when either history is empty or the account
// value is zero.
func RealizedYield(w Window) (float64, bool) {
	pnl, ok := w.PnL.Last()
	if !ok {
		return 0, false
	}
	value, ok := w.AccountValue.Last()
	if !ok || value.IsZero() {
		return 0, false
	}
	return pnl.Div(value).Mul(hundred).InexactFloat64(), true
}

// Prorate scales an annual percentage down to a window of days.
func Prorate(current float64, days int) float64 {
	return current * (float64(days) / daysPerYear)
}

// Annualize scales a window return of days up to a yearly rate.
func Annualize(raw float64, days int) float64 {
	return raw * (daysPerYear / float64(days))
}

// A zero or missing realized return is treated as insufficient signal and
// backfilled from the headline APR.
func periodYield(current float64, days int, w Window) float64 {
	raw, ok := RealizedYield(w)
	if !ok || raw == 0 {
		return Prorate(current, days)
	}
	return Annualize(raw, days)
}

func tvl(raw RawVault) float64 {
	v, ok := raw.Windows[PeriodAllTime].AccountValue.Last()
	if !ok {
		return 0
	}
	return v.InexactFloat64()
}
