package yield

import "strings"

// PeriodKey identifies a look-back window.
type PeriodKey string

const (
	Period24h     PeriodKey = "24h"
	Period7d      PeriodKey = "7d"
	Period1m      PeriodKey = "1m"
	Period3m      PeriodKey = "3m"
	Period6m      PeriodKey = "6m"
	Period1y      PeriodKey = "1y"
	PeriodAllTime PeriodKey = "all-time"
)

const daysPerYear = 365

var periodOrder = []PeriodKey{
	Period24h, Period7d, Period1m, Period3m, Period6m, Period1y, PeriodAllTime,
}

// all-time is annualized as if it were a one-year window.
var periodDays = map[PeriodKey]int{
	Period24h:     1,
	Period7d:      7,
	Period1m:      30,
	Period3m:      90,
	Period6m:      182,
	Period1y:      365,
	PeriodAllTime: 365,
}

// Periods returns every look-back window in display order.
func Periods() []PeriodKey {
	out := make([]PeriodKey, len(periodOrder))
	copy(out, periodOrder)
	return out
}

// Days returns the window length in days, or 0 for an unknown key.
func (p PeriodKey) Days() int {
	return periodDays[p]
}

// Valid reports whether p is one of the seven known windows.
func (p PeriodKey) Valid() bool {
	_, ok := periodDays[p]
	return ok
}

// Index returns the display position of p, or -1.
func (p PeriodKey) Index() int {
	for i, k := range periodOrder {
		if k == p {
			return i
		}
	}
	return -1
}

// Label is the column header used by the dashboard. Windows longer than a day
// carry the historical "ma" suffix; the value is still the latest sample.
func (p PeriodKey) Label() string {
	switch p {
	case Period24h, PeriodAllTime:
		return string(p)
	default:
		return string(p) + " ma"
	}
}

// ParsePeriod accepts a period key in any case.
func ParsePeriod(s string) (PeriodKey, bool) {
	p := PeriodKey(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", false
	}
	return p, true
}
