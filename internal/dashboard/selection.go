package dashboard

import (
	"strings"

	"github.com/web3-frozen/perp-vault-dashboard/internal/yield"
)

// MaxSelected bounds the number of period columns shown at once.
const MaxSelected = 3

// Selection is the ordered set of active period columns, oldest first.
// Values are immutable; Toggle returns a new Selection.
type Selection struct {
	keys []yield.PeriodKey
}

func DefaultSelection() Selection {
	return Selection{keys: []yield.PeriodKey{yield.Period24h, yield.Period7d, yield.Period1m}}
}

// ParseSelection reads a comma-separated list of period keys. Unknown and
// repeated keys are skipped; past MaxSelected the oldest are evicted.
func ParseSelection(s string) Selection {
	var sel Selection
	for _, part := range strings.Split(s, ",") {
		p, ok := yield.ParsePeriod(part)
		if !ok || sel.Contains(p) {
			continue
		}
		sel = sel.add(p)
	}
	return sel
}

// Toggle removes p when selected. Otherwise it appends p, evicting the
// oldest selection when the set is full.
func (s Selection) Toggle(p yield.PeriodKey) Selection {
	if !p.Valid() {
		return s
	}
	if s.Contains(p) {
		out := make([]yield.PeriodKey, 0, len(s.keys))
		for _, k := range s.keys {
			if k != p {
				out = append(out, k)
			}
		}
		return Selection{keys: out}
	}
	return s.add(p)
}

func (s Selection) add(p yield.PeriodKey) Selection {
	out := make([]yield.PeriodKey, 0, MaxSelected)
	keys := s.keys
	if len(keys) >= MaxSelected {
		keys = keys[len(keys)-MaxSelected+1:]
	}
	out = append(out, keys...)
	out = append(out, p)
	return Selection{keys: out}
}

func (s Selection) Contains(p yield.PeriodKey) bool {
	for _, k := range s.keys {
		if k == p {
			return true
		}
	}
	return false
}

func (s Selection) Len() int { return len(s.keys) }

// Keys returns the selection in selection order, oldest first.
func (s Selection) Keys() []yield.PeriodKey {
	out := make([]yield.PeriodKey, len(s.keys))
	copy(out, s.keys)
	return out
}

// Columns returns the selection in display order.
func (s Selection) Columns() []yield.PeriodKey {
	out := make([]yield.PeriodKey, 0, len(s.keys))
	for _, p := range yield.Periods() {
		if s.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}

// String encodes the selection for a query parameter, preserving order.
func (s Selection) String() string {
	parts := make([]string, len(s.keys))
	for i, k := range s.keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, ",")
}
