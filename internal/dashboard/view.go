package dashboard

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/web3-frozen/perp-vault-dashboard/internal/config"
	"github.com/web3-frozen/perp-vault-dashboard/internal/yield"
)

type State string

const (
	StateLoading State = "loading"
	StateError   State = "error"
	StateReady   State = "ready"
)

// Sort keys accepted besides the period keys.
const (
	SortVolume  = "volume"
	SortTVL     = "tvl"
	SortCurrent = "current"
)

// Row joins one venue's volume and yield with its static metadata.
type Row struct {
	Venue          string            `json:"venue"`
	Volume         *float64          `json:"volume"`
	Yield          *yield.VenueYield `json:"yield_data"`
	InvestURL      string            `json:"invest_url"`
	SupportedAsset string            `json:"supported_asset"`
}

// Period returns the yield for p, if known.
func (r Row) Period(p yield.PeriodKey) (float64, bool) {
	if r.Yield == nil {
		return 0, false
	}
	v, ok := r.Yield.Periods[p]
	return v, ok
}

func (r Row) PeriodCell(p yield.PeriodKey) string {
	v, ok := r.Period(p)
	if !ok {
		return NotAvailable
	}
	return FormatPercent(v)
}

func (r Row) VolumeCell() string {
	if r.Volume == nil {
		return NotAvailable
	}
	return FormatVolume(*r.Volume)
}

func (r Row) CurrentCell() string {
	if r.Yield == nil {
		return NotAvailable
	}
	return FormatPercent(r.Yield.Current)
}

func (r Row) TVLCell() string {
	if r.Yield == nil {
		return NotAvailable
	}
	return FormatVolume(r.Yield.TVL)
}

// sortValue returns the numeric value used to order rows by key.
func (r Row) sortValue(key string) (float64, bool) {
	switch key {
	case SortVolume:
		if r.Volume == nil {
			return 0, false
		}
		return *r.Volume, true
	case SortTVL:
		if r.Yield == nil {
			return 0, false
		}
		return r.Yield.TVL, true
	case SortCurrent:
		if r.Yield == nil {
			return 0, false
		}
		return r.Yield.Current, true
	default:
		return r.Period(yield.PeriodKey(key))
	}
}

// View is everything the page needs for one render.
type View struct {
	State     State             `json:"state"`
	Error     string            `json:"error,omitempty"`
	Periods   []yield.PeriodKey `json:"periods"`
	Selection Selection         `json:"-"`
	Sort      string            `json:"sort,omitempty"`
	Rows      []Row             `json:"rows"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ValidSortKey reports whether key can order the table.
func ValidSortKey(key string) bool {
	switch key {
	case SortVolume, SortTVL, SortCurrent:
		return true
	}
	return yield.PeriodKey(key).Valid()
}

// Build merges the latest snapshot of every key into a view. It is pure: the
// same snapshot always yields the same view.
func Build(snap map[string]Entry, venues []config.Venue, sel Selection, sortKey string) View {
	if !ValidSortKey(sortKey) {
		sortKey = ""
	}
	v := View{
		Periods:   sel.Columns(),
		Selection: sel,
		Sort:      sortKey,
		Rows:      []Row{},
	}

	var failed []string
	for key, e := range snap {
		if !e.Loaded {
			v.State = StateLoading
			return v
		}
		if e.Err != nil {
			failed = append(failed, key)
		}
		if e.UpdatedAt.After(v.UpdatedAt) {
			v.UpdatedAt = e.UpdatedAt
		}
	}
	if len(failed) > 0 {
		sort.Strings(failed)
		v.State = StateError
		v.Error = "failed to load " + strings.Join(failed, ", ")
		return v
	}

	var volumes []yield.VenueVolume
	if e, ok := snap[config.VolumesKey]; ok {
		if err := json.Unmarshal(e.Data, &volumes); err != nil {
			v.State = StateError
			v.Error = fmt.Sprintf("decode %s: %v", config.VolumesKey, err)
			return v
		}
	}

	for _, venue := range venues {
		row := Row{
			Venue:          venue.Name,
			InvestURL:      venue.VaultURL,
			SupportedAsset: venue.Asset,
		}
		for _, vol := range volumes {
			if vol.Venue == venue.Name {
				volume := vol.Volume
				row.Volume = &volume
				break
			}
		}
		if e, ok := snap[venue.YieldKey]; ok {
			var y yield.VenueYield
			if err := json.Unmarshal(e.Data, &y); err != nil {
				v.State = StateError
				v.Error = fmt.Sprintf("decode %s: %v", venue.YieldKey, err)
				v.Rows = []Row{}
				return v
			}
			if y.Venue == venue.Name {
				row.Yield = &y
			}
		}
		v.Rows = append(v.Rows, row)
	}

	SortRows(v.Rows, sortKey)
	v.State = StateReady
	return v
}

// SortRows orders rows by key, highest first. Rows without a value go last;
// ties keep their configured order. An empty key leaves rows untouched.
func SortRows(rows []Row, key string) {
	if key == "" {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, aok := rows[i].sortValue(key)
		b, bok := rows[j].sortValue(key)
		if aok != bok {
			return aok
		}
		return a > b
	})
}
