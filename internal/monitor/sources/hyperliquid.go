package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/web3-frozen/perp-vault-dashboard/internal/yield"
)

const hyperliquidAPI = "https://api.hyperliquid.xyz/info"

// Upstream portfolio window names.
var hyperliquidWindows = map[string]yield.PeriodKey{
	"day":        yield.Period24h,
	"week":       yield.Period7d,
	"month":      yield.Period1m,
	"threeMonth": yield.Period3m,
	"sixMonth":   yield.Period6m,
	"year":       yield.Period1y,
	"allTime":    yield.PeriodAllTime,
}

// Hyperliquid reads vault performance from the Hyperliquid info API.
type Hyperliquid struct {
	client  *http.Client
	baseURL string
	venue   string
	vault   common.Address
}

func NewHyperliquid(baseURL, venue string, vault common.Address) *Hyperliquid {
	if baseURL == "" {
		baseURL = hyperliquidAPI
	}
	return &Hyperliquid{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
		venue:   venue,
		vault:   vault,
	}
}

func (h *Hyperliquid) Name() string { return h.venue }

type vaultDetailsRequest struct {
	Type         string `json:"type"`
	VaultAddress string `json:"vaultAddress"`
	User         string `json:"user"`
}

type vaultDetailsResponse struct {
	Msg       string    `json:"msg"`
	APR       float64   `json:"apr"`
	Portfolio portfolio `json:"portfolio"`
}

type portfolioWindow struct {
	AccountValueHistory []historyPoint `json:"accountValueHistory"`
	PnlHistory          []historyPoint `json:"pnlHistory"`
}

// portfolio accepts both the live API's [[name, window], ...] list and a
// plain object keyed by window name.
type portfolio map[string]portfolioWindow

func (p *portfolio) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '{' {
		var m map[string]portfolioWindow
		if err := json.Unmarshal(b, &m); err != nil {
			return err
		}
		*p = m
		return nil
	}

	var pairs [][]json.RawMessage
	if err := json.Unmarshal(b, &pairs); err != nil {
		return fmt.Errorf("portfolio: %w", err)
	}
	out := make(portfolio, len(pairs))
	for _, pair := range pairs {
		if len(pair) != 2 {
			return fmt.Errorf("portfolio: entry has %d elements", len(pair))
		}
		var name string
		if err := json.Unmarshal(pair[0], &name); err != nil {
			return fmt.Errorf("portfolio name: %w", err)
		}
		var w portfolioWindow
		if err := json.Unmarshal(pair[1], &w); err != nil {
			return fmt.Errorf("portfolio %s: %w", name, err)
		}
		out[name] = w
	}
	*p = out
	return nil
}

// historyPoint decodes a [timestamp, "value"] tuple. Numeric values are
// accepted as well.
type historyPoint yield.Point

func (h *historyPoint) UnmarshalJSON(b []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(b, &tuple); err != nil {
		return err
	}
	if len(tuple) != 2 {
		return fmt.Errorf("history point has %d elements", len(tuple))
	}
	var ts json.Number
	if err := json.Unmarshal(tuple[0], &ts); err != nil {
		return fmt.Errorf("history timestamp: %w", err)
	}
	t, err := ts.Int64()
	if err != nil {
		return fmt.Errorf("history timestamp: %w", err)
	}
	h.Time = t

	var s string
	if err := json.Unmarshal(tuple[1], &s); err == nil {
		h.Value = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(tuple[1], &n); err != nil {
		return fmt.Errorf("history value: %w", err)
	}
	h.Value = n.String()
	return nil
}

func toHistory(points []historyPoint) yield.History {
	out := make(yield.History, len(points))
	for i, p := range points {
		out[i] = yield.Point(p)
	}
	return out
}

// FetchVault posts a vaultDetails query and maps the portfolio onto period keys.
func (h *Hyperliquid) FetchVault(ctx context.Context) (yield.RawVault, error) {
	body, err := json.Marshal(vaultDetailsRequest{
		Type:         "vaultDetails",
		VaultAddress: strings.ToLower(h.vault.Hex()),
		User:         strings.ToLower(common.Address{}.Hex()), // public data needs no caller
	})
	if err != nil {
		return yield.RawVault{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL, bytes.NewReader(body))
	if err != nil {
		return yield.RawVault{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return yield.RawVault{}, fmt.Errorf("hyperliquid API: %w", err)
	}
	defer resp.Body.Close()

	var details vaultDetailsResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&details)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && details.Msg != "" {
			return yield.RawVault{}, fmt.Errorf("hyperliquid API status %d: %s", resp.StatusCode, details.Msg)
		}
		return yield.RawVault{}, fmt.Errorf("hyperliquid API status: %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return yield.RawVault{}, fmt.Errorf("decode hyperliquid vault: %w", decodeErr)
	}

	raw := yield.RawVault{
		APR:     details.APR,
		Windows: make(map[yield.PeriodKey]yield.Window, len(hyperliquidWindows)),
	}
	for name, w := range details.Portfolio {
		key, ok := hyperliquidWindows[name]
		if !ok {
			continue // perp-only windows are not shown
		}
		raw.Windows[key] = yield.Window{
			PnL:          toHistory(w.PnlHistory),
			AccountValue: toHistory(w.AccountValueHistory),
		}
	}
	return raw, nil
}

// FetchYield fetches the vault and computes its normalized yield.
func (h *Hyperliquid) FetchYield(ctx context.Context) (yield.VenueYield, error) {
	raw, err := h.FetchVault(ctx)
	if err != nil {
		return yield.VenueYield{}, err
	}
	return yield.ComputeVenueYield(h.venue, raw), nil
}
