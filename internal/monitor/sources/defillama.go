package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defiLlamaAPI = "https://api.llama.fi"

// DefiLlama reads 24h derivatives volume from the DefiLlama summary API.
type DefiLlama struct {
	client  *http.Client
	baseURL string
}

func NewDefiLlama(baseURL string) *DefiLlama {
	if baseURL == "" {
		baseURL = defiLlamaAPI
	}
	return &DefiLlama{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (d *DefiLlama) Name() string { return "defillama" }

type derivativesSummary struct {
	Name     string   `json:"name"`
	Total24h *float64 `json:"total24h"`
}

// FetchVolume returns the 24h volume in USD for a DefiLlama protocol slug.
func (d *DefiLlama) FetchVolume(ctx context.Context, slug string) (float64, error) {
	u := fmt.Sprintf("%s/summary/derivatives/%s?excludeTotalDataChart=true&excludeTotalDataChartBreakdown=true",
		d.baseURL, url.PathEscape(slug))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("defillama API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("defillama API status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read response: %w", err)
	}

	var summary derivativesSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return 0, fmt.Errorf("decode defillama summary: %w", err)
	}
	if summary.Total24h == nil {
		return 0, fmt.Errorf("no 24h volume for %s", slug)
	}
	if *summary.Total24h < 0 {
		return 0, fmt.Errorf("negative 24h volume for %s: %v", slug, *summary.Total24h)
	}
	return *summary.Total24h, nil
}
