package handler

import (
	"encoding/json"
	"net/http"

	"github.com/web3-frozen/perp-vault-dashboard/internal/config"
)

// Chains lists the networks the wallet button can switch to.
func Chains(chains []config.Chain) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		out := make([]chainResponse, 0, len(chains))
		for _, c := range chains {
			out = append(out, chainResponse{Chain: c, HexID: c.HexID()})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}
}

type chainResponse struct {
	config.Chain
	HexID string `json:"chainId"`
}

// Venues lists the static venue table: vault links, deposit asset and
// fallback figures.
func Venues(venues []config.Venue) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(venues)
	}
}
