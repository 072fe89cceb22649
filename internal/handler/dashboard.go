package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/web3-frozen/perp-vault-dashboard/internal/config"
	"github.com/web3-frozen/perp-vault-dashboard/internal/dashboard"
	"github.com/web3-frozen/perp-vault-dashboard/internal/yield"
)

// Snapshotter is the polling layer behind the dashboard.
type Snapshotter interface {
	Snapshot() map[string]dashboard.Entry
	Refresh(ctx context.Context)
}

// buildView reads periods, toggle and sort from the query string and merges
// the latest snapshot. An absent periods parameter selects the defaults; an
// empty one selects nothing.
func buildView(r *http.Request, p Snapshotter, venues []config.Venue) dashboard.View {
	q := r.URL.Query()

	sel := dashboard.DefaultSelection()
	if q.Has("periods") {
		sel = dashboard.ParseSelection(q.Get("periods"))
	}
	if t, ok := yield.ParsePeriod(q.Get("toggle")); ok {
		sel = sel.Toggle(t)
	}

	return dashboard.Build(p.Snapshot(), venues, sel, q.Get("sort"))
}

// Dashboard renders the comparison page. retry=1 refetches every source
// before redirecting back to the page.
func Dashboard(p Snapshotter, venues []config.Venue, chains []config.Chain, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("retry") == "1" {
			logger.Info("manual refresh requested")
			p.Refresh(r.Context())
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		v := buildView(r, p, venues)
		var buf bytes.Buffer
		if err := dashboard.Render(&buf, dashboard.NewPage(v, chains)); err != nil {
			logger.Error("render dashboard", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = buf.WriteTo(w)
	}
}

// DashboardJSON serves the same merged view as JSON.
func DashboardJSON(p Snapshotter, venues []config.Venue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := buildView(r, p, venues)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(dashboardResponse{View: v, Selected: v.Selection.Keys()})
	}
}

type dashboardResponse struct {
	dashboard.View
	Selected []yield.PeriodKey `json:"selected"`
}

// Refresh refetches every source and returns once all have resolved.
func Refresh(p Snapshotter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p.Refresh(r.Context())
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(p.Snapshot())
	}
}
