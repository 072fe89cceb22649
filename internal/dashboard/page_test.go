package dashboard

import (
	"bytes"
	"strings"
	"testing"

	"github.com/web3-frozen/perp-vault-dashboard/internal/config"
	"github.com/web3-frozen/perp-vault-dashboard/internal/yield"
)

func render(t *testing.T, v View) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(&buf, NewPage(v, config.DefaultChains())); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestRenderReady(t *testing.T) {
	v := Build(readySnapshot(t), config.DefaultVenues(), DefaultSelection(), "")
	html := render(t, v)

	for _, want := range []string{
		"Hyperliquid",
		"Lighter",
		"$10.5b",
		"7.29",
		"7d ma",
		`target="_blank"`,
		"https://app.lighter.xyz/public-pools/281474976710654",
		"?periods=7d%2c1m%2c3m",
		"0xa4b1",
	} {
		if !strings.Contains(strings.ToLower(html), strings.ToLower(want)) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(html, "retry=1") {
		t.Error("ready page shows retry link")
	}
}

func TestRenderLoading(t *testing.T) {
	html := render(t, View{State: StateLoading, Selection: DefaultSelection()})
	if !strings.Contains(html, "loading yields") {
		t.Error("loading page missing indicator")
	}
	if strings.Contains(html, "<table>") {
		t.Error("loading page renders table")
	}
}

func TestRenderError(t *testing.T) {
	html := render(t, View{State: StateError, Error: "failed to load volumes", Selection: DefaultSelection()})
	if !strings.Contains(html, `href="/?retry=1"`) {
		t.Error("error page missing retry link")
	}
	if strings.Contains(html, "<table>") {
		t.Error("error page renders table")
	}
}

func TestViewQueries(t *testing.T) {
	v := View{Selection: DefaultSelection(), Sort: SortTVL}
	if got := v.ToggleQuery(yield.Period7d); got != "?periods=24h%2C1m&sort=tvl" {
		t.Errorf("ToggleQuery = %q", got)
	}
	if got := v.SortQuery(string(yield.Period1y)); got != "?periods=24h%2C7d%2C1m&sort=1y" {
		t.Errorf("SortQuery = %q", got)
	}
}
