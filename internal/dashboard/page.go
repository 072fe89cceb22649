package dashboard

import (
	"html/template"
	"io"
	"net/url"

	"github.com/web3-frozen/perp-vault-dashboard/internal/config"
	"github.com/web3-frozen/perp-vault-dashboard/internal/yield"
)

// Page is the template input for the dashboard HTML.
type Page struct {
	View
	Chains     []config.Chain
	AllPeriods []yield.PeriodKey
}

func NewPage(v View, chains []config.Chain) Page {
	return Page{View: v, Chains: chains, AllPeriods: yield.Periods()}
}

// ToggleQuery is the query string that toggles p in the current selection.
func (v View) ToggleQuery(p yield.PeriodKey) string {
	return query(v.Selection.Toggle(p), v.Sort)
}

// SortQuery is the query string that orders the table by key.
func (v View) SortQuery(key string) string {
	return query(v.Selection, key)
}

func query(sel Selection, sortKey string) string {
	q := url.Values{}
	q.Set("periods", sel.String())
	if sortKey != "" {
		q.Set("sort", sortKey)
	}
	return "?" + q.Encode()
}

var pageTmpl = template.Must(template.New("dashboard").Parse(pageHTML))

// Render writes the dashboard HTML for page.
func Render(w io.Writer, page Page) error {
	return pageTmpl.Execute(w, page)
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{if eq .State "loading"}}<meta http-equiv="refresh" content="2">{{end}}
<title>perp vault yields</title>
<style>
body { margin: 0; min-height: 100vh; background: #000; color: #00ff41; font: 0.75rem "Courier New", monospace; text-transform: uppercase; display: flex; flex-direction: column; align-items: center; justify-content: center; }
main { max-width: 900px; width: 100%; padding: 0.5rem; }
header { display: flex; justify-content: space-between; align-items: center; margin-bottom: 0.5rem; }
table { width: 100%; border-collapse: separate; border-spacing: 0; box-shadow: 0 2px 8px rgba(0, 255, 65, 0.3); }
th, td { padding: 0.25rem 0.5rem; text-align: center; background: #0a0a0a; }
th.venue, td.venue { text-align: left; font-weight: 700; white-space: nowrap; }
tr:hover td { background: #001a00; }
a { color: #00ff41; }
a.link { background: #00ff41; color: #000; text-decoration: none; padding: 0 0.2rem; margin-left: 0.25rem; border-radius: 0.125rem; }
.filters a { margin-right: 0.5rem; opacity: 0.5; }
.filters a.on { opacity: 1; font-weight: 700; }
.error { color: #ff4444; }
button, select { background: #000; color: #00ff41; border: 1px solid #00ff41; font: inherit; text-transform: inherit; padding: 0.2rem 0.5rem; }
</style>
</head>
<body>
<main>
<header>
  <span>perp vault yields</span>
  <span>
    <select id="chain">{{range .Chains}}<option value="{{.HexID}}">{{.Name}}</option>{{end}}</select>
    <button id="wallet" type="button">connect wallet</button>
  </span>
</header>
{{if eq .State "loading"}}
  <p>loading yields...</p>
{{else if eq .State "error"}}
  <p class="error">error, please retry.</p>
  <p><a href="/?retry=1">retry</a></p>
{{else}}
  <nav class="filters">
    {{range .AllPeriods}}<a href="{{$.ToggleQuery .}}"{{if $.Selection.Contains .}} class="on"{{end}}>{{.}}</a>{{end}}
  </nav>
  <table>
    <thead>
      <tr>
        <th class="venue" rowspan="2">dex ↗</th>
        <th rowspan="2"><a href="{{.SortQuery "volume"}}">24h vol</a></th>
        <th rowspan="2"><a href="{{.SortQuery "tvl"}}">tvl</a></th>
        <th rowspan="2"><a href="{{.SortQuery "current"}}">apr</a></th>
        {{if .Periods}}<th colspan="{{len .Periods}}">yield</th>{{end}}
      </tr>
      <tr>
        {{range .Periods}}<th><a href="{{$.SortQuery (print .)}}">{{.Label}}</a></th>{{end}}
      </tr>
    </thead>
    <tbody>
      {{range $row := .Rows}}
      <tr>
        <td class="venue">{{$row.Venue}}<a class="link" href="{{$row.InvestURL}}" target="_blank" rel="noopener noreferrer" title="deposit {{$row.SupportedAsset}}">↗</a></td>
        <td>{{$row.VolumeCell}}</td>
        <td>{{$row.TVLCell}}</td>
        <td>{{$row.CurrentCell}}</td>
        {{range $.Periods}}<td>{{$row.PeriodCell .}}</td>{{end}}
      </tr>
      {{end}}
    </tbody>
  </table>
{{end}}
</main>
<script>
const chains = {{.Chains}};
const button = document.getElementById("wallet");
const select = document.getElementById("chain");

async function switchChain(hexId) {
  const chain = chains.find(c => "0x" + c.id.toString(16) === hexId);
  try {
    await window.ethereum.request({ method: "wallet_switchEthereumChain", params: [{ chainId: hexId }] });
  } catch (err) {
    if (err.code !== 4902 || !chain) throw err;
    await window.ethereum.request({
      method: "wallet_addEthereumChain",
      params: [{
        chainId: hexId,
        chainName: chain.name,
        nativeCurrency: chain.nativeCurrency,
        rpcUrls: [chain.rpcUrl],
        blockExplorerUrls: [chain.blockExplorerUrl],
      }],
    });
  }
}

button.addEventListener("click", async () => {
  if (!window.ethereum) {
    button.textContent = "no wallet found";
    return;
  }
  const accounts = await window.ethereum.request({ method: "eth_requestAccounts" });
  if (accounts.length > 0) {
    button.textContent = accounts[0].slice(0, 6) + "...";
    await switchChain(select.value);
  }
});

select.addEventListener("change", () => {
  if (window.ethereum) switchChain(select.value);
});
</script>
</body>
</html>
`
