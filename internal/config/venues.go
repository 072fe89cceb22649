package config

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v2"

	"github.com/web3-frozen/perp-vault-dashboard/internal/yield"
)

// Cache keys shared by the adapters and the dashboard poller.
const (
	VolumesKey       = "volumes"
	HyperliquidKey   = "hlYields"
	LighterYieldsKey = "lighterYields"
)

// Venue is the static description of one tracked vault.
type Venue struct {
	Name           string  `yaml:"name" json:"name"`
	YieldKey       string  `yaml:"yield_key" json:"yield_key"`
	YieldPath      string  `yaml:"yield_path" json:"yield_path"`
	VaultAddress   string  `yaml:"vault_address" json:"vault_address,omitempty"`
	VaultURL       string  `yaml:"vault_url" json:"vault_url"`
	Asset          string  `yaml:"asset" json:"asset"`
	VolumeSlug     string  `yaml:"volume_slug" json:"volume_slug,omitempty"`
	FallbackVolume float64 `yaml:"fallback_volume" json:"fallback_volume"`
	FallbackAPR    float64 `yaml:"fallback_apr" json:"fallback_apr"`
	FallbackTVL    float64 `yaml:"fallback_tvl" json:"fallback_tvl"`
}

// Vault returns the parsed vault address.
func (v Venue) Vault() common.Address {
	return common.HexToAddress(v.VaultAddress)
}

// NativeCurrency describes the gas token of a chain.
type NativeCurrency struct {
	Name     string `yaml:"name" json:"name"`
	Symbol   string `yaml:"symbol" json:"symbol"`
	Decimals int    `yaml:"decimals" json:"decimals"`
}

// Chain is a wallet network definition handed to the browser wallet.
type Chain struct {
	ID             int64          `yaml:"id" json:"id"`
	Name           string         `yaml:"name" json:"name"`
	NativeCurrency NativeCurrency `yaml:"native_currency" json:"nativeCurrency"`
	RPCURL         string         `yaml:"rpc_url" json:"rpcUrl"`
	ExplorerURL    string         `yaml:"explorer_url" json:"blockExplorerUrl"`
	Testnet        bool           `yaml:"testnet" json:"testnet"`
}

// HexID is the EIP-155 chain id in the 0x form wallets expect.
func (c Chain) HexID() string {
	return fmt.Sprintf("0x%x", c.ID)
}

// LighterMock is the placeholder yield record served for Lighter until a
// live source exists.
type LighterMock struct {
	Current float64                     `yaml:"current"`
	TVL     float64                     `yaml:"tvl"`
	Periods map[yield.PeriodKey]float64 `yaml:"periods"`
}

func DefaultVenues() []Venue {
	return []Venue{
		{
			Name:           "Hyperliquid",
			YieldKey:       HyperliquidKey,
			YieldPath:      "/yields",
			VaultAddress:   "0xdfc24b077bc1425ad1dea75bcb6f8158e10df303",
			VaultURL:       "https://app.hyperliquid.xyz/vaults/0xdfc24b077bc1425ad1dea75bcb6f8158e10df303",
			Asset:          "USDC",
			VolumeSlug:     "hyperliquid",
			FallbackVolume: 10_500_000_000,
			FallbackAPR:    7.29,
			FallbackTVL:    4_500_000,
		},
		{
			Name:           "Lighter",
			YieldKey:       LighterYieldsKey,
			YieldPath:      "/lighter-yields",
			VaultURL:       "https://app.lighter.xyz/public-pools/281474976710654",
			Asset:          "USDC",
			FallbackVolume: 6_180_000_000,
			FallbackAPR:    10.2,
			FallbackTVL:    5_000_000,
		},
	}
}

func DefaultChains() []Chain {
	return []Chain{
		{
			ID:             42161,
			Name:           "Arbitrum One",
			NativeCurrency: NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18},
			RPCURL:         "https://arb1.arbitrum.io/rpc",
			ExplorerURL:    "https://arbiscan.io",
		},
		{
			ID:             31337,
			Name:           "Hyperliquid Testnet",
			NativeCurrency: NativeCurrency{Name: "USDC", Symbol: "USDC", Decimals: 6},
			RPCURL:         "https://api.hyperliquid.xyz/rpc",
			ExplorerURL:    "https://explorer.hyperliquid.xyz",
			Testnet:        true,
		},
	}
}

func DefaultLighterMock() LighterMock {
	return LighterMock{
		Current: 10.2,
		TVL:     5_000_000,
		Periods: map[yield.PeriodKey]float64{
			yield.Period24h:     12.5,
			yield.Period7d:      8.2,
			yield.Period1m:      15.3,
			yield.Period3m:      45.0,
			yield.Period6m:      89.2,
			yield.Period1y:      200.5,
			yield.PeriodAllTime: 450.1,
		},
	}
}

type venuesFile struct {
	Venues  []Venue      `yaml:"venues"`
	Chains  []Chain      `yaml:"chains"`
	Lighter *LighterMock `yaml:"lighter"`
}

// LoadVenues overrides the static tables with the contents of a YAML file.
// Sections missing from the file keep their defaults.
func (c *Config) LoadVenues(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open venues file: %w", err)
	}
	defer f.Close()

	var vf venuesFile
	if err := yaml.NewDecoder(f).Decode(&vf); err != nil {
		return fmt.Errorf("decode venues file: %w", err)
	}
	if len(vf.Venues) > 0 {
		c.Venues = vf.Venues
	}
	if len(vf.Chains) > 0 {
		c.Chains = vf.Chains
	}
	if vf.Lighter != nil {
		c.Lighter = *vf.Lighter
	}
	return nil
}

// Validate checks the static tables for mistakes that would otherwise surface
// as silent fallbacks at request time.
func (c Config) Validate() error {
	if len(c.Venues) == 0 {
		return fmt.Errorf("no venues configured")
	}
	names := make(map[string]bool, len(c.Venues))
	keys := make(map[string]bool, len(c.Venues))
	for _, v := range c.Venues {
		if v.Name == "" {
			return fmt.Errorf("venue with empty name")
		}
		if names[v.Name] {
			return fmt.Errorf("duplicate venue %q", v.Name)
		}
		names[v.Name] = true
		if v.YieldKey == "" || keys[v.YieldKey] || v.YieldKey == VolumesKey {
			return fmt.Errorf("venue %q: invalid or duplicate yield key %q", v.Name, v.YieldKey)
		}
		keys[v.YieldKey] = true
		if v.VaultAddress != "" && !common.IsHexAddress(v.VaultAddress) {
			return fmt.Errorf("venue %q: invalid vault address %q", v.Name, v.VaultAddress)
		}
		if v.FallbackVolume < 0 || v.FallbackTVL < 0 {
			return fmt.Errorf("venue %q: fallback values must be non-negative", v.Name)
		}
	}
	for _, ch := range c.Chains {
		if ch.ID <= 0 || ch.Name == "" {
			return fmt.Errorf("invalid chain %+v", ch)
		}
	}
	for p := range c.Lighter.Periods {
		if !p.Valid() {
			return fmt.Errorf("lighter mock: unknown period %q", p)
		}
	}
	return nil
}

// Venue looks up a venue by its yield cache key.
func (c Config) Venue(yieldKey string) (Venue, bool) {
	for _, v := range c.Venues {
		if v.YieldKey == yieldKey {
			return v, true
		}
	}
	return Venue{}, false
}
