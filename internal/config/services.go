package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Services holds the REST endpoints and keys of the Clanker API and the
// market data providers.
type Services struct {
	APIKey     string
	APIBaseURL string
	Timeout    time.Duration

	DuneAPIKey  string
	DuneBaseURL string
	DuneQueryID int

	GraphURL    string
	GraphAPIKey string

	CoinGeckoAPIKey  string
	CoinGeckoBaseURL string

	LogLevel string
	Output   string
}

// LoadServices merges config file, environment variables, and flags into Services.
func LoadServices(cfgFile string, flags *pflag.FlagSet) (Services, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"api-url":       "https://www.clanker.world/api",
		"http-timeout":  30 * time.Second,
		"dune-url":      "https://api.dune.com",
		"coingecko-url": "https://pro-api.coingecko.com/api/v3",
		"output":        "json",
	})
	if err != nil {
		return Services{}, err
	}
	return Services{
		APIKey:           v.GetString("api-key"),
		APIBaseURL:       v.GetString("api-url"),
		Timeout:          v.GetDuration("http-timeout"),
		DuneAPIKey:       v.GetString("dune-api-key"),
		DuneBaseURL:      v.GetString("dune-url"),
		DuneQueryID:      v.GetInt("dune-query-id"),
		GraphURL:         v.GetString("graph-url"),
		GraphAPIKey:      v.GetString("graph-api-key"),
		CoinGeckoAPIKey:  v.GetString("coingecko-api-key"),
		CoinGeckoBaseURL: v.GetString("coingecko-url"),
		LogLevel:         v.GetString("log-level"),
		Output:           v.GetString("output"),
	}, nil
}
