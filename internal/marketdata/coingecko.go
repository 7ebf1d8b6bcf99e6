package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// PriceQuote is a price of one asset in one currency.
type PriceQuote struct {
	ID        string  `json:"id" yaml:"id"`
	Currency  string  `json:"currency" yaml:"currency"`
	Price     float64 `json:"price" yaml:"price"`
	PriceUSD  float64 `json:"priceUsd,omitempty" yaml:"priceUsd,omitempty"`
	MarketCap float64 `json:"marketCap,omitempty" yaml:"marketCap,omitempty"`
	Volume24h float64 `json:"volume24h,omitempty" yaml:"volume24h,omitempty"`
	Change24h float64 `json:"change24h,omitempty" yaml:"change24h,omitempty"`
	Source    string  `json:"source" yaml:"source"`
}

// SimplePrice queries /simple/price for coin ids in the given currencies.
// Quotes are sorted by id then currency.
func (c *Client) SimplePrice(ctx context.Context, ids, currencies []string) ([]PriceQuote, error) {
	if len(ids) == 0 || len(currencies) == 0 {
		return nil, fmt.Errorf("ids and currencies are required")
	}
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", strings.Join(currencies, ","))
	return c.coinGeckoPrices(ctx, "/simple/price", q, currencies)
}

// TokenPriceByContract queries /simple/token_price/{platform} for contract addresses.
func (c *Client) TokenPriceByContract(ctx context.Context, platform string, contracts, currencies []string) ([]PriceQuote, error) {
	if platform == "" || len(contracts) == 0 || len(currencies) == 0 {
		return nil, fmt.Errorf("platform, contracts and currencies are required")
	}
	q := url.Values{}
	q.Set("contract_addresses", strings.ToLower(strings.Join(contracts, ",")))
	q.Set("vs_currencies", strings.Join(currencies, ","))
	return c.coinGeckoPrices(ctx, "/simple/token_price/"+url.PathEscape(platform), q, currencies)
}

func (c *Client) coinGeckoPrices(ctx context.Context, path string, q url.Values, currencies []string) ([]PriceQuote, error) {
	if c.coinGeckoKey == "" {
		return nil, fmt.Errorf("coingecko api key is not configured")
	}
	q.Set("include_market_cap", "true")
	q.Set("include_24hr_vol", "true")
	q.Set("include_24hr_change", "true")

	var resp map[string]map[string]float64
	headers := map[string]string{"x-cg-pro-api-key": c.coinGeckoKey}
	if err := c.do(ctx, SourceCoinGecko, http.MethodGet, c.coinGeckoBaseURL+path+"?"+q.Encode(), headers, nil, &resp); err != nil {
		return nil, err
	}

	var quotes []PriceQuote
	for id, fields := range resp {
		for _, cur := range currencies {
			cur = strings.ToLower(cur)
			price, ok := fields[cur]
			if !ok {
				continue
			}
			quote := PriceQuote{
				ID:        id,
				Currency:  cur,
				Price:     price,
				MarketCap: fields[cur+"_market_cap"],
				Volume24h: fields[cur+"_24h_vol"],
				Change24h: fields[cur+"_24h_change"],
				Source:    SourceCoinGecko,
			}
			if usd, ok := fields["usd"]; ok {
				quote.PriceUSD = usd
			}
			quotes = append(quotes, quote)
		}
	}
	sort.Slice(quotes, func(i, j int) bool {
		if quotes[i].ID != quotes[j].ID {
			return quotes[i].ID < quotes[j].ID
		}
		return quotes[i].Currency < quotes[j].Currency
	})
	return quotes, nil
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
