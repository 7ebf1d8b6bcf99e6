package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// PoolDayData is one day of a Uniswap pool.
type PoolDayData struct {
	Date      int64   `json:"date" yaml:"date"`
	VolumeUSD float64 `json:"volumeUsd" yaml:"volumeUsd"`
	TvlUSD    float64 `json:"tvlUsd" yaml:"tvlUsd"`
	FeesUSD   float64 `json:"feesUsd" yaml:"feesUsd"`
	Open      float64 `json:"open" yaml:"open"`
	High      float64 `json:"high" yaml:"high"`
	Low       float64 `json:"low" yaml:"low"`
	Close     float64 `json:"close" yaml:"close"`
}

const poolDayDataQuery = `query PoolDayData($pool: String!, $days: Int!) {
  poolDayDatas(first: $days, orderBy: date, orderDirection: desc, where: {pool: $pool}) {
    date volumeUSD tvlUSD feesUSD open high low close
  }
}`

const tokenPriceQuery = `query TokenPrice($token: ID!) {
  token(id: $token) { derivedETH }
  bundle(id: "1") { ethPriceUSD }
}`

type graphRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphError struct {
	Message string `json:"message"`
}

func (c *Client) graph(ctx context.Context, query string, vars map[string]interface{}, data interface{}) error {
	if c.graphURL == "" {
		return fmt.Errorf("graph url is not configured")
	}
	headers := map[string]string{}
	if c.graphKey != "" {
		headers["Authorization"] = "Bearer " + c.graphKey
	}
	var resp struct {
		Data   interface{}  `json:"data"`
		Errors []graphError `json:"errors"`
	}
	resp.Data = data
	if err := c.do(ctx, SourceGraph, http.MethodPost, c.graphURL, headers, graphRequest{Query: query, Variables: vars}, &resp); err != nil {
		return err
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return &Error{Source: SourceGraph, Status: http.StatusOK, Message: strings.Join(msgs, "; ")}
	}
	return nil
}

// PoolDayData returns up to days entries for pool, newest first.
func (c *Client) PoolDayData(ctx context.Context, pool string, days int) ([]PoolDayData, error) {
	if days <= 0 {
		days = 7
	}
	var data struct {
		PoolDayDatas []struct {
			Date      int64  `json:"date"`
			VolumeUSD string `json:"volumeUSD"`
			TvlUSD    string `json:"tvlUSD"`
			FeesUSD   string `json:"feesUSD"`
			Open      string `json:"open"`
			High      string `json:"high"`
			Low       string `json:"low"`
			Close     string `json:"close"`
		} `json:"poolDayDatas"`
	}
	vars := map[string]interface{}{"pool": strings.ToLower(pool), "days": days}
	if err := c.graph(ctx, poolDayDataQuery, vars, &data); err != nil {
		return nil, err
	}
	out := make([]PoolDayData, 0, len(data.PoolDayDatas))
	for _, d := range data.PoolDayDatas {
		out = append(out, PoolDayData{
			Date:      d.Date,
			VolumeUSD: parseFloat(d.VolumeUSD),
			TvlUSD:    parseFloat(d.TvlUSD),
			FeesUSD:   parseFloat(d.FeesUSD),
			Open:      parseFloat(d.Open),
			High:      parseFloat(d.High),
			Low:       parseFloat(d.Low),
			Close:     parseFloat(d.Close),
		})
	}
	return out, nil
}

// TokenPrice returns the subgraph price of token in ETH and USD.
func (c *Client) TokenPrice(ctx context.Context, token string) (PriceQuote, error) {
	var data struct {
		Token *struct {
			DerivedETH string `json:"derivedETH"`
		} `json:"token"`
		Bundle *struct {
			EthPriceUSD string `json:"ethPriceUSD"`
		} `json:"bundle"`
	}
	if err := c.graph(ctx, tokenPriceQuery, map[string]interface{}{"token": strings.ToLower(token)}, &data); err != nil {
		return PriceQuote{}, err
	}
	if data.Token == nil {
		return PriceQuote{}, fmt.Errorf("graph: token %s not indexed", token)
	}
	eth := parseFloat(data.Token.DerivedETH)
	quote := PriceQuote{ID: strings.ToLower(token), Currency: "eth", Price: eth, Source: SourceGraph}
	if data.Bundle != nil {
		quote.PriceUSD = eth * parseFloat(data.Bundle.EthPriceUSD)
	}
	return quote, nil
}
