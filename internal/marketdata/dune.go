package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DuneResult is the latest stored result of a Dune query.
type DuneResult struct {
	ExecutionID string                   `json:"execution_id"`
	QueryID     int64                    `json:"query_id"`
	State       string                   `json:"state"`
	Rows        []map[string]interface{} `json:"rows"`
	Columns     []string                 `json:"columns"`
}

// TokenMarketData is one token row reshaped from a Dune query.
type TokenMarketData struct {
	Token        string  `json:"token" yaml:"token"`
	PriceUSD     float64 `json:"priceUsd" yaml:"priceUsd"`
	MarketCapUSD float64 `json:"marketCapUsd" yaml:"marketCapUsd"`
	Volume24hUSD float64 `json:"volume24hUsd" yaml:"volume24hUsd"`
	LiquidityUSD float64 `json:"liquidityUsd" yaml:"liquidityUsd"`
	Holders      int64   `json:"holders" yaml:"holders"`
}

// DuneQueryResults fetches GET /api/v1/query/{id}/results. params are sent
// as query parameters.
func (c *Client) DuneQueryResults(ctx context.Context, queryID int64, params map[string]string) (*DuneResult, error) {
	if c.duneKey == "" {
		return nil, fmt.Errorf("dune api key is not configured")
	}
	u := fmt.Sprintf("%s/api/v1/query/%d/results", c.duneBaseURL, queryID)
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set("params."+k, v)
		}
		u += "?" + q.Encode()
	}
	var resp struct {
		ExecutionID string `json:"execution_id"`
		QueryID     int64  `json:"query_id"`
		State       string `json:"state"`
		Result      struct {
			Rows     []map[string]interface{} `json:"rows"`
			Metadata struct {
				ColumnNames []string `json:"column_names"`
			} `json:"metadata"`
		} `json:"result"`
	}
	headers := map[string]string{"X-Dune-API-Key": c.duneKey}
	if err := c.do(ctx, SourceDune, http.MethodGet, u, headers, nil, &resp); err != nil {
		return nil, err
	}
	return &DuneResult{
		ExecutionID: resp.ExecutionID,
		QueryID:     resp.QueryID,
		State:       resp.State,
		Rows:        resp.Result.Rows,
		Columns:     resp.Result.Metadata.ColumnNames,
	}, nil
}

// TokenMarketData runs queryID with a token_address parameter and reshapes
// the row of that token.
func (c *Client) TokenMarketData(ctx context.Context, queryID int64, token string) (*TokenMarketData, error) {
	result, err := c.DuneQueryResults(ctx, queryID, map[string]string{"token_address": token})
	if err != nil {
		return nil, err
	}
	for _, row := range result.Rows {
		addr := stringField(row, "token_address", "token", "address")
		if addr != "" && !strings.EqualFold(addr, token) {
			continue
		}
		return &TokenMarketData{
			Token:        token,
			PriceUSD:     floatField(row, "price_usd", "price"),
			MarketCapUSD: floatField(row, "market_cap_usd", "market_cap", "mcap"),
			Volume24hUSD: floatField(row, "volume_24h_usd", "volume_24h", "volume"),
			LiquidityUSD: floatField(row, "liquidity_usd", "liquidity", "tvl"),
			Holders:      int64(floatField(row, "holders", "holder_count")),
		}, nil
	}
	return nil, fmt.Errorf("dune query %d: no row for token %s", queryID, token)
}

func stringField(row map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := row[k].(string); ok {
			return v
		}
	}
	return ""
}

func floatField(row map[string]interface{}, keys ...string) float64 {
	for _, k := range keys {
		switch v := row[k].(type) {
		case float64:
			return v
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
	}
	return 0
}
