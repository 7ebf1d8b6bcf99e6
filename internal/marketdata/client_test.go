package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const token = "0xAAaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa4b07"

func newServer(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server.URL
}

func TestTokenMarketDataFromDune(t *testing.T) {
	base := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/query/42/results" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Dune-API-Key") != "dune-key" {
			t.Errorf("missing dune key")
		}
		if r.URL.Query().Get("params.token_address") != token {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"execution_id":"e1","query_id":42,"state":"QUERY_STATE_COMPLETED","result":{
			"rows":[
				{"token_address":"0x0000000000000000000000000000000000000001","price_usd":9},
				{"token_address":"` + strings.ToLower(token) + `","price_usd":0.0001,"market_cap_usd":"10000","volume_24h_usd":500,"liquidity_usd":2500,"holders":12}
			],
			"metadata":{"column_names":["token_address","price_usd"]}}}`))
	})
	client := NewClient(WithDune(base, "dune-key"))
	data, err := client.TokenMarketData(context.Background(), 42, token)
	if err != nil {
		t.Fatalf("market data: %v", err)
	}
	want := TokenMarketData{Token: token, PriceUSD: 0.0001, MarketCapUSD: 10000, Volume24hUSD: 500, LiquidityUSD: 2500, Holders: 12}
	if *data != want {
		t.Fatalf("unexpected data %+v", data)
	}
}

func TestDuneRequiresKey(t *testing.T) {
	if _, err := NewClient().DuneQueryResults(context.Background(), 1, nil); err == nil {
		t.Fatalf("expected missing key error")
	}
}

func TestPoolDayDataFromGraph(t *testing.T) {
	url := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Authorization") != "Bearer graph-key" {
			t.Errorf("unexpected request %s %q", r.Method, r.Header.Get("Authorization"))
		}
		var req graphRequest
		json.NewDecoder(r.Body).Decode(&req)
		if !strings.Contains(req.Query, "poolDayDatas") || req.Variables["pool"] != "0xpool" {
			t.Errorf("unexpected graph request %+v", req)
		}
		w.Write([]byte(`{"data":{"poolDayDatas":[{"date":1700000000,"volumeUSD":"12.5","tvlUSD":"100","feesUSD":"0.125","open":"1","high":"2","low":"0.5","close":"1.5"}]}}`))
	})
	client := NewClient(WithGraph(url, "graph-key"))
	days, err := client.PoolDayData(context.Background(), "0xPOOL", 0)
	if err != nil {
		t.Fatalf("pool day data: %v", err)
	}
	want := PoolDayData{Date: 1700000000, VolumeUSD: 12.5, TvlUSD: 100, FeesUSD: 0.125, Open: 1, High: 2, Low: 0.5, Close: 1.5}
	if len(days) != 1 || days[0] != want {
		t.Fatalf("unexpected days %+v", days)
	}
}

func TestGraphErrorsAreReported(t *testing.T) {
	url := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"indexing error"}]}`))
	})
	_, err := NewClient(WithGraph(url, "")).TokenPrice(context.Background(), token)
	var mdErr *Error
	if !errors.As(err, &mdErr) || mdErr.Source != SourceGraph || mdErr.Message != "indexing error" {
		t.Fatalf("expected graph error, got %v", err)
	}
}

func TestTokenPriceFromGraph(t *testing.T) {
	url := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"token":{"derivedETH":"0.5"},"bundle":{"ethPriceUSD":"3000"}}}`))
	})
	quote, err := NewClient(WithGraph(url, "")).TokenPrice(context.Background(), token)
	if err != nil {
		t.Fatalf("token price: %v", err)
	}
	if quote.Price != 0.5 || quote.PriceUSD != 1500 || quote.ID != strings.ToLower(token) {
		t.Fatalf("unexpected quote %+v", quote)
	}
}

func TestSimplePriceFromCoinGecko(t *testing.T) {
	base := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" || r.Header.Get("x-cg-pro-api-key") != "cg-key" {
			t.Errorf("unexpected request %s", r.URL.Path)
		}
		if r.URL.Query().Get("ids") != "weth,degen-base" {
			t.Errorf("unexpected ids %s", r.URL.Query().Get("ids"))
		}
		w.Write([]byte(`{"weth":{"usd":3000,"usd_market_cap":1e9,"eth":1},"degen-base":{"usd":0.01,"usd_24h_change":-2.5}}`))
	})
	quotes, err := NewClient(WithCoinGecko(base, "cg-key")).SimplePrice(context.Background(), []string{"weth", "degen-base"}, []string{"usd", "eth"})
	if err != nil {
		t.Fatalf("simple price: %v", err)
	}
	if len(quotes) != 3 {
		t.Fatalf("expected 3 quotes, got %+v", quotes)
	}
	if quotes[0].ID != "degen-base" || quotes[0].Change24h != -2.5 {
		t.Fatalf("unexpected first quote %+v", quotes[0])
	}
	if quotes[2].ID != "weth" || quotes[2].Currency != "usd" || quotes[2].MarketCap != 1e9 {
		t.Fatalf("unexpected last quote %+v", quotes[2])
	}
}

func TestCoinGeckoHTTPError(t *testing.T) {
	base := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"status":{"error_code":429},"error":"rate limited"}`))
	})
	_, err := NewClient(WithCoinGecko(base, "cg-key")).TokenPriceByContract(context.Background(), "base", []string{token}, []string{"usd"})
	var mdErr *Error
	if !errors.As(err, &mdErr) || mdErr.Status != http.StatusTooManyRequests || mdErr.Message != "rate limited" {
		t.Fatalf("unexpected error %v", err)
	}
}
