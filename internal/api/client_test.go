package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"
)

const requestor = "0x1111111111111111111111111111111111111111"

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-api-key", WithBaseURL(server.URL+"/"))
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient("k")
	if client.BaseURL() != DefaultBaseURL {
		t.Fatalf("unexpected base url %q", client.BaseURL())
	}
	custom := &http.Client{Timeout: time.Second}
	client = NewClient("k", WithHTTPClient(custom), WithAPIKey("other"))
	if client.httpClient != custom || client.apiKey != "other" {
		t.Fatalf("options not applied")
	}
}

func TestGenerateRequestKey(t *testing.T) {
	a, err := GenerateRequestKey()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, _ := GenerateRequestKey()
	if !regexp.MustCompile(`^[0-9a-f]{32}$`).MatchString(a) || a == b {
		t.Fatalf("unexpected keys %q %q", a, b)
	}
}

func TestDeployTokenSendsKeyAndBody(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tokens/deploy" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-api-key" {
			t.Errorf("missing api key header")
		}
		var body DeployTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if len(body.RequestKey) != 32 || body.Pool == nil || body.Pool.InitialMarketCap != 10 {
			t.Errorf("unexpected body %+v", body)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"contract_address": "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa4b07",
			"name":             body.Name,
			"symbol":           body.Symbol,
		})
	})
	token, err := client.DeployToken(context.Background(), DeployTokenRequest{
		Name:             "TheName",
		Symbol:           "SYM",
		RequestorAddress: requestor,
		Pool:             &PoolRequest{InitialMarketCap: 10},
	})
	if err != nil {
		t.Fatalf("deploy: %v", err)
	}
	if token.ContractAddress != "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa4b07" || token.Symbol != "SYM" {
		t.Fatalf("unexpected token %+v", token)
	}
}

func TestDeployTokenWithSplitsFlattensBody(t *testing.T) {
	split := "0x2222222222222222222222222222222222222222"
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tokens/deploy/with-splits" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["splitAddress"] != split || body["name"] != "TheName" {
			t.Errorf("unexpected body %v", body)
		}
		w.Write([]byte(`{"name":"TheName"}`))
	})
	_, err := client.DeployTokenWithSplits(context.Background(), DeployTokenWithSplitsRequest{
		DeployTokenRequest: DeployTokenRequest{Name: "TheName", Symbol: "SYM", RequestorAddress: requestor},
		SplitAddress:       split,
	})
	if err != nil {
		t.Fatalf("deploy with splits: %v", err)
	}
}

func TestInvalidAddressSkipsRequest(t *testing.T) {
	called := false
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) { called = true })
	ctx := context.Background()
	checks := []error{
		func() error { _, err := client.GetClankerByAddress(ctx, "0x123"); return err }(),
		func() error { _, err := client.FetchDeployedByAddress(ctx, "1111111111111111111111111111111111111111", 1); return err }(),
		func() error { _, err := client.EstimateRewardsByPoolAddress(ctx, "0xZZ11111111111111111111111111111111111111"); return err }(),
		func() error { _, err := client.GetEstimatedUncollectedFees(ctx, ""); return err }(),
		func() error {
			_, err := client.DeployToken(ctx, DeployTokenRequest{Name: "a", Symbol: "b", RequestorAddress: "nope"})
			return err
		}(),
	}
	for i, err := range checks {
		if !errors.Is(err, ErrInvalidAddress) {
			t.Fatalf("check %d: expected ErrInvalidAddress, got %v", i, err)
		}
	}
	if called {
		t.Fatalf("no request should reach the server")
	}
}

func TestFetchDeployedByAddressQuery(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tokens/fetch-deployed-by-address" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("address") != requestor || r.URL.Query().Get("page") != "2" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"data":[{"id":1,"symbol":"SYM"},{"id":2,"symbol":"TWO"}],"hasMore":true,"total":12}`))
	})
	page, err := client.FetchDeployedByAddress(context.Background(), requestor, 2)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(page.Data) != 2 || !page.HasMore || page.Total != 12 || page.Data[1].Symbol != "TWO" {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestGetClankerByAddressUnwrapsData(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"contract_address":"` + requestor + `","pool_address":"0xpool","chain_id":8453}}`))
	})
	token, err := client.GetClankerByAddress(context.Background(), requestor)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if token.ContractAddress != requestor || token.ChainID != 8453 {
		t.Fatalf("unexpected token %+v", token)
	}
}

func TestUncollectedFeesAndRewards(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/get-estimated-uncollected-fees/" + requestor:
			w.Write([]byte(`{"lockerAddress":"0xlocker","lpNftId":7,"token0UncollectedRewards":"100","token1UncollectedRewards":"5","token0":{"symbol":"SYM","decimals":18}}`))
		case "/tokens/estimate-rewards-by-pool-address":
			w.Write([]byte(`{"userRewards":1.5}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	fees, err := client.GetEstimatedUncollectedFees(context.Background(), requestor)
	if err != nil {
		t.Fatalf("fees: %v", err)
	}
	if fees.LpNftID != 7 || fees.Token0UncollectedRewards != "100" || fees.Token0.Symbol != "SYM" {
		t.Fatalf("unexpected fees %+v", fees)
	}
	rewards, err := client.EstimateRewardsByPoolAddress(context.Background(), requestor)
	if err != nil {
		t.Fatalf("rewards: %v", err)
	}
	if rewards.UserRewards != 1.5 {
		t.Fatalf("unexpected rewards %+v", rewards)
	}
}

func TestErrorResponses(t *testing.T) {
	cases := []struct {
		status  int
		body    string
		message string
		code    string
	}{
		{http.StatusBadRequest, `{"error":{"code":"invalid_request","message":"bad symbol"}}`, "bad symbol", "invalid_request"},
		{http.StatusUnauthorized, `{"error":"Invalid API key"}`, "Invalid API key", ""},
		{http.StatusInternalServerError, `upstream down`, "upstream down", ""},
		{http.StatusNotFound, ``, "Not Found", ""},
	}
	for _, tc := range cases {
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte(tc.body))
		})
		_, err := client.GetClankerByAddress(context.Background(), requestor)
		var apiErr *Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("status %d: expected *Error, got %v", tc.status, err)
		}
		if apiErr.Status != tc.status || apiErr.Message != tc.message || apiErr.Code != tc.code || string(apiErr.Body) != tc.body {
			t.Fatalf("status %d: unexpected error %+v", tc.status, apiErr)
		}
	}
}
