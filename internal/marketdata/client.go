// Package marketdata reads token market data from Dune, a Uniswap subgraph
// and CoinGecko Pro.
package marketdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultDuneBaseURL      = "https://api.dune.com"
	DefaultCoinGeckoBaseURL = "https://pro-api.coingecko.com/api/v3"
	DefaultTimeout          = 30 * time.Second

	SourceDune      = "dune"
	SourceGraph     = "graph"
	SourceCoinGecko = "coingecko"
)

// Error is a failed upstream request.
type Error struct {
	Source  string
	Status  int
	Message string
	Body    []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Source, e.Status, e.Message)
}

// Client holds credentials for every upstream. Unset keys are only an
// error when the matching source is used.
type Client struct {
	httpClient       *http.Client
	duneBaseURL      string
	duneKey          string
	graphURL         string
	graphKey         string
	coinGeckoBaseURL string
	coinGeckoKey     string
	logger           *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option { return func(cl *Client) { cl.httpClient = c } }

func WithDune(baseURL, apiKey string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.duneBaseURL = strings.TrimRight(baseURL, "/")
		}
		c.duneKey = apiKey
	}
}

// WithGraph sets the full subgraph query URL. apiKey, when set, is sent as
// a bearer token.
func WithGraph(queryURL, apiKey string) Option {
	return func(c *Client) {
		c.graphURL = queryURL
		c.graphKey = apiKey
	}
}

func WithCoinGecko(baseURL, apiKey string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.coinGeckoBaseURL = strings.TrimRight(baseURL, "/")
		}
		c.coinGeckoKey = apiKey
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:       &http.Client{Timeout: DefaultTimeout},
		duneBaseURL:      DefaultDuneBaseURL,
		coinGeckoBaseURL: DefaultCoinGeckoBaseURL,
		logger:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, source, method, rawURL string, headers map[string]string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", source, err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", source, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", source, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", source, err)
	}
	c.logger.Debug("market data request",
		zap.String("source", source),
		zap.String("url", redact(rawURL)),
		zap.Int("status", resp.StatusCode),
	)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Source: source, Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, respBody), Body: respBody}
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("parse %s response: %w", source, err)
	}
	return nil
}

func errorMessage(status int, body []byte) string {
	var payload struct {
		Error   interface{} `json:"error"`
		Message string      `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		switch v := payload.Error.(type) {
		case string:
			return v
		case map[string]interface{}:
			if msg, ok := v["message"].(string); ok {
				return msg
			}
		}
	}
	if len(body) > 0 {
		return string(body)
	}
	return http.StatusText(status)
}

func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.RawQuery = ""
	return u.String()
}
