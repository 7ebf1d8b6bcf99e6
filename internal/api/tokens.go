package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
)

// GenerateRequestKey returns 32 random hex characters.
func GenerateRequestKey() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("generate request key: %w", err)
	}
	return hex.EncodeToString(buf[:]), nil
}

// GetEstimatedUncollectedFees returns the pending LP rewards of a token.
func (c *Client) GetEstimatedUncollectedFees(ctx context.Context, contractAddress string) (*UncollectedFees, error) {
	if err := checkAddress("contract address", contractAddress); err != nil {
		return nil, err
	}
	var resp UncollectedFees
	if err := c.get(ctx, "/get-estimated-uncollected-fees/"+url.PathEscape(contractAddress), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeployToken asks the API to deploy a token on the caller's behalf.
func (c *Client) DeployToken(ctx context.Context, req DeployTokenRequest) (*Token, error) {
	if err := prepareDeploy(&req); err != nil {
		return nil, err
	}
	var resp Token
	if err := c.post(ctx, "/tokens/deploy", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeployTokenWithSplits deploys a token whose creator rewards go to a split.
func (c *Client) DeployTokenWithSplits(ctx context.Context, req DeployTokenWithSplitsRequest) (*Token, error) {
	if err := checkAddress("split address", req.SplitAddress); err != nil {
		return nil, err
	}
	if err := prepareDeploy(&req.DeployTokenRequest); err != nil {
		return nil, err
	}
	var resp Token
	if err := c.post(ctx, "/tokens/deploy/with-splits", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func prepareDeploy(req *DeployTokenRequest) error {
	if req.Name == "" || req.Symbol == "" {
		return fmt.Errorf("name and symbol are required")
	}
	if err := checkAddress("requestor address", req.RequestorAddress); err != nil {
		return err
	}
	if req.CreatorRewardsAdmin != "" {
		if err := checkAddress("creator rewards admin", req.CreatorRewardsAdmin); err != nil {
			return err
		}
	}
	if req.Pool != nil && req.Pool.PairedToken != "" {
		if err := checkAddress("paired token", req.Pool.PairedToken); err != nil {
			return err
		}
	}
	if req.RequestKey == "" {
		key, err := GenerateRequestKey()
		if err != nil {
			return err
		}
		req.RequestKey = key
	}
	if len(req.RequestKey) != 32 {
		return fmt.Errorf("request key must be 32 characters, got %d", len(req.RequestKey))
	}
	return nil
}

// FetchDeployedByAddress lists tokens deployed by address. Pages start at 1.
func (c *Client) FetchDeployedByAddress(ctx context.Context, address string, page int) (*DeployedTokensPage, error) {
	if err := checkAddress("address", address); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	query := url.Values{}
	query.Set("address", address)
	query.Set("page", strconv.Itoa(page))
	var resp DeployedTokensPage
	if err := c.get(ctx, "/tokens/fetch-deployed-by-address", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EstimateRewardsByPoolAddress estimates the creator rewards of a pool.
func (c *Client) EstimateRewardsByPoolAddress(ctx context.Context, poolAddress string) (*RewardsEstimate, error) {
	if err := checkAddress("pool address", poolAddress); err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("poolAddress", poolAddress)
	var resp RewardsEstimate
	if err := c.get(ctx, "/tokens/estimate-rewards-by-pool-address", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetClankerByAddress looks up one token by its contract address.
func (c *Client) GetClankerByAddress(ctx context.Context, address string) (*Token, error) {
	if err := checkAddress("address", address); err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("address", address)
	var resp struct {
		Data Token `json:"data"`
	}
	if err := c.get(ctx, "/get-clanker-by-address", query, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
