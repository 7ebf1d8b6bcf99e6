package api

import "encoding/json"

type SocialMediaURL struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type PoolRequest struct {
	PairedToken      string  `json:"pairedToken,omitempty"`
	InitialMarketCap float64 `json:"initialMarketCap,omitempty"`
}

type VaultRequest struct {
	Percentage     int `json:"percentage"`
	DurationInDays int `json:"durationInDays"`
}

type DevBuyRequest struct {
	EthAmount string `json:"ethAmount"`
}

// DeployTokenRequest is the body of POST /tokens/deploy. RequestKey makes
// the call idempotent; DeployToken generates one when it is empty.
type DeployTokenRequest struct {
	Name                     string           `json:"name"`
	Symbol                   string           `json:"symbol"`
	Image                    string           `json:"image,omitempty"`
	RequestorAddress         string           `json:"requestorAddress"`
	RequestKey               string           `json:"requestKey"`
	CreatorRewardsPercentage int              `json:"creatorRewardsPercentage,omitempty"`
	CreatorRewardsAdmin      string           `json:"creatorRewardsAdmin,omitempty"`
	Description              string           `json:"description,omitempty"`
	SocialMediaUrls          []SocialMediaURL `json:"socialMediaUrls,omitempty"`
	Platform                 string           `json:"platform,omitempty"`
	MessageID                string           `json:"messageId,omitempty"`
	ID                       string           `json:"id,omitempty"`
	ChainID                  uint64           `json:"chainId,omitempty"`
	Pool                     *PoolRequest     `json:"pool,omitempty"`
	Vault                    *VaultRequest    `json:"vault,omitempty"`
	DevBuy                   *DevBuyRequest   `json:"devBuy,omitempty"`
}

// DeployTokenWithSplitsRequest routes creator rewards to a split contract.
type DeployTokenWithSplitsRequest struct {
	DeployTokenRequest
	SplitAddress string `json:"splitAddress"`
}

// Token is a deployed token as the API reports it.
type Token struct {
	ID                int64           `json:"id"`
	CreatedAt         string          `json:"created_at"`
	TxHash            string          `json:"tx_hash"`
	ContractAddress   string          `json:"contract_address"`
	RequestorFID      int64           `json:"requestor_fid,omitempty"`
	Name              string          `json:"name"`
	Symbol            string          `json:"symbol"`
	ImgURL            string          `json:"img_url,omitempty"`
	PoolAddress       string          `json:"pool_address,omitempty"`
	CastHash          string          `json:"cast_hash,omitempty"`
	Type              string          `json:"type,omitempty"`
	Pair              string          `json:"pair,omitempty"`
	ChainID           uint64          `json:"chain_id,omitempty"`
	Admin             string          `json:"admin,omitempty"`
	StartingMarketCap float64         `json:"starting_market_cap,omitempty"`
	Metadata          json.RawMessage `json:"metadata,omitempty"`
	SocialContext     json.RawMessage `json:"social_context,omitempty"`
}

// DeployedTokensPage is one page of FetchDeployedByAddress.
type DeployedTokensPage struct {
	Data    []Token `json:"data"`
	HasMore bool    `json:"hasMore"`
	Total   int     `json:"total"`
}

type TokenInfo struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
	Name     string `json:"name,omitempty"`
}

// UncollectedFees are the locker's pending LP rewards for one token.
// Amounts are raw decimal strings.
type UncollectedFees struct {
	LockerAddress            string    `json:"lockerAddress"`
	LpNftID                  int64     `json:"lpNftId"`
	Token0UncollectedRewards string    `json:"token0UncollectedRewards"`
	Token1UncollectedRewards string    `json:"token1UncollectedRewards"`
	Token0                   TokenInfo `json:"token0"`
	Token1                   TokenInfo `json:"token1"`
}

type RewardsEstimate struct {
	UserRewards float64 `json:"userRewards"`
}
