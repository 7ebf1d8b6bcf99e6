// Package v3 builds Clanker v3.1 factory deployments.
package v3

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"clankerSDK/internal/contracts"
	"clankerSDK/internal/model"
	"clankerSDK/internal/ticks"
	"clankerSDK/internal/validate"
)

const (
	DefaultMarketCap     = 10.0
	DefaultPoolFee       = 10000
	DefaultCreatorReward = 40

	MaxVaultPercentage = 30
	MinVaultDuration   = 30 * 24 * time.Hour
	MaxCreatorReward   = 80
)

// Pool places the initial liquidity of a v3.1 token.
type Pool struct {
	PairedToken            common.Address `json:"pairedToken" yaml:"pairedToken"`
	TickIfToken0IsNewToken *int           `json:"tickIfToken0IsNewToken,omitempty" yaml:"tickIfToken0IsNewToken,omitempty"`
	InitialMarketCap       float64        `json:"initialMarketCap" yaml:"initialMarketCap"`
	// PairedTokenDecimals is read from the token when a caller is available.
	PairedTokenDecimals uint8 `json:"pairedTokenDecimals,omitempty" yaml:"pairedTokenDecimals,omitempty"`
}

type Vault struct {
	Percentage uint8         `json:"percentage" yaml:"percentage"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}

// DevBuy buys the token with ETH in the deployment transaction. PoolFee is
// the fee tier of the WETH pool used to reach a non-WETH paired token.
type DevBuy struct {
	EthAmount    *big.Int `json:"ethAmount" yaml:"ethAmount"`
	PoolFee      uint32   `json:"poolFee,omitempty" yaml:"poolFee,omitempty"`
	AmountOutMin *big.Int `json:"amountOutMin,omitempty" yaml:"amountOutMin,omitempty"`
}

// Rewards splits LP fees between the creator and the deploying interface.
// CreatorReward is a percentage; zero means DefaultCreatorReward.
type Rewards struct {
	CreatorReward            uint8          `json:"creatorReward" yaml:"creatorReward"`
	CreatorAdmin             common.Address `json:"creatorAdmin" yaml:"creatorAdmin"`
	CreatorRewardRecipient   common.Address `json:"creatorRewardRecipient" yaml:"creatorRewardRecipient"`
	InterfaceAdmin           common.Address `json:"interfaceAdmin" yaml:"interfaceAdmin"`
	InterfaceRewardRecipient common.Address `json:"interfaceRewardRecipient" yaml:"interfaceRewardRecipient"`
}

// Token is the user-level v3.1 deployment description.
type Token struct {
	Name               string              `json:"name" yaml:"name"`
	Symbol             string              `json:"symbol" yaml:"symbol"`
	Image              string              `json:"image,omitempty" yaml:"image,omitempty"`
	Metadata           model.TokenMetadata `json:"metadata" yaml:"metadata"`
	Context            model.SocialContext `json:"context" yaml:"context"`
	ChainID            uint64              `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	OriginatingChainID uint64              `json:"originatingChainId,omitempty" yaml:"originatingChainId,omitempty"`
	Salt               *[32]byte           `json:"-" yaml:"-"`

	Pool    Pool    `json:"pool" yaml:"pool"`
	Vault   Vault   `json:"vault" yaml:"vault"`
	DevBuy  *DevBuy `json:"devBuy,omitempty" yaml:"devBuy,omitempty"`
	Rewards Rewards `json:"rewards" yaml:"rewards"`
}

func (t Token) withDefaults(c contracts.Chain) Token {
	if t.ChainID == 0 {
		t.ChainID = c.ID
	}
	if t.OriginatingChainID == 0 {
		t.OriginatingChainID = t.ChainID
	}
	if t.Pool.PairedToken == (common.Address{}) {
		t.Pool.PairedToken = c.WETH
	}
	if t.Pool.InitialMarketCap == 0 {
		t.Pool.InitialMarketCap = DefaultMarketCap
	}
	if t.Rewards.CreatorReward == 0 {
		t.Rewards.CreatorReward = DefaultCreatorReward
	}
	if t.Rewards.CreatorRewardRecipient == (common.Address{}) {
		t.Rewards.CreatorRewardRecipient = t.Rewards.CreatorAdmin
	}
	if t.Rewards.InterfaceAdmin == (common.Address{}) {
		t.Rewards.InterfaceAdmin = t.Rewards.CreatorAdmin
	}
	if t.Rewards.InterfaceRewardRecipient == (common.Address{}) {
		t.Rewards.InterfaceRewardRecipient = t.Rewards.InterfaceAdmin
	}
	if t.DevBuy != nil {
		d := *t.DevBuy
		if d.PoolFee == 0 {
			d.PoolFee = DefaultPoolFee
		}
		t.DevBuy = &d
	}
	return t
}

func (t Token) validate(tick int, errs *validate.Errors) {
	if t.Name == "" || t.Symbol == "" {
		errs.Add("name", "Name and symbol are required")
	}
	if t.Rewards.CreatorAdmin == (common.Address{}) {
		errs.Add("rewards.creatorAdmin", "is required")
	}
	if t.Rewards.CreatorReward > MaxCreatorReward {
		errs.Add("rewards.creatorReward", fmt.Sprintf("must be at most %d", MaxCreatorReward))
	}
	if t.Vault.Percentage > MaxVaultPercentage {
		errs.Add("vault.percentage", fmt.Sprintf("must be at most %d", MaxVaultPercentage))
	}
	if t.Vault.Percentage > 0 && t.Vault.Duration < MinVaultDuration {
		errs.Add("vault.duration", "must be at least 30 days")
	}
	if !ticks.IsAligned(tick, ticks.Spacing) {
		errs.Add("pool.tickIfToken0IsNewToken", fmt.Sprintf("must be a multiple of tick spacing %d", ticks.Spacing))
	}
	if t.DevBuy != nil && (t.DevBuy.EthAmount == nil || t.DevBuy.EthAmount.Sign() <= 0) {
		errs.Add("devBuy.ethAmount", "must be positive")
	}
}

func (t Token) deploymentConfig(tick int, salt [32]byte) (contracts.DeploymentConfigV3, *big.Int, error) {
	metadata, err := t.Metadata.Encode()
	if err != nil {
		return contracts.DeploymentConfigV3{}, nil, fmt.Errorf("encode metadata: %w", err)
	}
	context, err := t.Context.Encode()
	if err != nil {
		return contracts.DeploymentConfigV3{}, nil, fmt.Errorf("encode context: %w", err)
	}

	value := new(big.Int)
	initialBuy := contracts.InitialBuyConfigV3{
		PairedTokenPoolFee:              big.NewInt(DefaultPoolFee),
		PairedTokenSwapAmountOutMinimum: new(big.Int),
	}
	if t.DevBuy != nil {
		value.Set(t.DevBuy.EthAmount)
		initialBuy.PairedTokenPoolFee = big.NewInt(int64(t.DevBuy.PoolFee))
		if t.DevBuy.AmountOutMin != nil {
			initialBuy.PairedTokenSwapAmountOutMinimum = new(big.Int).Set(t.DevBuy.AmountOutMin)
		}
	}

	return contracts.DeploymentConfigV3{
		TokenConfig: contracts.TokenConfigV3{
			Name:               t.Name,
			Symbol:             t.Symbol,
			Salt:               salt,
			Image:              t.Image,
			Metadata:           metadata,
			Context:            context,
			OriginatingChainId: new(big.Int).SetUint64(t.OriginatingChainID),
		},
		VaultConfig: contracts.VaultConfigV3{
			VaultPercentage: t.Vault.Percentage,
			VaultDuration:   big.NewInt(int64(t.Vault.Duration / time.Second)),
		},
		PoolConfig: contracts.PoolConfigV3{
			PairedToken:            t.Pool.PairedToken,
			TickIfToken0IsNewToken: big.NewInt(int64(tick)),
		},
		InitialBuyConfig: initialBuy,
		RewardsConfig: contracts.RewardsConfigV3{
			CreatorReward:            big.NewInt(int64(t.Rewards.CreatorReward)),
			CreatorAdmin:             t.Rewards.CreatorAdmin,
			CreatorRewardRecipient:   t.Rewards.CreatorRewardRecipient,
			InterfaceAdmin:           t.Rewards.InterfaceAdmin,
			InterfaceRewardRecipient: t.Rewards.InterfaceRewardRecipient,
		},
	}, value, nil
}
