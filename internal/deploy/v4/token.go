// Package v4 turns a user-level token description into Clanker v4 factory
// calls.
package v4

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"clankerSDK/internal/contracts"
	"clankerSDK/internal/extensions"
	"clankerSDK/internal/fees"
	"clankerSDK/internal/model"
	"clankerSDK/internal/ticks"
	"clankerSDK/internal/validate"
)

// DefaultMarketCap is the starting market cap in paired token units.
const DefaultMarketCap = 10.0

// MaxRewardRecipients is the locker's limit on reward entries.
const MaxRewardRecipients = 7

// FeePreference selects which side of the pool fees a recipient takes.
type FeePreference uint8

const (
	FeeBoth FeePreference = iota
	FeePaired
	FeeClanker
)

// ParseFeePreference maps "both", "paired" and "clanker", or their
// numeric values 0, 1 and 2.
func ParseFeePreference(s string) (FeePreference, error) {
	switch s {
	case "", "both", "Both", "0":
		return FeeBoth, nil
	case "paired", "Paired", "1":
		return FeePaired, nil
	case "clanker", "Clanker", "2":
		return FeeClanker, nil
	default:
		return 0, fmt.Errorf("unknown fee preference %q", s)
	}
}

func (p FeePreference) String() string {
	switch p {
	case FeeBoth:
		return "both"
	case FeePaired:
		return "paired"
	case FeeClanker:
		return "clanker"
	default:
		return fmt.Sprintf("FeePreference(%d)", uint8(p))
	}
}

func (p FeePreference) MarshalText() ([]byte, error) {
	if p > FeeClanker {
		return nil, fmt.Errorf("unknown fee preference %d", uint8(p))
	}
	return []byte(p.String()), nil
}

func (p *FeePreference) UnmarshalText(text []byte) error {
	v, err := ParseFeePreference(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// UnmarshalJSON also accepts the bare numbers older token files use.
func (p *FeePreference) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	return p.UnmarshalText(bytes.Trim(data, `"`))
}

// Reward is one locker reward entry.
type Reward struct {
	Admin     common.Address `json:"admin" yaml:"admin"`
	Recipient common.Address `json:"recipient" yaml:"recipient"`
	Bps       uint16         `json:"bps" yaml:"bps"`
	Token     FeePreference  `json:"token" yaml:"token"`
}

// Position is one liquidity range of the initial pool.
type Position struct {
	TickLower   int    `json:"tickLower" yaml:"tickLower"`
	TickUpper   int    `json:"tickUpper" yaml:"tickUpper"`
	PositionBps uint16 `json:"positionBps" yaml:"positionBps"`
}

// Pool places the token's initial liquidity.
type Pool struct {
	// PairedToken defaults to the chain's WETH.
	PairedToken common.Address `json:"pairedToken" yaml:"pairedToken"`
	// TickIfToken0IsClanker overrides the tick derived from InitialMarketCap.
	TickIfToken0IsClanker *int    `json:"tickIfToken0IsClanker,omitempty" yaml:"tickIfToken0IsClanker,omitempty"`
	InitialMarketCap      float64 `json:"initialMarketCap" yaml:"initialMarketCap"`
	// PairedTokenDecimals is used for paired tokens without a preset; zero means 18.
	PairedTokenDecimals uint8      `json:"pairedTokenDecimals,omitempty" yaml:"pairedTokenDecimals,omitempty"`
	TickSpacing         int        `json:"tickSpacing,omitempty" yaml:"tickSpacing,omitempty"`
	Positions           []Position `json:"positions,omitempty" yaml:"positions,omitempty"`
}

// Token is the user-level v4 deployment description.
type Token struct {
	Name               string              `json:"name" yaml:"name"`
	Symbol             string              `json:"symbol" yaml:"symbol"`
	TokenAdmin         common.Address      `json:"tokenAdmin" yaml:"tokenAdmin"`
	Image              string              `json:"image,omitempty" yaml:"image,omitempty"`
	Metadata           model.TokenMetadata `json:"metadata" yaml:"metadata"`
	Context            model.SocialContext `json:"context" yaml:"context"`
	ChainID            uint64              `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	OriginatingChainID uint64              `json:"originatingChainId,omitempty" yaml:"originatingChainId,omitempty"`

	Pool    Pool        `json:"pool" yaml:"pool"`
	Fees    fees.Config `json:"-" yaml:"-"`
	Rewards []Reward    `json:"rewards,omitempty" yaml:"rewards,omitempty"`

	Vault   *extensions.Vault   `json:"vault,omitempty" yaml:"vault,omitempty"`
	Airdrop *extensions.Airdrop `json:"airdrop,omitempty" yaml:"airdrop,omitempty"`
	DevBuy  *extensions.DevBuy  `json:"devBuy,omitempty" yaml:"devBuy,omitempty"`
	Presale *extensions.Presale `json:"presale,omitempty" yaml:"presale,omitempty"`

	Vanity bool      `json:"vanity,omitempty" yaml:"vanity,omitempty"`
	Salt   *[32]byte `json:"-" yaml:"-"`
}

// resolved is a Token with every default filled.
type resolved struct {
	Token
	chainID    uint64
	weth       common.Address
	tick       int
	positions  []Position
	rewards    []Reward
	fees       fees.Config
	extensions []extensions.Extension
}

func resolve(tok Token, weth common.Address, chainID uint64) (resolved, error) {
	r := resolved{Token: tok, chainID: chainID, weth: weth}
	if r.ChainID == 0 {
		r.ChainID = chainID
	}
	if r.OriginatingChainID == 0 {
		r.OriginatingChainID = r.ChainID
	}
	if r.Pool.PairedToken == (common.Address{}) {
		r.Pool.PairedToken = weth
	}
	if r.Pool.TickSpacing == 0 {
		r.Pool.TickSpacing = ticks.Spacing
	}

	tick, err := startingTick(r.Pool, weth)
	if err != nil {
		return resolved{}, err
	}
	r.tick = tick

	r.positions = r.Pool.Positions
	if len(r.positions) == 0 {
		r.positions = DefaultPositions(tick)
	}

	r.rewards = r.Rewards
	if len(r.rewards) == 0 {
		r.rewards = []Reward{{Admin: r.TokenAdmin, Recipient: r.TokenAdmin, Bps: validate.TotalBps, Token: FeeBoth}}
	}

	r.fees = r.Fees
	if r.fees == nil {
		r.fees = fees.DefaultStatic()
	}

	if r.Vault != nil {
		v := *r.Vault
		if v.Recipient == (common.Address{}) {
			v.Recipient = r.TokenAdmin
		}
		r.extensions = append(r.extensions, v)
	}
	if r.Airdrop != nil {
		a := *r.Airdrop
		if a.Admin == (common.Address{}) {
			a.Admin = r.TokenAdmin
		}
		r.extensions = append(r.extensions, a)
	}
	if r.Presale != nil {
		r.extensions = append(r.extensions, *r.Presale)
	}
	if r.DevBuy != nil {
		d := *r.DevBuy
		if d.Recipient == (common.Address{}) {
			d.Recipient = r.TokenAdmin
		}
		r.extensions = append(r.extensions, d)
	}
	return r, nil
}

func startingTick(pool Pool, weth common.Address) (int, error) {
	if pool.TickIfToken0IsClanker != nil {
		return *pool.TickIfToken0IsClanker, nil
	}
	mc := pool.InitialMarketCap
	if mc == 0 {
		mc = DefaultMarketCap
	}
	if pool.PairedToken == weth {
		return ticks.GetTickFromMarketCap(mc)
	}
	if _, ok := contracts.PairedTokenByAddress(pool.PairedToken); ok {
		tick, _, err := ticks.ComputeTicksFromMarketCap(mc, pool.PairedToken.Hex())
		return tick, err
	}
	decimals := pool.PairedTokenDecimals
	if decimals == 0 {
		decimals = 18
	}
	return ticks.TickForCustomPair(mc, decimals)
}

func (r resolved) validate(errs *validate.Errors) {
	if r.Name == "" || r.Symbol == "" {
		errs.Add("name", "Name and symbol are required")
	}
	if r.TokenAdmin == (common.Address{}) {
		errs.Add("tokenAdmin", "Token admin is required")
	}

	spacing := r.Pool.TickSpacing
	if spacing <= 0 {
		errs.Add("pool.tickSpacing", "must be positive")
		spacing = ticks.Spacing
	}
	if !ticks.IsAligned(r.tick, spacing) {
		errs.Add("pool.tickIfToken0IsClanker", fmt.Sprintf("must be a multiple of tick spacing %d", spacing))
	}

	touches := false
	bps := make([]uint16, 0, len(r.positions))
	for i, p := range r.positions {
		field := fmt.Sprintf("pool.positions[%d]", i)
		if !ticks.IsAligned(p.TickLower, spacing) || !ticks.IsAligned(p.TickUpper, spacing) {
			errs.Add(field, fmt.Sprintf("ticks must be multiples of tick spacing %d", spacing))
		}
		if p.TickLower >= p.TickUpper {
			errs.Add(field, "tickLower must be below tickUpper")
		}
		if p.TickLower < r.tick {
			errs.Add(field, "tickLower must not be below the starting tick")
		}
		if p.TickLower < ticks.MinTick || p.TickUpper > ticks.MaxTick {
			errs.Add(field, "tick out of range")
		}
		if p.TickLower == r.tick {
			touches = true
		}
		bps = append(bps, p.PositionBps)
	}
	if !touches {
		errs.Add("pool.positions", "Starting price must have a lower tick position that touches it")
	}
	if validate.SumBps(bps) != validate.TotalBps {
		errs.Add("pool.positions", "position bps must sum to 10000")
	}

	if len(r.rewards) > MaxRewardRecipients {
		errs.Add("rewards", fmt.Sprintf("at most %d reward recipients", MaxRewardRecipients))
	}
	bps = bps[:0]
	for i, reward := range r.rewards {
		field := fmt.Sprintf("rewards[%d]", i)
		if reward.Admin == (common.Address{}) {
			errs.Add(field+".admin", "is required")
		}
		if reward.Recipient == (common.Address{}) {
			errs.Add(field+".recipient", "is required")
		}
		if reward.Bps == 0 {
			errs.Add(field+".bps", "must be positive")
		}
		if reward.Token > FeeClanker {
			errs.Add(field+".token", "unknown fee preference")
		}
		bps = append(bps, reward.Bps)
	}
	if validate.SumBps(bps) != validate.TotalBps {
		errs.Add("rewards", "reward bps must sum to 10000")
	}

	r.fees.Validate(errs)
	extensions.Validate(r.extensions, errs)

	if r.DevBuy != nil && r.Pool.PairedToken != r.weth {
		key := r.DevBuy.PoolKey
		if key.Currency0 == (common.Address{}) && key.Currency1 == (common.Address{}) {
			errs.Add("devBuy.poolKey", "is required when the paired token is not WETH")
		}
	}
}

func (r resolved) tokenConfig(salt [32]byte) (contracts.TokenConfigV4, error) {
	metadata, err := r.Metadata.Encode()
	if err != nil {
		return contracts.TokenConfigV4{}, fmt.Errorf("encode metadata: %w", err)
	}
	context, err := r.Context.Encode()
	if err != nil {
		return contracts.TokenConfigV4{}, fmt.Errorf("encode context: %w", err)
	}
	return contracts.TokenConfigV4{
		TokenAdmin:         r.TokenAdmin,
		Name:               r.Name,
		Symbol:             r.Symbol,
		Salt:               salt,
		Image:              r.Image,
		Metadata:           metadata,
		Context:            context,
		OriginatingChainId: new(big.Int).SetUint64(r.OriginatingChainID),
	}, nil
}

func (r resolved) deploymentConfig(chain contracts.Chain, salt [32]byte) (contracts.DeploymentConfigV4, *big.Int, error) {
	tokenCfg, err := r.tokenConfig(salt)
	if err != nil {
		return contracts.DeploymentConfigV4{}, nil, err
	}

	hook, poolData, err := r.fees.Encode(chain)
	if err != nil {
		return contracts.DeploymentConfigV4{}, nil, err
	}

	locker := contracts.LockerConfigV4{Locker: chain.LockerV4}
	prefs := make([]uint8, 0, len(r.rewards))
	for _, reward := range r.rewards {
		locker.RewardAdmins = append(locker.RewardAdmins, reward.Admin)
		locker.RewardRecipients = append(locker.RewardRecipients, reward.Recipient)
		locker.RewardBps = append(locker.RewardBps, reward.Bps)
		prefs = append(prefs, uint8(reward.Token))
	}
	for _, p := range r.positions {
		locker.TickLower = append(locker.TickLower, big.NewInt(int64(p.TickLower)))
		locker.TickUpper = append(locker.TickUpper, big.NewInt(int64(p.TickUpper)))
		locker.PositionBps = append(locker.PositionBps, p.PositionBps)
	}
	locker.LockerData, err = contracts.LockerData.Pack(contracts.LockerInstantiation{FeePreference: prefs})
	if err != nil {
		return contracts.DeploymentConfigV4{}, nil, fmt.Errorf("pack locker data: %w", err)
	}

	extCfgs, value, err := extensions.Configs(r.extensions, chain)
	if err != nil {
		return contracts.DeploymentConfigV4{}, nil, err
	}

	return contracts.DeploymentConfigV4{
		TokenConfig: tokenCfg,
		PoolConfig: contracts.PoolConfigV4{
			Hook:                  hook,
			PairedToken:           r.Pool.PairedToken,
			TickIfToken0IsClanker: big.NewInt(int64(r.tick)),
			TickSpacing:           big.NewInt(int64(r.Pool.TickSpacing)),
			PoolData:              poolData,
		},
		LockerConfig: locker,
		MevModuleConfig: contracts.MevModuleConfig{
			MevModule:     chain.MevModule,
			MevModuleData: []byte{},
		},
		ExtensionConfigs: extCfgs,
	}, value, nil
}
