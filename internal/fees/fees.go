// Package fees encodes the v4 fee hook selection and its pool data.
package fees

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"clankerSDK/internal/contracts"
	"clankerSDK/internal/validate"
)

// Uniswap expresses fees in hundredths of a bip.
const bpsScale = 100

const (
	// MaxStaticFeeBps caps each side of a static fee.
	MaxStaticFeeBps = 2000
	// MaxDynamicFeeBps caps the dynamic max LP fee.
	MaxDynamicFeeBps = 3000
	// MaxDecayFilterBps is 100%.
	MaxDecayFilterBps = 10000
)

// int24 bounds of resetTickFilter.
const (
	minInt24 = -1 << 23
	maxInt24 = 1<<23 - 1
)

// Config is a fee hook choice.
type Config interface {
	// Encode returns the hook address and its abi-encoded pool data.
	Encode(chain contracts.Chain) (common.Address, []byte, error)
	Validate(errs *validate.Errors)
}

// Static charges fixed fees on each side of the pool.
type Static struct {
	ClankerFeeBps uint32 `json:"clankerFeeBps" yaml:"clankerFeeBps"`
	PairedFeeBps  uint32 `json:"pairedFeeBps" yaml:"pairedFeeBps"`
}

// DefaultStatic is 1% on both sides.
func DefaultStatic() Static {
	return Static{ClankerFeeBps: 100, PairedFeeBps: 100}
}

// Validate implements Config.
func (s Static) Validate(errs *validate.Errors) {
	if s.ClankerFeeBps > MaxStaticFeeBps {
		errs.Add("fees.clankerFee", fmt.Sprintf("must be at most %d bps", MaxStaticFeeBps))
	}
	if s.PairedFeeBps > MaxStaticFeeBps {
		errs.Add("fees.pairedFee", fmt.Sprintf("must be at most %d bps", MaxStaticFeeBps))
	}
}

// Encode implements Config.
func (s Static) Encode(chain contracts.Chain) (common.Address, []byte, error) {
	data, err := contracts.StaticFeePoolData.Pack(
		uint24(s.ClankerFeeBps*bpsScale),
		uint24(s.PairedFeeBps*bpsScale),
	)
	if err != nil {
		return common.Address{}, nil, fmt.Errorf("pack static fee: %w", err)
	}
	return chain.StaticFeeHook, data, nil
}

// Dynamic adjusts the LP fee with recent volatility.
type Dynamic struct {
	BaseFeeBps                uint32 `json:"baseFeeBps" yaml:"baseFeeBps"`
	MaxFeeBps                 uint32 `json:"maxFeeBps" yaml:"maxFeeBps"`
	ReferenceTickFilterPeriod uint64 `json:"referenceTickFilterPeriod" yaml:"referenceTickFilterPeriod"`
	ResetPeriod               uint64 `json:"resetPeriod" yaml:"resetPeriod"`
	ResetTickFilter           int32  `json:"resetTickFilter" yaml:"resetTickFilter"`
	FeeControlNumerator       uint64 `json:"feeControlNumerator" yaml:"feeControlNumerator"`
	DecayFilterBps            uint32 `json:"decayFilterBps" yaml:"decayFilterBps"`
}

// DefaultDynamic is the dynamic preset: 1% base rising to 5%.
func DefaultDynamic() Dynamic {
	return Dynamic{
		BaseFeeBps:                100,
		MaxFeeBps:                 500,
		ReferenceTickFilterPeriod: 30,
		ResetPeriod:               120,
		ResetTickFilter:           200,
		FeeControlNumerator:       500000000,
		DecayFilterBps:            7500,
	}
}

// Validate implements Config.
func (d Dynamic) Validate(errs *validate.Errors) {
	if d.BaseFeeBps < 25 {
		errs.Add("fees.baseFee", "must be at least 25 bps")
	}
	if d.MaxFeeBps > MaxDynamicFeeBps {
		errs.Add("fees.maxLpFee", fmt.Sprintf("must be at most %d bps", MaxDynamicFeeBps))
	}
	if d.BaseFeeBps > d.MaxFeeBps {
		errs.Add("fees.baseFee", "must not exceed max fee")
	}
	if d.ResetTickFilter < minInt24 || d.ResetTickFilter > maxInt24 {
		errs.Add("fees.resetTickFilter", fmt.Sprintf("must be within int24 [%d, %d]", minInt24, maxInt24))
	}
	if d.DecayFilterBps > MaxDecayFilterBps {
		errs.Add("fees.decayFilterBps", fmt.Sprintf("must be at most %d bps", MaxDecayFilterBps))
	}
}

// Encode implements Config.
func (d Dynamic) Encode(chain contracts.Chain) (common.Address, []byte, error) {
	data, err := contracts.DynamicFeePoolData.Pack(
		uint24(d.BaseFeeBps*bpsScale),
		uint24(d.MaxFeeBps*bpsScale),
		new(big.Int).SetUint64(d.ReferenceTickFilterPeriod),
		new(big.Int).SetUint64(d.ResetPeriod),
		big.NewInt(int64(d.ResetTickFilter)),
		new(big.Int).SetUint64(d.FeeControlNumerator),
		uint24(d.DecayFilterBps),
	)
	if err != nil {
		return common.Address{}, nil, fmt.Errorf("pack dynamic fee: %w", err)
	}
	return chain.DynamicFeeHook, data, nil
}

// Decode maps hook pool data back to the fee config that produced it.
func Decode(hook common.Address, data []byte, chain contracts.Chain) (Config, error) {
	switch hook {
	case chain.StaticFeeHook:
		values, err := contracts.StaticFeePoolData.Unpack(data)
		if err != nil {
			return nil, fmt.Errorf("unpack static fee: %w", err)
		}
		return Static{
			ClankerFeeBps: uint32(asUint64(values[0]) / bpsScale),
			PairedFeeBps:  uint32(asUint64(values[1]) / bpsScale),
		}, nil
	case chain.DynamicFeeHook:
		values, err := contracts.DynamicFeePoolData.Unpack(data)
		if err != nil {
			return nil, fmt.Errorf("unpack dynamic fee: %w", err)
		}
		return Dynamic{
			BaseFeeBps:                uint32(asUint64(values[0]) / bpsScale),
			MaxFeeBps:                 uint32(asUint64(values[1]) / bpsScale),
			ReferenceTickFilterPeriod: asUint64(values[2]),
			ResetPeriod:               asUint64(values[3]),
			ResetTickFilter:           int32(asInt64(values[4])),
			FeeControlNumerator:       asUint64(values[5]),
			DecayFilterBps:            uint32(asUint64(values[6])),
		}, nil
	default:
		return nil, fmt.Errorf("unknown fee hook %s", hook.Hex())
	}
}

func uint24(v uint32) *big.Int {
	return new(big.Int).SetUint64(uint64(v))
}

func asUint64(value interface{}) uint64 {
	if v, ok := value.(*big.Int); ok && v != nil {
		return v.Uint64()
	}
	return 0
}

func asInt64(value interface{}) int64 {
	if v, ok := value.(*big.Int); ok && v != nil {
		return v.Int64()
	}
	return 0
}
