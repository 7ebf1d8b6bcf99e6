// Package ticks converts between prices, market caps and Uniswap ticks.
package ticks

import (
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common"

	"clankerSDK/internal/contracts"
)

const (
	// Spacing is the tick spacing of every Clanker pool.
	Spacing = 200

	// MinTick and MaxTick bound a Uniswap tick.
	MinTick = -887272
	MaxTick = 887272

	// TokenSupply is the whole-token supply of a Clanker token.
	TokenSupply = 100_000_000_000
)

var logBase = math.Log(1.0001)

// TickForPrice returns the tick of price rounded down to a multiple of spacing.
func TickForPrice(price float64, spacing int) (int, error) {
	if spacing <= 0 {
		return 0, fmt.Errorf("tick spacing must be positive, got %d", spacing)
	}
	if !(price > 0) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("price must be positive and finite, got %v", price)
	}
	raw := math.Log(price) / logBase
	tick := int(math.Floor(raw/float64(spacing))) * spacing
	if tick < MinTick || tick > MaxTick {
		return 0, fmt.Errorf("tick %d out of range", tick)
	}
	return tick, nil
}

// PriceAtTick returns 1.0001^tick.
func PriceAtTick(tick int) float64 {
	return math.Pow(1.0001, float64(tick))
}

// GetTickFromMarketCap returns the starting tick for a WETH-paired token with
// the given market cap in ETH.
func GetTickFromMarketCap(marketCap float64) (int, error) {
	if !(marketCap > 0) {
		return 0, fmt.Errorf("market cap must be positive, got %v", marketCap)
	}
	return TickForPrice(marketCap/TokenSupply, Spacing)
}

// ComputeTicksFromMarketCap resolves a paired token (preset symbol or
// address) and returns the starting tick and the paired token address.
// Presets with a fixed desired price ignore marketCap.
func ComputeTicksFromMarketCap(marketCap float64, pair string) (int, common.Address, error) {
	preset, ok := contracts.PairedTokenBySymbol(pair)
	if !ok {
		if !common.IsHexAddress(pair) {
			return 0, common.Address{}, fmt.Errorf("unknown paired token %q", pair)
		}
		preset, ok = contracts.PairedTokenByAddress(common.HexToAddress(pair))
		if !ok {
			return 0, common.Address{}, fmt.Errorf("paired token %s has no preset, use TickForCustomPair", pair)
		}
	}
	if preset.DesiredPrice == 0 {
		tick, err := GetTickFromMarketCap(marketCap)
		return tick, preset.Address, err
	}
	tick, err := TickForPrice(preset.DesiredPrice, Spacing)
	return tick, preset.Address, err
}

// TickForCustomPair places the starting tick for a token paired against an
// arbitrary ERC20 whose market cap is quoted in that token's whole units.
func TickForCustomPair(marketCap float64, pairedDecimals uint8) (int, error) {
	if !(marketCap > 0) {
		return 0, fmt.Errorf("market cap must be positive, got %v", marketCap)
	}
	price := AdjustForDecimals(marketCap/TokenSupply, 18, pairedDecimals)
	return TickForPrice(price, Spacing)
}

// AdjustForDecimals rescales a whole-unit price of a token with baseDecimals
// quoted in a token with quoteDecimals into a raw-unit price.
func AdjustForDecimals(price float64, baseDecimals, quoteDecimals uint8) float64 {
	return price * math.Pow10(int(quoteDecimals)-int(baseDecimals))
}

// Align rounds tick down to a multiple of spacing.
func Align(tick, spacing int) int {
	if spacing <= 0 {
		return tick
	}
	q := tick / spacing
	if tick%spacing != 0 && tick < 0 {
		q--
	}
	return q * spacing
}

// IsAligned reports whether tick is a multiple of spacing.
func IsAligned(tick, spacing int) bool {
	return spacing > 0 && tick%spacing == 0
}
