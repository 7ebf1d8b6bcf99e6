package contracts

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// BaseChainID is the chain id of Base mainnet.
const BaseChainID uint64 = 8453

// Chain is the address book of one deployment of the Clanker contracts.
type Chain struct {
	ID   uint64
	Name string
	WETH common.Address

	FactoryV3 common.Address
	LockerV3  common.Address

	FactoryV4      common.Address
	LockerV4       common.Address
	FeeLocker      common.Address
	Vault          common.Address
	Airdrop        common.Address
	DevBuy         common.Address
	Presale        common.Address
	MevModule      common.Address
	StaticFeeHook  common.Address
	DynamicFeeHook common.Address

	LegacyLocker common.Address
	SafeSpender  common.Address
}

var chains = map[uint64]Chain{
	BaseChainID: {
		ID:             BaseChainID,
		Name:           "base",
		WETH:           common.HexToAddress("0x4200000000000000000000000000000000000006"),
		FactoryV3:      common.HexToAddress("0x2A787b2362021cC3eEa3C24C4748a6cD5B687382"),
		LockerV3:       common.HexToAddress("0x33e2Eda238edcF470309b8c6D228986A1204c8f9"),
		FactoryV4:      common.HexToAddress("0xE85A59c628F7d27878ACeB4bf3b35733630083a9"),
		LockerV4:       common.HexToAddress("0x29d17C1A8D851d7d4cA97FAe97AcAdb398D9cCE0"),
		FeeLocker:      common.HexToAddress("0xF3622742b1E446D92e45E22923Ef11C2fcD55D68"),
		Vault:          common.HexToAddress("0x8E845EAd15737bF71904A30BdDD3aEE76d6ADF6C"),
		Airdrop:        common.HexToAddress("0x56Fa0Da89eD94822e46734e736d34Cab72dF344F"),
		DevBuy:         common.HexToAddress("0x1331f0788F9c08C8F38D52c7a1152250A9dE00be"),
		MevModule:      common.HexToAddress("0xE143f9872A33c955F23cF442BB4B1EFB3A7402A2"),
		StaticFeeHook:  common.HexToAddress("0xDd5EeaFf7BD481AD55Db083062b13a3cdf0A68CC"),
		DynamicFeeHook: common.HexToAddress("0x34a45c6B61876d739400Bd71228CbcbD4F53E8cC"),
	},
}

// ChainByID returns the address book for a chain id.
func ChainByID(id uint64) (Chain, error) {
	c, ok := chains[id]
	if !ok {
		return Chain{}, fmt.Errorf("unsupported chain id %d", id)
	}
	return c, nil
}

// Overrides replaces individual addresses of c. Keys are the lower-case
// field names of Chain ("presale", "static-fee-hook", ...).
func (c Chain) Overrides(values map[string]string) (Chain, error) {
	for key, value := range values {
		if !common.IsHexAddress(value) {
			return c, fmt.Errorf("override %s: invalid address %q", key, value)
		}
		addr := common.HexToAddress(value)
		switch strings.ReplaceAll(strings.ToLower(key), "_", "-") {
		case "weth":
			c.WETH = addr
		case "factory-v3":
			c.FactoryV3 = addr
		case "locker-v3":
			c.LockerV3 = addr
		case "factory-v4":
			c.FactoryV4 = addr
		case "locker-v4":
			c.LockerV4 = addr
		case "fee-locker":
			c.FeeLocker = addr
		case "vault":
			c.Vault = addr
		case "airdrop":
			c.Airdrop = addr
		case "dev-buy":
			c.DevBuy = addr
		case "presale":
			c.Presale = addr
		case "mev-module":
			c.MevModule = addr
		case "static-fee-hook":
			c.StaticFeeHook = addr
		case "dynamic-fee-hook":
			c.DynamicFeeHook = addr
		case "legacy-locker":
			c.LegacyLocker = addr
		case "safe-spender":
			c.SafeSpender = addr
		default:
			return c, fmt.Errorf("override %s: unknown contract", key)
		}
	}
	return c, nil
}

// PairedToken is a known quote token with the fixed price used to place the
// starting tick when it is not WETH.
type PairedToken struct {
	Symbol   string
	Address  common.Address
	Decimals uint8
	// DesiredPrice is the starting token price in units of the paired token.
	// Zero means the price scales with the requested market cap.
	DesiredPrice float64
}

var pairedTokens = []PairedToken{
	{Symbol: "WETH", Address: common.HexToAddress("0x4200000000000000000000000000000000000006"), Decimals: 18},
	{Symbol: "DEGEN", Address: common.HexToAddress("0x4ed4E862860beD51a9570b96d89aF5E1B0Efefed"), Decimals: 18, DesiredPrice: 0.00000666666667},
	{Symbol: "ANON", Address: common.HexToAddress("0x0Db510e79909666d6dEc7f5e49370838c16D950f"), Decimals: 18, DesiredPrice: 0.000000166666667},
	{Symbol: "HIGHER", Address: common.HexToAddress("0x0578d8A44db98B23BF096A382e016e29a5Ce0ffe"), Decimals: 18, DesiredPrice: 0.0000004},
	{Symbol: "CLANKER", Address: common.HexToAddress("0x1bc0c42215582d5A085795f4baDbaC3ff36d1Bcb"), Decimals: 18, DesiredPrice: 0.000000000135},
	{Symbol: "NATIVE", Address: common.HexToAddress("0x20DD04c17AFD5c9a8b3f2cdacaa8Ee7907385BEF"), Decimals: 18, DesiredPrice: 0.00000166666667},
}

// PairedTokenBySymbol looks a preset up by symbol, case-insensitively.
func PairedTokenBySymbol(symbol string) (PairedToken, bool) {
	for _, p := range pairedTokens {
		if strings.EqualFold(p.Symbol, symbol) {
			return p, true
		}
	}
	return PairedToken{}, false
}

// PairedTokenByAddress looks a preset up by address.
func PairedTokenByAddress(addr common.Address) (PairedToken, bool) {
	for _, p := range pairedTokens {
		if p.Address == addr {
			return p, true
		}
	}
	return PairedToken{}, false
}
