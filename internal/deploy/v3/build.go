package v3

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"clankerSDK/internal/chain"
	"clankerSDK/internal/contracts"
	"clankerSDK/internal/ticks"
	"clankerSDK/internal/validate"
)

// Options selects the chain and an optional node for reads.
type Options struct {
	Chain contracts.Chain
	// Caller reads custom paired token decimals and simulates the
	// deployment to fill the expected address.
	Caller chain.Caller
	From   common.Address
}

// Build validates tok and returns the v3.1 deployToken call.
func Build(ctx context.Context, tok Token, opts Options) (*chain.CallDescriptor, error) {
	c := opts.Chain
	if c.ID == 0 {
		id := tok.ChainID
		if id == 0 {
			id = contracts.BaseChainID
		}
		var err error
		if c, err = contracts.ChainByID(id); err != nil {
			return nil, err
		}
	}
	tok = tok.withDefaults(c)

	tick, err := startingTick(ctx, tok.Pool, c.WETH, opts.Caller)
	if err != nil {
		return nil, err
	}
	var errs validate.Errors
	tok.validate(tick, &errs)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	var salt [32]byte
	if tok.Salt != nil {
		salt = *tok.Salt
	}
	cfg, value, err := tok.deploymentConfig(tick, salt)
	if err != nil {
		return nil, err
	}
	parsed, err := contracts.FactoryV3ABI()
	if err != nil {
		return nil, err
	}
	call, err := chain.NewCall(c.ID, c.FactoryV3, parsed, "deployToken", value, cfg)
	if err != nil {
		return nil, err
	}
	if opts.Caller == nil {
		return call, nil
	}

	from := opts.From
	if from == (common.Address{}) {
		from = tok.Rewards.CreatorAdmin
	}
	out, err := opts.Caller.CallContract(ctx, ethereum.CallMsg{From: from, To: &call.To, Value: call.Value, Data: call.Data()}, nil)
	if err != nil {
		return nil, chain.NewCallError(parsed, call.Method, err)
	}
	values, err := call.Unpack(out)
	if err != nil {
		return nil, err
	}
	addr, ok := values[0].(common.Address)
	if !ok {
		return nil, fmt.Errorf("deployToken returned %T, want address", values[0])
	}
	return call.WithExpectedAddress(addr), nil
}

func startingTick(ctx context.Context, pool Pool, weth common.Address, caller chain.Caller) (int, error) {
	if pool.TickIfToken0IsNewToken != nil {
		return *pool.TickIfToken0IsNewToken, nil
	}
	if pool.PairedToken == weth {
		return ticks.GetTickFromMarketCap(pool.InitialMarketCap)
	}
	if _, ok := contracts.PairedTokenByAddress(pool.PairedToken); ok {
		tick, _, err := ticks.ComputeTicksFromMarketCap(pool.InitialMarketCap, pool.PairedToken.Hex())
		return tick, err
	}
	decimals := pool.PairedTokenDecimals
	if caller != nil && decimals == 0 {
		d, err := readDecimals(ctx, caller, pool.PairedToken)
		if err != nil {
			return 0, err
		}
		decimals = d
	}
	if decimals == 0 {
		decimals = 18
	}
	return ticks.TickForCustomPair(pool.InitialMarketCap, decimals)
}

func readDecimals(ctx context.Context, caller chain.Caller, token common.Address) (uint8, error) {
	parsed, err := contracts.ERC20ABI()
	if err != nil {
		return 0, err
	}
	call, err := chain.NewCall(0, token, parsed, "decimals", nil)
	if err != nil {
		return 0, err
	}
	values, err := chain.Read(ctx, caller, call)
	if err != nil {
		return 0, fmt.Errorf("read decimals of %s: %w", token.Hex(), err)
	}
	decimals, ok := values[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("decimals returned %T", values[0])
	}
	return decimals, nil
}
