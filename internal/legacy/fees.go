// Package legacy claims LP fees of tokens deployed before v3.1: the per
// token lockers of v0-v2 ("collectFees"), the v3 locker and the Safe
// spender used for tokens whose admin is a Safe.
package legacy

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"clankerSDK/internal/api"
	"clankerSDK/internal/chain"
	"clankerSDK/internal/contracts"
)

// FeeClaims combines the REST fee estimate with the legacy locker calls.
// The api client, caller and executor are each optional; methods that need
// a missing one return an error.
type FeeClaims struct {
	api    *api.Client
	chain  contracts.Chain
	caller chain.Caller
	tx     chain.Executor
	logger *zap.Logger
}

func New(apiClient *api.Client, c contracts.Chain, caller chain.Caller, tx chain.Executor, logger *zap.Logger) *FeeClaims {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeeClaims{api: apiClient, chain: c, caller: caller, tx: tx, logger: logger}
}

// Estimate returns the uncollected fees the indexer reports for token.
func (f *FeeClaims) Estimate(ctx context.Context, token common.Address) (*api.UncollectedFees, error) {
	if f.api == nil {
		return nil, fmt.Errorf("fee estimate: no api client configured")
	}
	return f.api.GetEstimatedUncollectedFees(ctx, token.Hex())
}

func (f *FeeClaims) call(to common.Address, load func() (abi.ABI, error), method string, args ...interface{}) (*chain.CallDescriptor, error) {
	if to == (common.Address{}) {
		return nil, fmt.Errorf("%s: contract not configured for chain %d", method, f.chain.ID)
	}
	parsed, err := load()
	if err != nil {
		return nil, err
	}
	return chain.NewCall(f.chain.ID, to, parsed, method, nil, args...)
}

// ClaimRewards claims a v3 token's rewards on the legacy locker.
func (f *FeeClaims) ClaimRewards(token common.Address) (*chain.CallDescriptor, error) {
	return f.call(f.chain.LegacyLocker, contracts.LegacyLockerABI, "claimRewards", token)
}

func (f *FeeClaims) CollectRewards(lpTokenID *big.Int) (*chain.CallDescriptor, error) {
	return f.call(f.chain.LegacyLocker, contracts.LegacyLockerABI, "collectRewards", lpTokenID)
}

// CollectFees collects the LP NFT lpTokenID held by locker and sends the
// fees to recipient. Pre-v3 tokens each have their own locker.
func (f *FeeClaims) CollectFees(locker, recipient common.Address, lpTokenID *big.Int) (*chain.CallDescriptor, error) {
	if recipient == (common.Address{}) {
		return nil, fmt.Errorf("recipient is required")
	}
	return f.call(locker, contracts.LegacyLockerABI, "collectFees", recipient, lpTokenID)
}

// CollectFeesFromEstimate looks up the locker and LP NFT of token through
// the api and builds its collectFees call.
func (f *FeeClaims) CollectFeesFromEstimate(ctx context.Context, token, recipient common.Address) (*chain.CallDescriptor, error) {
	est, err := f.Estimate(ctx, token)
	if err != nil {
		return nil, err
	}
	if !common.IsHexAddress(est.LockerAddress) {
		return nil, fmt.Errorf("estimate for %s has no locker address", token.Hex())
	}
	if est.LpNftID <= 0 {
		return nil, fmt.Errorf("estimate for %s has no lp nft id", token.Hex())
	}
	return f.CollectFees(common.HexToAddress(est.LockerAddress), recipient, big.NewInt(est.LpNftID))
}

// SafeClaimFees claims through the Safe spender module.
func (f *FeeClaims) SafeClaimFees(token common.Address) (*chain.CallDescriptor, error) {
	return f.call(f.chain.SafeSpender, contracts.SafeSpenderABI, "claimFees", token)
}

// ClaimableFees reads the (token0, token1) amounts claimable through the
// Safe spender.
func (f *FeeClaims) ClaimableFees(ctx context.Context, token common.Address) (*big.Int, *big.Int, error) {
	call, err := f.call(f.chain.SafeSpender, contracts.SafeSpenderABI, "claimableFees", token)
	if err != nil {
		return nil, nil, err
	}
	if f.caller == nil {
		return nil, nil, fmt.Errorf("claimableFees: no caller configured")
	}
	values, err := chain.Read(ctx, f.caller, call)
	if err != nil {
		return nil, nil, err
	}
	if len(values) != 2 {
		return nil, nil, fmt.Errorf("claimableFees: got %d values", len(values))
	}
	amount0, ok0 := values[0].(*big.Int)
	amount1, ok1 := values[1].(*big.Int)
	if !ok0 || !ok1 {
		return nil, nil, fmt.Errorf("claimableFees: unexpected types %T %T", values[0], values[1])
	}
	return amount0, amount1, nil
}

// Submit simulates call and sends it only when the simulation succeeds.
func (f *FeeClaims) Submit(ctx context.Context, call *chain.CallDescriptor) (*types.Receipt, error) {
	if f.tx == nil {
		return nil, fmt.Errorf("%s: no signer configured", call.Method)
	}
	sim, err := f.tx.Simulate(ctx, call)
	if err != nil {
		return nil, err
	}
	if sim.Failed() {
		return nil, fmt.Errorf("simulate %s: %w", call.Method, sim.Err)
	}
	receipt, err := f.tx.Execute(ctx, call)
	if err != nil {
		return receipt, err
	}
	f.logger.Info("legacy claim confirmed",
		zap.String("method", call.Method),
		zap.String("to", call.To.Hex()),
		zap.String("tx", receipt.TxHash.Hex()),
	)
	return receipt, nil
}
