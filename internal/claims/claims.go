// Package claims builds and reads the fee, reward, vault and airdrop claim
// calls of deployed tokens.
package claims

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"clankerSDK/internal/chain"
	"clankerSDK/internal/contracts"
	"clankerSDK/internal/merkle"
)

// Client builds calls against one chain's contracts and reads through
// caller. Building never touches the network.
type Client struct {
	chain  contracts.Chain
	caller chain.Caller
}

func New(c contracts.Chain, caller chain.Caller) *Client {
	return &Client{chain: c, caller: caller}
}

func (c *Client) call(to common.Address, load func() (abi.ABI, error), method string, args ...interface{}) (*chain.CallDescriptor, error) {
	if to == (common.Address{}) {
		return nil, fmt.Errorf("%s: contract not configured for chain %d", method, c.chain.ID)
	}
	parsed, err := load()
	if err != nil {
		return nil, err
	}
	return chain.NewCall(c.chain.ID, to, parsed, method, nil, args...)
}

func (c *Client) read(ctx context.Context, call *chain.CallDescriptor, err error) (*big.Int, error) {
	if err != nil {
		return nil, err
	}
	if c.caller == nil {
		return nil, fmt.Errorf("%s: no caller configured", call.Method)
	}
	return chain.ReadBig(ctx, c.caller, call)
}

// ClaimFees claims the fee locker balance of feeOwner in token.
func (c *Client) ClaimFees(feeOwner, token common.Address) (*chain.CallDescriptor, error) {
	return c.call(c.chain.FeeLocker, contracts.FeeLockerABI, "claim", feeOwner, token)
}

func (c *Client) AvailableFees(ctx context.Context, feeOwner, token common.Address) (*big.Int, error) {
	call, err := c.call(c.chain.FeeLocker, contracts.FeeLockerABI, "availableFees", feeOwner, token)
	return c.read(ctx, call, err)
}

// CollectRewards moves a v4 token's LP fees from the locker to the fee locker.
func (c *Client) CollectRewards(token common.Address) (*chain.CallDescriptor, error) {
	return c.call(c.chain.LockerV4, contracts.LockerV4ABI, "collectRewards", token)
}

func (c *Client) UpdateRewardRecipient(token common.Address, index uint64, recipient common.Address) (*chain.CallDescriptor, error) {
	if recipient == (common.Address{}) {
		return nil, fmt.Errorf("recipient is required")
	}
	return c.call(c.chain.LockerV4, contracts.LockerV4ABI, "updateRewardRecipient", token, new(big.Int).SetUint64(index), recipient)
}

func (c *Client) UpdateRewardAdmin(token common.Address, index uint64, admin common.Address) (*chain.CallDescriptor, error) {
	if admin == (common.Address{}) {
		return nil, fmt.Errorf("admin is required")
	}
	return c.call(c.chain.LockerV4, contracts.LockerV4ABI, "updateRewardAdmin", token, new(big.Int).SetUint64(index), admin)
}

// TokenRewards reads the reward split of a v4 token.
func (c *Client) TokenRewards(ctx context.Context, token common.Address) (contracts.TokenRewardInfo, error) {
	call, err := c.call(c.chain.LockerV4, contracts.LockerV4ABI, "tokenRewards", token)
	if err != nil {
		return contracts.TokenRewardInfo{}, err
	}
	if c.caller == nil {
		return contracts.TokenRewardInfo{}, fmt.Errorf("tokenRewards: no caller configured")
	}
	values, err := chain.Read(ctx, c.caller, call)
	if err != nil {
		return contracts.TokenRewardInfo{}, err
	}
	info := abi.ConvertType(values[0], new(contracts.TokenRewardInfo)).(*contracts.TokenRewardInfo)
	return *info, nil
}

// CollectRewardsV3 collects a v3.1 LP position.
func (c *Client) CollectRewardsV3(positionID *big.Int) (*chain.CallDescriptor, error) {
	return c.call(c.chain.LockerV3, contracts.LockerV3ABI, "collectRewards", positionID)
}

// ClaimRewardsV3 claims through the v3.1 factory, which resolves the position.
func (c *Client) ClaimRewardsV3(token common.Address) (*chain.CallDescriptor, error) {
	return c.call(c.chain.FactoryV3, contracts.FactoryV3ABI, "claimRewards", token)
}

// VaultClaim releases the vested vault allocation of token to its admin.
func (c *Client) VaultClaim(token common.Address) (*chain.CallDescriptor, error) {
	return c.call(c.chain.Vault, contracts.VaultABI, "claim", token)
}

func (c *Client) VaultAvailable(ctx context.Context, token common.Address) (*big.Int, error) {
	call, err := c.call(c.chain.Vault, contracts.VaultABI, "amountAvailableToClaim", token)
	return c.read(ctx, call, err)
}

// AirdropClaim claims allocatedAmount for recipient with its merkle proof.
func (c *Client) AirdropClaim(token, recipient common.Address, allocatedAmount *big.Int, proof []common.Hash) (*chain.CallDescriptor, error) {
	return c.call(c.chain.Airdrop, contracts.AirdropABI, "claim", token, recipient, allocatedAmount, merkle.ProofBytes(proof))
}

// AirdropClaimFromTree looks up the proof of (recipient, allocatedAmount)
// in tree and builds the claim.
func (c *Client) AirdropClaimFromTree(tree *merkle.Tree, token, recipient common.Address, allocatedAmount *big.Int) (*chain.CallDescriptor, error) {
	proof, err := tree.Proof(recipient, allocatedAmount)
	if err != nil {
		return nil, err
	}
	return c.AirdropClaim(token, recipient, allocatedAmount, proof)
}

func (c *Client) AirdropAvailable(ctx context.Context, token, recipient common.Address, allocatedAmount *big.Int) (*big.Int, error) {
	call, err := c.call(c.chain.Airdrop, contracts.AirdropABI, "amountAvailableToClaim", token, recipient, allocatedAmount)
	return c.read(ctx, call, err)
}
