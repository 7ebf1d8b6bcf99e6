// Package presale builds the presale contract calls: starting a presale for
// a v4 deployment, buying in, and claiming after it ends.
package presale

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"clankerSDK/internal/chain"
	"clankerSDK/internal/contracts"
	v4 "clankerSDK/internal/deploy/v4"
	"clankerSDK/internal/validate"
)

// Status is the on-chain presale state.
type Status uint8

const (
	StatusNotCreated Status = iota
	StatusActive
	StatusSuccessfulMinimumHit
	StatusSuccessfulMaximumHit
	StatusFailed
	StatusClaimable
)

func (s Status) String() string {
	switch s {
	case StatusNotCreated:
		return "not_created"
	case StatusActive:
		return "active"
	case StatusSuccessfulMinimumHit:
		return "successful_minimum_hit"
	case StatusSuccessfulMaximumHit:
		return "successful_maximum_hit"
	case StatusFailed:
		return "failed"
	case StatusClaimable:
		return "claimable"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Params are the presale terms passed next to the deployment config.
type Params struct {
	MinEthGoal      *big.Int
	MaxEthGoal      *big.Int
	Duration        time.Duration
	Recipient       common.Address
	LockupDuration  time.Duration
	VestingDuration time.Duration
}

func (p Params) validate(errs *validate.Errors) {
	if p.MinEthGoal == nil || p.MinEthGoal.Sign() < 0 {
		errs.Add("presale.minEthGoal", "must not be negative")
	}
	if p.MaxEthGoal == nil || p.MaxEthGoal.Sign() <= 0 {
		errs.Add("presale.maxEthGoal", "must be positive")
	}
	if p.MinEthGoal != nil && p.MaxEthGoal != nil && p.MinEthGoal.Cmp(p.MaxEthGoal) > 0 {
		errs.Add("presale.minEthGoal", "must not exceed maxEthGoal")
	}
	if p.Duration <= 0 {
		errs.Add("presale.duration", "must be positive")
	}
	if p.Recipient == (common.Address{}) {
		errs.Add("presale.recipient", "is required")
	}
	if p.LockupDuration < 0 || p.VestingDuration < 0 {
		errs.Add("presale.lockupDuration", "durations must not be negative")
	}
}

// Client builds calls against the presale contract of one chain.
type Client struct {
	chain  contracts.Chain
	caller chain.Caller
}

func New(c contracts.Chain, caller chain.Caller) *Client {
	return &Client{chain: c, caller: caller}
}

func (c *Client) call(method string, value *big.Int, args ...interface{}) (*chain.CallDescriptor, error) {
	if c.chain.Presale == (common.Address{}) {
		return nil, fmt.Errorf("presale contract not configured for chain %d", c.chain.ID)
	}
	parsed, err := contracts.PresaleABI()
	if err != nil {
		return nil, err
	}
	return chain.NewCall(c.chain.ID, c.chain.Presale, parsed, method, value, args...)
}

// StartPresale validates tok, which must carry a presale extension, and
// returns the startPresale call. The token is deployed when the presale ends.
func (c *Client) StartPresale(ctx context.Context, tok v4.Token, params Params, opts v4.Options) (*chain.CallDescriptor, error) {
	var errs validate.Errors
	if tok.Presale == nil {
		errs.Add("presale", "presale extension is required")
	}
	params.validate(&errs)
	if err := errs.Err(); err != nil {
		return nil, err
	}
	if opts.Chain.ID == 0 {
		opts.Chain = c.chain
	}
	prepared, err := v4.Prepare(ctx, tok, opts)
	if err != nil {
		return nil, err
	}
	return c.call("startPresale", nil,
		prepared.Config,
		params.MinEthGoal,
		params.MaxEthGoal,
		seconds(params.Duration),
		params.Recipient,
		seconds(params.LockupDuration),
		seconds(params.VestingDuration),
	)
}

// BuyIntoPresale sends amount wei to presale id.
func (c *Client) BuyIntoPresale(presaleID, amount *big.Int) (*chain.CallDescriptor, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, fmt.Errorf("buy amount must be positive")
	}
	return c.call("buyIntoPresale", amount, presaleID)
}

// WithdrawFromPresale returns amount of the caller's ETH while the presale is active.
func (c *Client) WithdrawFromPresale(presaleID, amount *big.Int, recipient common.Address) (*chain.CallDescriptor, error) {
	return c.call("withdrawFromPresale", nil, presaleID, amount, recipient)
}

func (c *Client) EndPresale(presaleID *big.Int, salt [32]byte) (*chain.CallDescriptor, error) {
	return c.call("endPresale", nil, presaleID, salt)
}

func (c *Client) ClaimTokens(presaleID *big.Int) (*chain.CallDescriptor, error) {
	return c.call("claimTokens", nil, presaleID)
}

// ClaimEth sends the raised ETH to recipient after a successful presale.
func (c *Client) ClaimEth(presaleID *big.Int, recipient common.Address) (*chain.CallDescriptor, error) {
	return c.call("claimEth", nil, presaleID, recipient)
}

// GetPresale reads the presale state.
func (c *Client) GetPresale(ctx context.Context, presaleID *big.Int) (contracts.PresaleInfo, error) {
	call, err := c.call("getPresale", nil, presaleID)
	if err != nil {
		return contracts.PresaleInfo{}, err
	}
	if c.caller == nil {
		return contracts.PresaleInfo{}, fmt.Errorf("getPresale: no caller configured")
	}
	values, err := chain.Read(ctx, c.caller, call)
	if err != nil {
		return contracts.PresaleInfo{}, err
	}
	return *abi.ConvertType(values[0], new(contracts.PresaleInfo)).(*contracts.PresaleInfo), nil
}

// PresaleBuys is the ETH user has put into the presale.
func (c *Client) PresaleBuys(ctx context.Context, presaleID *big.Int, user common.Address) (*big.Int, error) {
	return c.readBig(ctx, "presaleBuys", presaleID, user)
}

// AmountAvailableToClaim is the vested token amount user can claim now.
func (c *Client) AmountAvailableToClaim(ctx context.Context, presaleID *big.Int, user common.Address) (*big.Int, error) {
	return c.readBig(ctx, "amountAvailableToClaim", presaleID, user)
}

func (c *Client) readBig(ctx context.Context, method string, args ...interface{}) (*big.Int, error) {
	call, err := c.call(method, nil, args...)
	if err != nil {
		return nil, err
	}
	if c.caller == nil {
		return nil, fmt.Errorf("%s: no caller configured", method)
	}
	return chain.ReadBig(ctx, c.caller, call)
}

func seconds(d time.Duration) *big.Int {
	return big.NewInt(int64(d / time.Second))
}
