package main

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"clankerSDK/internal/chain"
	"clankerSDK/internal/presale"
)

type presaleView struct {
	ID             string `json:"id" yaml:"id"`
	Status         string `json:"status" yaml:"status"`
	Owner          string `json:"owner" yaml:"owner"`
	Recipient      string `json:"recipient" yaml:"recipient"`
	MinEthGoal     string `json:"minEthGoal" yaml:"minEthGoal"`
	MaxEthGoal     string `json:"maxEthGoal" yaml:"maxEthGoal"`
	EthRaised      string `json:"ethRaised" yaml:"ethRaised"`
	EndTime        string `json:"endTime" yaml:"endTime"`
	DeployedToken  string `json:"deployedToken,omitempty" yaml:"deployedToken,omitempty"`
	LockupEndTime  string `json:"lockupEndTime,omitempty" yaml:"lockupEndTime,omitempty"`
	VestingEndTime string `json:"vestingEndTime,omitempty" yaml:"vestingEndTime,omitempty"`
}

func presaleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presale",
		Short: "Start, join and settle presales",
	}
	cmd.PersistentFlags().String("id", "", "presale id")
	cmd.PersistentFlags().Bool("send", false, "send the transaction after a successful simulation")

	start := &cobra.Command{Use: "start", Short: "Start a presale for a v4 token", RunE: runPresaleStart}
	addTokenFlags(start)
	addFeeFlags(start)
	start.Flags().String("min-eth", "0", "minimum ETH goal in wei")
	start.Flags().String("max-eth", "", "maximum ETH goal in wei")
	start.Flags().Duration("duration", 7*24*time.Hour, "presale duration")
	start.Flags().String("recipient", "", "recipient of the raised ETH")
	start.Flags().Duration("lockup", 0, "token lockup after the presale")
	start.Flags().Duration("vesting", 0, "token vesting after the lockup")

	status := &cobra.Command{Use: "status", Short: "Show a presale", RunE: runPresaleStatus}

	buy := &cobra.Command{Use: "buy", Short: "Buy into a presale", RunE: runPresaleBuy}
	buy.Flags().String("amount", "", "ETH amount in wei")

	claimTokens := &cobra.Command{Use: "claim-tokens", Short: "Claim presale tokens", RunE: runPresaleClaimTokens}

	claimEth := &cobra.Command{Use: "claim-eth", Short: "Claim the raised ETH", RunE: runPresaleClaimEth}
	claimEth.Flags().String("recipient", "", "ETH recipient")

	withdraw := &cobra.Command{Use: "withdraw", Short: "Withdraw ETH from an active presale", RunE: runPresaleWithdraw}
	withdraw.Flags().String("amount", "", "ETH amount in wei")
	withdraw.Flags().String("recipient", "", "ETH recipient")

	end := &cobra.Command{Use: "end", Short: "End a presale and deploy its token", RunE: runPresaleEnd}
	end.Flags().String("salt", "", "32-byte deployment salt (hex), zero when empty")

	buys := &cobra.Command{Use: "buys", Short: "ETH a user put into a presale", RunE: runPresaleBuys}
	buys.Flags().String("user", "", "buyer address")

	available := &cobra.Command{Use: "available", Short: "Tokens a user can claim from a presale", RunE: runPresaleAvailable}
	available.Flags().String("user", "", "buyer address")

	cmd.AddCommand(start, status, buy, withdraw, end, claimTokens, claimEth, buys, available)
	return cmd
}

func withPresale(cmd *cobra.Command, build func(*env, *presale.Client, *big.Int) (*chain.CallDescriptor, error)) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.close()
	var id *big.Int
	if v, _ := cmd.Flags().GetString("id"); v != "" {
		if id, err = bigFlag(cmd, "id"); err != nil {
			return err
		}
	} else if cmd.Name() != "start" {
		return fmt.Errorf("--id is required")
	}
	call, err := build(e, presale.New(e.chain, e.caller()), id)
	if err != nil {
		return err
	}
	return finish(cmd, e, call)
}

func runPresaleStart(cmd *cobra.Command, _ []string) error {
	return withPresale(cmd, func(e *env, p *presale.Client, _ *big.Int) (*chain.CallDescriptor, error) {
		tok, err := loadV4Token(cmd)
		if err != nil {
			return nil, err
		}
		minEth, err := bigFlag(cmd, "min-eth")
		if err != nil {
			return nil, err
		}
		maxEth, err := bigFlag(cmd, "max-eth")
		if err != nil {
			return nil, err
		}
		recipient, err := addressFlag(cmd, "recipient")
		if err != nil {
			return nil, err
		}
		params := presale.Params{MinEthGoal: minEth, MaxEthGoal: maxEth, Recipient: recipient}
		params.Duration, _ = cmd.Flags().GetDuration("duration")
		params.LockupDuration, _ = cmd.Flags().GetDuration("lockup")
		params.VestingDuration, _ = cmd.Flags().GetDuration("vesting")

		ctx, cancel := e.context(cmd)
		defer cancel()
		opts, err := v4Options(cmd, e)
		if err != nil {
			return nil, err
		}
		return p.StartPresale(ctx, tok, params, opts)
	})
}

func runPresaleBuy(cmd *cobra.Command, _ []string) error {
	return withPresale(cmd, func(e *env, p *presale.Client, id *big.Int) (*chain.CallDescriptor, error) {
		amount, err := bigFlag(cmd, "amount")
		if err != nil {
			return nil, err
		}
		return p.BuyIntoPresale(id, amount)
	})
}

func runPresaleWithdraw(cmd *cobra.Command, _ []string) error {
	return withPresale(cmd, func(e *env, p *presale.Client, id *big.Int) (*chain.CallDescriptor, error) {
		amount, err := bigFlag(cmd, "amount")
		if err != nil {
			return nil, err
		}
		recipient, err := addressFlag(cmd, "recipient")
		if err != nil {
			return nil, err
		}
		return p.WithdrawFromPresale(id, amount, recipient)
	})
}

func runPresaleEnd(cmd *cobra.Command, _ []string) error {
	return withPresale(cmd, func(e *env, p *presale.Client, id *big.Int) (*chain.CallDescriptor, error) {
		var salt [32]byte
		if v, _ := cmd.Flags().GetString("salt"); v != "" {
			raw, err := hexutil.Decode(v)
			if err != nil || len(raw) != 32 {
				return nil, fmt.Errorf("--salt must be 32 hex bytes, got %q", v)
			}
			copy(salt[:], raw)
		}
		return p.EndPresale(id, salt)
	})
}

func runPresaleClaimTokens(cmd *cobra.Command, _ []string) error {
	return withPresale(cmd, func(e *env, p *presale.Client, id *big.Int) (*chain.CallDescriptor, error) {
		return p.ClaimTokens(id)
	})
}

func runPresaleClaimEth(cmd *cobra.Command, _ []string) error {
	return withPresale(cmd, func(e *env, p *presale.Client, id *big.Int) (*chain.CallDescriptor, error) {
		recipient, err := addressFlag(cmd, "recipient")
		if err != nil {
			return nil, err
		}
		return p.ClaimEth(id, recipient)
	})
}

func runPresaleStatus(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.close()
	id, err := bigFlag(cmd, "id")
	if err != nil {
		return err
	}

	ctx, cancel := e.context(cmd)
	defer cancel()

	info, err := presale.New(e.chain, e.caller()).GetPresale(ctx, id)
	if err != nil {
		return err
	}
	view := presaleView{
		ID:             id.String(),
		Status:         presale.Status(info.Status).String(),
		Owner:          info.PresaleOwner.Hex(),
		Recipient:      info.Recipient.Hex(),
		MinEthGoal:     info.MinEthGoal.String(),
		MaxEthGoal:     info.MaxEthGoal.String(),
		EthRaised:      info.EthRaised.String(),
		EndTime:        unixString(info.EndTime),
		LockupEndTime:  unixString(info.LockupEndTime),
		VestingEndTime: unixString(info.VestingEndTime),
	}
	if info.DeployedToken != (common.Address{}) {
		view.DeployedToken = info.DeployedToken.Hex()
	}
	return writeOutput(cmd.OutOrStdout(), e.cfg.Output, view)
}

func unixString(ts *big.Int) string {
	if ts == nil || ts.Sign() == 0 {
		return ""
	}
	return time.Unix(ts.Int64(), 0).UTC().Format(time.RFC3339)
}

func runPresaleBuys(cmd *cobra.Command, _ []string) error {
	return presaleRead(cmd, func(ctx context.Context, p *presale.Client, id *big.Int, user common.Address) (*big.Int, error) {
		return p.PresaleBuys(ctx, id, user)
	})
}

func runPresaleAvailable(cmd *cobra.Command, _ []string) error {
	return presaleRead(cmd, func(ctx context.Context, p *presale.Client, id *big.Int, user common.Address) (*big.Int, error) {
		return p.AmountAvailableToClaim(ctx, id, user)
	})
}

type presaleAmountView struct {
	ID     string `json:"id" yaml:"id"`
	User   string `json:"user" yaml:"user"`
	Amount string `json:"amount" yaml:"amount"`
}

func presaleRead(cmd *cobra.Command, read func(context.Context, *presale.Client, *big.Int, common.Address) (*big.Int, error)) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.close()
	id, err := bigFlag(cmd, "id")
	if err != nil {
		return err
	}
	user, err := addressFlag(cmd, "user")
	if err != nil {
		return err
	}

	ctx, cancel := e.context(cmd)
	defer cancel()

	amount, err := read(ctx, presale.New(e.chain, e.caller()), id, user)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), e.cfg.Output, presaleAmountView{ID: id.String(), User: user.Hex(), Amount: amount.String()})
}
