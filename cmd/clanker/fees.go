package main

import (
	"github.com/spf13/cobra"

	"clankerSDK/internal/claims"
	"clankerSDK/internal/legacy"
)

type amountView struct {
	Token   string `json:"token" yaml:"token"`
	Amount  string `json:"amount,omitempty" yaml:"amount,omitempty"`
	Amount0 string `json:"amount0,omitempty" yaml:"amount0,omitempty"`
	Amount1 string `json:"amount1,omitempty" yaml:"amount1,omitempty"`
}

func feesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fees",
		Short: "Read claimable fees and rewards",
	}
	cmd.PersistentFlags().String("token", "", "token address")

	available := &cobra.Command{Use: "available", Short: "Fee locker balance of an owner", RunE: runFeesAvailable}
	available.Flags().String("owner", "", "fee owner address")

	vault := &cobra.Command{Use: "vault", Short: "Vested vault amount available to claim", RunE: runFeesVault}

	safe := &cobra.Command{Use: "safe", Short: "Fees claimable through the Safe spender", RunE: runFeesSafe}

	estimate := &cobra.Command{Use: "estimate", Short: "Uncollected LP fees reported by the Clanker API", RunE: runFeesEstimate}
	estimate.Flags().String("api-key", "", "Clanker API key")
	estimate.Flags().String("api-url", "", "Clanker API base url")

	rewards := &cobra.Command{Use: "rewards", Short: "Reward recipients and bps of a v4 token", RunE: runFeesRewards}

	airdrop := &cobra.Command{Use: "airdrop", Short: "Airdrop amount a recipient can still claim", RunE: runFeesAirdrop}
	airdrop.Flags().String("recipient", "", "allocation recipient")
	airdrop.Flags().String("amount", "", "allocated amount in raw units")

	cmd.AddCommand(available, vault, safe, estimate, rewards, airdrop)
	return cmd
}

func runFeesAvailable(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.close()
	token, err := addressFlag(cmd, "token")
	if err != nil {
		return err
	}
	owner, err := addressFlag(cmd, "owner")
	if err != nil {
		return err
	}

	ctx, cancel := e.context(cmd)
	defer cancel()

	amount, err := claims.New(e.chain, e.caller()).AvailableFees(ctx, owner, token)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), e.cfg.Output, amountView{Token: token.Hex(), Amount: amount.String()})
}

func runFeesVault(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.close()
	token, err := addressFlag(cmd, "token")
	if err != nil {
		return err
	}

	ctx, cancel := e.context(cmd)
	defer cancel()

	amount, err := claims.New(e.chain, e.caller()).VaultAvailable(ctx, token)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), e.cfg.Output, amountView{Token: token.Hex(), Amount: amount.String()})
}

func runFeesSafe(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.close()
	token, err := addressFlag(cmd, "token")
	if err != nil {
		return err
	}

	ctx, cancel := e.context(cmd)
	defer cancel()

	amount0, amount1, err := legacy.New(nil, e.chain, e.caller(), nil, e.logger).ClaimableFees(ctx, token)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), e.cfg.Output, amountView{Token: token.Hex(), Amount0: amount0.String(), Amount1: amount1.String()})
}

func runFeesEstimate(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.close()
	token, err := addressFlag(cmd, "token")
	if err != nil {
		return err
	}
	apiClient, err := newAPIClient(cmd, e.logger)
	if err != nil {
		return err
	}

	ctx, cancel := e.context(cmd)
	defer cancel()

	estimate, err := legacy.New(apiClient, e.chain, nil, nil, e.logger).Estimate(ctx, token)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), e.cfg.Output, estimate)
}

func runFeesRewards(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.close()
	token, err := addressFlag(cmd, "token")
	if err != nil {
		return err
	}

	ctx, cancel := e.context(cmd)
	defer cancel()

	info, err := claims.New(e.chain, e.caller()).TokenRewards(ctx, token)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), e.cfg.Output, info)
}

func runFeesAirdrop(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.close()
	token, err := addressFlag(cmd, "token")
	if err != nil {
		return err
	}
	recipient, err := addressFlag(cmd, "recipient")
	if err != nil {
		return err
	}
	allocated, err := bigFlag(cmd, "amount")
	if err != nil {
		return err
	}

	ctx, cancel := e.context(cmd)
	defer cancel()

	amount, err := claims.New(e.chain, e.caller()).AirdropAvailable(ctx, token, recipient, allocated)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), e.cfg.Output, amountView{Token: token.Hex(), Amount: amount.String()})
}
