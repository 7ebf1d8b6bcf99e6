package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"clankerSDK/internal/chain"
	"clankerSDK/internal/claims"
	"clankerSDK/internal/legacy"
	"clankerSDK/internal/merkle"
)

type callResult struct {
	Call       chain.CallView `json:"call" yaml:"call"`
	Simulation string         `json:"simulation,omitempty" yaml:"simulation,omitempty"`
	TxHash     string         `json:"txHash,omitempty" yaml:"txHash,omitempty"`
	Status     *uint64        `json:"status,omitempty" yaml:"status,omitempty"`
	GasUsed    uint64         `json:"gasUsed,omitempty" yaml:"gasUsed,omitempty"`
}

func addressFlag(cmd *cobra.Command, name string) (common.Address, error) {
	value, _ := cmd.Flags().GetString(name)
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("--%s must be an address, got %q", name, value)
	}
	return common.HexToAddress(value), nil
}

func bigFlag(cmd *cobra.Command, name string) (*big.Int, error) {
	value, _ := cmd.Flags().GetString(name)
	n, ok := new(big.Int).SetString(value, 0)
	if !ok {
		return nil, fmt.Errorf("--%s must be an integer, got %q", name, value)
	}
	return n, nil
}

// finish prints call, simulating it when an RPC is configured and sending
// it when --send is set.
func finish(cmd *cobra.Command, e *env, call *chain.CallDescriptor) error {
	result := callResult{Call: call.View()}
	send, _ := cmd.Flags().GetBool("send")
	if e.client == nil {
		if send {
			return fmt.Errorf("rpc url is required to send transactions")
		}
		return writeOutput(cmd.OutOrStdout(), e.cfg.Output, result)
	}

	ctx, cancel := e.context(cmd)
	defer cancel()

	tx, err := e.transactor()
	if err != nil {
		if send {
			return err
		}
		tx = chain.NewTransactor(e.client, nil, e.logger)
	}
	sim, err := tx.Simulate(ctx, call)
	if err != nil {
		return err
	}
	if sim.Failed() {
		result.Simulation = sim.Err.Error()
		if send {
			_ = writeOutput(cmd.OutOrStdout(), e.cfg.Output, result)
			return fmt.Errorf("simulate %s: %w", call.Method, sim.Err)
		}
		return writeOutput(cmd.OutOrStdout(), e.cfg.Output, result)
	}
	result.Simulation = "ok"
	if !send {
		return writeOutput(cmd.OutOrStdout(), e.cfg.Output, result)
	}

	receipt, err := tx.Execute(ctx, call)
	if receipt != nil {
		result.TxHash = receipt.TxHash.Hex()
		result.Status = &receipt.Status
		result.GasUsed = receipt.GasUsed
	}
	if werr := writeOutput(cmd.OutOrStdout(), e.cfg.Output, result); werr != nil {
		return werr
	}
	return err
}

func claimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Build, simulate and optionally send claim transactions",
	}
	cmd.PersistentFlags().Bool("send", false, "send the transaction after a successful simulation")
	cmd.PersistentFlags().String("token", "", "token address")

	fees := &cobra.Command{Use: "fees", Short: "Claim fee locker balance", RunE: runClaimFees}
	fees.Flags().String("owner", "", "fee owner address")

	rewards := &cobra.Command{Use: "rewards", Short: "Collect v4 LP rewards into the fee locker", RunE: runClaimRewards}

	v3Rewards := &cobra.Command{Use: "rewards-v3", Short: "Claim v3.1 rewards through the factory", RunE: runClaimRewardsV3}

	vault := &cobra.Command{Use: "vault", Short: "Claim vested vault tokens", RunE: runClaimVault}

	airdrop := &cobra.Command{Use: "airdrop", Short: "Claim an airdrop allocation", RunE: runClaimAirdrop}
	airdrop.Flags().String("recipient", "", "allocation recipient")
	airdrop.Flags().String("amount", "", "allocated amount in raw units")
	airdrop.Flags().String("tree", "", "JSON file with the airdrop entries [{account, amount}]")

	recipient := &cobra.Command{Use: "update-recipient", Short: "Update a v4 reward recipient", RunE: runUpdateRecipient}
	recipient.Flags().Uint64("index", 0, "reward index")
	recipient.Flags().String("recipient", "", "new recipient")

	admin := &cobra.Command{Use: "update-admin", Short: "Update a v4 reward admin", RunE: runUpdateAdmin}
	admin.Flags().Uint64("index", 0, "reward index")
	admin.Flags().String("admin", "", "new admin")

	position := &cobra.Command{Use: "collect-v3", Short: "Collect v3.1 LP rewards of a position", RunE: runCollectV3}
	position.Flags().String("position", "", "LP position id")

	legacyFees := &cobra.Command{Use: "legacy", Short: "Collect fees of a pre-v3.1 token through its locker", RunE: runClaimLegacy}
	legacyFees.Flags().String("recipient", "", "fee recipient")
	legacyFees.Flags().String("api-key", "", "Clanker API key")
	legacyFees.Flags().String("api-url", "", "Clanker API base url")

	safe := &cobra.Command{Use: "safe", Short: "Claim fees through the Safe spender", RunE: runClaimSafe}

	team := &cobra.Command{Use: "team-fees", Short: "Send the factory's team fees of a token to the team recipient", RunE: runClaimTeamFees}

	creatorV3 := &cobra.Command{Use: "update-creator-v3", Short: "Update the creator reward recipient of a v3.1 position", RunE: runUpdateRecipientV3}
	interfaceV3 := &cobra.Command{Use: "update-interface-v3", Short: "Update the interface reward recipient of a v3.1 position", RunE: runUpdateRecipientV3}
	for _, c := range []*cobra.Command{creatorV3, interfaceV3} {
		c.Flags().String("position", "", "LP position id")
		c.Flags().String("recipient", "", "new recipient")
	}

	cmd.AddCommand(fees, rewards, v3Rewards, position, vault, airdrop, recipient, admin, legacyFees, safe, team, creatorV3, interfaceV3)
	return cmd
}

func withClaims(cmd *cobra.Command, build func(*env, *claims.Client, common.Address) (*chain.CallDescriptor, error)) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.close()
	token, err := addressFlag(cmd, "token")
	if err != nil {
		return err
	}
	call, err := build(e, claims.New(e.chain, e.caller()), token)
	if err != nil {
		return err
	}
	return finish(cmd, e, call)
}

func runClaimFees(cmd *cobra.Command, _ []string) error {
	return withClaims(cmd, func(e *env, c *claims.Client, token common.Address) (*chain.CallDescriptor, error) {
		owner, err := addressFlag(cmd, "owner")
		if err != nil {
			return nil, err
		}
		return c.ClaimFees(owner, token)
	})
}

func runClaimRewards(cmd *cobra.Command, _ []string) error {
	return withClaims(cmd, func(e *env, c *claims.Client, token common.Address) (*chain.CallDescriptor, error) {
		return c.CollectRewards(token)
	})
}

func runClaimRewardsV3(cmd *cobra.Command, _ []string) error {
	return withClaims(cmd, func(e *env, c *claims.Client, token common.Address) (*chain.CallDescriptor, error) {
		return c.ClaimRewardsV3(token)
	})
}

func runClaimVault(cmd *cobra.Command, _ []string) error {
	return withClaims(cmd, func(e *env, c *claims.Client, token common.Address) (*chain.CallDescriptor, error) {
		return c.VaultClaim(token)
	})
}

func runUpdateRecipient(cmd *cobra.Command, _ []string) error {
	return withClaims(cmd, func(e *env, c *claims.Client, token common.Address) (*chain.CallDescriptor, error) {
		recipient, err := addressFlag(cmd, "recipient")
		if err != nil {
			return nil, err
		}
		index, _ := cmd.Flags().GetUint64("index")
		return c.UpdateRewardRecipient(token, index, recipient)
	})
}

func runUpdateAdmin(cmd *cobra.Command, _ []string) error {
	return withClaims(cmd, func(e *env, c *claims.Client, token common.Address) (*chain.CallDescriptor, error) {
		admin, err := addressFlag(cmd, "admin")
		if err != nil {
			return nil, err
		}
		index, _ := cmd.Flags().GetUint64("index")
		return c.UpdateRewardAdmin(token, index, admin)
	})
}

func runCollectV3(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.close()
	position, err := bigFlag(cmd, "position")
	if err != nil {
		return err
	}
	call, err := claims.New(e.chain, e.caller()).CollectRewardsV3(position)
	if err != nil {
		return err
	}
	return finish(cmd, e, call)
}

func runClaimTeamFees(cmd *cobra.Command, _ []string) error {
	return withClaims(cmd, func(e *env, c *claims.Client, token common.Address) (*chain.CallDescriptor, error) {
		return c.ClaimTeamFees(token)
	})
}

func runUpdateRecipientV3(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.close()
	position, err := bigFlag(cmd, "position")
	if err != nil {
		return err
	}
	recipient, err := addressFlag(cmd, "recipient")
	if err != nil {
		return err
	}
	c := claims.New(e.chain, e.caller())
	var call *chain.CallDescriptor
	if cmd.Name() == "update-interface-v3" {
		call, err = c.UpdateInterfaceRewardRecipientV3(position, recipient)
	} else {
		call, err = c.UpdateCreatorRewardRecipientV3(position, recipient)
	}
	if err != nil {
		return err
	}
	return finish(cmd, e, call)
}

func runClaimAirdrop(cmd *cobra.Command, _ []string) error {
	return withClaims(cmd, func(e *env, c *claims.Client, token common.Address) (*chain.CallDescriptor, error) {
		recipient, err := addressFlag(cmd, "recipient")
		if err != nil {
			return nil, err
		}
		amount, err := bigFlag(cmd, "amount")
		if err != nil {
			return nil, err
		}
		path, _ := cmd.Flags().GetString("tree")
		if path == "" {
			return nil, fmt.Errorf("--tree is required")
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read tree: %w", err)
		}
		var entries []merkle.Entry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("parse tree: %w", err)
		}
		tree, err := merkle.New(entries)
		if err != nil {
			return nil, err
		}
		return c.AirdropClaimFromTree(tree, token, recipient, amount)
	})
}

func runClaimLegacy(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd, false)
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
	apiClient, err := newAPIClient(cmd, e.logger)
	if err != nil {
		return err
	}

	ctx, cancel := e.context(cmd)
	defer cancel()

	fees := legacy.New(apiClient, e.chain, e.caller(), nil, e.logger)
	call, err := fees.CollectFeesFromEstimate(ctx, token, recipient)
	if err != nil {
		return err
	}
	if send, _ := cmd.Flags().GetBool("send"); !send {
		return finish(cmd, e, call)
	}

	tx, err := e.transactor()
	if err != nil {
		return err
	}
	receipt, err := legacy.New(apiClient, e.chain, e.caller(), tx, e.logger).Submit(ctx, call)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), e.cfg.Output, callResult{
		Call:       call.View(),
		Simulation: "ok",
		TxHash:     receipt.TxHash.Hex(),
		Status:     &receipt.Status,
		GasUsed:    receipt.GasUsed,
	})
}

func runClaimSafe(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.close()
	token, err := addressFlag(cmd, "token")
	if err != nil {
		return err
	}
	call, err := legacy.New(nil, e.chain, e.caller(), nil, e.logger).SafeClaimFees(token)
	if err != nil {
		return err
	}
	return finish(cmd, e, call)
}
