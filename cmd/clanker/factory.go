package main

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"clankerSDK/internal/chain"
	"clankerSDK/internal/claims"
)

type deploymentInfoView struct {
	Token      string   `json:"token" yaml:"token"`
	Hook       string   `json:"hook,omitempty" yaml:"hook,omitempty"`
	Locker     string   `json:"locker" yaml:"locker"`
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	PositionID string   `json:"positionId,omitempty" yaml:"positionId,omitempty"`
}

func factoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factory",
		Short: "Read deployment info and build factory admin transactions",
	}
	cmd.PersistentFlags().Bool("send", false, "send the transaction after a successful simulation")

	info := &cobra.Command{Use: "info", Short: "Hook, locker and extensions a token was deployed with", RunE: runFactoryInfo}
	info.Flags().String("token", "", "token address")
	info.Flags().Bool("v3", false, "read the v3.1 factory")

	admin := &cobra.Command{Use: "set-admin", Short: "Enable or disable a factory admin", RunE: runFactorySetAdmin}
	admin.Flags().String("admin", "", "admin address")
	admin.Flags().Bool("v3", false, "target the v3.1 factory")

	deprecated := &cobra.Command{Use: "set-deprecated", Short: "Stop or resume deployments", RunE: runFactorySetDeprecated}
	deprecated.Flags().Bool("v3", false, "target the v3.1 factory")
	deprecated.Flags().Bool("deprecated", true, "deprecate (true) or resume (false)")

	hook := &cobra.Command{Use: "set-hook", Short: "Allow or disallow a pool hook", RunE: runFactoryToggle}
	hook.Flags().String("hook", "", "hook address")

	locker := &cobra.Command{Use: "set-locker", Short: "Allow or disallow a locker for a hook", RunE: runFactorySetLocker}
	locker.Flags().String("locker", "", "locker address")
	locker.Flags().String("hook", "", "hook address")

	extension := &cobra.Command{Use: "set-extension", Short: "Allow or disallow an extension", RunE: runFactoryToggle}
	extension.Flags().String("extension", "", "extension address")

	mev := &cobra.Command{Use: "set-mev-module", Short: "Allow or disallow a MEV module", RunE: runFactoryToggle}
	mev.Flags().String("mev-module", "", "MEV module address")

	team := &cobra.Command{Use: "set-team-recipient", Short: "Change the team fee recipient", RunE: runFactorySetTeamRecipient}
	team.Flags().String("recipient", "", "new team fee recipient")

	for _, c := range []*cobra.Command{admin, hook, locker, extension, mev} {
		c.Flags().Bool("enabled", true, "enable (true) or disable (false)")
	}

	cmd.AddCommand(info, admin, deprecated, hook, locker, extension, mev, team)
	return cmd
}

func withFactory(cmd *cobra.Command, build func(*claims.Client) (*chain.CallDescriptor, error)) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.close()
	call, err := build(claims.New(e.chain, e.caller()))
	if err != nil {
		return err
	}
	return finish(cmd, e, call)
}

func runFactoryInfo(cmd *cobra.Command, _ []string) error {
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

	client := claims.New(e.chain, e.caller())
	if v3, _ := cmd.Flags().GetBool("v3"); v3 {
		info, err := client.DeploymentInfoV3(ctx, token)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), e.cfg.Output, deploymentInfoView{
			Token:      info.Token.Hex(),
			Locker:     info.Locker.Hex(),
			PositionID: info.PositionId.String(),
		})
	}
	info, err := client.DeploymentInfo(ctx, token)
	if err != nil {
		return err
	}
	view := deploymentInfoView{Token: info.Token.Hex(), Hook: info.Hook.Hex(), Locker: info.Locker.Hex()}
	for _, ext := range info.Extensions {
		view.Extensions = append(view.Extensions, ext.Hex())
	}
	return writeOutput(cmd.OutOrStdout(), e.cfg.Output, view)
}

func runFactorySetAdmin(cmd *cobra.Command, _ []string) error {
	return withFactory(cmd, func(c *claims.Client) (*chain.CallDescriptor, error) {
		admin, err := addressFlag(cmd, "admin")
		if err != nil {
			return nil, err
		}
		enabled, _ := cmd.Flags().GetBool("enabled")
		v3, _ := cmd.Flags().GetBool("v3")
		return c.SetAdmin(admin, enabled, v3)
	})
}

func runFactorySetDeprecated(cmd *cobra.Command, _ []string) error {
	return withFactory(cmd, func(c *claims.Client) (*chain.CallDescriptor, error) {
		deprecated, _ := cmd.Flags().GetBool("deprecated")
		v3, _ := cmd.Flags().GetBool("v3")
		return c.SetDeprecated(deprecated, v3)
	})
}

// runFactoryToggle serves the single-address allow lists.
func runFactoryToggle(cmd *cobra.Command, _ []string) error {
	return withFactory(cmd, func(c *claims.Client) (*chain.CallDescriptor, error) {
		enabled, _ := cmd.Flags().GetBool("enabled")
		var set func(common.Address, bool) (*chain.CallDescriptor, error)
		var flag string
		switch cmd.Name() {
		case "set-hook":
			set, flag = c.SetHook, "hook"
		case "set-extension":
			set, flag = c.SetExtension, "extension"
		default:
			set, flag = c.SetMevModule, "mev-module"
		}
		addr, err := addressFlag(cmd, flag)
		if err != nil {
			return nil, err
		}
		return set(addr, enabled)
	})
}

func runFactorySetLocker(cmd *cobra.Command, _ []string) error {
	return withFactory(cmd, func(c *claims.Client) (*chain.CallDescriptor, error) {
		locker, err := addressFlag(cmd, "locker")
		if err != nil {
			return nil, err
		}
		hook, err := addressFlag(cmd, "hook")
		if err != nil {
			return nil, err
		}
		enabled, _ := cmd.Flags().GetBool("enabled")
		return c.SetLocker(locker, hook, enabled)
	})
}

func runFactorySetTeamRecipient(cmd *cobra.Command, _ []string) error {
	return withFactory(cmd, func(c *claims.Client) (*chain.CallDescriptor, error) {
		recipient, err := addressFlag(cmd, "recipient")
		if err != nil {
			return nil, err
		}
		return c.SetTeamFeeRecipient(recipient)
	})
}
