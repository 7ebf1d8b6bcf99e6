package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	v3 "clankerSDK/internal/deploy/v3"
	v4 "clankerSDK/internal/deploy/v4"
	"clankerSDK/internal/fees"
)

// v4File is the token file layout: a v4.Token plus the fee choice, which
// Token does not serialize.
type v4File struct {
	v4.Token `yaml:",inline"`
	Fees     *feeFile `yaml:"fees,omitempty"`
}

type feeFile struct {
	Type          string        `yaml:"type"`
	ClankerFeeBps uint32        `yaml:"clankerFeeBps"`
	PairedFeeBps  uint32        `yaml:"pairedFeeBps"`
	Dynamic       *fees.Dynamic `yaml:"dynamic,omitempty"`
}

func addTokenFlags(cmd *cobra.Command) {
	cmd.Flags().String("file", "", "token file (yaml or json)")
	cmd.Flags().String("name", "", "token name")
	cmd.Flags().String("symbol", "", "token symbol")
	cmd.Flags().String("admin", "", "token admin address")
	cmd.Flags().String("image", "", "token image url")
	cmd.Flags().Float64("market-cap", 0, "starting market cap in paired token units")
	cmd.Flags().String("pair", "", "paired token address")
	cmd.Flags().String("from", "", "simulated sender, defaults to the token admin")
}

func addFeeFlags(cmd *cobra.Command) {
	cmd.Flags().String("fee-type", "", "fee hook: static or dynamic")
	cmd.Flags().Uint32("clanker-fee", 0, "static fee on the clanker side in bps")
	cmd.Flags().Uint32("paired-fee", 0, "static fee on the paired side in bps")
	cmd.Flags().String("positions", "", "position preset: standard or project")
}

func readTokenFile(cmd *cobra.Command, out interface{}) error {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read token file: %w", err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse token file: %w", err)
	}
	return nil
}

type tokenFlags struct {
	name, symbol, image string
	admin, pair         *common.Address
	marketCap           float64
}

func readTokenFlags(cmd *cobra.Command) (tokenFlags, error) {
	var f tokenFlags
	f.name, _ = cmd.Flags().GetString("name")
	f.symbol, _ = cmd.Flags().GetString("symbol")
	f.image, _ = cmd.Flags().GetString("image")
	f.marketCap, _ = cmd.Flags().GetFloat64("market-cap")
	for flag, dst := range map[string]**common.Address{"admin": &f.admin, "pair": &f.pair} {
		value, _ := cmd.Flags().GetString(flag)
		if value == "" {
			continue
		}
		if !common.IsHexAddress(value) {
			return f, fmt.Errorf("invalid %s address %q", flag, value)
		}
		addr := common.HexToAddress(value)
		*dst = &addr
	}
	return f, nil
}

func loadV4Token(cmd *cobra.Command) (v4.Token, error) {
	var file v4File
	if err := readTokenFile(cmd, &file); err != nil {
		return v4.Token{}, err
	}
	tok := file.Token
	flags, err := readTokenFlags(cmd)
	if err != nil {
		return v4.Token{}, err
	}
	if flags.name != "" {
		tok.Name = flags.name
	}
	if flags.symbol != "" {
		tok.Symbol = flags.symbol
	}
	if flags.image != "" {
		tok.Image = flags.image
	}
	if flags.admin != nil {
		tok.TokenAdmin = *flags.admin
	}
	if flags.pair != nil {
		tok.Pool.PairedToken = *flags.pair
	}
	if flags.marketCap > 0 {
		tok.Pool.InitialMarketCap = flags.marketCap
	}

	b := v4.NewTokenConfigV4Builder().
		WithName(tok.Name).
		WithSymbol(tok.Symbol).
		WithTokenAdmin(tok.TokenAdmin).
		WithImage(tok.Image).
		WithMetadata(tok.Metadata).
		WithContext(tok.Context).
		WithChainID(tok.ChainID).
		WithOriginatingChainID(tok.OriginatingChainID).
		WithPool(tok.Pool).
		WithRewards(tok.Rewards...)
	if tok.Vault != nil {
		b.WithVault(*tok.Vault)
	}
	if tok.Airdrop != nil {
		b.WithAirdrop(*tok.Airdrop)
	}
	if tok.DevBuy != nil {
		b.WithDevBuy(*tok.DevBuy)
	}
	if tok.Presale != nil {
		b.WithPresale(*tok.Presale)
	}
	if tok.Vanity {
		b.WithVanity()
	}
	if tok.Salt != nil {
		b.WithSalt(*tok.Salt)
	}
	if err := applyFees(cmd, b, file.Fees); err != nil {
		return v4.Token{}, err
	}
	return b.Build()
}

func applyFees(cmd *cobra.Command, b *v4.TokenConfigV4Builder, file *feeFile) error {
	fee := feeFile{}
	if file != nil {
		fee = *file
	}
	if cmd.Flags().Lookup("fee-type") != nil {
		if v, _ := cmd.Flags().GetString("fee-type"); v != "" {
			fee.Type = v
		}
		if v, _ := cmd.Flags().GetUint32("clanker-fee"); v != 0 {
			fee.ClankerFeeBps = v
		}
		if v, _ := cmd.Flags().GetUint32("paired-fee"); v != 0 {
			fee.PairedFeeBps = v
		}
		if name, _ := cmd.Flags().GetString("positions"); name != "" {
			positions, ok := v4.PositionsByName(name)
			if !ok {
				return fmt.Errorf("unknown position preset %q", name)
			}
			b.WithPositions(positions...)
		}
	}

	switch fee.Type {
	case "":
		if fee.ClankerFeeBps != 0 || fee.PairedFeeBps != 0 {
			b.WithStaticFee(fee.ClankerFeeBps, fee.PairedFeeBps)
		}
	case "static":
		def := fees.DefaultStatic()
		if fee.ClankerFeeBps == 0 {
			fee.ClankerFeeBps = def.ClankerFeeBps
		}
		if fee.PairedFeeBps == 0 {
			fee.PairedFeeBps = def.PairedFeeBps
		}
		b.WithStaticFee(fee.ClankerFeeBps, fee.PairedFeeBps)
	case "dynamic":
		dynamic := fees.DefaultDynamic()
		if fee.Dynamic != nil {
			dynamic = *fee.Dynamic
		}
		b.WithDynamicFee(dynamic)
	default:
		return fmt.Errorf("unknown fee type %q", fee.Type)
	}
	return nil
}

func loadV3Token(cmd *cobra.Command) (v3.Token, error) {
	var tok v3.Token
	if err := readTokenFile(cmd, &tok); err != nil {
		return tok, err
	}
	flags, err := readTokenFlags(cmd)
	if err != nil {
		return tok, err
	}
	if flags.name != "" {
		tok.Name = flags.name
	}
	if flags.symbol != "" {
		tok.Symbol = flags.symbol
	}
	if flags.image != "" {
		tok.Image = flags.image
	}
	if flags.admin != nil {
		tok.Rewards.CreatorAdmin = *flags.admin
	}
	if flags.pair != nil {
		tok.Pool.PairedToken = *flags.pair
	}
	if flags.marketCap > 0 {
		tok.Pool.InitialMarketCap = flags.marketCap
	}
	return tok, nil
}

func buildV4Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build-v4",
		Short: "Validate a v4 token and print its deployToken call",
		RunE:  runBuildV4,
	}
	addTokenFlags(cmd)
	addFeeFlags(cmd)
	cmd.Flags().String("creation-code", "", "file with the token creation code (hex) for CREATE2 prediction")
	return cmd
}

func runBuildV4(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.close()

	tok, err := loadV4Token(cmd)
	if err != nil {
		return err
	}
	opts, err := v4Options(cmd, e)
	if err != nil {
		return err
	}

	ctx, cancel := e.context(cmd)
	defer cancel()

	call, err := v4.Build(ctx, tok, opts)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), e.cfg.Output, call.View())
}

func buildV3Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build-v3",
		Short: "Validate a v3.1 token and print its deployToken call",
		RunE:  runBuildV3,
	}
	addTokenFlags(cmd)
	return cmd
}

func runBuildV3(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.close()

	tok, err := loadV3Token(cmd)
	if err != nil {
		return err
	}
	opts, err := v3Options(cmd, e)
	if err != nil {
		return err
	}

	ctx, cancel := e.context(cmd)
	defer cancel()

	call, err := v3.Build(ctx, tok, opts)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), e.cfg.Output, call.View())
}

func v3Options(cmd *cobra.Command, e *env) (v3.Options, error) {
	opts := v3.Options{Chain: e.chain, Caller: e.caller()}
	if from, _ := cmd.Flags().GetString("from"); from != "" {
		if !common.IsHexAddress(from) {
			return opts, fmt.Errorf("invalid from address %q", from)
		}
		opts.From = common.HexToAddress(from)
	}
	return opts, nil
}
