package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"clankerSDK/internal/contracts"
	"clankerSDK/internal/erc20"
	"clankerSDK/internal/ticks"
)

type tickView struct {
	Tick        int     `json:"tick" yaml:"tick"`
	PairedToken string  `json:"pairedToken,omitempty" yaml:"pairedToken,omitempty"`
	Decimals    *uint8  `json:"decimals,omitempty" yaml:"decimals,omitempty"`
	Price       float64 `json:"price" yaml:"price"`
}

func tickCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Compute the starting tick for a market cap",
		RunE:  runTick,
	}
	cmd.Flags().Float64("market-cap", 10, "starting market cap in paired token units")
	cmd.Flags().String("pair", "WETH", "paired token preset symbol or address")
	cmd.Flags().Uint8("decimals", 0, "paired token decimals for tokens without a preset, read over --rpc when unset")
	return cmd
}

func runTick(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.close()

	marketCap, _ := cmd.Flags().GetFloat64("market-cap")
	pair, _ := cmd.Flags().GetString("pair")

	custom := cmd.Flags().Changed("decimals")
	decimals, _ := cmd.Flags().GetUint8("decimals")
	if !custom && common.IsHexAddress(pair) && e.client != nil {
		if _, ok := contracts.PairedTokenByAddress(common.HexToAddress(pair)); !ok {
			ctx, cancel := e.context(cmd)
			defer cancel()
			meta, err := erc20.NewReader(e.client, e.logger).Metadata(ctx, common.HexToAddress(pair))
			if err != nil {
				return fmt.Errorf("read paired token decimals: %w", err)
			}
			decimals, custom = meta.Decimals, true
		}
	}

	var view tickView
	if custom {
		tick, err := ticks.TickForCustomPair(marketCap, decimals)
		if err != nil {
			return err
		}
		view = tickView{Tick: tick, PairedToken: pair, Decimals: &decimals}
	} else {
		tick, paired, err := ticks.ComputeTicksFromMarketCap(marketCap, pair)
		if err != nil {
			return fmt.Errorf("compute tick: %w", err)
		}
		view = tickView{Tick: tick, PairedToken: paired.Hex()}
	}
	view.Price = ticks.PriceAtTick(view.Tick)
	return writeOutput(cmd.OutOrStdout(), e.cfg.Output, view)
}

type tokenView struct {
	erc20.Metadata `yaml:",inline"`
	Holder         string `json:"holder,omitempty" yaml:"holder,omitempty"`
	Balance        string `json:"balance,omitempty" yaml:"balance,omitempty"`
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Read ERC20 metadata and optionally a holder balance",
		RunE:  runToken,
	}
	cmd.Flags().String("address", "", "token address")
	cmd.Flags().String("holder", "", "holder whose balance to read")
	return cmd
}

func runToken(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.close()
	token, err := addressFlag(cmd, "address")
	if err != nil {
		return err
	}

	ctx, cancel := e.context(cmd)
	defer cancel()

	reader := erc20.NewReader(e.client, e.logger)
	meta, err := reader.Metadata(ctx, token)
	if err != nil {
		return err
	}
	view := tokenView{Metadata: meta}
	if holder, _ := cmd.Flags().GetString("holder"); holder != "" {
		account, err := addressFlag(cmd, "holder")
		if err != nil {
			return err
		}
		balance, err := reader.BalanceOf(ctx, token, account)
		if err != nil {
			return err
		}
		view.Holder, view.Balance = account.Hex(), balance.String()
	}
	return writeOutput(cmd.OutOrStdout(), e.cfg.Output, view)
}
