package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"clankerSDK/internal/config"
	"clankerSDK/internal/marketdata"
)

func marketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Market data from Dune, the Uniswap subgraph and CoinGecko",
	}
	flags := cmd.PersistentFlags()
	flags.String("dune-api-key", "", "Dune API key")
	flags.String("graph-url", "", "subgraph query url")
	flags.String("graph-api-key", "", "subgraph API key")
	flags.String("coingecko-api-key", "", "CoinGecko API key")

	price := &cobra.Command{Use: "price", Short: "Token price from the subgraph", RunE: runMarketPrice}
	price.Flags().String("token", "", "token address")

	pool := &cobra.Command{Use: "pool", Short: "Daily pool data from the subgraph", RunE: runMarketPool}
	pool.Flags().String("pool", "", "pool address")
	pool.Flags().Int("days", 7, "days of history")

	dune := &cobra.Command{Use: "dune", Short: "Token market data from a Dune query", RunE: runMarketDune}
	dune.Flags().Int("dune-query-id", 0, "Dune query id")
	dune.Flags().String("token", "", "token address")

	coingecko := &cobra.Command{Use: "coingecko", Short: "Prices from CoinGecko", RunE: runMarketCoinGecko}
	coingecko.Flags().StringSlice("ids", nil, "coin ids")
	coingecko.Flags().StringSlice("vs", []string{"usd"}, "quote currencies")
	coingecko.Flags().String("platform", "", "asset platform for contract lookups, e.g. base")
	coingecko.Flags().StringSlice("contracts", nil, "token contract addresses")

	cmd.AddCommand(price, pool, dune, coingecko)
	return cmd
}

func withMarket(cmd *cobra.Command, run func(*env, config.Services, *marketdata.Client) (interface{}, error)) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.close()

	cfgFile, _ := cmd.Flags().GetString("config")
	svc, err := config.LoadServices(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	client := marketdata.NewClient(
		marketdata.WithHTTPClient(&http.Client{Timeout: svc.Timeout}),
		marketdata.WithDune(svc.DuneBaseURL, svc.DuneAPIKey),
		marketdata.WithGraph(svc.GraphURL, svc.GraphAPIKey),
		marketdata.WithCoinGecko(svc.CoinGeckoBaseURL, svc.CoinGeckoAPIKey),
		marketdata.WithLogger(e.logger),
	)
	out, err := run(e, svc, client)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), e.cfg.Output, out)
}

func runMarketPrice(cmd *cobra.Command, _ []string) error {
	return withMarket(cmd, func(e *env, _ config.Services, client *marketdata.Client) (interface{}, error) {
		token, _ := cmd.Flags().GetString("token")
		ctx, cancel := e.context(cmd)
		defer cancel()
		return client.TokenPrice(ctx, token)
	})
}

func runMarketPool(cmd *cobra.Command, _ []string) error {
	return withMarket(cmd, func(e *env, _ config.Services, client *marketdata.Client) (interface{}, error) {
		pool, _ := cmd.Flags().GetString("pool")
		days, _ := cmd.Flags().GetInt("days")
		ctx, cancel := e.context(cmd)
		defer cancel()
		return client.PoolDayData(ctx, pool, days)
	})
}

func runMarketDune(cmd *cobra.Command, _ []string) error {
	return withMarket(cmd, func(e *env, svc config.Services, client *marketdata.Client) (interface{}, error) {
		if svc.DuneQueryID <= 0 {
			return nil, fmt.Errorf("dune query id is required")
		}
		token, _ := cmd.Flags().GetString("token")
		ctx, cancel := e.context(cmd)
		defer cancel()
		return client.TokenMarketData(ctx, int64(svc.DuneQueryID), token)
	})
}

func runMarketCoinGecko(cmd *cobra.Command, _ []string) error {
	return withMarket(cmd, func(e *env, _ config.Services, client *marketdata.Client) (interface{}, error) {
		ids, _ := cmd.Flags().GetStringSlice("ids")
		vs, _ := cmd.Flags().GetStringSlice("vs")
		platform, _ := cmd.Flags().GetString("platform")
		contracts, _ := cmd.Flags().GetStringSlice("contracts")

		ctx, cancel := e.context(cmd)
		defer cancel()
		switch {
		case platform != "" && len(contracts) > 0:
			return client.TokenPriceByContract(ctx, platform, contracts, vs)
		case len(ids) > 0:
			return client.SimplePrice(ctx, ids, vs)
		default:
			return nil, fmt.Errorf("either --ids or --platform with --contracts is required")
		}
	})
}
