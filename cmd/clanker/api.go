package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"clankerSDK/internal/api"
	"clankerSDK/internal/config"
)

func newAPIClient(cmd *cobra.Command, logger *zap.Logger) (*api.Client, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	svc, err := config.LoadServices(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if svc.APIKey == "" {
		return nil, fmt.Errorf("clanker api key is required (--api-key or CLANKER_API_KEY)")
	}
	return api.NewClient(svc.APIKey,
		api.WithBaseURL(svc.APIBaseURL),
		api.WithLogger(logger),
		api.WithHTTPClient(&http.Client{Timeout: svc.Timeout}),
	), nil
}

func apiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Query and deploy through the Clanker REST API",
	}
	cmd.PersistentFlags().String("api-key", "", "Clanker API key")
	cmd.PersistentFlags().String("api-url", "", "Clanker API base url")

	deployed := &cobra.Command{Use: "deployed", Short: "List tokens deployed by an address", RunE: runAPIDeployed}
	deployed.Flags().String("address", "", "deployer address")
	deployed.Flags().Int("page", 1, "page, starting at 1")

	token := &cobra.Command{Use: "token", Short: "Show a token by contract address", RunE: runAPIToken}
	token.Flags().String("address", "", "token address")

	rewards := &cobra.Command{Use: "rewards", Short: "Estimate creator rewards of a pool", RunE: runAPIRewards}
	rewards.Flags().String("pool", "", "pool address")

	deploy := &cobra.Command{Use: "deploy", Short: "Deploy a token through the API", RunE: runAPIDeploy}
	deploy.Flags().String("file", "", "JSON file with the deploy request")
	deploy.Flags().String("split-address", "", "route creator rewards to this split contract")

	cmd.AddCommand(deployed, token, rewards, deploy)
	return cmd
}

func withAPI(cmd *cobra.Command, run func(*env, *api.Client) (interface{}, error)) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.close()
	client, err := newAPIClient(cmd, e.logger)
	if err != nil {
		return err
	}
	out, err := run(e, client)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), e.cfg.Output, out)
}

func runAPIDeployed(cmd *cobra.Command, _ []string) error {
	return withAPI(cmd, func(e *env, client *api.Client) (interface{}, error) {
		address, _ := cmd.Flags().GetString("address")
		page, _ := cmd.Flags().GetInt("page")
		ctx, cancel := e.context(cmd)
		defer cancel()
		return client.FetchDeployedByAddress(ctx, address, page)
	})
}

func runAPIToken(cmd *cobra.Command, _ []string) error {
	return withAPI(cmd, func(e *env, client *api.Client) (interface{}, error) {
		address, _ := cmd.Flags().GetString("address")
		ctx, cancel := e.context(cmd)
		defer cancel()
		return client.GetClankerByAddress(ctx, address)
	})
}

func runAPIRewards(cmd *cobra.Command, _ []string) error {
	return withAPI(cmd, func(e *env, client *api.Client) (interface{}, error) {
		pool, _ := cmd.Flags().GetString("pool")
		ctx, cancel := e.context(cmd)
		defer cancel()
		return client.EstimateRewardsByPoolAddress(ctx, pool)
	})
}

func runAPIDeploy(cmd *cobra.Command, _ []string) error {
	return withAPI(cmd, func(e *env, client *api.Client) (interface{}, error) {
		path, _ := cmd.Flags().GetString("file")
		if path == "" {
			return nil, fmt.Errorf("--file is required")
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read deploy request: %w", err)
		}
		var req api.DeployTokenRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return nil, fmt.Errorf("parse deploy request: %w", err)
		}
		if req.ChainID == 0 {
			req.ChainID = e.chain.ID
		}

		ctx, cancel := e.context(cmd)
		defer cancel()

		e.logger.Info("api deploy", zap.String("symbol", req.Symbol), zap.String("requestor", req.RequestorAddress))
		if split, _ := cmd.Flags().GetString("split-address"); split != "" {
			return client.DeployTokenWithSplits(ctx, api.DeployTokenWithSplitsRequest{DeployTokenRequest: req, SplitAddress: split})
		}
		return client.DeployToken(ctx, req)
	})
}
