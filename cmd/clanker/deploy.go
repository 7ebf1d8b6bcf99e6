package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"clankerSDK/internal/chain"
	"clankerSDK/internal/deploy"
	v3 "clankerSDK/internal/deploy/v3"
	v4 "clankerSDK/internal/deploy/v4"
	"clankerSDK/internal/model"
	"clankerSDK/internal/storage"
	"clankerSDK/internal/storage/postgres"
)

type deployView struct {
	ID              string `json:"id" yaml:"id"`
	TxHash          string `json:"txHash" yaml:"txHash"`
	TokenAddress    string `json:"tokenAddress" yaml:"tokenAddress"`
	ExpectedAddress string `json:"expectedAddress" yaml:"expectedAddress"`
	Version         string `json:"version" yaml:"version"`
}

func deployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Build, simulate and send a token deployment",
		RunE:  runDeploy,
	}
	addTokenFlags(cmd)
	addFeeFlags(cmd)
	cmd.Flags().String("version", "v4", "factory version: v4 or v3")
	cmd.Flags().String("creation-code", "", "file with the token creation code (hex) for CREATE2 prediction")
	cmd.Flags().String("journal", "./data", "directory of the deployment journal")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN, also journals deployments to Postgres")
	return cmd
}

func runDeploy(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.close()

	tx, err := e.transactor()
	if err != nil {
		return err
	}

	ctx, cancel := e.context(cmd)
	defer cancel()

	version, _ := cmd.Flags().GetString("version")
	call, record, err := buildDeployment(ctx, cmd, e, version, tx.From().Hex())
	if err != nil {
		return err
	}

	e.logger.Info("deploy start",
		zap.String("version", version),
		zap.String("factory", call.To.Hex()),
		zap.String("from", tx.From().Hex()),
	)
	result, err := deploy.NewDeployer(tx, e.logger).Deploy(ctx, call)
	if err != nil {
		if result != nil {
			e.logger.Error("deploy failed", zap.String("tx", result.TxHash.Hex()), zap.Error(err))
		}
		return err
	}

	record.TxHash = result.TxHash.Hex()
	record.TokenAddress = result.TokenAddress.Hex()
	record.ExpectedAddress = result.ExpectedAddress.Hex()
	if err := journal(ctx, cmd, record); err != nil {
		e.logger.Warn("journal deployment failed", zap.Error(err))
	}

	return writeOutput(cmd.OutOrStdout(), e.cfg.Output, deployView{
		ID:              record.ID,
		TxHash:          record.TxHash,
		TokenAddress:    record.TokenAddress,
		ExpectedAddress: record.ExpectedAddress,
		Version:         record.Version,
	})
}

func buildDeployment(ctx context.Context, cmd *cobra.Command, e *env, version, sender string) (*chain.CallDescriptor, model.Deployment, error) {
	record := model.Deployment{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		ChainID:   e.chain.ID,
		Version:   version,
	}
	if from, _ := cmd.Flags().GetString("from"); from == "" {
		_ = cmd.Flags().Set("from", sender)
	}

	switch version {
	case "v4":
		tok, err := loadV4Token(cmd)
		if err != nil {
			return nil, record, err
		}
		opts, err := v4Options(cmd, e)
		if err != nil {
			return nil, record, err
		}
		prepared, err := v4.Prepare(ctx, tok, opts)
		if err != nil {
			return nil, record, err
		}
		call, err := prepared.Call()
		if err != nil {
			return nil, record, err
		}
		record.Name, record.Symbol, record.Admin = tok.Name, tok.Symbol, tok.TokenAdmin.Hex()
		record.Salt = hexutil.Encode(prepared.Salt[:])
		return call, record, nil
	case "v3":
		tok, err := loadV3Token(cmd)
		if err != nil {
			return nil, record, err
		}
		opts, err := v3Options(cmd, e)
		if err != nil {
			return nil, record, err
		}
		call, err := v3.Build(ctx, tok, opts)
		if err != nil {
			return nil, record, err
		}
		record.Name, record.Symbol, record.Admin = tok.Name, tok.Symbol, tok.Rewards.CreatorAdmin.Hex()
		return call, record, nil
	default:
		return nil, record, fmt.Errorf("unknown factory version %q", version)
	}
}

func journal(ctx context.Context, cmd *cobra.Command, record model.Deployment) error {
	dir, _ := cmd.Flags().GetString("journal")
	sinks := []storage.Storage{storage.NewJsonlStorage(dir)}

	if dsn, _ := cmd.Flags().GetString("pg-dsn"); dsn != "" {
		store, err := postgres.NewStore(ctx, dsn)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		sinks = append(sinks, store)
	}

	for _, sink := range sinks {
		if err := sink.PutDeployment(ctx, record); err != nil {
			return err
		}
	}
	return nil
}
