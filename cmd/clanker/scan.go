package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"clankerSDK/internal/config"
	"clankerSDK/internal/indexer"
	"clankerSDK/internal/storage"
	"clankerSDK/internal/storage/postgres"
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Index TokenCreated events of the Clanker factories",
		RunE:  runScan,
	}
	cmd.Flags().Uint64("from", 0, "start block (inclusive)")
	cmd.Flags().Uint64("to", 0, "end block (inclusive), 0 means latest")
	cmd.Flags().StringSlice("factory", nil, "factory addresses (default: the v3.1 and v4 factories of the chain)")
	cmd.Flags().Uint64("batch-size", 2000, "blocks per batch")
	cmd.Flags().String("out", "./data", "output directory of the JSONL files")
	cmd.Flags().String("checkpoint", "./data/checkpoint.json", "checkpoint file path")
	cmd.Flags().Bool("checkpoint-enabled", true, "enable checkpointing")
	cmd.Flags().Int("max-retries", 5, "maximum retry attempts")
	cmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	cmd.Flags().Bool("skip-timestamps", false, "do not fetch block timestamps")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN, writes tokens and the checkpoint to Postgres")
	cmd.Flags().String("state-name", "token-created", "checkpoint name in Postgres")
	return cmd
}

func runScan(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.close()

	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadScan(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	factories, err := indexer.ParseAddresses(cfg.Factories)
	if err != nil {
		return err
	}
	if len(factories) == 0 {
		factories = indexer.DefaultFactories(e.chain)
	}

	ctx := cmd.Context()

	var (
		sink       storage.Storage
		checkpoint indexer.Checkpointer
	)
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		sink = store
		if cfg.CheckpointEnabled {
			checkpoint = store.Checkpoint(cfg.StateName)
		}
	} else {
		sink = storage.NewJsonlStorage(cfg.OutDir)
		if cfg.CheckpointEnabled {
			checkpoint = indexer.NewFileCheckpoint(cfg.Checkpoint)
		}
	}

	runner := indexer.NewRunner(indexer.RunConfig{
		FromBlock:      cfg.FromBlock,
		ToBlock:        cfg.ToBlock,
		Factories:      factories,
		BatchSize:      cfg.BatchSize,
		MaxRetries:     cfg.MaxRetries,
		RetryBackoff:   cfg.RetryBackoff,
		SkipTimestamps: cfg.SkipTimestamps,
	}, e.client, sink, checkpoint, e.logger)

	e.logger.Info("scan start",
		zap.Uint64("chain_id", e.chain.ID),
		zap.Uint64("from", cfg.FromBlock),
		zap.Uint64("to", cfg.ToBlock),
		zap.Int("factories", len(factories)),
		zap.Uint64("batch_size", cfg.BatchSize),
		zap.Bool("postgres", cfg.PGDSN != ""),
		zap.Bool("checkpoint_enabled", cfg.CheckpointEnabled),
	)

	stats, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), e.cfg.Output, stats)
}
