package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"clankerSDK/internal/chain"
	"clankerSDK/internal/config"
	"clankerSDK/internal/contracts"
)

func main() {
	root := &cobra.Command{
		Use:          "clanker",
		Short:        "Build, deploy and manage Clanker tokens",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file path (default ./clanker.yaml)")
	flags.String("rpc", "", "RPC URL")
	flags.Uint64("chain-id", contracts.BaseChainID, "chain id of the address book")
	flags.String("private-key", "", "hex private key used to send transactions")
	flags.StringToString("contracts", nil, "address book overrides (name=address)")
	flags.String("output", "json", "output format (json, yaml)")
	flags.Duration("timeout", 2*time.Minute, "timeout of one command")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		tickCmd(),
		tokenCmd(),
		vanityCmd(),
		buildV3Cmd(),
		buildV4Cmd(),
		deployCmd(),
		feesCmd(),
		claimCmd(),
		factoryCmd(),
		presaleCmd(),
		apiCmd(),
		marketCmd(),
		scanCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// env is what on-chain commands share: config, logger, the address book
// and, when --rpc is set, a chain client.
type env struct {
	cfg    config.Chain
	logger *zap.Logger
	chain  contracts.Chain
	client *chain.Client
}

func setup(cmd *cobra.Command, needRPC bool) (*env, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadChain(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	c, err := contracts.ChainByID(cfg.ChainID)
	if err != nil {
		return nil, err
	}
	if c, err = c.Overrides(cfg.Overrides); err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, logger: logger, chain: c}
	if cfg.RPCURL == "" {
		if needRPC {
			return nil, fmt.Errorf("rpc url is required")
		}
		return e, nil
	}

	client, err := chain.NewClient(cmd.Context(), cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("connect rpc: %w", err)
	}
	e.client = client
	return e, nil
}

func (e *env) close() {
	if e.client != nil {
		e.client.Close()
	}
	_ = e.logger.Sync()
}

// caller returns the chain client as a chain.Caller, or nil without --rpc.
func (e *env) caller() chain.Caller {
	if e.client == nil {
		return nil
	}
	return e.client
}

func (e *env) transactor() (*chain.Transactor, error) {
	if e.client == nil {
		return nil, fmt.Errorf("rpc url is required to send transactions")
	}
	if e.cfg.PrivateKey == "" {
		return nil, fmt.Errorf("private key is required to send transactions")
	}
	return chain.NewKeyedTransactor(e.client, e.cfg.PrivateKey, new(big.Int).SetUint64(e.chain.ID), e.logger)
}

func (e *env) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	if e.cfg.Timeout <= 0 {
		return context.WithCancel(cmd.Context())
	}
	return context.WithTimeout(cmd.Context(), e.cfg.Timeout)
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func writeOutput(w io.Writer, format string, v interface{}) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}
