package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	v4 "clankerSDK/internal/deploy/v4"
)

type vanityView struct {
	Salt            string `json:"salt" yaml:"salt"`
	ExpectedAddress string `json:"expectedAddress" yaml:"expectedAddress"`
	Attempts        uint64 `json:"attempts" yaml:"attempts"`
}

func vanityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vanity",
		Short: "Search a v4 deployment salt whose token address ends with a suffix",
		RunE:  runVanity,
	}
	addTokenFlags(cmd)
	cmd.Flags().String("suffix", v4.DefaultVanitySuffix, "hex address suffix")
	cmd.Flags().String("creation-code", "", "file with the token creation code (hex), enables local CREATE2 prediction")
	cmd.Flags().Int("workers", 0, "search workers (default GOMAXPROCS)")
	cmd.Flags().Uint64("max-attempts", 0, "salts to try before giving up")
	return cmd
}

func runVanity(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.close()

	tok, err := loadV4Token(cmd)
	if err != nil {
		return err
	}
	tok.Vanity = true

	opts, err := v4Options(cmd, e)
	if err != nil {
		return err
	}
	opts.VanitySuffix, _ = cmd.Flags().GetString("suffix")
	opts.Workers, _ = cmd.Flags().GetInt("workers")
	opts.MaxAttempts, _ = cmd.Flags().GetUint64("max-attempts")

	ctx, cancel := e.context(cmd)
	defer cancel()

	e.logger.Info("vanity search start", zap.String("suffix", opts.VanitySuffix), zap.Bool("create2", len(opts.TokenCreationCode) > 0))
	prepared, err := v4.Prepare(ctx, tok, opts)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), e.cfg.Output, vanityView{
		Salt:            hexutil.Encode(prepared.Salt[:]),
		ExpectedAddress: prepared.ExpectedAddress.Hex(),
		Attempts:        prepared.Attempts,
	})
}

// v4Options wires the prediction inputs: creation code when given, else
// the chain client as simulating caller.
func v4Options(cmd *cobra.Command, e *env) (v4.Options, error) {
	opts := v4.Options{Chain: e.chain, Caller: e.caller(), Logger: e.logger}
	if from, _ := cmd.Flags().GetString("from"); from != "" {
		if !common.IsHexAddress(from) {
			return opts, fmt.Errorf("invalid from address %q", from)
		}
		opts.From = common.HexToAddress(from)
	}
	path, _ := cmd.Flags().GetString("creation-code")
	if path == "" {
		return opts, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read creation code: %w", err)
	}
	code, err := hexutil.Decode(strings.TrimSpace(string(raw)))
	if err != nil {
		return opts, fmt.Errorf("decode creation code: %w", err)
	}
	opts.TokenCreationCode = code
	return opts, nil
}
