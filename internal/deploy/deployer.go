// Package deploy submits factory deployments and confirms the deployed
// token address against the predicted one.
package deploy

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"clankerSDK/internal/chain"
	"clankerSDK/internal/events"
	"clankerSDK/internal/model"
)

// ErrAddressMismatch is returned when the TokenCreated address differs from
// the expected address of the call.
var ErrAddressMismatch = errors.New("deployed address does not match expected address")

// Result is a confirmed deployment.
type Result struct {
	TxHash          common.Hash
	TokenAddress    common.Address
	ExpectedAddress common.Address
	Event           model.TokenCreated
	Receipt         *types.Receipt
}

type Deployer struct {
	tx     chain.Executor
	logger *zap.Logger
}

func NewDeployer(tx chain.Executor, logger *zap.Logger) *Deployer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Deployer{tx: tx, logger: logger}
}

// Deploy submits call. Without an expected address the call is simulated
// first to obtain one, so the transaction is never sent unpredicted.
func (d *Deployer) Deploy(ctx context.Context, call *chain.CallDescriptor) (*Result, error) {
	if call.ExpectedAddress == nil {
		expected, err := d.expectedAddress(ctx, call)
		if err != nil {
			return nil, err
		}
		call = call.WithExpectedAddress(expected)
	}
	expected := *call.ExpectedAddress

	receipt, err := d.tx.Execute(ctx, call)
	if err != nil {
		if receipt != nil {
			return &Result{TxHash: receipt.TxHash, ExpectedAddress: expected, Receipt: receipt}, fmt.Errorf("deploy: %w", err)
		}
		return nil, fmt.Errorf("deploy: %w", err)
	}
	result := &Result{TxHash: receipt.TxHash, ExpectedAddress: expected, Receipt: receipt}

	decoder, err := events.NewDecoder(call.ChainID)
	if err != nil {
		return result, err
	}
	event, err := decoder.Find(factoryLogs(receipt.Logs, call.To))
	if err != nil {
		return result, fmt.Errorf("tx %s: %w", receipt.TxHash.Hex(), err)
	}
	result.Event = event
	result.TokenAddress = common.HexToAddress(event.TokenAddress)

	if result.TokenAddress != expected {
		return result, fmt.Errorf("%w: expected %s, got %s", ErrAddressMismatch, expected.Hex(), result.TokenAddress.Hex())
	}
	d.logger.Info("token deployed",
		zap.String("token", result.TokenAddress.Hex()),
		zap.String("tx", result.TxHash.Hex()),
		zap.String("version", event.Version),
	)
	return result, nil
}

func (d *Deployer) expectedAddress(ctx context.Context, call *chain.CallDescriptor) (common.Address, error) {
	sim, err := d.tx.Simulate(ctx, call)
	if err != nil {
		return common.Address{}, err
	}
	if sim.Failed() {
		return common.Address{}, fmt.Errorf("simulate deployment: %w", sim.Err)
	}
	if len(sim.Outputs) == 0 {
		return common.Address{}, fmt.Errorf("simulate deployment: no return values")
	}
	addr, ok := sim.Outputs[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("simulate deployment: returned %T, want address", sim.Outputs[0])
	}
	return addr, nil
}

func factoryLogs(logs []*types.Log, factory common.Address) []*types.Log {
	out := make([]*types.Log, 0, len(logs))
	for _, lg := range logs {
		if lg != nil && lg.Address == factory {
			out = append(out, lg)
		}
	}
	return out
}
