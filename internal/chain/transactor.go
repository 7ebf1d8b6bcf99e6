package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

// Gas estimates are padded by gasBufferPercent before signing.
const gasBufferPercent = 120

// SimulationResult is the outcome of an eth_call dry run. Exactly one of
// Outputs and Err is meaningful.
type SimulationResult struct {
	ReturnData []byte
	Outputs    []interface{}
	Err        *CallError
}

// Failed reports whether the simulation reverted or the node rejected it.
func (r *SimulationResult) Failed() bool { return r.Err != nil }

// Transactor simulates and executes call descriptors from one account.
type Transactor struct {
	backend Backend
	opts    *bind.TransactOpts
	logger  *zap.Logger
}

// NewTransactor returns a Transactor sending from opts.From. A nil opts
// makes a read-only transactor that can only Simulate.
func NewTransactor(backend Backend, opts *bind.TransactOpts, logger *zap.Logger) *Transactor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transactor{backend: backend, opts: opts, logger: logger}
}

// NewKeyedTransactor builds a Transactor from a hex private key.
func NewKeyedTransactor(backend Backend, hexKey string, chainID *big.Int, logger *zap.Logger) (*Transactor, error) {
	key, err := ParsePrivateKey(hexKey)
	if err != nil {
		return nil, err
	}
	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("create transactor: %w", err)
	}
	return NewTransactor(backend, opts, logger), nil
}

// ParsePrivateKey parses a hex private key with or without 0x.
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return key, nil
}

// Backend returns the node backend.
func (t *Transactor) Backend() Backend { return t.backend }

// From returns the sending account, zero for a read-only transactor.
func (t *Transactor) From() common.Address {
	if t.opts == nil {
		return common.Address{}
	}
	return t.opts.From
}

// Build packs a call without touching the backend.
func (t *Transactor) Build(chainID uint64, to common.Address, parsed abi.ABI, method string, value *big.Int, args ...interface{}) (*CallDescriptor, error) {
	return NewCall(chainID, to, parsed, method, value, args...)
}

// Simulate dry-runs call at the latest block. Node and revert errors are
// reported in the result; the returned error is only set when the return
// data cannot be decoded.
func (t *Transactor) Simulate(ctx context.Context, call *CallDescriptor) (*SimulationResult, error) {
	msg := t.callMsg(call)
	out, err := t.backend.CallContract(ctx, msg, nil)
	if err != nil {
		callErr := NewCallError(call.ABI, call.Method, err)
		t.logger.Debug("simulate failed",
			zap.String("method", call.Method),
			zap.String("to", call.To.Hex()),
			zap.Error(callErr),
		)
		return &SimulationResult{Err: callErr}, nil
	}
	values, err := call.Unpack(out)
	if err != nil {
		return nil, err
	}
	return &SimulationResult{ReturnData: out, Outputs: values}, nil
}

// Read calls a view method and returns its decoded outputs.
func Read(ctx context.Context, caller Caller, call *CallDescriptor) ([]interface{}, error) {
	out, err := caller.CallContract(ctx, ethereum.CallMsg{To: &call.To, Data: call.Data()}, nil)
	if err != nil {
		return nil, NewCallError(call.ABI, call.Method, err)
	}
	return call.Unpack(out)
}

// ReadBig calls a view method whose first output is a uint256.
func ReadBig(ctx context.Context, caller Caller, call *CallDescriptor) (*big.Int, error) {
	values, err := Read(ctx, caller, call)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%s returned no values", call.Method)
	}
	v, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s returned %T, want uint256", call.Method, values[0])
	}
	return v, nil
}

// Execute signs call as an EIP-1559 transaction, sends it and waits for the
// receipt. A reverted transaction returns its receipt with ErrTxReverted.
func (t *Transactor) Execute(ctx context.Context, call *CallDescriptor) (*types.Receipt, error) {
	if t.opts == nil {
		return nil, errors.New("execute: transactor has no signer")
	}
	from := t.opts.From

	msg := t.callMsg(call)
	gas, err := t.backend.EstimateGas(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", NewCallError(call.ABI, call.Method, err))
	}
	gas = gas * gasBufferPercent / 100

	nonce, err := t.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("pending nonce: %w", err)
	}
	tip, err := t.backend.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest tip: %w", err)
	}
	head, err := t.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("latest header: %w", err)
	}
	feeCap := new(big.Int).Set(tip)
	if head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}

	to := call.To
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   new(big.Int).SetUint64(call.ChainID),
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &to,
		Value:     new(big.Int).Set(call.Value),
		Data:      call.Data(),
	})
	signed, err := t.opts.Signer(from, tx)
	if err != nil {
		return nil, fmt.Errorf("sign tx: %w", err)
	}
	if err := t.backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("send tx: %w", err)
	}
	t.logger.Info("tx sent",
		zap.String("method", call.Method),
		zap.String("hash", signed.Hash().Hex()),
		zap.Uint64("nonce", nonce),
		zap.Uint64("gas", gas),
	)

	receipt, err := bind.WaitMined(ctx, t.backend, signed)
	if err != nil {
		return nil, fmt.Errorf("wait mined %s: %w", signed.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%s %s: %w", call.Method, signed.Hash().Hex(), ErrTxReverted)
	}
	return receipt, nil
}

func (t *Transactor) callMsg(call *CallDescriptor) ethereum.CallMsg {
	to := call.To
	return ethereum.CallMsg{
		From:  t.From(),
		To:    &to,
		Value: call.Value,
		Data:  call.Data(),
	}
}
