// Package chaintest provides an in-memory chain.Backend for tests.
package chaintest

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// Backend answers calls through CallFn and mines every sent transaction
// immediately with the receipt built by ReceiptFn.
type Backend struct {
	ID      *big.Int
	BaseFee *big.Int
	Tip     *big.Int
	Gas     uint64

	CallFn      func(msg ethereum.CallMsg) ([]byte, error)
	EstimateErr error
	ReceiptFn   func(tx *types.Transaction) *types.Receipt
	Logs        []types.Log

	mu       sync.Mutex
	calls    []ethereum.CallMsg
	sent     []*types.Transaction
	receipts map[common.Hash]*types.Receipt
}

// New returns a Backend for chainID with fixed gas pricing.
func New(chainID uint64) *Backend {
	return &Backend{
		ID:       new(big.Int).SetUint64(chainID),
		BaseFee:  big.NewInt(1_000_000_000),
		Tip:      big.NewInt(1_000_000),
		Gas:      100_000,
		receipts: make(map[common.Hash]*types.Receipt),
	}
}

func (b *Backend) ChainID(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(b.ID), nil
}

func (b *Backend) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	b.mu.Lock()
	b.calls = append(b.calls, msg)
	b.mu.Unlock()
	if b.CallFn == nil {
		return nil, nil
	}
	return b.CallFn(msg)
}

func (b *Backend) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	if b.EstimateErr != nil {
		return 0, b.EstimateErr
	}
	return b.Gas, nil
}

func (b *Backend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return uint64(len(b.sent)), nil
}

func (b *Backend) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(b.Tip), nil
}

func (b *Backend) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(1), BaseFee: new(big.Int).Set(b.BaseFee)}, nil
}

func (b *Backend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	receipt := &types.Receipt{Status: types.ReceiptStatusSuccessful}
	if b.ReceiptFn != nil {
		receipt = b.ReceiptFn(tx)
	}
	receipt.TxHash = tx.Hash()
	for i := range receipt.Logs {
		receipt.Logs[i].TxHash = tx.Hash()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, tx)
	b.receipts[tx.Hash()] = receipt
	return nil
}

func (b *Backend) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	receipt, ok := b.receipts[hash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return receipt, nil
}

func (b *Backend) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	return []byte{0x60}, nil
}

func (b *Backend) FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	var out []types.Log
	for _, lg := range b.Logs {
		if query.FromBlock != nil && lg.BlockNumber < query.FromBlock.Uint64() {
			continue
		}
		if query.ToBlock != nil && lg.BlockNumber > query.ToBlock.Uint64() {
			continue
		}
		out = append(out, lg)
	}
	return out, nil
}

// Calls returns every eth_call message seen so far.
func (b *Backend) Calls() []ethereum.CallMsg {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]ethereum.CallMsg(nil), b.calls...)
}

// Sent returns every transaction sent so far.
func (b *Backend) Sent() []*types.Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*types.Transaction(nil), b.sent...)
}

// RevertError is a node error carrying revert data, as go-ethereum's rpc
// client returns for a reverted eth_call.
type RevertError struct {
	Data []byte
}

func (e *RevertError) Error() string { return "execution reverted" }

func (e *RevertError) ErrorCode() int { return 3 }

func (e *RevertError) ErrorData() interface{} { return hexutil.Encode(e.Data) }
