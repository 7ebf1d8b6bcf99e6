// Package erc20 reads token metadata and balances. Paired tokens without a
// preset get their decimals from here.
package erc20

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"clankerSDK/internal/chain"
)

// Metadata is the immutable part of a token.
type Metadata struct {
	Address     string `json:"address" yaml:"address"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Symbol      string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Decimals    uint8  `json:"decimals" yaml:"decimals"`
	TotalSupply string `json:"totalSupply,omitempty" yaml:"totalSupply,omitempty"`
}

// Reader caches Metadata by token address.
type Reader struct {
	caller chain.Caller
	logger *zap.Logger

	mu    sync.RWMutex
	cache map[common.Address]Metadata
}

func NewReader(caller chain.Caller, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{caller: caller, logger: logger, cache: make(map[common.Address]Metadata)}
}

// Metadata loads decimals, name, symbol and total supply. Only decimals
// is required; the other fields stay empty when their call fails.
func (r *Reader) Metadata(ctx context.Context, token common.Address) (Metadata, error) {
	r.mu.RLock()
	meta, ok := r.cache[token]
	r.mu.RUnlock()
	if ok {
		return meta, nil
	}

	meta = Metadata{Address: token.Hex()}
	parsed, err := stringABIInstance()
	if err != nil {
		return meta, fmt.Errorf("parse erc20 abi: %w", err)
	}

	values, err := r.call(ctx, token, parsed, "decimals")
	if err != nil {
		return meta, err
	}
	decimals, ok := values[0].(uint8)
	if !ok {
		return meta, fmt.Errorf("decimals: unexpected type %T", values[0])
	}
	meta.Decimals = decimals

	meta.Name = r.text(ctx, token, "name")
	meta.Symbol = r.text(ctx, token, "symbol")

	if values, err := r.call(ctx, token, parsed, "totalSupply"); err == nil {
		if supply, ok := values[0].(*big.Int); ok {
			meta.TotalSupply = supply.String()
		}
	} else {
		r.logger.Debug("totalSupply call failed", zap.String("token", token.Hex()), zap.Error(err))
	}

	r.mu.Lock()
	r.cache[token] = meta
	r.mu.Unlock()
	return meta, nil
}

// BalanceOf is never cached.
func (r *Reader) BalanceOf(ctx context.Context, token, account common.Address) (*big.Int, error) {
	parsed, err := stringABIInstance()
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}
	values, err := r.call(ctx, token, parsed, "balanceOf", account)
	if err != nil {
		return nil, err
	}
	balance, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("balanceOf: unexpected type %T", values[0])
	}
	return balance, nil
}

func (r *Reader) text(ctx context.Context, token common.Address, method string) string {
	parsed, err := stringABIInstance()
	if err != nil {
		return ""
	}
	values, err := r.call(ctx, token, parsed, method)
	if err == nil {
		if s, ok := values[0].(string); ok {
			return s
		}
	}
	if fallback, ferr := bytes32ABIInstance(); ferr == nil {
		if values, berr := r.call(ctx, token, fallback, method); berr == nil {
			if raw, ok := values[0].([32]byte); ok {
				return string(bytes.TrimRight(raw[:], "\x00"))
			}
		}
	}
	r.logger.Debug(method+" call failed", zap.String("token", token.Hex()), zap.Error(err))
	return ""
}

func (r *Reader) call(ctx context.Context, token common.Address, parsed abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	if r.caller == nil {
		return nil, fmt.Errorf("%s: no caller configured", method)
	}
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	resp, err := r.caller.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := parsed.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("unpack %s: empty result", method)
	}
	return values, nil
}
