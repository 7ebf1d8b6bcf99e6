package erc20

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"clankerSDK/internal/chain/chaintest"
)

var (
	token   = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa4b07")
	account = common.HexToAddress("0x1111111111111111111111111111111111111111")
)

func respond(t *testing.T, symbolAsBytes32 bool) func(ethereum.CallMsg) ([]byte, error) {
	t.Helper()
	parsed, err := stringABIInstance()
	if err != nil {
		t.Fatalf("abi: %v", err)
	}
	fallback, err := bytes32ABIInstance()
	if err != nil {
		t.Fatalf("abi: %v", err)
	}
	return func(msg ethereum.CallMsg) ([]byte, error) {
		method, err := parsed.MethodById(msg.Data[:4])
		if err != nil {
			return nil, err
		}
		switch method.Name {
		case "decimals":
			return method.Outputs.Pack(uint8(6))
		case "name":
			return method.Outputs.Pack("USD Coin")
		case "symbol":
			if symbolAsBytes32 {
				var raw [32]byte
				copy(raw[:], "USDC")
				return fallback.Methods["symbol"].Outputs.Pack(raw)
			}
			return method.Outputs.Pack("USDC")
		case "totalSupply":
			return method.Outputs.Pack(big.NewInt(1_000_000))
		case "balanceOf":
			return method.Outputs.Pack(big.NewInt(42))
		}
		return nil, errors.New("unexpected method")
	}
}

func TestMetadataIsCached(t *testing.T) {
	backend := chaintest.New(8453)
	backend.CallFn = respond(t, false)
	reader := NewReader(backend, nil)

	meta, err := reader.Metadata(context.Background(), token)
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta.Decimals != 6 || meta.Name != "USD Coin" || meta.Symbol != "USDC" || meta.TotalSupply != "1000000" {
		t.Fatalf("unexpected metadata %+v", meta)
	}
	calls := len(backend.Calls())
	if _, err := reader.Metadata(context.Background(), token); err != nil {
		t.Fatalf("cached metadata: %v", err)
	}
	if len(backend.Calls()) != calls {
		t.Fatalf("expected cached read, got %d calls after %d", len(backend.Calls()), calls)
	}
}

func TestMetadataFallsBackToBytes32(t *testing.T) {
	backend := chaintest.New(8453)
	backend.CallFn = respond(t, true)

	meta, err := NewReader(backend, nil).Metadata(context.Background(), token)
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta.Symbol != "USDC" {
		t.Fatalf("expected bytes32 symbol, got %q", meta.Symbol)
	}
}

func TestBalanceOf(t *testing.T) {
	backend := chaintest.New(8453)
	backend.CallFn = respond(t, false)

	balance, err := NewReader(backend, nil).BalanceOf(context.Background(), token, account)
	if err != nil || balance.Int64() != 42 {
		t.Fatalf("unexpected balance %v %v", balance, err)
	}
	if _, err := NewReader(nil, nil).BalanceOf(context.Background(), token, account); err == nil {
		t.Fatalf("expected missing caller error")
	}
}
