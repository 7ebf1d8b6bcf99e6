package deploy

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"clankerSDK/internal/chain"
	"clankerSDK/internal/chain/chaintest"
	"clankerSDK/internal/contracts"
	v4 "clankerSDK/internal/deploy/v4"
	"clankerSDK/internal/events"
)

var (
	admin     = common.HexToAddress("0x1111111111111111111111111111111111111111")
	predicted = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa4b07")
)

func tokenCreatedLog(t *testing.T, factory, token common.Address) *types.Log {
	t.Helper()
	parsed, err := contracts.FactoryV4ABI()
	if err != nil {
		t.Fatalf("abi: %v", err)
	}
	event := parsed.Events["TokenCreated"]
	data, err := event.Inputs.NonIndexed().Pack(
		admin, "", "TheName", "SYM", "", `{"interface":"SDK"}`, big.NewInt(-230400),
		common.Address{}, [32]byte{}, common.Address{}, common.Address{}, common.Address{},
		new(big.Int), []common.Address{},
	)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	return &types.Log{
		Address: factory,
		Topics: []common.Hash{
			event.ID,
			common.BytesToHash(token.Bytes()),
			common.BytesToHash(admin.Bytes()),
		},
		Data: data,
	}
}

func setup(t *testing.T, logToken common.Address) (*chaintest.Backend, *Deployer, *chain.CallDescriptor) {
	t.Helper()
	call, err := v4.Build(context.Background(), v4.Token{Name: "TheName", Symbol: "SYM", TokenAdmin: admin}, v4.Options{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	backend := chaintest.New(contracts.BaseChainID)
	backend.CallFn = func(msg ethereum.CallMsg) ([]byte, error) {
		return common.LeftPadBytes(predicted.Bytes(), 32), nil
	}
	backend.ReceiptFn = func(tx *types.Transaction) *types.Receipt {
		other := &types.Log{Address: common.HexToAddress("0x01"), Topics: []common.Hash{{}}}
		return &types.Receipt{
			Status: types.ReceiptStatusSuccessful,
			Logs:   []*types.Log{other, tokenCreatedLog(t, call.To, logToken)},
		}
	}
	key, _ := crypto.GenerateKey()
	tx, err := chain.NewKeyedTransactor(backend, common.Bytes2Hex(crypto.FromECDSA(key)), big.NewInt(8453), nil)
	if err != nil {
		t.Fatalf("transactor: %v", err)
	}
	return backend, NewDeployer(tx, nil), call
}

func TestDeploySimulatesThenConfirms(t *testing.T) {
	backend, deployer, call := setup(t, predicted)
	result, err := deployer.Deploy(context.Background(), call)
	if err != nil {
		t.Fatalf("deploy: %v", err)
	}
	if result.TokenAddress != predicted || result.ExpectedAddress != predicted {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Event.Version != events.VersionV4 || result.Event.Symbol != "SYM" {
		t.Fatalf("unexpected event %+v", result.Event)
	}
	if len(backend.Calls()) != 1 || len(backend.Sent()) != 1 {
		t.Fatalf("expected one simulation and one tx, got %d and %d", len(backend.Calls()), len(backend.Sent()))
	}
	if result.TxHash != backend.Sent()[0].Hash() {
		t.Fatalf("tx hash mismatch")
	}
}

func TestDeployUsesExpectedAddress(t *testing.T) {
	backend, deployer, call := setup(t, predicted)
	if _, err := deployer.Deploy(context.Background(), call.WithExpectedAddress(predicted)); err != nil {
		t.Fatalf("deploy: %v", err)
	}
	if len(backend.Calls()) != 0 {
		t.Fatalf("expected no simulation, got %d", len(backend.Calls()))
	}
}

func TestDeployAddressMismatch(t *testing.T) {
	_, deployer, call := setup(t, common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"))
	result, err := deployer.Deploy(context.Background(), call)
	if !errors.Is(err, ErrAddressMismatch) {
		t.Fatalf("expected ErrAddressMismatch, got %v", err)
	}
	if result == nil || result.Receipt == nil {
		t.Fatalf("mismatch should still return the receipt")
	}
}

func TestDeployMissingEvent(t *testing.T) {
	backend, deployer, call := setup(t, predicted)
	backend.ReceiptFn = nil
	_, err := deployer.Deploy(context.Background(), call)
	if !errors.Is(err, events.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestDeploySimulationRevertSendsNothing(t *testing.T) {
	backend, deployer, call := setup(t, predicted)
	backend.CallFn = func(msg ethereum.CallMsg) ([]byte, error) {
		return nil, errors.New("execution reverted: Deprecated")
	}
	_, err := deployer.Deploy(context.Background(), call)
	var callErr *chain.CallError
	if !errors.As(err, &callErr) || callErr.Reason != "Deprecated" {
		t.Fatalf("expected decoded call error, got %v", err)
	}
	if len(backend.Sent()) != 0 {
		t.Fatalf("no transaction should be sent")
	}
}
