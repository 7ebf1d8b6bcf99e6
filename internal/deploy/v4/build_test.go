package v4

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"clankerSDK/internal/chain"
	"clankerSDK/internal/chain/chaintest"
	"clankerSDK/internal/contracts"
	"clankerSDK/internal/extensions"
	"clankerSDK/internal/fees"
	"clankerSDK/internal/validate"
	"clankerSDK/internal/vanity"
)

var testAdmin = common.HexToAddress("0x1111111111111111111111111111111111111111")

func baseChain(t *testing.T) contracts.Chain {
	t.Helper()
	c, err := contracts.ChainByID(contracts.BaseChainID)
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	return c
}

func testToken() Token {
	return Token{Name: "TheName", Symbol: "SYM", TokenAdmin: testAdmin}
}

func decodeDeploy(t *testing.T, call *chain.CallDescriptor) contracts.DeploymentConfigV4 {
	t.Helper()
	parsed, err := contracts.FactoryV4ABI()
	if err != nil {
		t.Fatalf("abi: %v", err)
	}
	data := call.Data()
	values, err := parsed.Methods["deployToken"].Inputs.Unpack(data[4:])
	if err != nil {
		t.Fatalf("unpack deployToken: %v", err)
	}
	return *abi.ConvertType(values[0], new(contracts.DeploymentConfigV4)).(*contracts.DeploymentConfigV4)
}

func fieldErrors(t *testing.T, err error) *validate.Errors {
	t.Helper()
	var verrs *validate.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected *validate.Errors, got %v", err)
	}
	return verrs
}

func TestBuildStandardDeployment(t *testing.T) {
	c := baseChain(t)
	call, err := Build(context.Background(), testToken(), Options{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if call.To != c.FactoryV4 || call.Method != "deployToken" {
		t.Fatalf("unexpected call target %s %s", call.To.Hex(), call.Method)
	}
	if call.ExpectedAddress != nil {
		t.Fatalf("no predictor was configured, got expected address %s", call.ExpectedAddress.Hex())
	}
	if call.Value == nil || call.Value.Sign() != 0 {
		t.Fatalf("expected zero value, got %v", call.Value)
	}

	cfg := decodeDeploy(t, call)
	if got := cfg.PoolConfig.TickIfToken0IsClanker.Int64(); got != -230400 {
		t.Fatalf("expected tick -230400, got %d", got)
	}
	if cfg.PoolConfig.PairedToken != c.WETH {
		t.Fatalf("expected WETH pair, got %s", cfg.PoolConfig.PairedToken.Hex())
	}
	if cfg.PoolConfig.Hook != c.StaticFeeHook {
		t.Fatalf("expected static fee hook, got %s", cfg.PoolConfig.Hook.Hex())
	}
	if cfg.TokenConfig.Context != `{"interface":"SDK"}` {
		t.Fatalf("unexpected context %s", cfg.TokenConfig.Context)
	}
	if cfg.TokenConfig.OriginatingChainId.Uint64() != contracts.BaseChainID {
		t.Fatalf("unexpected originating chain %v", cfg.TokenConfig.OriginatingChainId)
	}
	locker := cfg.LockerConfig
	if locker.Locker != c.LockerV4 {
		t.Fatalf("unexpected locker %s", locker.Locker.Hex())
	}
	if len(locker.TickLower) != 1 || locker.TickLower[0].Int64() != -230400 || locker.TickUpper[0].Int64() != -120000 {
		t.Fatalf("unexpected positions %v %v", locker.TickLower, locker.TickUpper)
	}
	if len(locker.RewardRecipients) != 1 || locker.RewardRecipients[0] != testAdmin || locker.RewardBps[0] != 10000 {
		t.Fatalf("unexpected rewards %+v", locker)
	}
	if cfg.MevModuleConfig.MevModule != c.MevModule {
		t.Fatalf("unexpected mev module %s", cfg.MevModuleConfig.MevModule.Hex())
	}
}

func TestBuildPresetPairUsesFixedPrice(t *testing.T) {
	degen, ok := contracts.PairedTokenBySymbol("DEGEN")
	if !ok {
		t.Fatalf("DEGEN preset missing")
	}
	tok := testToken()
	tok.Pool = Pool{PairedToken: degen.Address, InitialMarketCap: 5}
	call, err := Build(context.Background(), tok, Options{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	cfg := decodeDeploy(t, call)
	if got := cfg.PoolConfig.TickIfToken0IsClanker.Int64(); got != -119200 {
		t.Fatalf("expected tick -119200, got %d", got)
	}
	if cfg.LockerConfig.TickLower[0].Int64() != -119200 || cfg.LockerConfig.TickUpper[0].Int64() != 887200 {
		t.Fatalf("unexpected default range %v %v", cfg.LockerConfig.TickLower, cfg.LockerConfig.TickUpper)
	}
}

func TestBuildRejectsPositionShares(t *testing.T) {
	tok := testToken()
	tok.Pool.Positions = []Position{{TickLower: -230400, TickUpper: -120000, PositionBps: 5000}}
	_, err := Build(context.Background(), tok, Options{})
	verrs := fieldErrors(t, err)
	if !verrs.Has("pool.positions") || !strings.Contains(err.Error(), "position bps must sum to 10000") {
		t.Fatalf("unexpected errors %v", err)
	}
}

func TestBuildRequiresTouchingPosition(t *testing.T) {
	tok := testToken()
	tok.Pool.Positions = []Position{{TickLower: -230200, TickUpper: -120000, PositionBps: 10000}}
	_, err := Build(context.Background(), tok, Options{})
	if err == nil || !strings.Contains(err.Error(), "Starting price must have a lower tick position that touches it") {
		t.Fatalf("expected touch error, got %v", err)
	}
}

func TestBuildCollectsEveryViolation(t *testing.T) {
	tok := Token{}
	tok.Rewards = []Reward{{Admin: testAdmin, Recipient: testAdmin, Bps: 4000}}
	tok.Fees = fees.Static{ClankerFeeBps: 2500, PairedFeeBps: 100}
	_, err := Build(context.Background(), tok, Options{})
	verrs := fieldErrors(t, err)
	for _, field := range []string{"name", "tokenAdmin", "rewards"} {
		if !verrs.Has(field) {
			t.Fatalf("missing violation for %s in %v", field, err)
		}
	}
	if len(verrs.Fields) < 4 {
		t.Fatalf("expected at least 4 violations, got %v", verrs.Fields)
	}
}

func TestBuildRejectsOutOfRangeDynamicFee(t *testing.T) {
	tok := testToken()
	dynamic := fees.DefaultDynamic()
	dynamic.ResetTickFilter = 1 << 24
	dynamic.DecayFilterBps = 1 << 25
	tok.Fees = dynamic
	_, err := Build(context.Background(), tok, Options{})
	verrs := fieldErrors(t, err)
	if !verrs.Has("fees.resetTickFilter") || !verrs.Has("fees.decayFilterBps") {
		t.Fatalf("unexpected errors %v", err)
	}
}

func TestBuildValidatesBeforeNetwork(t *testing.T) {
	backend := chaintest.New(contracts.BaseChainID)
	tok := testToken()
	tok.Name = ""
	tok.Vanity = true
	if _, err := Build(context.Background(), tok, Options{Caller: backend}); err == nil {
		t.Fatalf("expected validation error")
	}
	if len(backend.Calls()) != 0 {
		t.Fatalf("expected no eth_call, got %d", len(backend.Calls()))
	}
}

func TestBuildExtensionValue(t *testing.T) {
	c := baseChain(t)
	tok := testToken()
	tok.Vault = &extensions.Vault{Percentage: 10, LockupDuration: 30 * 24 * time.Hour}
	tok.DevBuy = &extensions.DevBuy{EthAmount: big.NewInt(1e17)}
	call, err := Build(context.Background(), tok, Options{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if call.Value.Cmp(big.NewInt(1e17)) != 0 {
		t.Fatalf("expected value 1e17, got %v", call.Value)
	}
	cfg := decodeDeploy(t, call)
	if len(cfg.ExtensionConfigs) != 2 {
		t.Fatalf("expected 2 extensions, got %d", len(cfg.ExtensionConfigs))
	}
	vault, devBuy := cfg.ExtensionConfigs[0], cfg.ExtensionConfigs[1]
	if vault.Extension != c.Vault || vault.ExtensionBps != 1000 || vault.MsgValue.Sign() != 0 {
		t.Fatalf("unexpected vault config %+v", vault)
	}
	if devBuy.Extension != c.DevBuy || devBuy.MsgValue.Cmp(big.NewInt(1e17)) != 0 {
		t.Fatalf("unexpected dev buy config %+v", devBuy)
	}
}

func TestBuildExtensionShareLimit(t *testing.T) {
	tok := testToken()
	tok.Vault = &extensions.Vault{Percentage: 60, LockupDuration: 30 * 24 * time.Hour}
	tok.Airdrop = &extensions.Airdrop{MerkleRoot: common.HexToHash("0x01"), Percentage: 40, LockupDuration: 48 * time.Hour}
	_, err := Build(context.Background(), tok, Options{})
	if !fieldErrors(t, err).Has("extensions") {
		t.Fatalf("expected extensions violation, got %v", err)
	}
}

func TestPrepareVanityWithCreationCode(t *testing.T) {
	c := baseChain(t)
	code := common.FromHex("0x6080604052348015600f57600080fd5b50")
	tok := testToken()
	tok.Vanity = true
	prepared, err := Prepare(context.Background(), tok, Options{TokenCreationCode: code, Workers: 4})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if prepared.ExpectedAddress == nil || !strings.HasSuffix(strings.ToLower(prepared.ExpectedAddress.Hex()), DefaultVanitySuffix) {
		t.Fatalf("unexpected expected address %v", prepared.ExpectedAddress)
	}

	cfg := prepared.Config.TokenConfig
	predictor, err := vanity.NewCreate2Predictor(c.FactoryV4, code, vanity.TokenArgs{
		Name:               cfg.Name,
		Symbol:             cfg.Symbol,
		Admin:              cfg.TokenAdmin,
		Image:              cfg.Image,
		Metadata:           cfg.Metadata,
		Context:            cfg.Context,
		OriginatingChainID: cfg.OriginatingChainId,
	})
	if err != nil {
		t.Fatalf("predictor: %v", err)
	}
	addr, err := predictor.Predict(context.Background(), prepared.Salt)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if addr != *prepared.ExpectedAddress {
		t.Fatalf("predicted %s != %s", addr.Hex(), prepared.ExpectedAddress.Hex())
	}

	call, err := prepared.Call()
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if decodeDeploy(t, call).TokenConfig.Salt != prepared.Salt {
		t.Fatalf("call does not carry the vanity salt")
	}
	if call.ExpectedAddress == nil || *call.ExpectedAddress != addr {
		t.Fatalf("call expected address not set")
	}
}

func TestPrepareSimulatesWithCaller(t *testing.T) {
	want := common.HexToAddress("0x00000000000000000000000000000000deadbeef")
	backend := chaintest.New(contracts.BaseChainID)
	backend.CallFn = func(msg ethereum.CallMsg) ([]byte, error) {
		return common.LeftPadBytes(want.Bytes(), 32), nil
	}
	call, err := Build(context.Background(), testToken(), Options{Caller: backend})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if call.ExpectedAddress == nil || *call.ExpectedAddress != want {
		t.Fatalf("unexpected expected address %v", call.ExpectedAddress)
	}
	calls := backend.Calls()
	if len(calls) != 1 || calls[0].From != testAdmin {
		t.Fatalf("expected one call from the admin, got %+v", calls)
	}
}

func TestBuildZeroSupply(t *testing.T) {
	call, err := BuildZeroSupply(context.Background(), testToken(), Options{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if call.Method != "deployTokenZeroSupply" {
		t.Fatalf("unexpected method %s", call.Method)
	}
	if _, err := BuildZeroSupply(context.Background(), Token{Name: "A", Symbol: "B"}, Options{}); err == nil {
		t.Fatalf("expected admin error")
	}
}
