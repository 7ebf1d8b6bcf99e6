package v3

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"clankerSDK/internal/chain"
	"clankerSDK/internal/chain/chaintest"
	"clankerSDK/internal/contracts"
	"clankerSDK/internal/ticks"
	"clankerSDK/internal/validate"
)

var creator = common.HexToAddress("0x2222222222222222222222222222222222222222")

func decode(t *testing.T, call *chain.CallDescriptor) contracts.DeploymentConfigV3 {
	t.Helper()
	parsed, err := contracts.FactoryV3ABI()
	if err != nil {
		t.Fatalf("abi: %v", err)
	}
	values, err := parsed.Methods["deployToken"].Inputs.Unpack(call.Data()[4:])
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	return *abi.ConvertType(values[0], new(contracts.DeploymentConfigV3)).(*contracts.DeploymentConfigV3)
}

func testToken() Token {
	return Token{Name: "TheName", Symbol: "SYM", Rewards: Rewards{CreatorAdmin: creator}}
}

func TestBuildDefaults(t *testing.T) {
	call, err := Build(context.Background(), testToken(), Options{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	base, _ := contracts.ChainByID(contracts.BaseChainID)
	if call.To != base.FactoryV3 {
		t.Fatalf("unexpected factory %s", call.To.Hex())
	}
	cfg := decode(t, call)
	if got := cfg.PoolConfig.TickIfToken0IsNewToken.Int64(); got != -230400 {
		t.Fatalf("expected tick -230400, got %d", got)
	}
	if cfg.PoolConfig.PairedToken != base.WETH {
		t.Fatalf("expected WETH pair")
	}
	if cfg.InitialBuyConfig.PairedTokenPoolFee.Int64() != 10000 {
		t.Fatalf("unexpected pool fee %v", cfg.InitialBuyConfig.PairedTokenPoolFee)
	}
	rewards := cfg.RewardsConfig
	if rewards.CreatorReward.Int64() != 40 {
		t.Fatalf("unexpected creator reward %v", rewards.CreatorReward)
	}
	if rewards.CreatorRewardRecipient != creator || rewards.InterfaceAdmin != creator || rewards.InterfaceRewardRecipient != creator {
		t.Fatalf("creator defaults not applied: %+v", rewards)
	}
	if cfg.VaultConfig.VaultPercentage != 0 || call.Value.Sign() != 0 {
		t.Fatalf("unexpected vault or value")
	}
}

func TestBuildDegenPair(t *testing.T) {
	degen, _ := contracts.PairedTokenBySymbol("DEGEN")
	tok := testToken()
	tok.Pool = Pool{PairedToken: degen.Address, InitialMarketCap: 5}
	call, err := Build(context.Background(), tok, Options{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := decode(t, call).PoolConfig.TickIfToken0IsNewToken.Int64(); got != -119200 {
		t.Fatalf("expected tick -119200, got %d", got)
	}
}

func TestBuildValidation(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*Token)
		field string
	}{
		{"vault share", func(tok *Token) { tok.Vault = Vault{Percentage: 31, Duration: 31 * 24 * time.Hour} }, "vault.percentage"},
		{"vault duration", func(tok *Token) { tok.Vault = Vault{Percentage: 10, Duration: 10 * 24 * time.Hour} }, "vault.duration"},
		{"creator reward", func(tok *Token) { tok.Rewards.CreatorReward = 81 }, "rewards.creatorReward"},
		{"creator admin", func(tok *Token) { tok.Rewards = Rewards{} }, "rewards.creatorAdmin"},
		{"name", func(tok *Token) { tok.Symbol = "" }, "name"},
	}
	for _, tc := range cases {
		tok := testToken()
		tc.edit(&tok)
		_, err := Build(context.Background(), tok, Options{})
		var verrs *validate.Errors
		if !errors.As(err, &verrs) || !verrs.Has(tc.field) {
			t.Fatalf("%s: expected violation on %s, got %v", tc.name, tc.field, err)
		}
	}
}

func TestBuildDevBuyValue(t *testing.T) {
	tok := testToken()
	tok.Vault = Vault{Percentage: 30, Duration: 30 * 24 * time.Hour}
	tok.DevBuy = &DevBuy{EthAmount: big.NewInt(5e16), PoolFee: 3000}
	call, err := Build(context.Background(), tok, Options{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if call.Value.Cmp(big.NewInt(5e16)) != 0 {
		t.Fatalf("unexpected value %v", call.Value)
	}
	cfg := decode(t, call)
	if cfg.InitialBuyConfig.PairedTokenPoolFee.Int64() != 3000 {
		t.Fatalf("unexpected pool fee %v", cfg.InitialBuyConfig.PairedTokenPoolFee)
	}
	if cfg.VaultConfig.VaultDuration.Int64() != 30*24*3600 {
		t.Fatalf("unexpected vault duration %v", cfg.VaultConfig.VaultDuration)
	}
}

func TestBuildCustomPairReadsDecimals(t *testing.T) {
	pair := common.HexToAddress("0x3333333333333333333333333333333333333333")
	predicted := common.HexToAddress("0x00000000000000000000000000000000000b0b07")
	base, _ := contracts.ChainByID(contracts.BaseChainID)

	backend := chaintest.New(contracts.BaseChainID)
	backend.CallFn = func(msg ethereum.CallMsg) ([]byte, error) {
		if *msg.To == pair {
			return common.LeftPadBytes([]byte{6}, 32), nil
		}
		if *msg.To == base.FactoryV3 {
			return append(common.LeftPadBytes(predicted.Bytes(), 32), common.LeftPadBytes([]byte{1}, 32)...), nil
		}
		return nil, errors.New("unexpected call")
	}

	tok := testToken()
	tok.Pool = Pool{PairedToken: pair, InitialMarketCap: 10}
	call, err := Build(context.Background(), tok, Options{Caller: backend})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want, err := ticks.TickForCustomPair(10, 6)
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if got := decode(t, call).PoolConfig.TickIfToken0IsNewToken.Int64(); got != int64(want) {
		t.Fatalf("expected tick %d, got %d", want, got)
	}
	if call.ExpectedAddress == nil || *call.ExpectedAddress != predicted {
		t.Fatalf("unexpected expected address %v", call.ExpectedAddress)
	}
	if calls := backend.Calls(); len(calls) != 2 || calls[1].From != creator {
		t.Fatalf("unexpected calls %+v", calls)
	}
}
