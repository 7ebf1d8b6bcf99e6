package extensions

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"clankerSDK/internal/contracts"
	"clankerSDK/internal/validate"
)

var admin = common.HexToAddress("0x1111111111111111111111111111111111111111")

func baseChain(t *testing.T) contracts.Chain {
	t.Helper()
	chain, err := contracts.ChainByID(contracts.BaseChainID)
	if err != nil {
		t.Fatalf("chain by id: %v", err)
	}
	return chain
}

func TestVaultConfig(t *testing.T) {
	chain := baseChain(t)
	vault := Vault{Percentage: 10, LockupDuration: 30 * 24 * time.Hour, Recipient: admin}
	cfg, err := vault.Config(chain)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.Extension != chain.Vault || cfg.ExtensionBps != 1000 || cfg.MsgValue.Sign() != 0 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	values, err := contracts.VaultExtensionData.Unpack(cfg.ExtensionData)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if values[0].(common.Address) != admin {
		t.Fatalf("unexpected admin %v", values[0])
	}
	if values[1].(*big.Int).Int64() != int64(30*24*60*60) {
		t.Fatalf("unexpected lockup %v", values[1])
	}
}

func TestLockupMinimums(t *testing.T) {
	var errs validate.Errors
	Vault{Percentage: 10, LockupDuration: 6 * 24 * time.Hour, Recipient: admin}.Validate("vault", &errs)
	if !errs.Has("vault.lockupDuration") {
		t.Fatalf("expected vault lockup violation: %+v", errs.Fields)
	}

	errs = validate.Errors{}
	Airdrop{Percentage: 5, MerkleRoot: common.HexToHash("0x01"), LockupDuration: time.Hour, Admin: admin}.Validate("airdrop", &errs)
	if !errs.Has("airdrop.lockupDuration") {
		t.Fatalf("expected airdrop lockup violation: %+v", errs.Fields)
	}

	errs = validate.Errors{}
	Airdrop{Percentage: 5, MerkleRoot: common.HexToHash("0x01"), LockupDuration: 24 * time.Hour, Admin: admin}.Validate("airdrop", &errs)
	if errs.Err() != nil {
		t.Fatalf("unexpected violations: %v", errs.Err())
	}
}

func TestTotalBpsCap(t *testing.T) {
	list := []Extension{
		Vault{Percentage: 50, LockupDuration: MinVaultLockup, Recipient: admin},
		Airdrop{Percentage: 41, MerkleRoot: common.HexToHash("0x01"), LockupDuration: MinAirdropLockup, Admin: admin},
	}
	var errs validate.Errors
	Validate(list, &errs)
	if !errs.Has("extensions") {
		t.Fatalf("expected total bps violation: %+v", errs.Fields)
	}

	list[1] = Airdrop{Percentage: 40, MerkleRoot: common.HexToHash("0x01"), LockupDuration: MinAirdropLockup, Admin: admin}
	errs = validate.Errors{}
	Validate(list, &errs)
	if errs.Err() != nil {
		t.Fatalf("9000 bps should be allowed: %v", errs.Err())
	}
}

func TestConfigsSumsMsgValue(t *testing.T) {
	chain := baseChain(t)
	list := []Extension{
		DevBuy{EthAmount: big.NewInt(1e17), Recipient: admin},
		Vault{Percentage: 10, LockupDuration: MinVaultLockup, Recipient: admin},
	}
	configs, value, err := Configs(list, chain)
	if err != nil {
		t.Fatalf("configs: %v", err)
	}
	if len(configs) != 2 || configs[0].Extension != chain.DevBuy {
		t.Fatalf("unexpected configs: %+v", configs)
	}
	if value.Cmp(big.NewInt(1e17)) != 0 {
		t.Fatalf("unexpected value %s", value)
	}
}

func TestPresaleNeedsAddress(t *testing.T) {
	chain := baseChain(t)
	if _, err := (Presale{Bps: 5000}).Config(chain); err == nil {
		t.Fatalf("expected error without presale address")
	}
	chain.Presale = common.HexToAddress("0x2222222222222222222222222222222222222222")
	cfg, err := Presale{Bps: 5000}.Config(chain)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.ExtensionBps != 5000 || len(cfg.ExtensionData) != 0 {
		t.Fatalf("unexpected presale config: %+v", cfg)
	}
}
