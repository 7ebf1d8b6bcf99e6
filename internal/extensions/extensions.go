// Package extensions builds the v4 factory extension entries.
package extensions

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"clankerSDK/internal/contracts"
	"clankerSDK/internal/validate"
)

const (
	// MaxTotalBps caps the supply all extensions may take together.
	MaxTotalBps = 9000

	MinVaultLockup   = 7 * 24 * time.Hour
	MinAirdropLockup = 24 * time.Hour
)

// Extension is one of Vault, Airdrop, DevBuy or Presale.
type Extension interface {
	Kind() string
	// Config returns the factory ExtensionConfig entry for chain.
	Config(chain contracts.Chain) (contracts.ExtensionConfig, error)
	Validate(field string, errs *validate.Errors)
}

// Vault locks a share of supply for an admin with optional linear vesting.
type Vault struct {
	Percentage      uint16         `json:"percentage" yaml:"percentage"`
	LockupDuration  time.Duration  `json:"lockupDuration" yaml:"lockupDuration"`
	VestingDuration time.Duration  `json:"vestingDuration" yaml:"vestingDuration"`
	Recipient       common.Address `json:"recipient" yaml:"recipient"`
}

func (Vault) Kind() string { return "vault" }

func (v Vault) Validate(field string, errs *validate.Errors) {
	if v.Percentage == 0 || v.Percentage > 90 {
		errs.Add(field+".percentage", "must be between 1 and 90")
	}
	if v.LockupDuration < MinVaultLockup {
		errs.Add(field+".lockupDuration", "must be at least 7 days")
	}
	if v.VestingDuration < 0 {
		errs.Add(field+".vestingDuration", "must not be negative")
	}
	if v.Recipient == (common.Address{}) {
		errs.Add(field+".recipient", "is required")
	}
}

func (v Vault) Config(chain contracts.Chain) (contracts.ExtensionConfig, error) {
	data, err := contracts.VaultExtensionData.Pack(v.Recipient, seconds(v.LockupDuration), seconds(v.VestingDuration))
	if err != nil {
		return contracts.ExtensionConfig{}, fmt.Errorf("pack vault data: %w", err)
	}
	return contracts.ExtensionConfig{
		Extension:     chain.Vault,
		MsgValue:      new(big.Int),
		ExtensionBps:  v.Percentage * 100,
		ExtensionData: data,
	}, nil
}

// Airdrop reserves a share of supply claimable against a merkle root.
type Airdrop struct {
	MerkleRoot      common.Hash    `json:"merkleRoot" yaml:"merkleRoot"`
	Percentage      uint16         `json:"percentage" yaml:"percentage"`
	LockupDuration  time.Duration  `json:"lockupDuration" yaml:"lockupDuration"`
	VestingDuration time.Duration  `json:"vestingDuration" yaml:"vestingDuration"`
	Admin           common.Address `json:"admin" yaml:"admin"`
}

func (Airdrop) Kind() string { return "airdrop" }

func (a Airdrop) Validate(field string, errs *validate.Errors) {
	if a.Percentage == 0 || a.Percentage > 90 {
		errs.Add(field+".percentage", "must be between 1 and 90")
	}
	if a.MerkleRoot == (common.Hash{}) {
		errs.Add(field+".merkleRoot", "is required")
	}
	if a.LockupDuration < MinAirdropLockup {
		errs.Add(field+".lockupDuration", "must be at least 1 day")
	}
	if a.VestingDuration < 0 {
		errs.Add(field+".vestingDuration", "must not be negative")
	}
	if a.Admin == (common.Address{}) {
		errs.Add(field+".admin", "is required")
	}
}

func (a Airdrop) Config(chain contracts.Chain) (contracts.ExtensionConfig, error) {
	data, err := contracts.AirdropExtensionData.Pack(a.Admin, [32]byte(a.MerkleRoot), seconds(a.LockupDuration), seconds(a.VestingDuration))
	if err != nil {
		return contracts.ExtensionConfig{}, fmt.Errorf("pack airdrop data: %w", err)
	}
	return contracts.ExtensionConfig{
		Extension:     chain.Airdrop,
		MsgValue:      new(big.Int),
		ExtensionBps:  a.Percentage * 100,
		ExtensionData: data,
	}, nil
}

// DevBuy swaps ETH for the new token in the deployment transaction. When the
// token is not paired with WETH, PoolKey names the WETH pool used to buy the
// paired token first.
type DevBuy struct {
	EthAmount    *big.Int          `json:"ethAmount" yaml:"ethAmount"`
	PoolKey      contracts.PoolKey `json:"poolKey" yaml:"poolKey"`
	AmountOutMin *big.Int          `json:"amountOutMin" yaml:"amountOutMin"`
	Recipient    common.Address    `json:"recipient" yaml:"recipient"`
}

func (DevBuy) Kind() string { return "devBuy" }

func (d DevBuy) Validate(field string, errs *validate.Errors) {
	if d.EthAmount == nil || d.EthAmount.Sign() <= 0 {
		errs.Add(field+".ethAmount", "must be positive")
	}
	if d.Recipient == (common.Address{}) {
		errs.Add(field+".recipient", "is required")
	}
}

func (d DevBuy) Config(chain contracts.Chain) (contracts.ExtensionConfig, error) {
	if d.EthAmount == nil {
		return contracts.ExtensionConfig{}, fmt.Errorf("dev buy eth amount is required")
	}
	key := d.PoolKey
	if key.Fee == nil {
		key.Fee = new(big.Int)
	}
	if key.TickSpacing == nil {
		key.TickSpacing = new(big.Int)
	}
	minOut := d.AmountOutMin
	if minOut == nil {
		minOut = new(big.Int)
	}
	data, err := contracts.DevBuyExtensionData.Pack(key, minOut, d.Recipient)
	if err != nil {
		return contracts.ExtensionConfig{}, fmt.Errorf("pack dev buy data: %w", err)
	}
	return contracts.ExtensionConfig{
		Extension:     chain.DevBuy,
		MsgValue:      new(big.Int).Set(d.EthAmount),
		ExtensionBps:  0,
		ExtensionData: data,
	}, nil
}

// Presale reserves supply for presale buyers. The presale contract fills in
// the extension data when it ends the presale.
type Presale struct {
	Bps uint16 `json:"bps" yaml:"bps"`
}

func (Presale) Kind() string { return "presale" }

func (p Presale) Validate(field string, errs *validate.Errors) {
	if p.Bps == 0 || p.Bps > MaxTotalBps {
		errs.Add(field+".bps", fmt.Sprintf("must be between 1 and %d", MaxTotalBps))
	}
}

func (p Presale) Config(chain contracts.Chain) (contracts.ExtensionConfig, error) {
	if chain.Presale == (common.Address{}) {
		return contracts.ExtensionConfig{}, fmt.Errorf("presale extension not configured for chain %d", chain.ID)
	}
	return contracts.ExtensionConfig{
		Extension:     chain.Presale,
		MsgValue:      new(big.Int),
		ExtensionBps:  p.Bps,
		ExtensionData: []byte{},
	}, nil
}

// Validate checks each extension and the combined supply share.
func Validate(list []Extension, errs *validate.Errors) {
	total := 0
	for i, ext := range list {
		ext.Validate(fmt.Sprintf("extensions[%d].%s", i, ext.Kind()), errs)
		total += bps(ext)
	}
	if total > MaxTotalBps {
		errs.Add("extensions", fmt.Sprintf("total extension bps %d exceeds %d", total, MaxTotalBps))
	}
}

// Configs builds the ExtensionConfig list and the total msg.value it needs.
func Configs(list []Extension, chain contracts.Chain) ([]contracts.ExtensionConfig, *big.Int, error) {
	configs := make([]contracts.ExtensionConfig, 0, len(list))
	value := new(big.Int)
	for _, ext := range list {
		cfg, err := ext.Config(chain)
		if err != nil {
			return nil, nil, err
		}
		configs = append(configs, cfg)
		value.Add(value, cfg.MsgValue)
	}
	return configs, value, nil
}

func bps(ext Extension) int {
	switch e := ext.(type) {
	case Vault:
		return int(e.Percentage) * 100
	case Airdrop:
		return int(e.Percentage) * 100
	case Presale:
		return int(e.Bps)
	default:
		return 0
	}
}

func seconds(d time.Duration) *big.Int {
	return big.NewInt(int64(d / time.Second))
}
