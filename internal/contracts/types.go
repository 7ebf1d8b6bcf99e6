package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Field names mirror the Solidity struct members; go-ethereum maps tuple
// components onto them by camel-cased name when packing.

// TokenConfigV4 is the v4 factory TokenConfig struct.
type TokenConfigV4 struct {
	TokenAdmin         common.Address
	Name               string
	Symbol             string
	Salt               [32]byte
	Image              string
	Metadata           string
	Context            string
	OriginatingChainId *big.Int
}

// PoolConfigV4 is the v4 factory PoolConfig struct.
type PoolConfigV4 struct {
	Hook                  common.Address
	PairedToken           common.Address
	TickIfToken0IsClanker *big.Int
	TickSpacing           *big.Int
	PoolData              []byte
}

// LockerConfigV4 is the v4 factory LockerConfig struct.
type LockerConfigV4 struct {
	Locker           common.Address
	RewardAdmins     []common.Address
	RewardRecipients []common.Address
	RewardBps        []uint16
	TickLower        []*big.Int
	TickUpper        []*big.Int
	PositionBps      []uint16
	LockerData       []byte
}

// MevModuleConfig is the v4 factory MevModuleConfig struct.
type MevModuleConfig struct {
	MevModule     common.Address
	MevModuleData []byte
}

// ExtensionConfig is one entry of the v4 extension list.
type ExtensionConfig struct {
	Extension     common.Address
	MsgValue      *big.Int
	ExtensionBps  uint16
	ExtensionData []byte
}

// DeploymentConfigV4 is the argument of the v4 deployToken call.
type DeploymentConfigV4 struct {
	TokenConfig      TokenConfigV4
	PoolConfig       PoolConfigV4
	LockerConfig     LockerConfigV4
	MevModuleConfig  MevModuleConfig
	ExtensionConfigs []ExtensionConfig
}

// TokenConfigV3 is the v3.1 factory TokenConfig struct.
type TokenConfigV3 struct {
	Name               string
	Symbol             string
	Salt               [32]byte
	Image              string
	Metadata           string
	Context            string
	OriginatingChainId *big.Int
}

// VaultConfigV3 is the v3.1 factory VaultConfig struct.
type VaultConfigV3 struct {
	VaultPercentage uint8
	VaultDuration   *big.Int
}

// PoolConfigV3 is the v3.1 factory PoolConfig struct.
type PoolConfigV3 struct {
	PairedToken            common.Address
	TickIfToken0IsNewToken *big.Int
}

// InitialBuyConfigV3 is the v3.1 factory InitialBuyConfig struct.
type InitialBuyConfigV3 struct {
	PairedTokenPoolFee              *big.Int
	PairedTokenSwapAmountOutMinimum *big.Int
}

// RewardsConfigV3 is the v3.1 factory RewardsConfig struct.
type RewardsConfigV3 struct {
	CreatorReward            *big.Int
	CreatorAdmin             common.Address
	CreatorRewardRecipient   common.Address
	InterfaceAdmin           common.Address
	InterfaceRewardRecipient common.Address
}

// DeploymentConfigV3 is the argument of the v3.1 deployToken call.
type DeploymentConfigV3 struct {
	TokenConfig      TokenConfigV3
	VaultConfig      VaultConfigV3
	PoolConfig       PoolConfigV3
	InitialBuyConfig InitialBuyConfigV3
	RewardsConfig    RewardsConfigV3
}

// PoolKey is the Uniswap v4 pool key used by the dev-buy extension.
type PoolKey struct {
	Currency0   common.Address
	Currency1   common.Address
	Fee         *big.Int
	TickSpacing *big.Int
	Hooks       common.Address
}

// TokenDeploymentInfo is returned by the v4 factory tokenDeploymentInfo view.
type TokenDeploymentInfo struct {
	Token      common.Address
	Hook       common.Address
	Locker     common.Address
	Extensions []common.Address
}

// DeploymentInfoV3 is returned by the v3.1 factory deploymentInfoForToken view.
type DeploymentInfoV3 struct {
	Token      common.Address
	PositionId *big.Int
	Locker     common.Address
}

// TokenRewardInfo is returned by the v4 locker tokenRewards view.
type TokenRewardInfo struct {
	Token            common.Address
	PositionId       *big.Int
	NumPositions     *big.Int
	RewardBps        []uint16
	RewardAdmins     []common.Address
	RewardRecipients []common.Address
}

// PresaleInfo is returned by the presale getPresale view.
type PresaleInfo struct {
	Status         uint8
	PresaleOwner   common.Address
	Recipient      common.Address
	MinEthGoal     *big.Int
	MaxEthGoal     *big.Int
	EndTime        *big.Int
	EthRaised      *big.Int
	DeployedToken  common.Address
	TokenSupply    *big.Int
	LockupEndTime  *big.Int
	VestingEndTime *big.Int
}
