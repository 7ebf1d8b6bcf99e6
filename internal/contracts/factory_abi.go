package contracts

const tokenConfigV4Components = `[
  {"name": "tokenAdmin", "type": "address"},
  {"name": "name", "type": "string"},
  {"name": "symbol", "type": "string"},
  {"name": "salt", "type": "bytes32"},
  {"name": "image", "type": "string"},
  {"name": "metadata", "type": "string"},
  {"name": "context", "type": "string"},
  {"name": "originatingChainId", "type": "uint256"}
]`

const poolConfigV4Components = `[
  {"name": "hook", "type": "address"},
  {"name": "pairedToken", "type": "address"},
  {"name": "tickIfToken0IsClanker", "type": "int24"},
  {"name": "tickSpacing", "type": "int24"},
  {"name": "poolData", "type": "bytes"}
]`

const lockerConfigV4Components = `[
  {"name": "locker", "type": "address"},
  {"name": "rewardAdmins", "type": "address[]"},
  {"name": "rewardRecipients", "type": "address[]"},
  {"name": "rewardBps", "type": "uint16[]"},
  {"name": "tickLower", "type": "int24[]"},
  {"name": "tickUpper", "type": "int24[]"},
  {"name": "positionBps", "type": "uint16[]"},
  {"name": "lockerData", "type": "bytes"}
]`

const mevModuleConfigComponents = `[
  {"name": "mevModule", "type": "address"},
  {"name": "mevModuleData", "type": "bytes"}
]`

const extensionConfigComponents = `[
  {"name": "extension", "type": "address"},
  {"name": "msgValue", "type": "uint256"},
  {"name": "extensionBps", "type": "uint16"},
  {"name": "extensionData", "type": "bytes"}
]`

const deploymentConfigV4Components = `[
  {"name": "tokenConfig", "type": "tuple", "components": ` + tokenConfigV4Components + `},
  {"name": "poolConfig", "type": "tuple", "components": ` + poolConfigV4Components + `},
  {"name": "lockerConfig", "type": "tuple", "components": ` + lockerConfigV4Components + `},
  {"name": "mevModuleConfig", "type": "tuple", "components": ` + mevModuleConfigComponents + `},
  {"name": "extensionConfigs", "type": "tuple[]", "components": ` + extensionConfigComponents + `}
]`

const factoryV4ABIJSON = `[
  {
    "type": "function",
    "name": "deployToken",
    "stateMutability": "payable",
    "inputs": [{"name": "deploymentConfig", "type": "tuple", "components": ` + deploymentConfigV4Components + `}],
    "outputs": [{"name": "tokenAddress", "type": "address"}]
  },
  {
    "type": "function",
    "name": "deployTokenZeroSupply",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "tokenConfig", "type": "tuple", "components": ` + tokenConfigV4Components + `}],
    "outputs": [{"name": "tokenAddress", "type": "address"}]
  },
  {
    "type": "function",
    "name": "claimTeamFees",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "token", "type": "address"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "setAdmin",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "admin", "type": "address"}, {"name": "enabled", "type": "bool"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "setDeprecated",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "deprecated_", "type": "bool"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "setHook",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "hook", "type": "address"}, {"name": "enabled", "type": "bool"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "setLocker",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "locker", "type": "address"}, {"name": "hook", "type": "address"}, {"name": "enabled", "type": "bool"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "setExtension",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "extension", "type": "address"}, {"name": "enabled", "type": "bool"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "setMevModule",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "mevModule", "type": "address"}, {"name": "enabled", "type": "bool"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "setTeamFeeRecipient",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "teamFeeRecipient_", "type": "address"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "tokenDeploymentInfo",
    "stateMutability": "view",
    "inputs": [{"name": "token", "type": "address"}],
    "outputs": [{"name": "", "type": "tuple", "components": [
      {"name": "token", "type": "address"},
      {"name": "hook", "type": "address"},
      {"name": "locker", "type": "address"},
      {"name": "extensions", "type": "address[]"}
    ]}]
  },
  {
    "type": "event",
    "name": "TokenCreated",
    "anonymous": false,
    "inputs": [
      {"indexed": false, "name": "msgSender", "type": "address"},
      {"indexed": true, "name": "tokenAddress", "type": "address"},
      {"indexed": true, "name": "tokenAdmin", "type": "address"},
      {"indexed": false, "name": "tokenImage", "type": "string"},
      {"indexed": false, "name": "tokenName", "type": "string"},
      {"indexed": false, "name": "tokenSymbol", "type": "string"},
      {"indexed": false, "name": "tokenMetadata", "type": "string"},
      {"indexed": false, "name": "tokenContext", "type": "string"},
      {"indexed": false, "name": "startingTick", "type": "int24"},
      {"indexed": false, "name": "poolHook", "type": "address"},
      {"indexed": false, "name": "poolId", "type": "bytes32"},
      {"indexed": false, "name": "pairedToken", "type": "address"},
      {"indexed": false, "name": "locker", "type": "address"},
      {"indexed": false, "name": "mevModule", "type": "address"},
      {"indexed": false, "name": "extensionsSupply", "type": "uint256"},
      {"indexed": false, "name": "extensions", "type": "address[]"}
    ]
  },
  {"type": "error", "name": "Deprecated", "inputs": []},
  {"type": "error", "name": "NotAdmin", "inputs": []},
  {"type": "error", "name": "Unauthorized", "inputs": []},
  {"type": "error", "name": "HookNotEnabled", "inputs": []},
  {"type": "error", "name": "LockerNotEnabled", "inputs": []},
  {"type": "error", "name": "ExtensionNotEnabled", "inputs": []},
  {"type": "error", "name": "MevModuleNotEnabled", "inputs": []},
  {"type": "error", "name": "MaxExtensionBpsExceeded", "inputs": []},
  {"type": "error", "name": "ExtensionMsgValueMismatch", "inputs": []},
  {"type": "error", "name": "OnlyOriginatingChain", "inputs": []},
  {"type": "error", "name": "OnlyNonOriginatingChains", "inputs": []}
]`

const factoryV3ABIJSON = `[
  {
    "type": "function",
    "name": "deployToken",
    "stateMutability": "payable",
    "inputs": [{"name": "deploymentConfig", "type": "tuple", "components": [
      {"name": "tokenConfig", "type": "tuple", "components": [
        {"name": "name", "type": "string"},
        {"name": "symbol", "type": "string"},
        {"name": "salt", "type": "bytes32"},
        {"name": "image", "type": "string"},
        {"name": "metadata", "type": "string"},
        {"name": "context", "type": "string"},
        {"name": "originatingChainId", "type": "uint256"}
      ]},
      {"name": "vaultConfig", "type": "tuple", "components": [
        {"name": "vaultPercentage", "type": "uint8"},
        {"name": "vaultDuration", "type": "uint256"}
      ]},
      {"name": "poolConfig", "type": "tuple", "components": [
        {"name": "pairedToken", "type": "address"},
        {"name": "tickIfToken0IsNewToken", "type": "int24"}
      ]},
      {"name": "initialBuyConfig", "type": "tuple", "components": [
        {"name": "pairedTokenPoolFee", "type": "uint24"},
        {"name": "pairedTokenSwapAmountOutMinimum", "type": "uint256"}
      ]},
      {"name": "rewardsConfig", "type": "tuple", "components": [
        {"name": "creatorReward", "type": "uint256"},
        {"name": "creatorAdmin", "type": "address"},
        {"name": "creatorRewardRecipient", "type": "address"},
        {"name": "interfaceAdmin", "type": "address"},
        {"name": "interfaceRewardRecipient", "type": "address"}
      ]}
    ]}],
    "outputs": [
      {"name": "tokenAddress", "type": "address"},
      {"name": "positionId", "type": "uint256"}
    ]
  },
  {
    "type": "function",
    "name": "claimRewards",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "token", "type": "address"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "setAdmin",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "admin", "type": "address"}, {"name": "isAdmin", "type": "bool"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "setDeprecated",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "deprecated_", "type": "bool"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "deploymentInfoForToken",
    "stateMutability": "view",
    "inputs": [{"name": "token", "type": "address"}],
    "outputs": [
      {"name": "token", "type": "address"},
      {"name": "positionId", "type": "uint256"},
      {"name": "locker", "type": "address"}
    ]
  },
  {
    "type": "event",
    "name": "TokenCreated",
    "anonymous": false,
    "inputs": [
      {"indexed": true, "name": "tokenAddress", "type": "address"},
      {"indexed": true, "name": "creatorAdmin", "type": "address"},
      {"indexed": true, "name": "interfaceAdmin", "type": "address"},
      {"indexed": false, "name": "creatorRewardRecipient", "type": "address"},
      {"indexed": false, "name": "interfaceRewardRecipient", "type": "address"},
      {"indexed": false, "name": "positionId", "type": "uint256"},
      {"indexed": false, "name": "name", "type": "string"},
      {"indexed": false, "name": "symbol", "type": "string"},
      {"indexed": false, "name": "startingTickIfToken0IsNewToken", "type": "int24"},
      {"indexed": false, "name": "metadata", "type": "string"},
      {"indexed": false, "name": "amountTokensBought", "type": "uint256"},
      {"indexed": false, "name": "vaultDuration", "type": "uint256"},
      {"indexed": false, "name": "vaultPercentage", "type": "uint8"},
      {"indexed": false, "name": "msgSender", "type": "address"}
    ]
  },
  {"type": "error", "name": "Deprecated", "inputs": []},
  {"type": "error", "name": "NotOwnerOrAdmin", "inputs": []},
  {"type": "error", "name": "InvalidCreatorReward", "inputs": []},
  {"type": "error", "name": "InvalidVaultConfiguration", "inputs": []},
  {"type": "error", "name": "NotFound", "inputs": []}
]`
