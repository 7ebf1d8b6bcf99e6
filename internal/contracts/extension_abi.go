package contracts

const lockerV3ABIJSON = `[
  {
    "type": "function",
    "name": "collectRewards",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "_tokenId", "type": "uint256"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "updateCreatorRewardRecipient",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "tokenId", "type": "uint256"}, {"name": "recipient", "type": "address"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "updateInterfaceRewardRecipient",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "tokenId", "type": "uint256"}, {"name": "recipient", "type": "address"}],
    "outputs": []
  }
]`

const lockerV4ABIJSON = `[
  {
    "type": "function",
    "name": "collectRewards",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "token", "type": "address"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "updateRewardRecipient",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "token", "type": "address"},
      {"name": "rewardIndex", "type": "uint256"},
      {"name": "newRecipient", "type": "address"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "updateRewardAdmin",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "token", "type": "address"},
      {"name": "rewardIndex", "type": "uint256"},
      {"name": "newAdmin", "type": "address"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "tokenRewards",
    "stateMutability": "view",
    "inputs": [{"name": "token", "type": "address"}],
    "outputs": [{"name": "", "type": "tuple", "components": [
      {"name": "token", "type": "address"},
      {"name": "positionId", "type": "uint256"},
      {"name": "numPositions", "type": "uint256"},
      {"name": "rewardBps", "type": "uint16[]"},
      {"name": "rewardAdmins", "type": "address[]"},
      {"name": "rewardRecipients", "type": "address[]"}
    ]}]
  },
  {"type": "error", "name": "Unauthorized", "inputs": []},
  {"type": "error", "name": "InvalidIndex", "inputs": []}
]`

const feeLockerABIJSON = `[
  {
    "type": "function",
    "name": "claim",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "feeOwner", "type": "address"}, {"name": "token", "type": "address"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "availableFees",
    "stateMutability": "view",
    "inputs": [{"name": "feeOwner", "type": "address"}, {"name": "token", "type": "address"}],
    "outputs": [{"name": "", "type": "uint256"}]
  },
  {"type": "error", "name": "NoFeesToClaim", "inputs": []}
]`

const vaultABIJSON = `[
  {
    "type": "function",
    "name": "claim",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "token", "type": "address"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "amountAvailableToClaim",
    "stateMutability": "view",
    "inputs": [{"name": "token", "type": "address"}],
    "outputs": [{"name": "", "type": "uint256"}]
  },
  {"type": "error", "name": "Unauthorized", "inputs": []},
  {"type": "error", "name": "AllocationNotUnlocked", "inputs": []},
  {"type": "error", "name": "NoBalanceToClaim", "inputs": []}
]`

const airdropABIJSON = `[
  {
    "type": "function",
    "name": "claim",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "token", "type": "address"},
      {"name": "recipient", "type": "address"},
      {"name": "allocatedAmount", "type": "uint256"},
      {"name": "proof", "type": "bytes32[]"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "amountAvailableToClaim",
    "stateMutability": "view",
    "inputs": [
      {"name": "token", "type": "address"},
      {"name": "recipient", "type": "address"},
      {"name": "allocatedAmount", "type": "uint256"}
    ],
    "outputs": [{"name": "", "type": "uint256"}]
  },
  {"type": "error", "name": "InvalidProof", "inputs": []},
  {"type": "error", "name": "AirdropNotUnlocked", "inputs": []},
  {"type": "error", "name": "TotalMaxClaimed", "inputs": []}
]`

const presaleABIJSON = `[
  {
    "type": "function",
    "name": "startPresale",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "deploymentConfig", "type": "tuple", "components": ` + deploymentConfigV4Components + `},
      {"name": "minEthGoal", "type": "uint256"},
      {"name": "maxEthGoal", "type": "uint256"},
      {"name": "presaleDuration", "type": "uint256"},
      {"name": "recipient", "type": "address"},
      {"name": "lockupDuration", "type": "uint256"},
      {"name": "vestingDuration", "type": "uint256"}
    ],
    "outputs": [{"name": "presaleId", "type": "uint256"}]
  },
  {
    "type": "function",
    "name": "buyIntoPresale",
    "stateMutability": "payable",
    "inputs": [{"name": "presaleId", "type": "uint256"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "withdrawFromPresale",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "presaleId", "type": "uint256"},
      {"name": "amount", "type": "uint256"},
      {"name": "recipient", "type": "address"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "endPresale",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "presaleId", "type": "uint256"}, {"name": "salt", "type": "bytes32"}],
    "outputs": [{"name": "token", "type": "address"}]
  },
  {
    "type": "function",
    "name": "claimTokens",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "presaleId", "type": "uint256"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "claimEth",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "presaleId", "type": "uint256"}, {"name": "recipient", "type": "address"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "getPresale",
    "stateMutability": "view",
    "inputs": [{"name": "presaleId", "type": "uint256"}],
    "outputs": [{"name": "", "type": "tuple", "components": [
      {"name": "status", "type": "uint8"},
      {"name": "presaleOwner", "type": "address"},
      {"name": "recipient", "type": "address"},
      {"name": "minEthGoal", "type": "uint256"},
      {"name": "maxEthGoal", "type": "uint256"},
      {"name": "endTime", "type": "uint256"},
      {"name": "ethRaised", "type": "uint256"},
      {"name": "deployedToken", "type": "address"},
      {"name": "tokenSupply", "type": "uint256"},
      {"name": "lockupEndTime", "type": "uint256"},
      {"name": "vestingEndTime", "type": "uint256"}
    ]}]
  },
  {
    "type": "function",
    "name": "presaleBuys",
    "stateMutability": "view",
    "inputs": [{"name": "presaleId", "type": "uint256"}, {"name": "user", "type": "address"}],
    "outputs": [{"name": "", "type": "uint256"}]
  },
  {
    "type": "function",
    "name": "amountAvailableToClaim",
    "stateMutability": "view",
    "inputs": [{"name": "presaleId", "type": "uint256"}, {"name": "user", "type": "address"}],
    "outputs": [{"name": "", "type": "uint256"}]
  },
  {"type": "error", "name": "PresaleNotActive", "inputs": []},
  {"type": "error", "name": "PresaleNotClaimable", "inputs": []},
  {"type": "error", "name": "PresaleMaxEthGoalReached", "inputs": []},
  {"type": "error", "name": "InvalidPresaleDuration", "inputs": []},
  {"type": "error", "name": "InvalidEthGoals", "inputs": []}
]`

const legacyLockerABIJSON = `[
  {
    "type": "function",
    "name": "claimRewards",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "token", "type": "address"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "collectRewards",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "_tokenId", "type": "uint256"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "collectFees",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "_recipient", "type": "address"}, {"name": "_tokenId", "type": "uint256"}],
    "outputs": []
  }
]`

const safeSpenderABIJSON = `[
  {
    "type": "function",
    "name": "claimFees",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "token", "type": "address"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "claimableFees",
    "stateMutability": "view",
    "inputs": [{"name": "token", "type": "address"}],
    "outputs": [{"name": "amount0", "type": "uint256"}, {"name": "amount1", "type": "uint256"}]
  },
  {"type": "error", "name": "NotTokenOwner", "inputs": []}
]`

const erc20ABIJSON = `[
  {"inputs": [], "name": "decimals", "outputs": [{"type": "uint8"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "symbol", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "name", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"},
  {"inputs": [{"name": "account", "type": "address"}], "name": "balanceOf", "outputs": [{"type": "uint256"}], "stateMutability": "view", "type": "function"}
]`
