package model

// TokenCreated is a decoded factory TokenCreated event, flattened across
// factory versions. Amounts are decimal strings.
type TokenCreated struct {
	Version     string `json:"version"`
	ChainID     uint64 `json:"chain_id"`
	BlockNumber uint64 `json:"block_number"`
	TxHash      string `json:"tx_hash"`
	LogIndex    uint64 `json:"log_index"`
	BlockTime   uint64 `json:"block_time,omitempty"`
	Factory     string `json:"factory"`

	TokenAddress string `json:"token_address"`
	TokenAdmin   string `json:"token_admin"`
	MsgSender    string `json:"msg_sender"`
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	Image        string `json:"image,omitempty"`
	Metadata     string `json:"metadata,omitempty"`
	Context      string `json:"context,omitempty"`
	StartingTick int32  `json:"starting_tick"`
	PairedToken  string `json:"paired_token,omitempty"`

	// v4 only
	PoolHook         string   `json:"pool_hook,omitempty"`
	PoolID           string   `json:"pool_id,omitempty"`
	Locker           string   `json:"locker,omitempty"`
	MevModule        string   `json:"mev_module,omitempty"`
	ExtensionsSupply string   `json:"extensions_supply,omitempty"`
	Extensions       []string `json:"extensions,omitempty"`

	// v3.1 only
	PositionID               string `json:"position_id,omitempty"`
	InterfaceAdmin           string `json:"interface_admin,omitempty"`
	CreatorRewardRecipient   string `json:"creator_reward_recipient,omitempty"`
	InterfaceRewardRecipient string `json:"interface_reward_recipient,omitempty"`
	AmountTokensBought       string `json:"amount_tokens_bought,omitempty"`
	VaultDuration            string `json:"vault_duration,omitempty"`
	VaultPercentage          uint8  `json:"vault_percentage,omitempty"`
}
