package model

import "time"

// DecodeError is a factory log that matched a TokenCreated topic but whose
// payload did not decode. Version is empty for unknown topics.
type DecodeError struct {
	ChainID     uint64    `json:"chain_id"`
	Version     string    `json:"version,omitempty"`
	BlockNumber uint64    `json:"block_number"`
	TxHash      string    `json:"tx_hash"`
	LogIndex    uint64    `json:"log_index"`
	Factory     string    `json:"factory"`
	Topic0      string    `json:"topic0,omitempty"`
	DataLen     int       `json:"data_len"`
	Reason      string    `json:"reason"`
	SeenAt      time.Time `json:"seen_at"`
}
