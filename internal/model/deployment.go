package model

import "time"

// Deployment journals one submitted deployment.
type Deployment struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	ChainID         uint64    `json:"chain_id"`
	Version         string    `json:"version"`
	TxHash          string    `json:"tx_hash"`
	TokenAddress    string    `json:"token_address"`
	ExpectedAddress string    `json:"expected_address,omitempty"`
	Salt            string    `json:"salt,omitempty"`
	Name            string    `json:"name"`
	Symbol          string    `json:"symbol"`
	Admin           string    `json:"admin"`
}
