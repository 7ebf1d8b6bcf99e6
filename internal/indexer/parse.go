package indexer

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"clankerSDK/internal/contracts"
)

// ParseAddresses converts string addresses into common.Address.
func ParseAddresses(inputs []string) ([]common.Address, error) {
	addresses := make([]common.Address, 0, len(inputs))
	for _, input := range inputs {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !common.IsHexAddress(input) {
			return nil, fmt.Errorf("invalid address: %s", input)
		}
		addresses = append(addresses, common.HexToAddress(input))
	}
	return addresses, nil
}

// DefaultFactories returns the configured v3.1 and v4 factories of c.
func DefaultFactories(c contracts.Chain) []common.Address {
	var out []common.Address
	for _, addr := range []common.Address{c.FactoryV3, c.FactoryV4} {
		if addr != (common.Address{}) {
			out = append(out, addr)
		}
	}
	return out
}
