package chain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// CallDescriptor is a fully specified contract call. It is built once and
// not modified afterwards.
type CallDescriptor struct {
	ChainID uint64
	To      common.Address
	ABI     abi.ABI
	Method  string
	Args    []interface{}
	// Value is the wei sent with the call, never nil.
	Value *big.Int
	// ExpectedAddress is set for deployments.
	ExpectedAddress *common.Address

	data []byte
}

// NewCall packs method with args against parsed.
func NewCall(chainID uint64, to common.Address, parsed abi.ABI, method string, value *big.Int, args ...interface{}) (*CallDescriptor, error) {
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	if value == nil {
		value = new(big.Int)
	}
	return &CallDescriptor{
		ChainID: chainID,
		To:      to,
		ABI:     parsed,
		Method:  method,
		Args:    args,
		Value:   new(big.Int).Set(value),
		data:    data,
	}, nil
}

// WithExpectedAddress returns a copy of c carrying the predicted deployment address.
func (c *CallDescriptor) WithExpectedAddress(addr common.Address) *CallDescriptor {
	out := *c
	out.ExpectedAddress = &addr
	return &out
}

// Data returns the packed calldata.
func (c *CallDescriptor) Data() []byte {
	out := make([]byte, len(c.data))
	copy(out, c.data)
	return out
}

// Unpack decodes return data of the call's method.
func (c *CallDescriptor) Unpack(output []byte) ([]interface{}, error) {
	values, err := c.ABI.Unpack(c.Method, output)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", c.Method, err)
	}
	return values, nil
}

// CallView is the printable form of a CallDescriptor.
type CallView struct {
	ChainID         uint64 `json:"chainId" yaml:"chainId"`
	To              string `json:"to" yaml:"to"`
	Method          string `json:"method" yaml:"method"`
	Value           string `json:"value" yaml:"value"`
	Data            string `json:"data" yaml:"data"`
	ExpectedAddress string `json:"expectedAddress,omitempty" yaml:"expectedAddress,omitempty"`
}

// View returns the printable form of c.
func (c *CallDescriptor) View() CallView {
	view := CallView{
		ChainID: c.ChainID,
		To:      c.To.Hex(),
		Method:  c.Method,
		Value:   c.Value.String(),
		Data:    hexutil.Encode(c.data),
	}
	if c.ExpectedAddress != nil {
		view.ExpectedAddress = c.ExpectedAddress.Hex()
	}
	return view
}
