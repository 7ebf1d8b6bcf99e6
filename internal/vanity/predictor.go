package vanity

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"clankerSDK/internal/chain"
	"clankerSDK/internal/contracts"
)

// MaxSupply is the fixed supply of every Clanker token in raw units.
var MaxSupply = new(big.Int).Mul(big.NewInt(100_000_000_000), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

// Predictor maps a candidate salt to the address a deployment would get.
type Predictor interface {
	Predict(ctx context.Context, salt [32]byte) (common.Address, error)
}

// TokenArgs are the token constructor arguments that feed the init code.
type TokenArgs struct {
	Name               string
	Symbol             string
	Admin              common.Address
	Image              string
	Metadata           string
	Context            string
	OriginatingChainID *big.Int
}

// Create2Predictor replicates the factory's CREATE2 derivation locally.
type Create2Predictor struct {
	factory      common.Address
	admin        common.Address
	initCodeHash []byte
	saltArgs     abi.Arguments
}

// NewCreate2Predictor hashes creationCode with the encoded constructor
// arguments once; Predict only hashes the salt.
func NewCreate2Predictor(factory common.Address, creationCode []byte, args TokenArgs) (*Create2Predictor, error) {
	if len(creationCode) == 0 {
		return nil, fmt.Errorf("token creation code is required")
	}
	chainID := args.OriginatingChainID
	if chainID == nil {
		chainID = new(big.Int)
	}
	encoded, err := contracts.TokenConstructorArgs.Pack(
		args.Name,
		args.Symbol,
		MaxSupply,
		args.Admin,
		args.Image,
		args.Metadata,
		args.Context,
		chainID,
	)
	if err != nil {
		return nil, fmt.Errorf("encode constructor args: %w", err)
	}
	initCode := make([]byte, 0, len(creationCode)+len(encoded))
	initCode = append(initCode, creationCode...)
	initCode = append(initCode, encoded...)

	addressType, _ := abi.NewType("address", "", nil)
	bytes32Type, _ := abi.NewType("bytes32", "", nil)
	return &Create2Predictor{
		factory:      factory,
		admin:        args.Admin,
		initCodeHash: crypto.Keccak256(initCode),
		saltArgs:     abi.Arguments{{Type: addressType}, {Type: bytes32Type}},
	}, nil
}

// Predict implements Predictor.
func (p *Create2Predictor) Predict(_ context.Context, salt [32]byte) (common.Address, error) {
	encoded, err := p.saltArgs.Pack(p.admin, salt)
	if err != nil {
		return common.Address{}, fmt.Errorf("encode salt: %w", err)
	}
	var deploySalt [32]byte
	copy(deploySalt[:], crypto.Keccak256(encoded))
	return crypto.CreateAddress2(p.factory, deploySalt, p.initCodeHash), nil
}

// SimulatePredictor asks a node what address the deployment call built for
// a salt would return.
type SimulatePredictor struct {
	Caller chain.Caller
	From   common.Address
	Build  func(salt [32]byte) (*chain.CallDescriptor, error)
}

// Predict implements Predictor.
func (p *SimulatePredictor) Predict(ctx context.Context, salt [32]byte) (common.Address, error) {
	call, err := p.Build(salt)
	if err != nil {
		return common.Address{}, err
	}
	out, err := p.Caller.CallContract(ctx, ethereum.CallMsg{
		From:  p.From,
		To:    &call.To,
		Value: call.Value,
		Data:  call.Data(),
	}, nil)
	if err != nil {
		return common.Address{}, chain.NewCallError(call.ABI, call.Method, err)
	}
	values, err := call.Unpack(out)
	if err != nil {
		return common.Address{}, err
	}
	if len(values) == 0 {
		return common.Address{}, fmt.Errorf("%s returned no values", call.Method)
	}
	addr, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("%s returned %T, want address", call.Method, values[0])
	}
	return addr, nil
}
