package v4

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"clankerSDK/internal/chain"
	"clankerSDK/internal/contracts"
	"clankerSDK/internal/validate"
	"clankerSDK/internal/vanity"
)

// DefaultVanitySuffix is the suffix searched when Token.Vanity is set.
const DefaultVanitySuffix = "4b07"

// Options carries the chain and the address prediction inputs.
type Options struct {
	// Chain defaults to the address book of Token.ChainID, then Base.
	Chain contracts.Chain
	// TokenCreationCode enables local CREATE2 prediction.
	TokenCreationCode []byte
	// Caller enables prediction by simulating the deployment when no
	// creation code is given. From is the simulated sender.
	Caller chain.Caller
	From   common.Address

	VanitySuffix string
	Workers      int
	MaxAttempts  uint64

	Logger *zap.Logger
}

// Prepared is a validated deployment with its salt and predicted address.
type Prepared struct {
	Chain  contracts.Chain
	Config contracts.DeploymentConfigV4
	// Value is the msg.value the extensions need.
	Value           *big.Int
	Salt            [32]byte
	ExpectedAddress *common.Address
	// Attempts is the number of salts tried by a vanity search.
	Attempts uint64
}

func (o Options) chainFor(tok Token) (contracts.Chain, error) {
	if o.Chain.ID != 0 {
		return o.Chain, nil
	}
	id := tok.ChainID
	if id == 0 {
		id = contracts.BaseChainID
	}
	return contracts.ChainByID(id)
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Validate fills defaults and checks every field without touching the network.
func Validate(tok Token, c contracts.Chain) error {
	r, err := resolve(tok, c.WETH, c.ID)
	if err != nil {
		return err
	}
	var errs validate.Errors
	r.validate(&errs)
	return errs.Err()
}

// Prepare validates tok, resolves the salt and predicts the token address.
func Prepare(ctx context.Context, tok Token, opts Options) (*Prepared, error) {
	c, err := opts.chainFor(tok)
	if err != nil {
		return nil, err
	}
	r, err := resolve(tok, c.WETH, c.ID)
	if err != nil {
		return nil, err
	}
	var errs validate.Errors
	r.validate(&errs)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	var salt [32]byte
	if tok.Salt != nil {
		salt = *tok.Salt
	}
	cfg, value, err := r.deploymentConfig(c, salt)
	if err != nil {
		return nil, err
	}
	prepared := &Prepared{Chain: c, Config: cfg, Value: value, Salt: salt}

	predictor, err := opts.predictor(r, c, cfg, value)
	if err != nil {
		return nil, err
	}

	switch {
	case tok.Vanity:
		if predictor == nil {
			return nil, fmt.Errorf("vanity search needs token creation code or a caller")
		}
		suffix := opts.VanitySuffix
		if suffix == "" {
			suffix = DefaultVanitySuffix
		}
		result, err := vanity.Search(ctx, predictor, vanity.Request{
			Suffix:      suffix,
			Workers:     opts.Workers,
			MaxAttempts: opts.MaxAttempts,
		})
		if err != nil {
			return nil, err
		}
		prepared.Salt = result.Salt
		prepared.Config.TokenConfig.Salt = result.Salt
		prepared.ExpectedAddress = &result.ExpectedAddress
		prepared.Attempts = result.Attempts
		opts.logger().Info("vanity salt found",
			zap.String("address", result.ExpectedAddress.Hex()),
			zap.Uint64("attempts", result.Attempts),
		)
	case predictor != nil:
		addr, err := predictor.Predict(ctx, salt)
		if err != nil {
			return nil, fmt.Errorf("predict address: %w", err)
		}
		prepared.ExpectedAddress = &addr
	}
	return prepared, nil
}

func (o Options) predictor(r resolved, c contracts.Chain, cfg contracts.DeploymentConfigV4, value *big.Int) (vanity.Predictor, error) {
	if len(o.TokenCreationCode) > 0 {
		return vanity.NewCreate2Predictor(c.FactoryV4, o.TokenCreationCode, vanity.TokenArgs{
			Name:               cfg.TokenConfig.Name,
			Symbol:             cfg.TokenConfig.Symbol,
			Admin:              cfg.TokenConfig.TokenAdmin,
			Image:              cfg.TokenConfig.Image,
			Metadata:           cfg.TokenConfig.Metadata,
			Context:            cfg.TokenConfig.Context,
			OriginatingChainID: cfg.TokenConfig.OriginatingChainId,
		})
	}
	if o.Caller == nil {
		return nil, nil
	}
	from := o.From
	if from == (common.Address{}) {
		from = r.TokenAdmin
	}
	return &vanity.SimulatePredictor{
		Caller: o.Caller,
		From:   from,
		Build: func(salt [32]byte) (*chain.CallDescriptor, error) {
			candidate := cfg
			candidate.TokenConfig.Salt = salt
			return deployCall(c, candidate, value)
		},
	}, nil
}

// Call returns the deployToken descriptor of p.
func (p *Prepared) Call() (*chain.CallDescriptor, error) {
	call, err := deployCall(p.Chain, p.Config, p.Value)
	if err != nil {
		return nil, err
	}
	if p.ExpectedAddress != nil {
		call = call.WithExpectedAddress(*p.ExpectedAddress)
	}
	return call, nil
}

// Build validates tok and returns the deployToken call.
func Build(ctx context.Context, tok Token, opts Options) (*chain.CallDescriptor, error) {
	prepared, err := Prepare(ctx, tok, opts)
	if err != nil {
		return nil, err
	}
	return prepared.Call()
}

// BuildZeroSupply returns a deployTokenZeroSupply call. Only the token
// fields of tok are used.
func BuildZeroSupply(ctx context.Context, tok Token, opts Options) (*chain.CallDescriptor, error) {
	c, err := opts.chainFor(tok)
	if err != nil {
		return nil, err
	}
	var errs validate.Errors
	if tok.Name == "" || tok.Symbol == "" {
		errs.Add("name", "Name and symbol are required")
	}
	if tok.TokenAdmin == (common.Address{}) {
		errs.Add("tokenAdmin", "Token admin is required")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	r := resolved{Token: tok}
	if r.ChainID == 0 {
		r.ChainID = c.ID
	}
	if r.OriginatingChainID == 0 {
		r.OriginatingChainID = r.ChainID
	}
	var salt [32]byte
	if tok.Salt != nil {
		salt = *tok.Salt
	}
	tokenCfg, err := r.tokenConfig(salt)
	if err != nil {
		return nil, err
	}
	parsed, err := contracts.FactoryV4ABI()
	if err != nil {
		return nil, err
	}
	return chain.NewCall(c.ID, c.FactoryV4, parsed, "deployTokenZeroSupply", nil, tokenCfg)
}

func deployCall(c contracts.Chain, cfg contracts.DeploymentConfigV4, value *big.Int) (*chain.CallDescriptor, error) {
	parsed, err := contracts.FactoryV4ABI()
	if err != nil {
		return nil, err
	}
	return chain.NewCall(c.ID, c.FactoryV4, parsed, "deployToken", value, cfg)
}
