package v4

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"

	"clankerSDK/internal/contracts"
	"clankerSDK/internal/extensions"
	"clankerSDK/internal/fees"
	"clankerSDK/internal/model"
)

var (
	ErrNameSymbolRequired = errors.New("Name and symbol are required")
	ErrTokenAdminRequired = errors.New("Token admin is required")
)

// TokenConfigV4Builder assembles a Token step by step.
type TokenConfigV4Builder struct {
	tok Token
}

func NewTokenConfigV4Builder() *TokenConfigV4Builder {
	return &TokenConfigV4Builder{}
}

func (b *TokenConfigV4Builder) WithName(name string) *TokenConfigV4Builder {
	b.tok.Name = name
	return b
}

func (b *TokenConfigV4Builder) WithSymbol(symbol string) *TokenConfigV4Builder {
	b.tok.Symbol = symbol
	return b
}

func (b *TokenConfigV4Builder) WithTokenAdmin(admin common.Address) *TokenConfigV4Builder {
	b.tok.TokenAdmin = admin
	return b
}

func (b *TokenConfigV4Builder) WithImage(image string) *TokenConfigV4Builder {
	b.tok.Image = image
	return b
}

func (b *TokenConfigV4Builder) WithMetadata(metadata model.TokenMetadata) *TokenConfigV4Builder {
	b.tok.Metadata = metadata
	return b
}

func (b *TokenConfigV4Builder) WithContext(ctx model.SocialContext) *TokenConfigV4Builder {
	b.tok.Context = ctx
	return b
}

func (b *TokenConfigV4Builder) WithChainID(id uint64) *TokenConfigV4Builder {
	b.tok.ChainID = id
	return b
}

// WithOriginatingChainID sets the chain the token is bridged from. Zero
// means the deployment chain.
func (b *TokenConfigV4Builder) WithOriginatingChainID(id uint64) *TokenConfigV4Builder {
	b.tok.OriginatingChainID = id
	return b
}

// WithPool replaces the pool, keeping positions set earlier when pool has none.
func (b *TokenConfigV4Builder) WithPool(pool Pool) *TokenConfigV4Builder {
	if len(pool.Positions) == 0 {
		pool.Positions = b.tok.Pool.Positions
	}
	b.tok.Pool = pool
	return b
}

func (b *TokenConfigV4Builder) WithPositions(positions ...Position) *TokenConfigV4Builder {
	b.tok.Pool.Positions = append([]Position(nil), positions...)
	return b
}

func (b *TokenConfigV4Builder) WithStaticFee(clankerBps, pairedBps uint32) *TokenConfigV4Builder {
	b.tok.Fees = fees.Static{ClankerFeeBps: clankerBps, PairedFeeBps: pairedBps}
	return b
}

func (b *TokenConfigV4Builder) WithDynamicFee(cfg fees.Dynamic) *TokenConfigV4Builder {
	b.tok.Fees = cfg
	return b
}

func (b *TokenConfigV4Builder) WithRewards(rewards ...Reward) *TokenConfigV4Builder {
	b.tok.Rewards = append([]Reward(nil), rewards...)
	return b
}

func (b *TokenConfigV4Builder) WithVault(v extensions.Vault) *TokenConfigV4Builder {
	b.tok.Vault = &v
	return b
}

func (b *TokenConfigV4Builder) WithAirdrop(a extensions.Airdrop) *TokenConfigV4Builder {
	b.tok.Airdrop = &a
	return b
}

func (b *TokenConfigV4Builder) WithDevBuy(d extensions.DevBuy) *TokenConfigV4Builder {
	b.tok.DevBuy = &d
	return b
}

func (b *TokenConfigV4Builder) WithPresale(p extensions.Presale) *TokenConfigV4Builder {
	b.tok.Presale = &p
	return b
}

func (b *TokenConfigV4Builder) WithVanity() *TokenConfigV4Builder {
	b.tok.Vanity = true
	return b
}

func (b *TokenConfigV4Builder) WithSalt(salt [32]byte) *TokenConfigV4Builder {
	b.tok.Salt = &salt
	return b
}

// Build checks name and symbol, then the admin, then the full config
// against the chain of the token (Base when unset).
func (b *TokenConfigV4Builder) Build() (Token, error) {
	if b.tok.Name == "" || b.tok.Symbol == "" {
		return Token{}, ErrNameSymbolRequired
	}
	if b.tok.TokenAdmin == (common.Address{}) {
		return Token{}, ErrTokenAdminRequired
	}
	id := b.tok.ChainID
	if id == 0 {
		id = contracts.BaseChainID
	}
	c, err := contracts.ChainByID(id)
	if err != nil {
		return Token{}, err
	}
	if err := Validate(b.tok, c); err != nil {
		return Token{}, err
	}
	return b.tok, nil
}
