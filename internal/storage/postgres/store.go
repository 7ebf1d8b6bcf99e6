package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clankerSDK/internal/model"
	"clankerSDK/internal/storage"
)

var _ storage.Storage = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS tokens (
	chain_id BIGINT NOT NULL,
	token_address TEXT NOT NULL,
	version TEXT NOT NULL,
	factory TEXT NOT NULL,
	block_number BIGINT NOT NULL,
	block_time BIGINT,
	tx_hash TEXT NOT NULL,
	log_index BIGINT NOT NULL,
	token_admin TEXT NOT NULL,
	name TEXT NOT NULL,
	symbol TEXT NOT NULL,
	image TEXT,
	metadata TEXT,
	context TEXT,
	starting_tick INTEGER NOT NULL,
	paired_token TEXT,
	pool_hook TEXT,
	locker TEXT,
	extensions TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (chain_id, token_address)
);
CREATE TABLE IF NOT EXISTS decode_errors (
	chain_id BIGINT NOT NULL,
	tx_hash TEXT NOT NULL,
	log_index BIGINT NOT NULL,
	block_number BIGINT NOT NULL,
	version TEXT,
	factory TEXT NOT NULL,
	topic0 TEXT,
	data_len INTEGER NOT NULL,
	reason TEXT NOT NULL,
	seen_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (chain_id, tx_hash, log_index)
);
CREATE TABLE IF NOT EXISTS deployments (
	id UUID PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL,
	chain_id BIGINT NOT NULL,
	version TEXT NOT NULL,
	tx_hash TEXT NOT NULL,
	token_address TEXT NOT NULL,
	expected_address TEXT,
	salt TEXT,
	name TEXT NOT NULL,
	symbol TEXT NOT NULL,
	admin TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS scanner_state (
	name TEXT PRIMARY KEY,
	last_processed_block BIGINT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Store persists scanned tokens, decode errors, the deployment journal and
// the scanner checkpoint in Postgres.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// PutTokens upserts tokens keyed by chain and address.
func (s *Store) PutTokens(ctx context.Context, tokens []model.TokenCreated) error {
	if len(tokens) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, t := range tokens {
		batch.Queue(`
			INSERT INTO tokens (
				chain_id, token_address, version, factory, block_number, block_time, tx_hash, log_index,
				token_admin, name, symbol, image, metadata, context, starting_tick, paired_token,
				pool_hook, locker, extensions
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
			ON CONFLICT (chain_id, token_address)
			DO UPDATE SET
				token_admin = EXCLUDED.token_admin,
				image = EXCLUDED.image,
				metadata = EXCLUDED.metadata,
				block_time = COALESCE(EXCLUDED.block_time, tokens.block_time)
		`, tokenArgs(t)...)
	}
	return s.exec(ctx, batch, len(tokens))
}

func tokenArgs(t model.TokenCreated) []interface{} {
	var blockTime *int64
	if t.BlockTime != 0 {
		v := int64(t.BlockTime)
		blockTime = &v
	}
	return []interface{}{
		int64(t.ChainID),
		strings.ToLower(t.TokenAddress),
		t.Version,
		t.Factory,
		int64(t.BlockNumber),
		blockTime,
		t.TxHash,
		int64(t.LogIndex),
		t.TokenAdmin,
		t.Name,
		t.Symbol,
		t.Image,
		t.Metadata,
		t.Context,
		t.StartingTick,
		t.PairedToken,
		t.PoolHook,
		t.Locker,
		strings.Join(t.Extensions, ","),
	}
}

func (s *Store) PutDecodeErrors(ctx context.Context, records []model.DecodeError) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(`
			INSERT INTO decode_errors (chain_id, tx_hash, log_index, block_number, version, factory, topic0, data_len, reason, seen_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			ON CONFLICT (chain_id, tx_hash, log_index) DO UPDATE SET reason = EXCLUDED.reason, seen_at = EXCLUDED.seen_at
		`,
			int64(r.ChainID),
			r.TxHash,
			int64(r.LogIndex),
			int64(r.BlockNumber),
			r.Version,
			r.Factory,
			r.Topic0,
			r.DataLen,
			r.Reason,
			r.SeenAt,
		)
	}
	return s.exec(ctx, batch, len(records))
}

// PutDeployment journals one deployment.
func (s *Store) PutDeployment(ctx context.Context, d model.Deployment) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO deployments (
			id, created_at, chain_id, version, tx_hash, token_address, expected_address, salt, name, symbol, admin
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		d.ID,
		d.CreatedAt,
		int64(d.ChainID),
		d.Version,
		d.TxHash,
		d.TokenAddress,
		d.ExpectedAddress,
		d.Salt,
		d.Name,
		d.Symbol,
		d.Admin,
	)
	if err != nil {
		return fmt.Errorf("insert deployment: %w", err)
	}
	return nil
}

func (s *Store) exec(ctx context.Context, batch *pgx.Batch, n int) error {
	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < n; i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LoadState returns the last processed block for a scanner name.
func (s *Store) LoadState(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("state name required")
	}
	var block int64
	row := s.pool.QueryRow(ctx, `SELECT last_processed_block FROM scanner_state WHERE name=$1`, name)
	if err := row.Scan(&block); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return uint64(block), true, nil
}

// SaveState upserts the last processed block for a scanner name.
func (s *Store) SaveState(ctx context.Context, name string, block uint64) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO scanner_state (name, last_processed_block, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET last_processed_block = EXCLUDED.last_processed_block, updated_at = now()
	`, name, int64(block))
	return err
}

// Checkpoint is a scanner checkpoint kept in scanner_state under one name.
type Checkpoint struct {
	store *Store
	name  string
}

func (s *Store) Checkpoint(name string) *Checkpoint {
	return &Checkpoint{store: s, name: name}
}

func (c *Checkpoint) Load(ctx context.Context) (uint64, bool, error) {
	return c.store.LoadState(ctx, c.name)
}

func (c *Checkpoint) Save(ctx context.Context, block uint64) error {
	return c.store.SaveState(ctx, c.name, block)
}
