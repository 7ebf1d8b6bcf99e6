// Package indexer scans factory TokenCreated logs block range by block
// range and writes the decoded tokens to storage.
package indexer

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"clankerSDK/internal/events"
	"clankerSDK/internal/model"
	"clankerSDK/internal/storage"
)

// LogSource is the chain access the runner needs. chain.Client implements it.
type LogSource interface {
	ChainID(ctx context.Context) (*big.Int, error)
	LatestBlockNumber(ctx context.Context) (uint64, error)
	BlockTimestamp(ctx context.Context, number uint64) (uint64, error)
	FilterRange(ctx context.Context, fromBlock, toBlock uint64, addresses []common.Address, topic0 []common.Hash) ([]types.Log, error)
}

// RunConfig holds runtime settings for the scanner.
type RunConfig struct {
	FromBlock    uint64
	ToBlock      uint64
	Factories    []common.Address
	BatchSize    uint64
	MaxRetries   int
	RetryBackoff time.Duration
	// SkipTimestamps leaves BlockTime unset and saves one RPC per block.
	SkipTimestamps bool
}

// Stats summarizes one Run.
type Stats struct {
	From         uint64 `json:"from" yaml:"from"`
	To           uint64 `json:"to" yaml:"to"`
	Batches      int    `json:"batches" yaml:"batches"`
	Tokens       int    `json:"tokens" yaml:"tokens"`
	DecodeErrors int    `json:"decodeErrors" yaml:"decodeErrors"`
}

// Runner streams TokenCreated logs from the chain and writes them to storage.
type Runner struct {
	cfg        RunConfig
	source     LogSource
	storage    storage.Storage
	checkpoint Checkpointer
	logger     *zap.Logger
	seen       map[string]struct{}
	blockTimes map[uint64]uint64
}

// NewRunner builds a Runner. checkpoint may be nil.
func NewRunner(cfg RunConfig, source LogSource, sink storage.Storage, checkpoint Checkpointer, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:        cfg,
		source:     source,
		storage:    sink,
		checkpoint: checkpoint,
		logger:     logger,
		seen:       make(map[string]struct{}),
		blockTimes: make(map[uint64]uint64),
	}
}

// Run executes the scan loop, saving the checkpoint after every batch.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	var stats Stats
	if r.source == nil {
		return stats, fmt.Errorf("log source is nil")
	}
	if r.storage == nil {
		return stats, fmt.Errorf("storage is nil")
	}
	if r.cfg.BatchSize == 0 {
		return stats, fmt.Errorf("batch size must be greater than zero")
	}
	if len(r.cfg.Factories) == 0 {
		return stats, fmt.Errorf("at least one factory address is required")
	}

	chainID, err := r.source.ChainID(ctx)
	if err != nil {
		return stats, fmt.Errorf("get chain id: %w", err)
	}
	if !chainID.IsUint64() {
		return stats, fmt.Errorf("chain id does not fit in uint64: %s", chainID)
	}
	decoder, err := events.NewDecoder(chainID.Uint64())
	if err != nil {
		return stats, err
	}

	from := r.cfg.FromBlock
	to := r.cfg.ToBlock
	if to == 0 {
		latest, err := r.source.LatestBlockNumber(ctx)
		if err != nil {
			return stats, fmt.Errorf("get latest block: %w", err)
		}
		to = latest
	}

	if r.checkpoint != nil {
		last, ok, err := r.checkpoint.Load(ctx)
		if err != nil {
			return stats, err
		}
		if ok && last >= from {
			from = last + 1
			r.logger.Info("resume from checkpoint", zap.Uint64("last_processed", last), zap.Uint64("from", from))
		}
	}
	stats.From, stats.To = from, to

	if from > to {
		r.logger.Info("nothing to sync", zap.Uint64("from", from), zap.Uint64("to", to))
		return stats, nil
	}

	ranges, err := NewRanges(from, to, r.cfg.BatchSize)
	if err != nil {
		return stats, err
	}
	r.logger.Info("scan range", zap.Uint64("from", from), zap.Uint64("to", to), zap.Uint64("batches", ranges.Count()))

	for blockRange, ok := ranges.Next(); ok; blockRange, ok = ranges.Next() {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		r.logger.Info("fetch logs", zap.Uint64("from", blockRange.From), zap.Uint64("to", blockRange.To))

		logs, err := r.filterLogsWithRetry(ctx, blockRange, decoder.Topics())
		if err != nil {
			return stats, fmt.Errorf("filter logs: %w", err)
		}

		tokens, failures, err := r.decodeBatch(ctx, decoder, logs)
		if err != nil {
			return stats, err
		}
		if err := r.storage.PutTokens(ctx, tokens); err != nil {
			return stats, fmt.Errorf("store tokens: %w", err)
		}
		if err := r.storage.PutDecodeErrors(ctx, failures); err != nil {
			return stats, fmt.Errorf("store decode errors: %w", err)
		}

		if r.checkpoint != nil {
			if err := r.checkpoint.Save(ctx, blockRange.To); err != nil {
				return stats, err
			}
		}

		stats.Batches++
		stats.Tokens += len(tokens)
		stats.DecodeErrors += len(failures)
		r.logger.Info("batch complete",
			zap.Int("tokens", len(tokens)),
			zap.Int("decode_errors", len(failures)),
			zap.Uint64("from", blockRange.From),
			zap.Uint64("to", blockRange.To),
		)
	}

	return stats, nil
}

func (r *Runner) decodeBatch(ctx context.Context, decoder *events.Decoder, logs []types.Log) ([]model.TokenCreated, []model.DecodeError, error) {
	tokens := make([]model.TokenCreated, 0, len(logs))
	var failures []model.DecodeError
	for _, lg := range logs {
		if lg.Removed || r.isDuplicate(lg) {
			continue
		}
		token, err := decoder.Decode(lg)
		if err != nil {
			failures = append(failures, decodeError(decoder, lg, err))
			continue
		}
		if !r.cfg.SkipTimestamps {
			ts, err := r.blockTimestampWithRetry(ctx, lg.BlockNumber)
			if err != nil {
				return nil, nil, fmt.Errorf("block timestamp %d: %w", lg.BlockNumber, err)
			}
			token.BlockTime = ts
		}
		tokens = append(tokens, token)
	}
	return tokens, failures, nil
}

func (r *Runner) filterLogsWithRetry(ctx context.Context, blockRange BlockRange, topics []common.Hash) ([]types.Log, error) {
	var logs []types.Log
	err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		logs, err = r.source.FilterRange(ctx, blockRange.From, blockRange.To, r.cfg.Factories, topics)
		if err != nil {
			r.logger.Warn("filter logs failed", zap.Error(err), zap.Uint64("from", blockRange.From), zap.Uint64("to", blockRange.To))
		}
		return err
	})
	return logs, err
}

func (r *Runner) blockTimestampWithRetry(ctx context.Context, blockNumber uint64) (uint64, error) {
	if ts, ok := r.blockTimes[blockNumber]; ok {
		return ts, nil
	}
	var ts uint64
	err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		ts, err = r.source.BlockTimestamp(ctx, blockNumber)
		if err != nil {
			r.logger.Warn("block timestamp fetch failed", zap.Error(err), zap.Uint64("block_number", blockNumber))
		}
		return err
	})
	if err == nil {
		r.blockTimes[blockNumber] = ts
	}
	return ts, err
}

func (r *Runner) isDuplicate(lg types.Log) bool {
	id := fmt.Sprintf("%d:%s:%d", lg.BlockNumber, lg.TxHash.Hex(), lg.Index)
	if _, ok := r.seen[id]; ok {
		return true
	}
	r.seen[id] = struct{}{}
	return false
}
