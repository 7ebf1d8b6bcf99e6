// Package vanity searches deployment salts whose predicted address ends
// with a chosen hex suffix.
package vanity

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"runtime"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxAttempts bounds a search when Request.MaxAttempts is zero.
const DefaultMaxAttempts uint64 = 1 << 24

// perWorker is how many consecutive stripes each worker scans per round.
const perWorker = 1024

// ErrSaltNotFound is returned when no salt within the bound matches.
var ErrSaltNotFound = errors.New("vanity salt not found")

// Request describes one search. Salts are bytes32(uint256(Start+i)).
type Request struct {
	Suffix      string
	Start       uint64
	MaxAttempts uint64
	// Workers defaults to GOMAXPROCS. The result does not depend on it.
	Workers int
}

// Result is the lowest matching counter of a search.
type Result struct {
	Salt            [32]byte       `json:"salt"`
	ExpectedAddress common.Address `json:"expectedAddress"`
	// Attempts counts salts up to and including the match.
	Attempts uint64 `json:"attempts"`
}

// SaltAt returns bytes32(uint256(counter)).
func SaltAt(counter uint64) [32]byte {
	var salt [32]byte
	new(big.Int).SetUint64(counter).FillBytes(salt[:])
	return salt
}

// NormalizeSuffix lower-cases a hex suffix and strips any 0x prefix.
func NormalizeSuffix(suffix string) (string, error) {
	s := strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(suffix, "0x"), "0X"))
	if s == "" {
		return "", fmt.Errorf("suffix is required")
	}
	if len(s) > 40 {
		return "", fmt.Errorf("suffix %q longer than an address", suffix)
	}
	if _, err := hex.DecodeString(padEven(s)); err != nil {
		return "", fmt.Errorf("suffix %q is not hex", suffix)
	}
	return s, nil
}

// Matches reports whether addr ends with the normalized suffix.
func Matches(addr common.Address, suffix string) bool {
	return strings.HasSuffix(hex.EncodeToString(addr[:]), suffix)
}

// Search scans counters in rounds. Within a round each worker takes a stripe
// of counters; the lowest matching counter of the first round with a match
// wins, so the result is the same for any worker count.
func Search(ctx context.Context, predictor Predictor, req Request) (Result, error) {
	suffix, err := NormalizeSuffix(req.Suffix)
	if err != nil {
		return Result{}, err
	}
	maxAttempts := req.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = DefaultMaxAttempts
	}
	workers := req.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	end := req.Start + maxAttempts
	if end < req.Start {
		return Result{}, fmt.Errorf("search range overflows uint64")
	}
	roundSize := uint64(workers) * perWorker

	for base := req.Start; base < end; base += roundSize {
		roundEnd := base + roundSize
		if roundEnd > end || roundEnd < base {
			roundEnd = end
		}

		found := make([]*Result, workers)
		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < workers; w++ {
			w := w
			g.Go(func() error {
				for i := base + uint64(w); i < roundEnd; i += uint64(workers) {
					if err := gctx.Err(); err != nil {
						return err
					}
					salt := SaltAt(i)
					addr, err := predictor.Predict(gctx, salt)
					if err != nil {
						return fmt.Errorf("predict salt %d: %w", i, err)
					}
					if Matches(addr, suffix) {
						found[w] = &Result{Salt: salt, ExpectedAddress: addr, Attempts: i - req.Start + 1}
						return nil
					}
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return Result{}, err
		}

		var best *Result
		for _, r := range found {
			if r != nil && (best == nil || r.Attempts < best.Attempts) {
				best = r
			}
		}
		if best != nil {
			return *best, nil
		}
	}
	return Result{}, fmt.Errorf("suffix %s after %d attempts: %w", suffix, maxAttempts, ErrSaltNotFound)
}

func padEven(s string) string {
	if len(s)%2 == 1 {
		return "0" + s
	}
	return s
}
