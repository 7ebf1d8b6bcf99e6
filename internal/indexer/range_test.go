package indexer

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func collect(t *testing.T, from, to, size uint64) []BlockRange {
	t.Helper()
	ranges, err := NewRanges(from, to, size)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []BlockRange
	for {
		r, ok := ranges.Next()
		if !ok {
			return got
		}
		got = append(got, r)
	}
}

func TestRangesBatches(t *testing.T) {
	got := collect(t, 100, 104, 2)
	want := []BlockRange{{From: 100, To: 101}, {From: 102, To: 103}, {From: 104, To: 104}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ranges mismatch: %+v != %+v", got, want)
	}
	if got[2].Len() != 1 {
		t.Fatalf("unexpected len %d", got[2].Len())
	}
}

func TestRangesSingleAndCount(t *testing.T) {
	if got := collect(t, 5, 5, 10); !reflect.DeepEqual(got, []BlockRange{{From: 5, To: 5}}) {
		t.Fatalf("ranges mismatch: %+v", got)
	}
	ranges, _ := NewRanges(0, 9, 3)
	if ranges.Count() != 4 {
		t.Fatalf("expected 4 batches, got %d", ranges.Count())
	}
	ranges.Next()
	if ranges.Count() != 3 {
		t.Fatalf("expected 3 batches left, got %d", ranges.Count())
	}
}

func TestRangesUpToMaxBlock(t *testing.T) {
	const max = ^uint64(0)
	got := collect(t, max-2, max, 2)
	want := []BlockRange{{From: max - 2, To: max - 1}, {From: max, To: max}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ranges mismatch: %+v", got)
	}
}

func TestRangesInvalid(t *testing.T) {
	if _, err := NewRanges(10, 9, 1); err == nil {
		t.Fatalf("expected error for invalid range")
	}
	if _, err := NewRanges(1, 10, 0); err == nil {
		t.Fatalf("expected error for zero batch size")
	}
}

func TestRetryStopsOnContextError(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 5, time.Millisecond, func(context.Context) error {
		calls++
		return context.DeadlineExceeded
	})
	if !errors.Is(err, context.DeadlineExceeded) || calls != 1 {
		t.Fatalf("expected one attempt, got %d (%v)", calls, err)
	}
}

func TestRetryRerunsFailedLogFilter(t *testing.T) {
	calls := 0
	errFilter := errors.New("eth_getLogs: upstream timeout")
	err := withRetry(context.Background(), 3, time.Millisecond, func(context.Context) error {
		calls++
		if calls < 3 {
			return errFilter
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Fatalf("expected success on third attempt, got %d (%v)", calls, err)
	}

	calls = 0
	err = withRetry(context.Background(), 2, time.Millisecond, func(context.Context) error {
		calls++
		return errFilter
	})
	if !errors.Is(err, errFilter) || calls != 3 {
		t.Fatalf("expected three attempts ending in the filter error, got %d (%v)", calls, err)
	}
}
