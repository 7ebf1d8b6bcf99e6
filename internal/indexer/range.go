package indexer

import "fmt"

// BlockRange is an inclusive block range.
type BlockRange struct {
	From uint64
	To   uint64
}

func (r BlockRange) Len() uint64 { return r.To - r.From + 1 }

// Ranges walks [from, to] in batches of at most size blocks.
type Ranges struct {
	next, to, size uint64
	done           bool
}

func NewRanges(from, to, size uint64) (*Ranges, error) {
	if size == 0 {
		return nil, fmt.Errorf("batch size must be greater than zero")
	}
	if to < from {
		return nil, fmt.Errorf("to block %d is before from block %d", to, from)
	}
	return &Ranges{next: from, to: to, size: size}, nil
}

// Next returns the following batch, or false once to has been covered.
func (r *Ranges) Next() (BlockRange, bool) {
	if r.done {
		return BlockRange{}, false
	}
	end := r.to
	if r.to-r.next >= r.size {
		end = r.next + r.size - 1
	}
	out := BlockRange{From: r.next, To: end}
	if end == r.to {
		r.done = true
	} else {
		r.next = end + 1
	}
	return out, true
}

// Count is the number of batches left.
func (r *Ranges) Count() uint64 {
	if r.done {
		return 0
	}
	return (r.to-r.next)/r.size + 1
}
