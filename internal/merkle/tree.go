// Package merkle builds OpenZeppelin StandardMerkleTree compatible trees over
// airdrop allocations.
package merkle

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrUnknownEntry is returned when a proof is requested for an entry that is
// not part of the tree.
var ErrUnknownEntry = errors.New("entry not in tree")

// Entry is one airdrop allocation.
type Entry struct {
	Account common.Address `json:"account"`
	Amount  *big.Int       `json:"amount"`
}

// Tree is an immutable merkle tree stored as a flat array, root first.
type Tree struct {
	nodes   []common.Hash
	entries []Entry
	// position of each entry's leaf in nodes
	index []int
}

var leafArgs = func() abi.Arguments {
	addressType, _ := abi.NewType("address", "", nil)
	uintType, _ := abi.NewType("uint256", "", nil)
	return abi.Arguments{{Type: addressType}, {Type: uintType}}
}()

// LeafHash is keccak256(keccak256(abi.encode(account, amount))).
func LeafHash(entry Entry) (common.Hash, error) {
	if entry.Amount == nil || entry.Amount.Sign() < 0 {
		return common.Hash{}, fmt.Errorf("invalid amount for %s", entry.Account.Hex())
	}
	encoded, err := leafArgs.Pack(entry.Account, entry.Amount)
	if err != nil {
		return common.Hash{}, fmt.Errorf("encode leaf: %w", err)
	}
	return crypto.Keccak256Hash(crypto.Keccak256(encoded)), nil
}

// New builds a tree. Leaves are sorted by hash as the OpenZeppelin library
// does by default.
func New(entries []Entry) (*Tree, error) {
	if len(entries) == 0 {
		return nil, errors.New("merkle tree needs at least one entry")
	}

	type hashed struct {
		hash  common.Hash
		entry int
	}
	leaves := make([]hashed, len(entries))
	for i, entry := range entries {
		h, err := LeafHash(entry)
		if err != nil {
			return nil, err
		}
		leaves[i] = hashed{hash: h, entry: i}
	}
	sort.SliceStable(leaves, func(i, j int) bool {
		return bytes.Compare(leaves[i].hash[:], leaves[j].hash[:]) < 0
	})

	nodes := make([]common.Hash, 2*len(leaves)-1)
	index := make([]int, len(entries))
	for i, leaf := range leaves {
		pos := len(nodes) - 1 - i
		nodes[pos] = leaf.hash
		index[leaf.entry] = pos
	}
	for i := len(nodes) - 1 - len(leaves); i >= 0; i-- {
		nodes[i] = hashPair(nodes[2*i+1], nodes[2*i+2])
	}

	kept := make([]Entry, len(entries))
	copy(kept, entries)
	return &Tree{nodes: nodes, entries: kept, index: index}, nil
}

// Root returns the merkle root.
func (t *Tree) Root() common.Hash {
	return t.nodes[0]
}

// Proof returns the sibling path of the entry for account with amount.
func (t *Tree) Proof(account common.Address, amount *big.Int) ([]common.Hash, error) {
	if amount == nil {
		return nil, fmt.Errorf("proof for %s: nil amount: %w", account.Hex(), ErrUnknownEntry)
	}
	for i, entry := range t.entries {
		if entry.Account == account && entry.Amount.Cmp(amount) == 0 {
			return t.proofAt(t.index[i]), nil
		}
	}
	return nil, fmt.Errorf("proof for %s: %w", account.Hex(), ErrUnknownEntry)
}

func (t *Tree) proofAt(pos int) []common.Hash {
	var proof []common.Hash
	for pos > 0 {
		proof = append(proof, t.nodes[sibling(pos)])
		pos = (pos - 1) / 2
	}
	return proof
}

// Verify checks a proof against root.
func Verify(root common.Hash, entry Entry, proof []common.Hash) bool {
	h, err := LeafHash(entry)
	if err != nil {
		return false
	}
	for _, p := range proof {
		h = hashPair(h, p)
	}
	return h == root
}

// ProofBytes converts a proof into the bytes32[] argument form.
func ProofBytes(proof []common.Hash) [][32]byte {
	out := make([][32]byte, len(proof))
	for i, p := range proof {
		out[i] = p
	}
	return out
}

func sibling(pos int) int {
	if pos%2 == 1 {
		return pos + 1
	}
	return pos - 1
}

func hashPair(a, b common.Hash) common.Hash {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return crypto.Keccak256Hash(a[:], b[:])
}
