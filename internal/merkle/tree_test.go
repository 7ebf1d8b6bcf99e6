package merkle

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

func testEntries() []Entry {
	return []Entry{
		{Account: common.HexToAddress("0x1111111111111111111111111111111111111111"), Amount: big.NewInt(5000)},
		{Account: common.HexToAddress("0x2222222222222222222222222222222222222222"), Amount: big.NewInt(2500)},
		{Account: common.HexToAddress("0x3333333333333333333333333333333333333333"), Amount: big.NewInt(1000)},
		{Account: common.HexToAddress("0x4444444444444444444444444444444444444444"), Amount: big.NewInt(1500)},
		{Account: common.HexToAddress("0x5555555555555555555555555555555555555555"), Amount: big.NewInt(1)},
	}
}

func TestProofsVerify(t *testing.T) {
	entries := testEntries()
	tree, err := New(entries)
	if err != nil {
		t.Fatalf("new tree: %v", err)
	}
	for _, entry := range entries {
		proof, err := tree.Proof(entry.Account, entry.Amount)
		if err != nil {
			t.Fatalf("proof for %s: %v", entry.Account.Hex(), err)
		}
		if !Verify(tree.Root(), entry, proof) {
			t.Fatalf("proof for %s does not verify", entry.Account.Hex())
		}
		wrong := Entry{Account: entry.Account, Amount: new(big.Int).Add(entry.Amount, big.NewInt(1))}
		if Verify(tree.Root(), wrong, proof) {
			t.Fatalf("proof verified for wrong amount")
		}
	}
}

func TestSingleLeafRootIsLeaf(t *testing.T) {
	entry := testEntries()[0]
	tree, err := New([]Entry{entry})
	if err != nil {
		t.Fatalf("new tree: %v", err)
	}
	leaf, err := LeafHash(entry)
	if err != nil {
		t.Fatalf("leaf hash: %v", err)
	}
	if tree.Root() != leaf {
		t.Fatalf("expected root to equal leaf")
	}
	proof, err := tree.Proof(entry.Account, entry.Amount)
	if err != nil {
		t.Fatalf("proof: %v", err)
	}
	if len(proof) != 0 {
		t.Fatalf("expected empty proof, got %d nodes", len(proof))
	}
}

func TestTwoLeafRoot(t *testing.T) {
	entries := testEntries()[:2]
	tree, err := New(entries)
	if err != nil {
		t.Fatalf("new tree: %v", err)
	}
	a, _ := LeafHash(entries[0])
	b, _ := LeafHash(entries[1])
	var want common.Hash
	if a.Big().Cmp(b.Big()) < 0 {
		want = crypto.Keccak256Hash(a[:], b[:])
	} else {
		want = crypto.Keccak256Hash(b[:], a[:])
	}
	if tree.Root() != want {
		t.Fatalf("root mismatch: %s vs %s", tree.Root().Hex(), want.Hex())
	}
}

func TestRootIndependentOfInputOrder(t *testing.T) {
	entries := testEntries()
	reversed := make([]Entry, len(entries))
	for i := range entries {
		reversed[len(entries)-1-i] = entries[i]
	}
	a, err := New(entries)
	if err != nil {
		t.Fatalf("new tree: %v", err)
	}
	b, err := New(reversed)
	if err != nil {
		t.Fatalf("new tree: %v", err)
	}
	if a.Root() != b.Root() {
		t.Fatalf("root depends on input order")
	}
}

func TestUnknownEntry(t *testing.T) {
	tree, err := New(testEntries())
	if err != nil {
		t.Fatalf("new tree: %v", err)
	}
	_, err = tree.Proof(common.HexToAddress("0x9999999999999999999999999999999999999999"), big.NewInt(1))
	if !errors.Is(err, ErrUnknownEntry) {
		t.Fatalf("expected ErrUnknownEntry, got %v", err)
	}
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for empty tree")
	}
}

func TestProofWithNilAmount(t *testing.T) {
	tree, err := New(testEntries())
	if err != nil {
		t.Fatalf("new tree: %v", err)
	}
	_, err = tree.Proof(common.HexToAddress("0x1111111111111111111111111111111111111111"), nil)
	if !errors.Is(err, ErrUnknownEntry) {
		t.Fatalf("expected ErrUnknownEntry, got %v", err)
	}
}
