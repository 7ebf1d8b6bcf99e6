package claims

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"clankerSDK/internal/chain/chaintest"
	"clankerSDK/internal/contracts"
	"clankerSDK/internal/merkle"
)

var (
	owner = common.HexToAddress("0x1111111111111111111111111111111111111111")
	token = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa4b07")
)

func baseClient(t *testing.T, backend *chaintest.Backend) (*Client, contracts.Chain) {
	t.Helper()
	c, err := contracts.ChainByID(contracts.BaseChainID)
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if backend == nil {
		return New(c, nil), c
	}
	return New(c, backend), c
}

func TestClaimCallsTargetChainContracts(t *testing.T) {
	client, c := baseClient(t, nil)

	feeClaim, err := client.ClaimFees(owner, token)
	if err != nil {
		t.Fatalf("claim fees: %v", err)
	}
	if feeClaim.To != c.FeeLocker || feeClaim.Method != "claim" || feeClaim.ChainID != c.ID {
		t.Fatalf("unexpected fee claim %+v", feeClaim.View())
	}
	collect, err := client.CollectRewards(token)
	if err != nil || collect.To != c.LockerV4 {
		t.Fatalf("unexpected collect rewards %v %v", collect, err)
	}
	vault, err := client.VaultClaim(token)
	if err != nil || vault.To != c.Vault {
		t.Fatalf("unexpected vault claim %v %v", vault, err)
	}
	v3, err := client.ClaimRewardsV3(token)
	if err != nil || v3.To != c.FactoryV3 {
		t.Fatalf("unexpected v3 claim %v %v", v3, err)
	}
}

func TestUpdateRewardRecipientEncodesIndex(t *testing.T) {
	client, _ := baseClient(t, nil)
	recipient := common.HexToAddress("0x2222222222222222222222222222222222222222")
	call, err := client.UpdateRewardRecipient(token, 3, recipient)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	values, err := call.ABI.Methods["updateRewardRecipient"].Inputs.Unpack(call.Data()[4:])
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if values[1].(*big.Int).Int64() != 3 || values[2].(common.Address) != recipient {
		t.Fatalf("unexpected args %v", values)
	}
	if _, err := client.UpdateRewardAdmin(token, 0, common.Address{}); err == nil {
		t.Fatalf("expected zero admin error")
	}
}

func TestAvailableFeesReadsUint(t *testing.T) {
	backend := chaintest.New(contracts.BaseChainID)
	backend.CallFn = func(msg ethereum.CallMsg) ([]byte, error) {
		return common.LeftPadBytes(big.NewInt(777).Bytes(), 32), nil
	}
	client, c := baseClient(t, backend)
	fees, err := client.AvailableFees(context.Background(), owner, token)
	if err != nil {
		t.Fatalf("available fees: %v", err)
	}
	if fees.Int64() != 777 {
		t.Fatalf("unexpected fees %v", fees)
	}
	if calls := backend.Calls(); len(calls) != 1 || *calls[0].To != c.FeeLocker {
		t.Fatalf("unexpected calls %+v", calls)
	}
}

func TestTokenRewardsDecodesTuple(t *testing.T) {
	parsed, err := contracts.LockerV4ABI()
	if err != nil {
		t.Fatalf("abi: %v", err)
	}
	want := contracts.TokenRewardInfo{
		Token:            token,
		PositionId:       big.NewInt(9),
		NumPositions:     big.NewInt(1),
		RewardBps:        []uint16{8000, 2000},
		RewardAdmins:     []common.Address{owner, owner},
		RewardRecipients: []common.Address{owner, token},
	}
	encoded, err := parsed.Methods["tokenRewards"].Outputs.Pack(want)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	backend := chaintest.New(contracts.BaseChainID)
	backend.CallFn = func(msg ethereum.CallMsg) ([]byte, error) { return encoded, nil }
	client, _ := baseClient(t, backend)

	got, err := client.TokenRewards(context.Background(), token)
	if err != nil {
		t.Fatalf("token rewards: %v", err)
	}
	if got.PositionId.Int64() != 9 || len(got.RewardBps) != 2 || got.RewardBps[1] != 2000 || got.RewardRecipients[1] != token {
		t.Fatalf("unexpected rewards %+v", got)
	}
}

func TestAirdropClaimFromTree(t *testing.T) {
	entries := []merkle.Entry{
		{Account: owner, Amount: big.NewInt(1000)},
		{Account: common.HexToAddress("0x2222222222222222222222222222222222222222"), Amount: big.NewInt(500)},
		{Account: common.HexToAddress("0x3333333333333333333333333333333333333333"), Amount: big.NewInt(250)},
	}
	tree, err := merkle.New(entries)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	client, c := baseClient(t, nil)
	call, err := client.AirdropClaimFromTree(tree, token, owner, big.NewInt(1000))
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if call.To != c.Airdrop {
		t.Fatalf("unexpected target %s", call.To.Hex())
	}
	values, err := call.ABI.Methods["claim"].Inputs.Unpack(call.Data()[4:])
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	proof := values[3].([][32]byte)
	hashes := make([]common.Hash, len(proof))
	for i, p := range proof {
		hashes[i] = common.Hash(p)
	}
	if !merkle.Verify(tree.Root(), entries[0], hashes) {
		t.Fatalf("encoded proof does not verify")
	}
	if _, err := client.AirdropClaimFromTree(tree, token, owner, big.NewInt(1)); err == nil {
		t.Fatalf("expected unknown entry error")
	}
}

func TestUnconfiguredContract(t *testing.T) {
	c := contracts.Chain{ID: 1}
	if _, err := New(c, nil).VaultClaim(token); err == nil {
		t.Fatalf("expected missing contract error")
	}
	if _, err := New(contracts.Chain{ID: 1, Vault: token}, nil).VaultAvailable(context.Background(), token); err == nil {
		t.Fatalf("expected missing caller error")
	}
}
