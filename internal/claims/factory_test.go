package claims

import (
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"clankerSDK/internal/chain/chaintest"
	"clankerSDK/internal/contracts"
)

var (
	hook   = common.HexToAddress("0x3333333333333333333333333333333333333333")
	locker = common.HexToAddress("0x4444444444444444444444444444444444444444")
)

func TestFactoryAdminCallsTargetFactory(t *testing.T) {
	client, c := baseClient(t, nil)

	team, err := client.ClaimTeamFees(token)
	if err != nil || team.To != c.FactoryV4 || team.Method != "claimTeamFees" {
		t.Fatalf("unexpected team fee claim %v %v", team, err)
	}

	setLocker, err := client.SetLocker(locker, hook, true)
	if err != nil {
		t.Fatalf("set locker: %v", err)
	}
	values, err := setLocker.ABI.Methods["setLocker"].Inputs.Unpack(setLocker.Data()[4:])
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if values[0].(common.Address) != locker || values[1].(common.Address) != hook || !values[2].(bool) {
		t.Fatalf("unexpected setLocker args %v", values)
	}

	v4Admin, err := client.SetAdmin(owner, true, false)
	if err != nil || v4Admin.To != c.FactoryV4 {
		t.Fatalf("unexpected v4 setAdmin %v %v", v4Admin, err)
	}
	v3Admin, err := client.SetAdmin(owner, false, true)
	if err != nil || v3Admin.To != c.FactoryV3 {
		t.Fatalf("unexpected v3 setAdmin %v %v", v3Admin, err)
	}
	deprecated, err := client.SetDeprecated(true, false)
	if err != nil || deprecated.Method != "setDeprecated" {
		t.Fatalf("unexpected setDeprecated %v %v", deprecated, err)
	}

	for name, build := range map[string]func() error{
		"hook":      func() error { _, err := client.SetHook(hook, true); return err },
		"extension": func() error { _, err := client.SetExtension(c.Vault, true); return err },
		"mev":       func() error { _, err := client.SetMevModule(c.MevModule, false); return err },
		"team":      func() error { _, err := client.SetTeamFeeRecipient(owner); return err },
	} {
		if err := build(); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}

func TestFactoryAdminRejectsZeroAddresses(t *testing.T) {
	client, _ := baseClient(t, nil)
	if _, err := client.SetAdmin(common.Address{}, true, false); err == nil {
		t.Fatalf("expected zero admin error")
	}
	if _, err := client.SetLocker(locker, common.Address{}, true); err == nil {
		t.Fatalf("expected zero hook error")
	}
	if _, err := client.SetTeamFeeRecipient(common.Address{}); err == nil {
		t.Fatalf("expected zero recipient error")
	}
	if _, err := New(contracts.Chain{ID: 1}, nil).ClaimTeamFees(token); err == nil {
		t.Fatalf("expected missing factory error")
	}
}

func TestDeploymentInfoDecodesTuple(t *testing.T) {
	parsed, err := contracts.FactoryV4ABI()
	if err != nil {
		t.Fatalf("abi: %v", err)
	}
	want := contracts.TokenDeploymentInfo{
		Token:      token,
		Hook:       hook,
		Locker:     locker,
		Extensions: []common.Address{owner},
	}
	encoded, err := parsed.Methods["tokenDeploymentInfo"].Outputs.Pack(want)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	backend := chaintest.New(contracts.BaseChainID)
	backend.CallFn = func(msg ethereum.CallMsg) ([]byte, error) { return encoded, nil }
	client, _ := baseClient(t, backend)

	got, err := client.DeploymentInfo(context.Background(), token)
	if err != nil {
		t.Fatalf("deployment info: %v", err)
	}
	if got.Hook != hook || got.Locker != locker || len(got.Extensions) != 1 || got.Extensions[0] != owner {
		t.Fatalf("unexpected info %+v", got)
	}

	empty, err := parsed.Methods["tokenDeploymentInfo"].Outputs.Pack(contracts.TokenDeploymentInfo{})
	if err != nil {
		t.Fatalf("pack empty: %v", err)
	}
	backend.CallFn = func(msg ethereum.CallMsg) ([]byte, error) { return empty, nil }
	if _, err := client.DeploymentInfo(context.Background(), token); err == nil || !strings.Contains(err.Error(), "not deployed") {
		t.Fatalf("expected unknown token error, got %v", err)
	}
}

func TestDeploymentInfoV3DecodesOutputs(t *testing.T) {
	parsed, err := contracts.FactoryV3ABI()
	if err != nil {
		t.Fatalf("abi: %v", err)
	}
	encoded, err := parsed.Methods["deploymentInfoForToken"].Outputs.Pack(token, big.NewInt(42), locker)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	backend := chaintest.New(contracts.BaseChainID)
	backend.CallFn = func(msg ethereum.CallMsg) ([]byte, error) { return encoded, nil }
	client, c := baseClient(t, backend)

	got, err := client.DeploymentInfoV3(context.Background(), token)
	if err != nil {
		t.Fatalf("deployment info: %v", err)
	}
	if got.PositionId.Int64() != 42 || got.Locker != locker {
		t.Fatalf("unexpected info %+v", got)
	}
	if calls := backend.Calls(); len(calls) != 1 || *calls[0].To != c.FactoryV3 {
		t.Fatalf("expected one call to the v3 factory, got %v", calls)
	}
}

func TestUpdateRecipientV3EncodesPosition(t *testing.T) {
	client, c := baseClient(t, nil)
	recipient := common.HexToAddress("0x2222222222222222222222222222222222222222")

	creator, err := client.UpdateCreatorRewardRecipientV3(big.NewInt(7), recipient)
	if err != nil {
		t.Fatalf("creator: %v", err)
	}
	if creator.To != c.LockerV3 {
		t.Fatalf("unexpected target %s", creator.To.Hex())
	}
	values, err := creator.ABI.Methods["updateCreatorRewardRecipient"].Inputs.Unpack(creator.Data()[4:])
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if values[0].(*big.Int).Int64() != 7 || values[1].(common.Address) != recipient {
		t.Fatalf("unexpected args %v", values)
	}

	iface, err := client.UpdateInterfaceRewardRecipientV3(big.NewInt(7), recipient)
	if err != nil || iface.Method != "updateInterfaceRewardRecipient" {
		t.Fatalf("unexpected interface update %v %v", iface, err)
	}
	if _, err := client.UpdateInterfaceRewardRecipientV3(nil, recipient); err == nil {
		t.Fatalf("expected missing position error")
	}
	if _, err := client.UpdateCreatorRewardRecipientV3(big.NewInt(7), common.Address{}); err == nil {
		t.Fatalf("expected zero recipient error")
	}
}
