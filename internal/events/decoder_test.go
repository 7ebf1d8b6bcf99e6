package events

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"clankerSDK/internal/contracts"
)

var (
	factory = common.HexToAddress("0xE85A59c628F7d27878ACeB4bf3b35733630083a9")
	token   = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa4b07")
	admin   = common.HexToAddress("0x1111111111111111111111111111111111111111")
)

func topicFromAddress(addr common.Address) common.Hash {
	return common.BytesToHash(common.LeftPadBytes(addr.Bytes(), 32))
}

func v4Log(t *testing.T) types.Log {
	t.Helper()
	parsed, err := contracts.FactoryV4ABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}
	event := parsed.Events["TokenCreated"]
	ext := common.HexToAddress("0x8E845EAd15737bF71904A30BdDD3aEE76d6ADF6C")
	data, err := event.Inputs.NonIndexed().Pack(
		admin,
		"ipfs://image",
		"TheName",
		"SYM",
		"",
		`{"interface":"SDK"}`,
		big.NewInt(-230400),
		common.HexToAddress("0xDd5EeaFf7BD481AD55Db083062b13a3cdf0A68CC"),
		[32]byte{1},
		common.HexToAddress("0x4200000000000000000000000000000000000006"),
		common.HexToAddress("0x29d17C1A8D851d7d4cA97FAe97AcAdb398D9cCE0"),
		common.HexToAddress("0xE143f9872A33c955F23cF442BB4B1EFB3A7402A2"),
		big.NewInt(1000),
		[]common.Address{ext},
	)
	if err != nil {
		t.Fatalf("pack TokenCreated: %v", err)
	}
	return types.Log{
		Address:     factory,
		Topics:      []common.Hash{event.ID, topicFromAddress(token), topicFromAddress(admin)},
		Data:        data,
		BlockNumber: 100,
		TxHash:      common.HexToHash("0xdeadbeef"),
		Index:       3,
	}
}

func TestDecodeV4(t *testing.T) {
	decoder, err := NewDecoder(8453)
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	record, err := decoder.Decode(v4Log(t))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record.Version != VersionV4 || record.TokenAddress != token.Hex() || record.TokenAdmin != admin.Hex() {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.StartingTick != -230400 || record.Name != "TheName" || record.Symbol != "SYM" {
		t.Fatalf("unexpected token fields: %+v", record)
	}
	if len(record.Extensions) != 1 || record.ExtensionsSupply != "1000" || record.LogIndex != 3 {
		t.Fatalf("unexpected extension fields: %+v", record)
	}
}

func TestDecodeV3(t *testing.T) {
	parsed, err := contracts.FactoryV3ABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}
	event := parsed.Events["TokenCreated"]
	iface := common.HexToAddress("0x2222222222222222222222222222222222222222")
	data, err := event.Inputs.NonIndexed().Pack(
		admin,
		iface,
		big.NewInt(77),
		"TheName",
		"SYM",
		big.NewInt(-119200),
		"",
		big.NewInt(0),
		big.NewInt(0),
		uint8(0),
		admin,
	)
	if err != nil {
		t.Fatalf("pack TokenCreated: %v", err)
	}
	lg := types.Log{
		Address: common.HexToAddress("0x2A787b2362021cC3eEa3C24C4748a6cD5B687382"),
		Topics:  []common.Hash{event.ID, topicFromAddress(token), topicFromAddress(admin), topicFromAddress(iface)},
		Data:    data,
	}

	decoder, err := NewDecoder(8453)
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	record, err := decoder.Decode(lg)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record.Version != VersionV3 || record.StartingTick != -119200 || record.PositionID != "77" {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.InterfaceAdmin != iface.Hex() || record.InterfaceRewardRecipient != iface.Hex() {
		t.Fatalf("unexpected interface fields: %+v", record)
	}
}

func TestFind(t *testing.T) {
	decoder, err := NewDecoder(8453)
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	other := types.Log{Topics: []common.Hash{common.HexToHash("0x01")}}
	lg := v4Log(t)
	record, err := decoder.Find([]*types.Log{&other, &lg})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if record.TokenAddress != token.Hex() {
		t.Fatalf("unexpected token %s", record.TokenAddress)
	}
	if _, err := decoder.Find([]*types.Log{&other}); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestDecodeTopicCountMismatch(t *testing.T) {
	decoder, err := NewDecoder(8453)
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	lg := v4Log(t)
	lg.Topics = lg.Topics[:2]
	if _, err := decoder.Decode(lg); err == nil {
		t.Fatalf("expected error for missing indexed topic")
	}
}

func TestVersionOf(t *testing.T) {
	d, err := NewDecoder(contracts.BaseChainID)
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	topics := d.Topics()
	if d.VersionOf(topics[0]) != VersionV3 || d.VersionOf(topics[1]) != VersionV4 {
		t.Fatalf("unexpected versions for %v", topics)
	}
	if d.VersionOf(common.Hash{}) != "" {
		t.Fatalf("expected empty version for unknown topic")
	}
}
