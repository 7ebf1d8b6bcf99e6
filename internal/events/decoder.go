// Package events decodes the factory TokenCreated events.
package events

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"clankerSDK/internal/contracts"
	"clankerSDK/internal/model"
)

// ErrEventNotFound is returned when a receipt carries no TokenCreated log.
var ErrEventNotFound = errors.New("TokenCreated event not found")

const (
	VersionV3 = "v3.1"
	VersionV4 = "v4"
)

// Decoder decodes TokenCreated logs of both factory versions.
type Decoder struct {
	chainID uint64
	v3      abi.Event
	v4      abi.Event
}

// NewDecoder builds a decoder stamping records with chainID.
func NewDecoder(chainID uint64) (*Decoder, error) {
	v3ABI, err := contracts.FactoryV3ABI()
	if err != nil {
		return nil, err
	}
	v4ABI, err := contracts.FactoryV4ABI()
	if err != nil {
		return nil, err
	}
	return &Decoder{
		chainID: chainID,
		v3:      v3ABI.Events["TokenCreated"],
		v4:      v4ABI.Events["TokenCreated"],
	}, nil
}

// ChainID is the chain stamped on decoded records.
func (d *Decoder) ChainID() uint64 { return d.chainID }

// Topics returns the topic0 of every supported event.
func (d *Decoder) Topics() []common.Hash {
	return []common.Hash{d.v3.ID, d.v4.ID}
}

// VersionOf names the factory version whose TokenCreated has topic0, or "".
func (d *Decoder) VersionOf(topic0 common.Hash) string {
	switch topic0 {
	case d.v4.ID:
		return VersionV4
	case d.v3.ID:
		return VersionV3
	default:
		return ""
	}
}

// CanDecode checks if the log's topic0 is supported.
func (d *Decoder) CanDecode(lg types.Log) bool {
	if len(lg.Topics) == 0 {
		return false
	}
	return lg.Topics[0] == d.v3.ID || lg.Topics[0] == d.v4.ID
}

// Decode converts a log into a TokenCreated record.
func (d *Decoder) Decode(lg types.Log) (model.TokenCreated, error) {
	if len(lg.Topics) == 0 {
		return model.TokenCreated{}, fmt.Errorf("missing topics")
	}
	switch lg.Topics[0] {
	case d.v4.ID:
		return d.decodeV4(lg)
	case d.v3.ID:
		return d.decodeV3(lg)
	default:
		return model.TokenCreated{}, fmt.Errorf("unsupported topic0: %s", lg.Topics[0].Hex())
	}
}

// Find returns the first TokenCreated record in logs.
func (d *Decoder) Find(logs []*types.Log) (model.TokenCreated, error) {
	for _, lg := range logs {
		if lg == nil || !d.CanDecode(*lg) {
			continue
		}
		return d.Decode(*lg)
	}
	return model.TokenCreated{}, ErrEventNotFound
}

func (d *Decoder) decodeV4(lg types.Log) (model.TokenCreated, error) {
	var indexed struct {
		TokenAddress common.Address
		TokenAdmin   common.Address
	}
	if err := parseTopics(d.v4, lg, &indexed); err != nil {
		return model.TokenCreated{}, err
	}

	var payload struct {
		MsgSender        common.Address
		TokenImage       string
		TokenName        string
		TokenSymbol      string
		TokenMetadata    string
		TokenContext     string
		StartingTick     *big.Int
		PoolHook         common.Address
		PoolId           [32]byte
		PairedToken      common.Address
		Locker           common.Address
		MevModule        common.Address
		ExtensionsSupply *big.Int
		Extensions       []common.Address
	}
	if err := unpackNonIndexed(d.v4, lg.Data, &payload); err != nil {
		return model.TokenCreated{}, err
	}
	tick, err := int24FromBig(payload.StartingTick)
	if err != nil {
		return model.TokenCreated{}, err
	}

	record := baseRecord(d.chainID, VersionV4, lg)
	record.TokenAddress = indexed.TokenAddress.Hex()
	record.TokenAdmin = indexed.TokenAdmin.Hex()
	record.MsgSender = payload.MsgSender.Hex()
	record.Name = payload.TokenName
	record.Symbol = payload.TokenSymbol
	record.Image = payload.TokenImage
	record.Metadata = payload.TokenMetadata
	record.Context = payload.TokenContext
	record.StartingTick = tick
	record.PairedToken = payload.PairedToken.Hex()
	record.PoolHook = payload.PoolHook.Hex()
	record.PoolID = common.Hash(payload.PoolId).Hex()
	record.Locker = payload.Locker.Hex()
	record.MevModule = payload.MevModule.Hex()
	record.ExtensionsSupply = payload.ExtensionsSupply.String()
	for _, ext := range payload.Extensions {
		record.Extensions = append(record.Extensions, ext.Hex())
	}
	return record, nil
}

func (d *Decoder) decodeV3(lg types.Log) (model.TokenCreated, error) {
	var indexed struct {
		TokenAddress   common.Address
		CreatorAdmin   common.Address
		InterfaceAdmin common.Address
	}
	if err := parseTopics(d.v3, lg, &indexed); err != nil {
		return model.TokenCreated{}, err
	}

	var payload struct {
		CreatorRewardRecipient         common.Address
		InterfaceRewardRecipient       common.Address
		PositionId                     *big.Int
		Name                           string
		Symbol                         string
		StartingTickIfToken0IsNewToken *big.Int
		Metadata                       string
		AmountTokensBought             *big.Int
		VaultDuration                  *big.Int
		VaultPercentage                uint8
		MsgSender                      common.Address
	}
	if err := unpackNonIndexed(d.v3, lg.Data, &payload); err != nil {
		return model.TokenCreated{}, err
	}
	tick, err := int24FromBig(payload.StartingTickIfToken0IsNewToken)
	if err != nil {
		return model.TokenCreated{}, err
	}

	record := baseRecord(d.chainID, VersionV3, lg)
	record.TokenAddress = indexed.TokenAddress.Hex()
	record.TokenAdmin = indexed.CreatorAdmin.Hex()
	record.InterfaceAdmin = indexed.InterfaceAdmin.Hex()
	record.MsgSender = payload.MsgSender.Hex()
	record.Name = payload.Name
	record.Symbol = payload.Symbol
	record.Metadata = payload.Metadata
	record.StartingTick = tick
	record.PositionID = payload.PositionId.String()
	record.CreatorRewardRecipient = payload.CreatorRewardRecipient.Hex()
	record.InterfaceRewardRecipient = payload.InterfaceRewardRecipient.Hex()
	record.AmountTokensBought = payload.AmountTokensBought.String()
	record.VaultDuration = payload.VaultDuration.String()
	record.VaultPercentage = payload.VaultPercentage
	return record, nil
}

func baseRecord(chainID uint64, version string, lg types.Log) model.TokenCreated {
	return model.TokenCreated{
		Version:     version,
		ChainID:     chainID,
		BlockNumber: lg.BlockNumber,
		TxHash:      lg.TxHash.Hex(),
		LogIndex:    uint64(lg.Index),
		Factory:     lg.Address.Hex(),
	}
}

func parseTopics(event abi.Event, lg types.Log, out interface{}) error {
	indexed := indexedArguments(event.Inputs)
	if len(lg.Topics) != len(indexed)+1 {
		return fmt.Errorf("expected %d topics, got %d", len(indexed)+1, len(lg.Topics))
	}
	if err := abi.ParseTopics(out, indexed, lg.Topics[1:]); err != nil {
		return fmt.Errorf("parse topics: %w", err)
	}
	return nil
}

func indexedArguments(args abi.Arguments) abi.Arguments {
	indexed := make(abi.Arguments, 0, len(args))
	for _, arg := range args {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	return indexed
}

func unpackNonIndexed(event abi.Event, data []byte, out interface{}) error {
	values, err := event.Inputs.NonIndexed().Unpack(data)
	if err != nil {
		return fmt.Errorf("unpack %s: %w", event.Name, err)
	}
	if err := event.Inputs.NonIndexed().Copy(out, values); err != nil {
		return fmt.Errorf("copy %s: %w", event.Name, err)
	}
	return nil
}

func int24FromBig(value *big.Int) (int32, error) {
	if value == nil {
		return 0, fmt.Errorf("missing int24 value")
	}
	min := big.NewInt(-1 << 23)
	max := big.NewInt((1 << 23) - 1)
	if value.Cmp(min) < 0 || value.Cmp(max) > 0 {
		return 0, fmt.Errorf("int24 overflow: %s", value.String())
	}
	return int32(value.Int64()), nil
}
