package indexer

import (
	"time"

	"github.com/ethereum/go-ethereum/core/types"

	"clankerSDK/internal/events"
	"clankerSDK/internal/model"
)

func decodeError(decoder *events.Decoder, lg types.Log, err error) model.DecodeError {
	record := model.DecodeError{
		ChainID:     decoder.ChainID(),
		BlockNumber: lg.BlockNumber,
		TxHash:      lg.TxHash.Hex(),
		LogIndex:    uint64(lg.Index),
		Factory:     lg.Address.Hex(),
		DataLen:     len(lg.Data),
		Reason:      err.Error(),
		SeenAt:      time.Now().UTC(),
	}
	if len(lg.Topics) > 0 {
		record.Topic0 = lg.Topics[0].Hex()
		record.Version = decoder.VersionOf(lg.Topics[0])
	}
	return record
}
