package storage

import (
	"context"

	"clankerSDK/internal/model"
)

// Storage is a sink for scanned tokens and the deployment journal.
type Storage interface {
	PutTokens(ctx context.Context, tokens []model.TokenCreated) error
	PutDecodeErrors(ctx context.Context, records []model.DecodeError) error
	PutDeployment(ctx context.Context, d model.Deployment) error
}
