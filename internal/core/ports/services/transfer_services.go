package services

import (
	"context"

	"github.com/SscSPs/simbank_ledger/internal/dto"
)

// TransferSvc moves funds between two accounts of the same user.
type TransferSvc interface {
	Transfer(ctx context.Context, req dto.TransferRequest, userID string) (*dto.TransferResult, error)
}
