package services

import (
	"context"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	"github.com/SscSPs/simbank_ledger/internal/dto"
)

// AuditSink receives one record per completed money movement. Emit must not block the caller.
type AuditSink interface {
	Emit(ctx context.Context, rec domain.AuditRecord)
}

// AdminOverrideSvc defines out-of-band ledger corrections.
type AdminOverrideSvc interface {
	// AdminAdjust credits or debits an account through the balance mutator.
	AdminAdjust(ctx context.Context, req dto.AdjustBalanceRequest, adminID string) (*Posting, error)

	// SetTransactionStatus re-tags an entry and records the admin message.
	SetTransactionStatus(ctx context.Context, transactionID string, req dto.SetTransactionStatusRequest, adminID string) (*domain.Transaction, error)
}

// StudioRepository is the admin view over one entity kind.
type StudioRepository interface {
	Kind() domain.EntityKind
	Find(ctx context.Context, id string) (any, error)
	List(ctx context.Context, limit int, offset int) ([]any, error)
	Delete(ctx context.Context, id string) error
}

// AdminStudioSvc selects a studio repository from the closed set of entity kinds.
type AdminStudioSvc interface {
	Studio(kind domain.EntityKind) (StudioRepository, error)
}

// AdminSvcFacade combines all admin service interfaces
type AdminSvcFacade interface {
	AdminOverrideSvc
	AdminStudioSvc
}
