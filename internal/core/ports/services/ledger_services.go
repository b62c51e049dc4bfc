package services

import (
	"context"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/simbank_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/simbank_ledger/internal/dto"
)

// PostingRequest is one call into the balance mutator.
type PostingRequest struct {
	AccountID    string
	Delta        int64 // signed minor units
	Description  string
	Status       domain.TransactionStatus // defaults to POSTED
	Actor        string
	AdminMessage string
}

// Posting is the outcome of a balance mutation.
type Posting struct {
	Transaction domain.Transaction
	NewBalance  int64
}

// ReclassifyRequest moves an existing ledger entry to another status.
type ReclassifyRequest struct {
	TransactionID string
	Status        domain.TransactionStatus
	AdminMessage  string
	Actor         string
}

// Reclassification is the outcome of a status change. Delta is zero when the entry's
// contribution to the balance did not change.
type Reclassification struct {
	Transaction domain.Transaction
	From        domain.TransactionStatus
	Delta       int64
	NewBalance  int64
	Changed     bool
}

// BalanceMutator is the single choke point that changes an account balance.
type BalanceMutator interface {
	// Apply runs one posting in its own atomic unit and publishes its audit record.
	Apply(ctx context.Context, req PostingRequest) (*Posting, error)

	// ApplyInTx runs one posting inside the caller's atomic unit. The caller publishes
	// the returned posting after its unit commits.
	ApplyInTx(ctx context.Context, tx portsrepo.Repositories, req PostingRequest) (*Posting, error)

	// Publish emits the audit records of committed postings. It never blocks on the sink.
	Publish(ctx context.Context, postings ...Posting)

	// ReclassifyInTx changes an entry's status inside the caller's atomic unit and moves
	// the balance when the entry starts or stops counting towards it.
	ReclassifyInTx(ctx context.Context, tx portsrepo.Repositories, req ReclassifyRequest) (*Reclassification, error)

	// PublishReclassification emits the audit record of a committed balance-moving reclassification.
	PublishReclassification(ctx context.Context, r Reclassification)
}

// LedgerReconcilerSvc verifies the balance reconstruction invariant.
type LedgerReconcilerSvc interface {
	// Reconcile sums the POSTED entries of an account and compares them with its balance.
	Reconcile(ctx context.Context, accountID string) (*dto.ReconciliationReport, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	BalanceMutator
	LedgerReconcilerSvc
}
