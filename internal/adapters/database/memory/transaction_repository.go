package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/simbank_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/simbank_ledger/internal/utils/pagination"
)

type transactionRepository struct {
	sc *scope
}

var _ portsrepo.TransactionRepositoryFacade = (*transactionRepository)(nil)

func (r *transactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, ok := r.sc.transactions.get(transactionID)
	if !ok {
		return nil, notFound("transaction", transactionID)
	}
	return &txn, nil
}

func (r *transactionRepository) byAccount(accountID string) []domain.Transaction {
	var out []domain.Transaction
	for _, txn := range r.sc.transactions.all() {
		if txn.AccountID == accountID {
			out = append(out, txn)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out
}

func (r *transactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	before := int64(-1)
	if nextToken != nil && *nextToken != "" {
		_, seq, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		before = seq
	}

	asc := r.byAccount(accountID)
	out := make([]domain.Transaction, 0, limit)
	for i := len(asc) - 1; i >= 0; i-- {
		if before >= 0 && asc[i].Sequence >= before {
			continue
		}
		out = append(out, asc[i])
		if len(out) == limit+1 {
			break
		}
	}

	var next *string
	if limit > 0 && len(out) > limit {
		out = out[:limit]
		last := out[limit-1]
		token := pagination.EncodeToken(last.PostedAt, last.Sequence)
		next = &token
	}
	return out, next, nil
}

func (r *transactionRepository) FindAllTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	return r.byAccount(accountID), nil
}

func (r *transactionRepository) ListTransactions(ctx context.Context, limit int, offset int) ([]domain.Transaction, error) {
	all := r.sc.transactions.all()
	sort.Slice(all, func(i, j int) bool { return all[i].Sequence < all[j].Sequence })
	return page(all, limit, offset), nil
}

func (r *transactionRepository) InsertTransaction(ctx context.Context, txn *domain.Transaction) error {
	if _, exists := r.sc.transactions.get(txn.TransactionID); exists {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.TransactionID)
	}
	txn.Sequence = r.sc.s.seq.Add(1)
	r.sc.transactions.put(txn.TransactionID, *txn)
	return nil
}

func (r *transactionRepository) FindTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	if err := r.sc.lock(ctx, "transaction:"+transactionID); err != nil {
		return nil, err
	}
	return r.FindTransactionByID(ctx, transactionID)
}

func (r *transactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, adminMessage string, userID string, now time.Time) error {
	txn, ok := r.sc.transactions.get(transactionID)
	if !ok {
		return notFound("transaction", transactionID)
	}
	txn.Status = status
	txn.AdminMessage = adminMessage
	txn.Touch(userID, now)
	r.sc.transactions.put(transactionID, txn)
	return nil
}
