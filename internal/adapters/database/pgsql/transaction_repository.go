package pgsql

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/simbank_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/simbank_ledger/internal/models"
	"github.com/SscSPs/simbank_ledger/internal/utils/mapping"
	"github.com/SscSPs/simbank_ledger/internal/utils/pagination"
)

const transactionColumns = `transaction_id, sequence, account_id, posted_at, description, amount,
	balance_after, status, admin_message, created_at, created_by, last_updated_at, last_updated_by`

type transactionRepository struct {
	db DBTX
}

var _ portsrepo.TransactionRepositoryFacade = (*transactionRepository)(nil)

func (r *transactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "transactions", "query")
	}
	txns, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, mapError(err, "transactions", "scan")
	}
	return mapping.ToDomainTransactionSlice(txns), nil
}

func (r *transactionRepository) findOne(ctx context.Context, query, transactionID string) (*domain.Transaction, error) {
	rows, err := r.db.Query(ctx, query, transactionID)
	if err != nil {
		return nil, mapError(err, "transaction", transactionID)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, mapError(err, "transaction", transactionID)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

func (r *transactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return r.findOne(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1`, transactionID)
}

func (r *transactionRepository) FindTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return r.findOne(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1 FOR UPDATE`, transactionID)
}

// ListTransactionsByAccountID pages newest first. The token carries the sequence of the
// last entry returned; the next page starts strictly below it.
func (r *transactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	before := int64(math.MaxInt64)
	if nextToken != nil && *nextToken != "" {
		_, seq, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		before = seq
	}

	txns, err := r.queryTransactions(ctx, `SELECT `+transactionColumns+` FROM transactions
		WHERE account_id = $1 AND sequence < $2
		ORDER BY sequence DESC LIMIT $3`, accountID, before, limit+1)
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if limit > 0 && len(txns) > limit {
		txns = txns[:limit]
		last := txns[limit-1]
		token := pagination.EncodeToken(last.PostedAt, last.Sequence)
		next = &token
	}
	return txns, next, nil
}

func (r *transactionRepository) FindAllTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	return r.queryTransactions(ctx, `SELECT `+transactionColumns+` FROM transactions
		WHERE account_id = $1 ORDER BY sequence`, accountID)
}

func (r *transactionRepository) ListTransactions(ctx context.Context, limit int, offset int) ([]domain.Transaction, error) {
	return r.queryTransactions(ctx, `SELECT `+transactionColumns+` FROM transactions
		ORDER BY sequence LIMIT $1 OFFSET $2`, limit, offset)
}

// InsertTransaction appends an entry; the database assigns its sequence.
func (r *transactionRepository) InsertTransaction(ctx context.Context, txn *domain.Transaction) error {
	m := mapping.ToModelTransaction(*txn)
	err := r.db.QueryRow(ctx, `
		INSERT INTO transactions (transaction_id, account_id, posted_at, description, amount,
			balance_after, status, admin_message, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING sequence`,
		m.TransactionID, m.AccountID, m.PostedAt, m.Description, m.Amount,
		m.BalanceAfter, m.Status, m.AdminMessage, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	).Scan(&txn.Sequence)
	return mapError(err, "transaction", m.TransactionID)
}

func (r *transactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, adminMessage string, userID string, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE transactions SET status = $2, admin_message = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1`, transactionID, string(status), adminMessage, now, userID)
	return affectedOne(tag, err, "transaction", transactionID)
}
