package pgsql

import (
	"context"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/simbank_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/simbank_ledger/internal/models"
	"github.com/SscSPs/simbank_ledger/internal/utils/mapping"
)

const accountColumns = `account_id, user_id, name, kind, currency_code, balance, status,
	created_at, created_by, last_updated_at, last_updated_by`

type accountRepository struct {
	db DBTX
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

func (r *accountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "accounts", "query")
	}
	accs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, mapError(err, "accounts", "scan")
	}
	return mapping.ToDomainAccountSlice(accs), nil
}

// FindAccountByID retrieves an account by its ID.
func (r *accountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	rows, err := r.db.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = $1`, accountID)
	if err != nil {
		return nil, mapError(err, "account", accountID)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, mapError(err, "account", accountID)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (r *accountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	return r.queryAccounts(ctx, `SELECT `+accountColumns+` FROM accounts
		WHERE user_id = $1 ORDER BY created_at, account_id`, userID)
}

func (r *accountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	return r.queryAccounts(ctx, `SELECT `+accountColumns+` FROM accounts
		ORDER BY created_at, account_id LIMIT $1 OFFSET $2`, limit, offset)
}

// SaveAccount inserts a new account.
func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	_, err := r.db.Exec(ctx, `
		INSERT INTO accounts (account_id, user_id, name, kind, currency_code, balance, status,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.AccountID, m.UserID, m.Name, m.Kind, m.CurrencyCode, m.Balance, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "account", m.AccountID)
}

func (r *accountRepository) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, userID string, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1`, accountID, string(status), now, userID)
	return affectedOne(tag, err, "account", accountID)
}

// FindAccountsByIDsForUpdate locks the rows in ascending id order so that concurrent units
// touching the same pair of accounts cannot deadlock. Missing ids are absent from the map.
func (r *accountRepository) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	ids := slices.Clone(accountIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	accs, err := r.queryAccounts(ctx, `SELECT `+accountColumns+` FROM accounts
		WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE`, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.Account, len(accs))
	for _, acc := range accs {
		out[acc.AccountID] = acc
	}
	return out, nil
}

func (r *accountRepository) UpdateAccountBalance(ctx context.Context, accountID string, balance int64, userID string, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1`, accountID, balance, now, userID)
	return affectedOne(tag, err, "account", accountID)
}
