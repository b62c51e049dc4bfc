package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/simbank_ledger/internal/apperrors"
	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/simbank_ledger/internal/core/ports/repositories"
)

type accountRepository struct {
	sc *scope
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

func (r *accountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	acc, ok := r.sc.accounts.get(accountID)
	if !ok {
		return nil, notFound("account", accountID)
	}
	return &acc, nil
}

func (r *accountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	var out []domain.Account
	for _, acc := range r.sc.accounts.all() {
		if acc.UserID == userID {
			out = append(out, acc)
		}
	}
	sortAccounts(out)
	return out, nil
}

func (r *accountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	all := r.sc.accounts.all()
	sortAccounts(all)
	return page(all, limit, offset), nil
}

func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return r.sc.accounts.putIf(account.AccountID, account, func(rows []domain.Account) error {
		for _, a := range rows {
			if a.AccountID == account.AccountID {
				return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
			}
		}
		return nil
	})
}

func (r *accountRepository) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, userID string, now time.Time) error {
	acc, ok := r.sc.accounts.get(accountID)
	if !ok {
		return notFound("account", accountID)
	}
	acc.Status = status
	acc.Touch(userID, now)
	r.sc.accounts.put(accountID, acc)
	return nil
}

func (r *accountRepository) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	keys := make([]string, len(accountIDs))
	for i, id := range accountIDs {
		keys[i] = "account:" + id
	}
	if err := r.sc.lockAll(ctx, keys); err != nil {
		return nil, err
	}
	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if acc, ok := r.sc.accounts.get(id); ok {
			out[id] = acc
		}
	}
	return out, nil
}

func (r *accountRepository) UpdateAccountBalance(ctx context.Context, accountID string, balance int64, userID string, now time.Time) error {
	acc, ok := r.sc.accounts.get(accountID)
	if !ok {
		return notFound("account", accountID)
	}
	acc.Balance = balance
	acc.Touch(userID, now)
	r.sc.accounts.put(accountID, acc)
	return nil
}

func sortAccounts(accs []domain.Account) {
	sort.Slice(accs, func(i, j int) bool {
		if !accs[i].CreatedAt.Equal(accs[j].CreatedAt) {
			return accs[i].CreatedAt.Before(accs[j].CreatedAt)
		}
		return accs[i].AccountID < accs[j].AccountID
	})
}

// page applies limit/offset to an already ordered slice. A non-positive limit means no limit.
func page[T any](rows []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return []T{}
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
