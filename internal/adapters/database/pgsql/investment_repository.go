package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/simbank_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/simbank_ledger/internal/utils/mapping"
)

// collect scans rows by column name and converts them with conv.
func collect[M any, D any](rows pgx.Rows, queryErr error, what string, conv func([]M) []D) ([]D, error) {
	if queryErr != nil {
		return nil, mapError(queryErr, what, "query")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[M])
	if err != nil {
		return nil, mapError(err, what, "scan")
	}
	return conv(ms), nil
}

// collectOne scans exactly one row; no row maps to apperrors.ErrNotFound.
func collectOne[M any, D any](rows pgx.Rows, queryErr error, what, id string, conv func(M) D) (*D, error) {
	if queryErr != nil {
		return nil, mapError(queryErr, what, id)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[M])
	if err != nil {
		return nil, mapError(err, what, id)
	}
	d := conv(m)
	return &d, nil
}

const holdingColumns = `holding_id, account_id, security_id, symbol, quantity, avg_cost_p,
	created_at, created_by, last_updated_at, last_updated_by`

type holdingRepository struct {
	db DBTX
}

var _ portsrepo.HoldingRepository = (*holdingRepository)(nil)

func (r *holdingRepository) FindHolding(ctx context.Context, accountID, securityID string) (*domain.Holding, error) {
	rows, err := r.db.Query(ctx, `SELECT `+holdingColumns+` FROM holdings
		WHERE account_id = $1 AND security_id = $2`, accountID, securityID)
	return collectOne(rows, err, "holding", accountID+"/"+securityID, mapping.ToDomainHolding)
}

func (r *holdingRepository) FindHoldingByID(ctx context.Context, holdingID string) (*domain.Holding, error) {
	rows, err := r.db.Query(ctx, `SELECT `+holdingColumns+` FROM holdings WHERE holding_id = $1`, holdingID)
	return collectOne(rows, err, "holding", holdingID, mapping.ToDomainHolding)
}

// SaveHolding upserts by holding id; only quantity, average cost and audit columns change.
func (r *holdingRepository) SaveHolding(ctx context.Context, holding domain.Holding) error {
	m := mapping.ToModelHolding(holding)
	_, err := r.db.Exec(ctx, `
		INSERT INTO holdings (`+holdingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (holding_id) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			avg_cost_p = EXCLUDED.avg_cost_p,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by`,
		m.HoldingID, m.AccountID, m.SecurityID, m.Symbol, m.Quantity, m.AvgCostP,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "holding", m.HoldingID)
}

func (r *holdingRepository) DeleteHolding(ctx context.Context, holdingID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM holdings WHERE holding_id = $1`, holdingID)
	return affectedOne(tag, err, "holding", holdingID)
}

func (r *holdingRepository) ListHoldingsByAccount(ctx context.Context, accountID string) ([]domain.Holding, error) {
	rows, err := r.db.Query(ctx, `SELECT `+holdingColumns+` FROM holdings
		WHERE account_id = $1 ORDER BY symbol`, accountID)
	return collect(rows, err, "holdings", mapping.ToDomainHoldingSlice)
}

func (r *holdingRepository) ListHoldings(ctx context.Context, limit int, offset int) ([]domain.Holding, error) {
	rows, err := r.db.Query(ctx, `SELECT `+holdingColumns+` FROM holdings
		ORDER BY holding_id LIMIT $1 OFFSET $2`, limit, offset)
	return collect(rows, err, "holdings", mapping.ToDomainHoldingSlice)
}

const securityColumns = `security_id, symbol, name, currency_code, kind,
	created_at, created_by, last_updated_at, last_updated_by`

type securityRepository struct {
	db DBTX
}

var _ portsrepo.SecurityRepository = (*securityRepository)(nil)

func (r *securityRepository) FindSecurityBySymbol(ctx context.Context, symbol string) (*domain.Security, error) {
	rows, err := r.db.Query(ctx, `SELECT `+securityColumns+` FROM securities WHERE symbol = $1`, symbol)
	return collectOne(rows, err, "security", symbol, mapping.ToDomainSecurity)
}

func (r *securityRepository) FindSecurityByID(ctx context.Context, securityID string) (*domain.Security, error) {
	rows, err := r.db.Query(ctx, `SELECT `+securityColumns+` FROM securities WHERE security_id = $1`, securityID)
	return collectOne(rows, err, "security", securityID, mapping.ToDomainSecurity)
}

// SaveSecurity inserts reference data; a taken symbol is apperrors.ErrDuplicate.
func (r *securityRepository) SaveSecurity(ctx context.Context, security domain.Security) error {
	m := mapping.ToModelSecurity(security)
	_, err := r.db.Exec(ctx, `
		INSERT INTO securities (`+securityColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.SecurityID, m.Symbol, m.Name, m.CurrencyCode, m.Kind,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "security", m.Symbol)
}

// EnsureSecurity relies on ON CONFLICT so a racing creator never aborts the caller's transaction.
func (r *securityRepository) EnsureSecurity(ctx context.Context, security domain.Security) (*domain.Security, error) {
	m := mapping.ToModelSecurity(security)
	_, err := r.db.Exec(ctx, `
		INSERT INTO securities (`+securityColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (symbol) DO NOTHING`,
		m.SecurityID, m.Symbol, m.Name, m.CurrencyCode, m.Kind,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapError(err, "security", m.Symbol)
	}
	return r.FindSecurityBySymbol(ctx, m.Symbol)
}

func (r *securityRepository) ListSecurities(ctx context.Context, limit int, offset int) ([]domain.Security, error) {
	rows, err := r.db.Query(ctx, `SELECT `+securityColumns+` FROM securities
		ORDER BY symbol LIMIT $1 OFFSET $2`, limit, offset)
	return collect(rows, err, "securities", mapping.ToDomainSecuritySlice)
}

// DeleteSecurity fails with apperrors.ErrValidation while any holding references it.
func (r *securityRepository) DeleteSecurity(ctx context.Context, securityID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM securities WHERE security_id = $1`, securityID)
	return affectedOne(tag, err, "security", securityID)
}

const orderColumns = `order_id, account_id, security_id, symbol, side, quantity, unit_price,
	notional, fee, total, status, transaction_id, placed_at, filled_at, created_by`

type orderRepository struct {
	db DBTX
}

var _ portsrepo.InvestOrderRepository = (*orderRepository)(nil)

func (r *orderRepository) SaveOrder(ctx context.Context, order domain.InvestOrder) error {
	m := mapping.ToModelInvestOrder(order)
	_, err := r.db.Exec(ctx, `
		INSERT INTO invest_orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		m.OrderID, m.AccountID, m.SecurityID, m.Symbol, m.Side, m.Quantity, m.UnitPrice,
		m.Notional, m.Fee, m.Total, m.Status, m.TransactionID, m.PlacedAt, m.FilledAt, m.CreatedBy,
	)
	return mapError(err, "order", m.OrderID)
}

func (r *orderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.InvestOrder, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM invest_orders WHERE order_id = $1`, orderID)
	return collectOne(rows, err, "order", orderID, mapping.ToDomainInvestOrder)
}

func (r *orderRepository) ListOrdersByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.InvestOrder, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM invest_orders
		WHERE account_id = $1 ORDER BY placed_at DESC, order_id DESC LIMIT $2 OFFSET $3`, accountID, limit, offset)
	return collect(rows, err, "orders", mapping.ToDomainInvestOrderSlice)
}

func (r *orderRepository) ListOrders(ctx context.Context, limit int, offset int) ([]domain.InvestOrder, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM invest_orders
		ORDER BY placed_at DESC, order_id DESC LIMIT $1 OFFSET $2`, limit, offset)
	return collect(rows, err, "orders", mapping.ToDomainInvestOrderSlice)
}
