package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/simbank_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/simbank_ledger/internal/models"
	"github.com/SscSPs/simbank_ledger/internal/utils/mapping"
)

const paymentColumns = `payment_id, user_id, source_account_id, destination_account_id, payee_id,
	vendor_handle, amount, currency_code, description, is_external, method, status,
	otp_hash, otp_expires_at, otp_attempts, debit_transaction_id, credit_transaction_id,
	failure_reason, resolved_at, created_at, created_by, last_updated_at, last_updated_by`

type paymentRepository struct {
	db DBTX
}

var _ portsrepo.PaymentRepository = (*paymentRepository)(nil)

func (r *paymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	_, err := r.db.Exec(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`,
		m.PaymentID, m.UserID, m.SourceAccountID, m.DestinationAccountID, m.PayeeID,
		m.VendorHandle, m.Amount, m.CurrencyCode, m.Description, m.IsExternal, m.Method, m.Status,
		m.OTPHash, m.OTPExpiresAt, m.OTPAttempts, m.DebitTransactionID, m.CreditTransactionID,
		m.FailureReason, m.ResolvedAt, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "payment", m.PaymentID)
}

// UpdatePayment writes the lifecycle columns. Amount, source and destination never change.
func (r *paymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	tag, err := r.db.Exec(ctx, `
		UPDATE payments SET
			status = $2, otp_hash = $3, otp_expires_at = $4, otp_attempts = $5,
			debit_transaction_id = $6, credit_transaction_id = $7, failure_reason = $8,
			resolved_at = $9, last_updated_at = $10, last_updated_by = $11
		WHERE payment_id = $1`,
		m.PaymentID, m.Status, m.OTPHash, m.OTPExpiresAt, m.OTPAttempts,
		m.DebitTransactionID, m.CreditTransactionID, m.FailureReason,
		m.ResolvedAt, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return affectedOne(tag, err, "payment", m.PaymentID)
}

func (r *paymentRepository) findOne(ctx context.Context, query, paymentID string) (*domain.Payment, error) {
	rows, err := r.db.Query(ctx, query, paymentID)
	if err != nil {
		return nil, mapError(err, "payment", paymentID)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Payment])
	if err != nil {
		return nil, mapError(err, "payment", paymentID)
	}
	p := mapping.ToDomainPayment(m)
	return &p, nil
}

func (r *paymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return r.findOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1`, paymentID)
}

func (r *paymentRepository) FindPaymentByIDForUpdate(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return r.findOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1 FOR UPDATE`, paymentID)
}

func (r *paymentRepository) queryPayments(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "payments", "query")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Payment])
	if err != nil {
		return nil, mapError(err, "payments", "scan")
	}
	return mapping.ToDomainPaymentSlice(ms), nil
}

func (r *paymentRepository) ListPaymentsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Payment, error) {
	return r.queryPayments(ctx, `SELECT `+paymentColumns+` FROM payments
		WHERE user_id = $1 ORDER BY created_at DESC, payment_id DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
}

func (r *paymentRepository) ListPayments(ctx context.Context, limit int, offset int) ([]domain.Payment, error) {
	return r.queryPayments(ctx, `SELECT `+paymentColumns+` FROM payments
		ORDER BY created_at, payment_id LIMIT $1 OFFSET $2`, limit, offset)
}

const payeeColumns = `payee_id, user_id, name, routing_code, account_number, reference,
	created_at, created_by, last_updated_at, last_updated_by`

type payeeRepository struct {
	db DBTX
}

var _ portsrepo.PayeeRepository = (*payeeRepository)(nil)

func (r *payeeRepository) SavePayee(ctx context.Context, payee domain.Payee) error {
	m := mapping.ToModelPayee(payee)
	_, err := r.db.Exec(ctx, `
		INSERT INTO payees (`+payeeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.PayeeID, m.UserID, m.Name, m.RoutingCode, m.AccountNumber, m.Reference,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "payee", m.PayeeID)
}

func (r *payeeRepository) FindPayeeByID(ctx context.Context, payeeID string) (*domain.Payee, error) {
	rows, err := r.db.Query(ctx, `SELECT `+payeeColumns+` FROM payees WHERE payee_id = $1`, payeeID)
	if err != nil {
		return nil, mapError(err, "payee", payeeID)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Payee])
	if err != nil {
		return nil, mapError(err, "payee", payeeID)
	}
	p := mapping.ToDomainPayee(m)
	return &p, nil
}

func (r *payeeRepository) queryPayees(ctx context.Context, query string, args ...any) ([]domain.Payee, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "payees", "query")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Payee])
	if err != nil {
		return nil, mapError(err, "payees", "scan")
	}
	return mapping.ToDomainPayeeSlice(ms), nil
}

func (r *payeeRepository) ListPayeesByUser(ctx context.Context, userID string) ([]domain.Payee, error) {
	return r.queryPayees(ctx, `SELECT `+payeeColumns+` FROM payees WHERE user_id = $1 ORDER BY name`, userID)
}

func (r *payeeRepository) ListPayees(ctx context.Context, limit int, offset int) ([]domain.Payee, error) {
	return r.queryPayees(ctx, `SELECT `+payeeColumns+` FROM payees ORDER BY payee_id LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *payeeRepository) DeletePayee(ctx context.Context, payeeID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payees WHERE payee_id = $1`, payeeID)
	return affectedOne(tag, err, "payee", payeeID)
}
