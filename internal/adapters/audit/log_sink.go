package audit

import (
	"context"
	"log/slog"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
	"github.com/SscSPs/simbank_ledger/internal/middleware"
)

// LogSink writes each audit record as one structured log line.
// Records emitted during a request carry its request id.
type LogSink struct{}

var _ portssvc.AuditSink = (*LogSink)(nil)

func NewLogSink() *LogSink { return &LogSink{} }

func (s *LogSink) Emit(ctx context.Context, rec domain.AuditRecord) {
	middleware.GetLoggerFromCtx(ctx).InfoContext(ctx, "audit",
		slog.String("account_id", rec.AccountID),
		slog.String("transaction_id", rec.TransactionID),
		slog.Int64("delta", rec.Delta),
		slog.Int64("balance_after", rec.BalanceAfter),
		slog.String("description", rec.Description),
		slog.String("actor", rec.Actor),
		slog.Time("occurred_at", rec.OccurredAt),
	)
}
