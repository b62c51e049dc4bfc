package audit

import (
	"context"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
)

// PostingEvent is the PostHog event name of an audit record.
const PostingEvent = "ledger_posting"

// enqueuer is satisfied by utils.PosthogClientWrapper.
type enqueuer interface {
	IsInitialized() bool
	Enqueue(distinctID string, event string, properties map[string]any)
}

// PosthogSink forwards audit records to PostHog, keyed by the acting user.
type PosthogSink struct {
	client enqueuer
}

var _ portssvc.AuditSink = (*PosthogSink)(nil)

func NewPosthogSink(client enqueuer) *PosthogSink {
	return &PosthogSink{client: client}
}

// Enabled reports whether records will actually leave the process.
func (s *PosthogSink) Enabled() bool {
	return s.client != nil && s.client.IsInitialized()
}

func (s *PosthogSink) Emit(_ context.Context, rec domain.AuditRecord) {
	if !s.Enabled() {
		return
	}
	s.client.Enqueue(rec.Actor, PostingEvent, map[string]any{
		"account_id":     rec.AccountID,
		"transaction_id": rec.TransactionID,
		"delta":          rec.Delta,
		"balance_after":  rec.BalanceAfter,
		"description":    rec.Description,
		"occurred_at":    rec.OccurredAt,
	})
}
