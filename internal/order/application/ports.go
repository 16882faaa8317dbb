package application

import (
	"context"

	"github.com/aishops/ryder/internal/order/domain"
)

// HistoryRepository persists archived orders together with their outbox
// event in one transaction.
type HistoryRepository interface {
	SaveWithOutbox(ctx context.Context, entry domain.HistoryEntry, eventType string, payload []byte, headers map[string]string, traceparent string) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.HistoryEntry, error)
}
