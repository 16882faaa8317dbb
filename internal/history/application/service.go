package application

import (
	"context"

	"github.com/aishops/ryder/internal/order/domain"
)

// Service lands archive events in durable history. Records are idempotent;
// the consumer may deliver the same event more than once.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Record(ctx context.Context, event domain.OrderArchived) error {
	entry := domain.HistoryEntry{
		ID:          event.EntryID,
		SessionID:   event.SessionID,
		Lines:       event.Lines,
		TotalCents:  event.TotalCents,
		Payment:     event.Payment,
		CompletedAt: event.CompletedAt,
	}
	return s.repo.Upsert(ctx, entry)
}
