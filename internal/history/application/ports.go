package application

import (
	"context"

	"github.com/aishops/ryder/internal/order/domain"
)

type Repository interface {
	Upsert(ctx context.Context, entry domain.HistoryEntry) error
}
