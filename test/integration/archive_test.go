//go:build integration

package integration

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/aishops/ryder/internal/cart/domain"
	"github.com/aishops/ryder/internal/order/domain"
	orderpg "github.com/aishops/ryder/internal/order/infrastructure/postgres"
)

func TestArchivePersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	env, err := Setup(ctx)
	require.NoError(t, err)
	defer env.Teardown(ctx)

	require.NoError(t, orderpg.Migrate(env.PGURL))

	pool, err := pgxpool.New(ctx, env.PGURL)
	require.NoError(t, err)
	defer pool.Close()

	log := slog.Default()
	repo := orderpg.NewRepository(log, pool)

	entry := domain.HistoryEntry{
		ID:        "abc123",
		SessionID: "sess-1",
		Lines: []cartdomain.CartLine{
			{ProductID: "101", Name: "Espresso", PriceCents: 1200, Quantity: 2, StoreID: "1"},
		},
		TotalCents:  2400,
		Payment:     domain.PaymentCash,
		CompletedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	err = repo.SaveWithOutbox(ctx, entry, "OrderArchived", []byte(`{"order_id":"o-1"}`),
		map[string]string{"source": "test"}, "")
	require.NoError(t, err)

	got, err := repo.ListBySession(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, entry.TotalCents, got[0].TotalCents)
	assert.Equal(t, entry.Lines, got[0].Lines)

	store := orderpg.NewOutboxStore(log, pool)
	events, err := store.LockBatch(ctx, "test-relay", 10, 5*time.Second)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "OrderArchived", events[0].Type)
	assert.Equal(t, "abc123", events[0].AggregateID)

	require.NoError(t, store.MarkSent(ctx, []int64{events[0].ID}))

	events, err = store.LockBatch(ctx, "test-relay", 10, 5*time.Second)
	require.NoError(t, err)
	assert.Empty(t, events, "sent events must not be re-locked")
}
