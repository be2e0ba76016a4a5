package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akylbek/payment-system/payment-gateway/internal/models"
)

func TestInsertAndGet(t *testing.T) {
	repo := NewPaymentRepository()
	ctx := context.Background()

	record := models.PaymentRecord{
		ID:                 uuid.New(),
		Status:             models.StatusAuthorized,
		CardNumberLastFour: "4242",
		ExpiryMonth:        12,
		ExpiryYear:         2030,
		Currency:           "USD",
		Amount:             1500,
	}

	require.NoError(t, repo.Insert(ctx, record))

	got, err := repo.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record, got)

	// Reads are pure: a second lookup returns the same record.
	again, err := repo.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestGetUnknownID(t *testing.T) {
	repo := NewPaymentRepository()

	_, err := repo.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentInsertsAndLookups(t *testing.T) {
	repo := NewPaymentRepository()
	ctx := context.Background()

	const n = 100
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = repo.Insert(ctx, models.PaymentRecord{
				ID:                 ids[i],
				Status:             models.StatusDeclined,
				CardNumberLastFour: fmt.Sprintf("%04d", i),
				Currency:           "GBP",
				Amount:             int64(i + 1),
			})
		}(i)
		go func(i int) {
			defer wg.Done()
			// Concurrent lookups must never tear; either result is fine.
			_, _ = repo.Get(ctx, ids[i])
		}(i)
	}
	wg.Wait()

	for i, id := range ids {
		got, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), got.Amount)
	}
}
