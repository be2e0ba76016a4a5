package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/akylbek/payment-system/payment-gateway/internal/models"
)

// ErrNotFound is returned when no payment exists for the requested id.
// Absence is a normal result, not an internal failure.
var ErrNotFound = errors.New("payment not found")

// PaymentRepository is an in-memory, process-lifetime store of payment
// records. Records are immutable once inserted and are never deleted.
type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[uuid.UUID]models.PaymentRecord
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{
		payments: make(map[uuid.UUID]models.PaymentRecord),
	}
}

// Insert adds a new record keyed by its id. Ids are freshly generated random
// UUIDs, so an existing key is not treated as a user-facing error path.
func (r *PaymentRepository) Insert(_ context.Context, record models.PaymentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[record.ID] = record
	return nil
}

// Get returns the record for id, or ErrNotFound.
func (r *PaymentRepository) Get(_ context.Context, id uuid.UUID) (models.PaymentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.payments[id]
	if !ok {
		return models.PaymentRecord{}, ErrNotFound
	}
	return record, nil
}
