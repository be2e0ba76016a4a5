package interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/akylbek/payment-system/payment-gateway/internal/models"
)

// PaymentRepository defines the contract for payment record data access.
type PaymentRepository interface {
	Insert(ctx context.Context, record models.PaymentRecord) error
	Get(ctx context.Context, id uuid.UUID) (models.PaymentRecord, error)
}

// BankClient defines the contract for submitting an authorization request to
// the acquiring bank.
type BankClient interface {
	Submit(ctx context.Context, req models.BankPaymentRequest) (models.BankPaymentResponse, error)
}
