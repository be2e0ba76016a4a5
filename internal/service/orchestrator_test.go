package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akylbek/payment-system/payment-gateway/internal/bank"
	"github.com/akylbek/payment-system/payment-gateway/internal/models"
	"github.com/akylbek/payment-system/payment-gateway/internal/repository"
)

type stubBank struct {
	resp        models.BankPaymentResponse
	err         error
	calls       int
	gotReq      models.BankPaymentRequest
	hadDeadline bool
}

func (s *stubBank) Submit(ctx context.Context, req models.BankPaymentRequest) (models.BankPaymentResponse, error) {
	s.calls++
	s.gotReq = req
	_, s.hadDeadline = ctx.Deadline()
	return s.resp, s.err
}

func paymentRequest() *models.PaymentRequest {
	return &models.PaymentRequest{
		CardNumber:  "4242424242424242",
		ExpiryMonth: 4,
		ExpiryYear:  2030,
		Currency:    "USD",
		Amount:      1500,
		CVV:         "123",
	}
}

func TestCreatePaymentTerminalStatus(t *testing.T) {
	tests := []struct {
		name       string
		resp       models.BankPaymentResponse
		err        error
		wantStatus models.PaymentStatus
	}{
		{
			name:       "bank authorizes",
			resp:       models.BankPaymentResponse{Authorized: true, AuthorizationCode: "auth-1"},
			wantStatus: models.StatusAuthorized,
		},
		{
			name:       "bank declines",
			resp:       models.BankPaymentResponse{Authorized: false},
			wantStatus: models.StatusDeclined,
		},
		{
			name:       "bank unavailable",
			err:        bank.ErrUnavailable,
			wantStatus: models.StatusRejected,
		},
		{
			name:       "transport failure",
			err:        errors.New("connection refused"),
			wantStatus: models.StatusRejected,
		},
		{
			name:       "deadline exceeded",
			err:        context.DeadlineExceeded,
			wantStatus: models.StatusRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repository.NewPaymentRepository()
			bankStub := &stubBank{resp: tt.resp, err: tt.err}
			o := NewOrchestrator(repo, bankStub, DefaultBankTimeout)

			record, err := o.CreatePayment(context.Background(), paymentRequest())
			require.NoError(t, err, "bank failures must not surface as errors")

			assert.Equal(t, tt.wantStatus, record.Status)
			assert.Equal(t, 1, bankStub.calls, "exactly one bank call per run")

			// The record is persisted regardless of the terminal status.
			stored, err := repo.Get(context.Background(), record.ID)
			require.NoError(t, err)
			assert.Equal(t, record, stored)
		})
	}
}

func TestCreatePaymentSanitizesRecord(t *testing.T) {
	repo := repository.NewPaymentRepository()
	bankStub := &stubBank{resp: models.BankPaymentResponse{Authorized: true}}
	o := NewOrchestrator(repo, bankStub, DefaultBankTimeout)

	req := paymentRequest()
	record, err := o.CreatePayment(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "4242", record.CardNumberLastFour)
	assert.Equal(t, req.ExpiryMonth, record.ExpiryMonth)
	assert.Equal(t, req.ExpiryYear, record.ExpiryYear)
	assert.Equal(t, req.Currency, record.Currency)
	assert.Equal(t, req.Amount, record.Amount)

	// The bank gets the full card number and a zero-padded expiry.
	assert.Equal(t, req.CardNumber, bankStub.gotReq.CardNumber)
	assert.Equal(t, "04/2030", bankStub.gotReq.ExpiryDate)
	assert.Equal(t, req.CVV, bankStub.gotReq.CVV)
}

func TestCreatePaymentBoundsBankCall(t *testing.T) {
	repo := repository.NewPaymentRepository()
	bankStub := &stubBank{resp: models.BankPaymentResponse{Authorized: true}}
	o := NewOrchestrator(repo, bankStub, 100*time.Millisecond)

	_, err := o.CreatePayment(context.Background(), paymentRequest())
	require.NoError(t, err)
	assert.True(t, bankStub.hadDeadline, "bank call context must carry a deadline")
}

func TestCreatePaymentGeneratesUniqueIDs(t *testing.T) {
	repo := repository.NewPaymentRepository()
	bankStub := &stubBank{resp: models.BankPaymentResponse{Authorized: true}}
	o := NewOrchestrator(repo, bankStub, DefaultBankTimeout)

	seen := make(map[uuid.UUID]bool)
	for i := 0; i < 10; i++ {
		record, err := o.CreatePayment(context.Background(), paymentRequest())
		require.NoError(t, err)
		assert.False(t, seen[record.ID])
		seen[record.ID] = true
	}
}

func TestGetPaymentNotFound(t *testing.T) {
	o := NewOrchestrator(repository.NewPaymentRepository(), &stubBank{}, DefaultBankTimeout)

	_, err := o.GetPayment(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
