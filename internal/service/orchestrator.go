package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/akylbek/payment-system/payment-gateway/internal/bank"
	"github.com/akylbek/payment-system/payment-gateway/internal/interfaces"
	"github.com/akylbek/payment-system/payment-gateway/internal/models"
	"github.com/akylbek/payment-system/payment-gateway/internal/telemetry"
)

const DefaultBankTimeout = 3 * time.Second

type attemptState string

const (
	stateStarted    attemptState = "STARTED"
	stateBankCalled attemptState = "BANK_CALLED"
)

// Orchestrator runs the payment state machine: build the sanitized bank
// request, call the bank under a deadline, map the outcome to a terminal
// status and persist the record. Exactly one network call and one store
// insert happen per run; bank failures never escape as errors.
type Orchestrator struct {
	repo        interfaces.PaymentRepository
	bank        interfaces.BankClient
	bankTimeout time.Duration
}

func NewOrchestrator(repo interfaces.PaymentRepository, bankClient interfaces.BankClient, bankTimeout time.Duration) *Orchestrator {
	if bankTimeout <= 0 {
		bankTimeout = DefaultBankTimeout
	}
	return &Orchestrator{
		repo:        repo,
		bank:        bankClient,
		bankTimeout: bankTimeout,
	}
}

// CreatePayment processes a validated request and returns the persisted
// record. The full card number and CVV go to the bank only; the record keeps
// the last four digits.
func (o *Orchestrator) CreatePayment(ctx context.Context, req *models.PaymentRequest) (models.PaymentRecord, error) {
	ctx, span := telemetry.Tracer.Start(ctx, "orchestrator.CreatePayment")
	defer span.End()

	id := uuid.New()
	span.SetAttributes(attribute.String("payment.id", id.String()))

	telemetry.Logger.Info("Processing payment",
		zap.String("payment_id", id.String()),
		zap.String("card_last_four", req.LastFour()),
		zap.String("currency", req.Currency),
		zap.Int64("amount", req.Amount),
	)

	bankReq := models.BankPaymentRequest{
		CardNumber: req.CardNumber,
		ExpiryDate: req.ExpiryDate(),
		Currency:   req.Currency,
		Amount:     req.Amount,
		CVV:        req.CVV,
	}

	o.logTransition(id, "", stateStarted)

	callCtx, cancel := context.WithTimeout(ctx, o.bankTimeout)
	defer cancel()

	bankResp, err := o.bank.Submit(callCtx, bankReq)
	o.logTransition(id, stateStarted, stateBankCalled)

	status := o.mapOutcome(id, bankResp, err)
	span.SetAttributes(attribute.String("payment.status", string(status)))

	record := models.PaymentRecord{
		ID:                 id,
		Status:             status,
		CardNumberLastFour: req.LastFour(),
		ExpiryMonth:        req.ExpiryMonth,
		ExpiryYear:         req.ExpiryYear,
		Currency:           req.Currency,
		Amount:             req.Amount,
	}

	if err := o.repo.Insert(ctx, record); err != nil {
		return models.PaymentRecord{}, fmt.Errorf("persisting payment %s: %w", id, err)
	}

	telemetry.PaymentsProcessed.WithLabelValues(string(status)).Inc()
	o.logTransition(id, stateBankCalled, attemptState(status))

	return record, nil
}

// GetPayment returns the record for id, or repository.ErrNotFound.
func (o *Orchestrator) GetPayment(ctx context.Context, id uuid.UUID) (models.PaymentRecord, error) {
	return o.repo.Get(ctx, id)
}

// mapOutcome turns the bank call result into a terminal status. A verdict
// maps to AUTHORIZED or DECLINED. Bank-unavailable maps to REJECTED, and so
// does every other transport failure (deadline exceeded, open breaker,
// malformed response), keeping the state machine total.
func (o *Orchestrator) mapOutcome(id uuid.UUID, resp models.BankPaymentResponse, err error) models.PaymentStatus {
	switch {
	case err == nil:
		if resp.Authorized {
			return models.StatusAuthorized
		}
		return models.StatusDeclined
	case errors.Is(err, bank.ErrUnavailable):
		telemetry.Logger.Warn("Bank unavailable",
			zap.String("payment_id", id.String()),
			zap.Error(err),
		)
		return models.StatusRejected
	default:
		telemetry.Logger.Warn("Bank call failed",
			zap.String("payment_id", id.String()),
			zap.Error(err),
		)
		return models.StatusRejected
	}
}

func (o *Orchestrator) logTransition(id uuid.UUID, from, to attemptState) {
	telemetry.Logger.Info("Payment state transition",
		zap.String("payment_id", id.String()),
		zap.String("from_state", string(from)),
		zap.String("to_state", string(to)),
	)
}
