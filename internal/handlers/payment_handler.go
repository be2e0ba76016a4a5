package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akylbek/payment-system/payment-gateway/internal/models"
	"github.com/akylbek/payment-system/payment-gateway/internal/repository"
	"github.com/akylbek/payment-system/payment-gateway/internal/service"
	"github.com/akylbek/payment-system/payment-gateway/internal/telemetry"
	"github.com/akylbek/payment-system/payment-gateway/internal/validation"
)

type PaymentHandler struct {
	orchestrator *service.Orchestrator
	validator    *validation.Validator
}

func NewPaymentHandler(orchestrator *service.Orchestrator, validator *validation.Validator) *PaymentHandler {
	return &PaymentHandler{
		orchestrator: orchestrator,
		validator:    validator,
	}
}

func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		telemetry.Logger.Error("Error decoding payment request", zap.Error(err))
		respondError(c, http.StatusBadRequest, CodeInvalidRequestBody, "Failed to read request", nil)
		return
	}

	if violations := h.validator.Validate(&req); !violations.Empty() {
		for _, field := range violations.Fields() {
			telemetry.ValidationFailures.WithLabelValues(field).Inc()
		}
		respondError(c, http.StatusBadRequest, CodeValidationError, "Validation failed",
			gin.H{"fields": violations})
		return
	}

	record, err := h.orchestrator.CreatePayment(c.Request.Context(), &req)
	if err != nil {
		telemetry.Logger.Error("Error processing payment", zap.Error(err))
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Something went wrong", nil)
		return
	}

	respond(c, http.StatusCreated, CodePaymentCreated, "Payment created", record)
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, CodePaymentNotFound, "No such payment", nil)
		return
	}

	record, err := h.orchestrator.GetPayment(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, CodePaymentNotFound, "No such payment", nil)
		return
	}
	if err != nil {
		telemetry.Logger.Error("Error fetching payment",
			zap.String("payment_id", id.String()),
			zap.Error(err),
		)
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Something went wrong", nil)
		return
	}

	respond(c, http.StatusOK, CodePaymentFound, "Payment has been found", record)
}
