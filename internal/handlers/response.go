package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CodePaymentCreated     = "PAYMENT_CREATED"
	CodePaymentFound       = "PAYMENT_FOUND"
	CodePaymentNotFound    = "PAYMENT_NOT_FOUND"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	CodeInternalError      = "INTERNAL_ERROR"
)

// apiResponse is the common envelope for success and error bodies.
type apiResponse struct {
	Timestamp string      `json:"timestamp"`
	Status    int         `json:"status"`
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id"`
	Data      interface{} `json:"data,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

func respond(c *gin.Context, status int, code, message string, data interface{}) {
	c.JSON(status, apiResponse{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: uuid.NewString(),
		Data:      data,
	})
}

func respondError(c *gin.Context, status int, code, message string, details interface{}) {
	c.JSON(status, apiResponse{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: uuid.NewString(),
		Details:   details,
	})
}
