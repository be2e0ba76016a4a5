package bank

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/akylbek/payment-system/payment-gateway/internal/models"
	"github.com/akylbek/payment-system/payment-gateway/internal/telemetry"
)

// ErrUnavailable is the bank-reported service-unavailable condition (HTTP
// 503). Every other failure, including an elapsed deadline, a refused
// connection, a malformed response or an open circuit breaker, surfaces as a
// plain error and forms the generic transport-failure class.
var ErrUnavailable = errors.New("bank service unavailable")

// Client submits sanitized authorization requests to the acquiring bank
// simulator. It holds only immutable configuration and is safe for
// concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

func NewClient(baseURL string) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "acquiring-bank",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			telemetry.Logger.Warn("Bank circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		breaker:    breaker,
	}
}

// Submit posts the authorization request to the bank and returns its
// verdict. The caller bounds the call through ctx; the client never waits
// past the deadline.
func (c *Client) Submit(ctx context.Context, req models.BankPaymentRequest) (models.BankPaymentResponse, error) {
	start := time.Now()

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.submit(ctx, req)
	})

	outcome := "ok"
	if err != nil {
		outcome = "error"
		if errors.Is(err, ErrUnavailable) {
			outcome = "unavailable"
		}
	}
	telemetry.BankRequestDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		return models.BankPaymentResponse{}, err
	}
	return result.(models.BankPaymentResponse), nil
}

func (c *Client) submit(ctx context.Context, req models.BankPaymentRequest) (models.BankPaymentResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return models.BankPaymentResponse{}, fmt.Errorf("encoding bank request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments", bytes.NewReader(body))
	if err != nil {
		return models.BankPaymentResponse{}, fmt.Errorf("building bank request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return models.BankPaymentResponse{}, fmt.Errorf("calling bank: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		return models.BankPaymentResponse{}, ErrUnavailable
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.BankPaymentResponse{}, fmt.Errorf("bank returned status %d", resp.StatusCode)
	}

	var bankResp models.BankPaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&bankResp); err != nil {
		return models.BankPaymentResponse{}, fmt.Errorf("decoding bank response: %w", err)
	}

	return bankResp, nil
}
