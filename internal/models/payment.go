package models

import (
	"fmt"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	StatusAuthorized PaymentStatus = "AUTHORIZED"
	StatusDeclined   PaymentStatus = "DECLINED"
	StatusRejected   PaymentStatus = "REJECTED"
)

// PaymentRequest is the inbound authorization request. The full card number
// and CVV live only for the duration of one request and are never persisted.
type PaymentRequest struct {
	CardNumber  string `json:"card_number"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	Currency    string `json:"currency"`
	Amount      int64  `json:"amount"`
	CVV         string `json:"cvv"`
}

// PaymentRecord is the persisted, immutable outcome of one orchestration run.
type PaymentRecord struct {
	ID                 uuid.UUID     `json:"id"`
	Status             PaymentStatus `json:"status"`
	CardNumberLastFour string        `json:"card_number_last_four"`
	ExpiryMonth        int           `json:"expiry_month"`
	ExpiryYear         int           `json:"expiry_year"`
	Currency           string        `json:"currency"`
	Amount             int64         `json:"amount"`
}

// BankPaymentRequest is the sanitized request forwarded to the acquiring bank.
type BankPaymentRequest struct {
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	Currency   string `json:"currency"`
	Amount     int64  `json:"amount"`
	CVV        string `json:"cvv"`
}

type BankPaymentResponse struct {
	Authorized        bool   `json:"authorized"`
	AuthorizationCode string `json:"authorizationCode"`
}

// ExpiryDate formats the expiry as MM/YYYY for the bank wire format.
func (r *PaymentRequest) ExpiryDate() string {
	return fmt.Sprintf("%02d/%d", r.ExpiryMonth, r.ExpiryYear)
}

// LastFour returns the last four digits of the card number, ignoring any
// whitespace or separators the caller left in.
func (r *PaymentRequest) LastFour() string {
	digits := make([]byte, 0, len(r.CardNumber))
	for i := 0; i < len(r.CardNumber); i++ {
		if c := r.CardNumber[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}
	if len(digits) < 4 {
		return string(digits)
	}
	return string(digits[len(digits)-4:])
}
