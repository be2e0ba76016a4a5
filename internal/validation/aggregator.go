package validation

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/akylbek/payment-system/payment-gateway/internal/models"
)

// Field keys as they appear in validation reports. CrossFieldKey is the
// composite key for the expiry year-month rule, which spans two fields.
const (
	FieldCardNumber  = "card_number"
	FieldExpiryMonth = "expiry_month"
	FieldExpiryYear  = "expiry_year"
	FieldCurrency    = "currency"
	FieldAmount      = "amount"
	FieldCVV         = "cvv"
	CrossFieldKey    = "card_year_and_month"
)

const (
	MsgCardNumberRequired  = "Card number is required"
	MsgInvalidCardNumber   = "Invalid card number"
	MsgInvalidExpiryMonth  = "Expiry month must be between 1 and 12"
	MsgInvalidExpiryYear   = "Expiry year must be positive"
	MsgCurrencyRequired    = "Currency is required"
	MsgUnsupportedCurrency = "Unsupported currency"
	MsgInvalidAmount       = "Amount must be positive"
	MsgCVVRequired         = "CVV is required"
	MsgInvalidCVV          = "Invalid CVV"
	MsgCardExpired         = "Card has expired"
)

// DefaultCurrencies is the configured currency allow-list.
var DefaultCurrencies = []string{"EUR", "GBP", "USD"}

type violation struct {
	field   string
	message string
}

// Violations is an ordered field -> message mapping. Field order follows the
// order checks ran in, and only the first failure per field is kept.
type Violations struct {
	items []violation
}

func (v *Violations) add(field, message string) {
	for _, it := range v.items {
		if it.field == field {
			return
		}
	}
	v.items = append(v.items, violation{field: field, message: message})
}

func (v *Violations) Empty() bool {
	return v == nil || len(v.items) == 0
}

func (v *Violations) Len() int {
	if v == nil {
		return 0
	}
	return len(v.items)
}

// Message returns the recorded message for field, if any.
func (v *Violations) Message(field string) (string, bool) {
	if v == nil {
		return "", false
	}
	for _, it := range v.items {
		if it.field == field {
			return it.message, true
		}
	}
	return "", false
}

// Fields returns the failing field keys in report order.
func (v *Violations) Fields() []string {
	if v == nil {
		return nil
	}
	fields := make([]string, 0, len(v.items))
	for _, it := range v.items {
		fields = append(fields, it.field)
	}
	return fields
}

// MarshalJSON renders the violations as a JSON object whose keys keep
// insertion order, which a plain map would not.
func (v *Violations) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, it := range v.items {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(it.field)
		if err != nil {
			return nil, err
		}
		msg, err := json.Marshal(it.message)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(msg)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// check is one entry in the validation pipeline: it either passes or names
// the failing field and its message.
type check func(req *models.PaymentRequest) (field, message string, ok bool)

// Validator runs the full pipeline against a request and collects every
// violation instead of stopping at the first.
type Validator struct {
	currencies []string
	now        func() time.Time
	checks     []check
}

// Option configures a Validator.
type Option func(*Validator)

// WithCurrencies overrides the currency allow-list.
func WithCurrencies(currencies []string) Option {
	return func(v *Validator) {
		v.currencies = currencies
	}
}

// WithNow overrides the clock used by the expiry cross-field check.
func WithNow(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

func New(opts ...Option) *Validator {
	v := &Validator{
		currencies: DefaultCurrencies,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.checks = []check{
		v.checkCardNumber,
		v.checkExpiryMonth,
		v.checkExpiryYear,
		v.checkCurrency,
		v.checkAmount,
		v.checkCVV,
		v.checkExpiryNotPast,
	}
	return v
}

// Validate runs every check in declaration order and returns all collected
// violations, or nil when the request is valid.
func (v *Validator) Validate(req *models.PaymentRequest) *Violations {
	violations := &Violations{}
	for _, c := range v.checks {
		if field, message, ok := c(req); !ok {
			violations.add(field, message)
		}
	}
	if violations.Empty() {
		return nil
	}
	return violations
}

func (v *Validator) checkCardNumber(req *models.PaymentRequest) (string, string, bool) {
	if normalizeCardNumber(req.CardNumber) == "" {
		return FieldCardNumber, MsgCardNumberRequired, false
	}
	if !ValidCardNumber(req.CardNumber) {
		return FieldCardNumber, MsgInvalidCardNumber, false
	}
	return FieldCardNumber, "", true
}

func (v *Validator) checkExpiryMonth(req *models.PaymentRequest) (string, string, bool) {
	if !ValidExpiryMonth(req.ExpiryMonth) {
		return FieldExpiryMonth, MsgInvalidExpiryMonth, false
	}
	return FieldExpiryMonth, "", true
}

func (v *Validator) checkExpiryYear(req *models.PaymentRequest) (string, string, bool) {
	if req.ExpiryYear <= 0 {
		return FieldExpiryYear, MsgInvalidExpiryYear, false
	}
	return FieldExpiryYear, "", true
}

func (v *Validator) checkCurrency(req *models.PaymentRequest) (string, string, bool) {
	if req.Currency == "" {
		return FieldCurrency, MsgCurrencyRequired, false
	}
	if !ValidCurrency(req.Currency, v.currencies) {
		return FieldCurrency, MsgUnsupportedCurrency, false
	}
	return FieldCurrency, "", true
}

func (v *Validator) checkAmount(req *models.PaymentRequest) (string, string, bool) {
	if req.Amount <= 0 {
		return FieldAmount, MsgInvalidAmount, false
	}
	return FieldAmount, "", true
}

func (v *Validator) checkCVV(req *models.PaymentRequest) (string, string, bool) {
	if req.CVV == "" {
		return FieldCVV, MsgCVVRequired, false
	}
	if !ValidCVV(req.CVV) {
		return FieldCVV, MsgInvalidCVV, false
	}
	return FieldCVV, "", true
}

func (v *Validator) checkExpiryNotPast(req *models.PaymentRequest) (string, string, bool) {
	if !ExpiryNotPast(req.ExpiryMonth, req.ExpiryYear, v.now()) {
		return CrossFieldKey, MsgCardExpired, false
	}
	return CrossFieldKey, "", true
}
