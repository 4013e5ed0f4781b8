package donation

import (
	"strings"

	"github.com/shopspring/decimal"

	"kindnesscup/internal/domain/cause"
)

const (
	MsgInvalidAmount = "Please provide a valid donation amount."
	MsgMissingName   = "Please provide your name or choose to donate anonymously."
	MsgInvalidEmail  = "Please provide a valid email address."
	MsgMissingMethod = "Please choose a payment method."
)

var (
	PresetAmounts  = []string{"10", "15", "20", "30", "45", "50"}
	PaymentMethods = []string{"card", "paypal"}
)

// SubmitInput is the raw donate form, still string-typed.
type SubmitInput struct {
	Frequency     string
	PresetAmount  string
	CustomAmount  string
	DonorName     string
	DonorEmail    string
	PaymentMethod string
	CauseID       string
	IsAnonymous   bool
}

type DonationDTO struct {
	DonationID uint64          `json:"donation_id"`
	CauseID    *uint64         `json:"cause_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Frequency  string          `json:"frequency"`
	Anonymous  bool            `json:"is_anonymous"`
	Message    string          `json:"message"`
}

// FormData feeds the donate form.
type FormData struct {
	Causes []cause.Cause
}

// ValidationError carries every failed rule, in evaluation order.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string { return strings.Join(e.Messages, " ") }

// StorageError wraps a database failure during the write path.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "Database error: " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }
