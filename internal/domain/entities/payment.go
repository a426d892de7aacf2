package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer settled (part of) an invoice.

type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "Card"
	PaymentMethodBankTransfer PaymentMethod = "Bank Transfer"
	PaymentMethodCash         PaymentMethod = "Cash"
)

// ParsePaymentMethod accepts the canonical names plus the usual API
// spellings ("card", "bank_transfer", "BANK TRANSFER").
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.NewReplacer("_", " ", "-", " ").Replace(v)
	switch v {
	case "card":
		return PaymentMethodCard, true
	case "bank transfer":
		return PaymentMethodBankTransfer, true
	case "cash":
		return PaymentMethodCash, true
	}
	return "", false
}

// Payment is an append-only ledger entry against an invoice.
//
// Reference keeps the provider payment id when the amount was charged
// through the card gateway; it is empty for manual entries.
type Payment struct {
	ID        string          `json:"id"`
	InvoiceID string          `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    PaymentMethod   `json:"method"`
	Date      time.Time       `json:"date"`
	Reference string          `json:"reference,omitempty"`
}
