package request

import (
	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase"

	"github.com/shopspring/decimal"
)

// LineItemRequest accepts unit_price as a JSON number or string ("49.90").
type LineItemRequest struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type GenerateInvoiceRequest struct {
	LineItems []LineItemRequest `json:"line_items"`
}

func (r GenerateInvoiceRequest) ToLineItems() []entities.LineItem {
	items := make([]entities.LineItem, 0, len(r.LineItems))
	for _, li := range r.LineItems {
		items = append(items, entities.LineItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		})
	}
	return items
}

type CardRequest struct {
	Token           string `json:"token"`
	PaymentMethodID string `json:"payment_method_id"`
	PayerEmail      string `json:"payer_email"`
	Installments    int    `json:"installments"`
}

// RecordPaymentRequest is the payload for POST /v1/invoices/:invoice_id/payments.
// card is only used for Card payments that must be charged online.
type RecordPaymentRequest struct {
	Amount *decimal.Decimal `json:"amount"`
	Method string           `json:"method" binding:"required"`
	Card   *CardRequest     `json:"card"`
}

// AmountOrZero treats a missing amount as zero so it fails the ledger's
// positive-amount check.
func (r RecordPaymentRequest) AmountOrZero() decimal.Decimal {
	if r.Amount == nil {
		return decimal.Zero
	}
	return *r.Amount
}

func (r RecordPaymentRequest) CardDetails() *usecase.CardDetails {
	if r.Card == nil {
		return nil
	}
	return &usecase.CardDetails{
		Token:           r.Card.Token,
		PaymentMethodID: r.Card.PaymentMethodID,
		PayerEmail:      r.Card.PayerEmail,
		Installments:    r.Card.Installments,
	}
}
