package response

import (
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/lifecycle"
)

// Money is rendered as a string with two decimals ("110.00").

type LineItemResponse struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Total       string `json:"total"`
}

type PaymentResponse struct {
	ID        string    `json:"id"`
	InvoiceID string    `json:"invoice_id"`
	Amount    string    `json:"amount"`
	Method    string    `json:"method"`
	Date      time.Time `json:"date"`
	Reference string    `json:"reference,omitempty"`
}

type InvoiceResponse struct {
	ID               string             `json:"id"`
	JobID            string             `json:"job_id"`
	Status           string             `json:"status"`
	LineItems        []LineItemResponse `json:"line_items"`
	Subtotal         string             `json:"subtotal"`
	TaxRate          string             `json:"tax_rate"`
	Tax              string             `json:"tax"`
	TotalAmount      string             `json:"total_amount"`
	PaidAmount       string             `json:"paid_amount"`
	RemainingBalance string             `json:"remaining_balance"`
	CanPay           bool               `json:"can_pay"`
	Payments         []PaymentResponse  `json:"payments"`
	CreatedAt        time.Time          `json:"created_at"`
}

func FromInvoice(inv entities.Invoice) InvoiceResponse {
	res := InvoiceResponse{
		ID:               inv.ID,
		JobID:            inv.JobID,
		Status:           string(inv.Status),
		LineItems:        make([]LineItemResponse, 0, len(inv.LineItems)),
		Subtotal:         inv.Subtotal.StringFixed(2),
		TaxRate:          inv.TaxRate.String(),
		Tax:              inv.Tax.StringFixed(2),
		TotalAmount:      inv.TotalAmount.StringFixed(2),
		PaidAmount:       inv.PaidAmount.StringFixed(2),
		RemainingBalance: lifecycle.RemainingBalance(inv).StringFixed(2),
		CanPay:           lifecycle.CanAcceptPayment(inv),
		Payments:         FromPayments(inv.Payments),
		CreatedAt:        inv.CreatedAt,
	}
	for _, li := range inv.LineItems {
		res.LineItems = append(res.LineItems, LineItemResponse{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice.StringFixed(2),
			Total:       lifecycle.LineTotal(li).StringFixed(2),
		})
	}
	return res
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		InvoiceID: p.InvoiceID,
		Amount:    p.Amount.StringFixed(2),
		Method:    string(p.Method),
		Date:      p.Date,
		Reference: p.Reference,
	}
}

func FromPayments(payments []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	return out
}
