package repository

import (
	"fmt"
	"time"

	"fieldservice/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// jobItem is the storage shape of a job. Amounts are kept as decimal
// strings and timestamps as RFC3339Nano so no precision is lost in either
// DynamoDB or the JSONB column.
type jobItem struct {
	ID          string           `dynamodbav:"id" json:"id"`
	Title       string           `dynamodbav:"title" json:"title"`
	Description string           `dynamodbav:"description" json:"description"`
	Status      string           `dynamodbav:"status" json:"status"`
	Customer    customerItem     `dynamodbav:"customer" json:"customer"`
	Appointment *appointmentItem `dynamodbav:"appointment,omitempty" json:"appointment,omitempty"`
	InvoiceID   string           `dynamodbav:"invoice_id,omitempty" json:"invoice_id,omitempty"`
	Invoice     *invoiceItem     `dynamodbav:"invoice,omitempty" json:"invoice,omitempty"`
	CreatedAt   string           `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt   string           `dynamodbav:"updated_at" json:"updated_at"`
	Version     int64            `dynamodbav:"version" json:"version"`
}

type customerItem struct {
	ID    string `dynamodbav:"id" json:"id"`
	Name  string `dynamodbav:"name" json:"name"`
	Email string `dynamodbav:"email" json:"email"`
	Phone string `dynamodbav:"phone,omitempty" json:"phone,omitempty"`
}

type appointmentItem struct {
	Technician string `dynamodbav:"technician" json:"technician"`
	StartTime  string `dynamodbav:"start_time" json:"start_time"`
	EndTime    string `dynamodbav:"end_time" json:"end_time"`
}

type lineItemItem struct {
	Description string `dynamodbav:"description" json:"description"`
	Quantity    int    `dynamodbav:"quantity" json:"quantity"`
	UnitPrice   string `dynamodbav:"unit_price" json:"unit_price"`
}

type paymentItem struct {
	ID        string `dynamodbav:"id" json:"id"`
	Amount    string `dynamodbav:"amount" json:"amount"`
	Method    string `dynamodbav:"method" json:"method"`
	Date      string `dynamodbav:"date" json:"date"`
	Reference string `dynamodbav:"reference,omitempty" json:"reference,omitempty"`
}

type invoiceItem struct {
	ID          string         `dynamodbav:"id" json:"id"`
	Status      string         `dynamodbav:"status" json:"status"`
	LineItems   []lineItemItem `dynamodbav:"line_items" json:"line_items"`
	Subtotal    string         `dynamodbav:"subtotal" json:"subtotal"`
	TaxRate     string         `dynamodbav:"tax_rate" json:"tax_rate"`
	Tax         string         `dynamodbav:"tax" json:"tax"`
	TotalAmount string         `dynamodbav:"total_amount" json:"total_amount"`
	PaidAmount  string         `dynamodbav:"paid_amount" json:"paid_amount"`
	Payments    []paymentItem  `dynamodbav:"payments" json:"payments"`
	CreatedAt   string         `dynamodbav:"created_at" json:"created_at"`
}

func toJobItem(j entities.Job) jobItem {
	it := jobItem{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		Status:      string(j.Status),
		Customer: customerItem{
			ID:    j.Customer.ID,
			Name:  j.Customer.Name,
			Email: j.Customer.Email,
			Phone: j.Customer.Phone,
		},
		CreatedAt: formatTime(j.CreatedAt),
		UpdatedAt: formatTime(j.UpdatedAt),
		Version:   j.Version,
	}
	if a := j.Appointment; a != nil {
		it.Appointment = &appointmentItem{
			Technician: a.Technician,
			StartTime:  formatTime(a.StartTime),
			EndTime:    formatTime(a.EndTime),
		}
	}
	if inv := j.Invoice; inv != nil {
		it.InvoiceID = inv.ID
		ii := &invoiceItem{
			ID:          inv.ID,
			Status:      string(inv.Status),
			LineItems:   make([]lineItemItem, 0, len(inv.LineItems)),
			Subtotal:    inv.Subtotal.String(),
			TaxRate:     inv.TaxRate.String(),
			Tax:         inv.Tax.String(),
			TotalAmount: inv.TotalAmount.String(),
			PaidAmount:  inv.PaidAmount.String(),
			Payments:    make([]paymentItem, 0, len(inv.Payments)),
			CreatedAt:   formatTime(inv.CreatedAt),
		}
		for _, li := range inv.LineItems {
			ii.LineItems = append(ii.LineItems, lineItemItem{
				Description: li.Description,
				Quantity:    li.Quantity,
				UnitPrice:   li.UnitPrice.String(),
			})
		}
		for _, p := range inv.Payments {
			ii.Payments = append(ii.Payments, paymentItem{
				ID:        p.ID,
				Amount:    p.Amount.String(),
				Method:    string(p.Method),
				Date:      formatTime(p.Date),
				Reference: p.Reference,
			})
		}
		it.Invoice = ii
	}
	return it
}

func fromJobItem(it jobItem) (entities.Job, error) {
	job := entities.Job{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		Status:      entities.JobStatus(it.Status),
		Customer: entities.Customer{
			ID:    it.Customer.ID,
			Name:  it.Customer.Name,
			Email: it.Customer.Email,
			Phone: it.Customer.Phone,
		},
		CreatedAt: parseTime(it.CreatedAt),
		UpdatedAt: parseTime(it.UpdatedAt),
		Version:   it.Version,
	}
	if a := it.Appointment; a != nil {
		job.Appointment = &entities.Appointment{
			Technician: a.Technician,
			StartTime:  parseTime(a.StartTime),
			EndTime:    parseTime(a.EndTime),
		}
	}
	if ii := it.Invoice; ii != nil {
		inv, err := fromInvoiceItem(it.ID, *ii)
		if err != nil {
			return entities.Job{}, fmt.Errorf("job %s: %w", it.ID, err)
		}
		job.Invoice = &inv
	}
	return job, nil
}

func fromInvoiceItem(jobID string, ii invoiceItem) (entities.Invoice, error) {
	amounts := make([]decimal.Decimal, 5)
	for i, s := range []string{ii.Subtotal, ii.TaxRate, ii.Tax, ii.TotalAmount, ii.PaidAmount} {
		d, err := parseDecimal(s)
		if err != nil {
			return entities.Invoice{}, err
		}
		amounts[i] = d
	}

	inv := entities.Invoice{
		ID:          ii.ID,
		JobID:       jobID,
		Status:      entities.InvoiceStatus(ii.Status),
		LineItems:   make([]entities.LineItem, 0, len(ii.LineItems)),
		Subtotal:    amounts[0],
		TaxRate:     amounts[1],
		Tax:         amounts[2],
		TotalAmount: amounts[3],
		PaidAmount:  amounts[4],
		Payments:    make([]entities.Payment, 0, len(ii.Payments)),
		CreatedAt:   parseTime(ii.CreatedAt),
	}
	for _, li := range ii.LineItems {
		price, err := parseDecimal(li.UnitPrice)
		if err != nil {
			return entities.Invoice{}, err
		}
		inv.LineItems = append(inv.LineItems, entities.LineItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   price,
		})
	}
	for _, p := range ii.Payments {
		amount, err := parseDecimal(p.Amount)
		if err != nil {
			return entities.Invoice{}, err
		}
		inv.Payments = append(inv.Payments, entities.Payment{
			ID:        p.ID,
			InvoiceID: ii.ID,
			Amount:    amount,
			Method:    entities.PaymentMethod(p.Method),
			Date:      parseTime(p.Date),
			Reference: p.Reference,
		})
	}
	return inv, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid stored amount %q: %w", s, err)
	}
	return d, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
