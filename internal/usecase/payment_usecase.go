package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/lifecycle"
	"fieldservice/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrPaymentGatewayNotConfigured = errors.New("payment gateway not configured")
	ErrPaymentDeclined             = errors.New("payment declined by provider")
	ErrPaymentGatewayBadRequest    = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized  = errors.New("payment gateway unauthorized")
	ErrPaymentChargedNotRecorded   = errors.New("payment charged but not recorded")
)

// ChargeNotRecordedError reports an approved card charge whose ledger entry
// could not be persisted. The provider payment must be reconciled by hand.
type ChargeNotRecordedError struct {
	InvoiceID         string
	ProviderPaymentID string
	Err               error
}

func (e *ChargeNotRecordedError) Error() string {
	return fmt.Sprintf("payment charged but not recorded: invoice_id=%s provider_payment_id=%s: %v", e.InvoiceID, e.ProviderPaymentID, e.Err)
}

func (e *ChargeNotRecordedError) Unwrap() error { return e.Err }

func (e *ChargeNotRecordedError) Is(target error) bool {
	return target == ErrPaymentChargedNotRecorded
}

// CardDetails are sent when a Card payment must be charged through the
// gateway. Card payments without details are recorded as-is (e.g. taken on
// a terminal).
type CardDetails struct {
	Token           string
	PaymentMethodID string
	PayerEmail      string
	Installments    int
}

// IPaymentUseCase exposes the invoice payment ledger.

type IPaymentUseCase interface {
	RecordPayment(ctx context.Context, invoiceID string, amount decimal.Decimal, method entities.PaymentMethod, card *CardDetails) (entities.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string) (entities.Invoice, error)
	ListPayments(ctx context.Context, invoiceID string) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	jobMutator
	gateway interfaces.IPaymentGateway
	newID   func() string
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IJobRepository, publisher interfaces.IEventPublisher, locker *JobLocker, gateway interfaces.IPaymentGateway) *PaymentUseCase {
	return &PaymentUseCase{
		jobMutator: jobMutator{repo: repo, publisher: publisher, locker: locker, clock: utcNow},
		gateway:    gateway,
		newID:      uuid.NewString,
	}
}

func (u *PaymentUseCase) RecordPayment(ctx context.Context, invoiceID string, amount decimal.Decimal, method entities.PaymentMethod, card *CardDetails) (entities.Invoice, error) {
	log.Printf("[payment][usecase] record start invoice_id=%q amount=%s method=%q", invoiceID, amount.String(), method)
	owner, err := u.findJobByInvoice(ctx, invoiceID)
	if err != nil {
		return entities.Invoice{}, err
	}

	charged := ""
	job, err := u.apply(ctx, owner.ID, entities.JobEventPaymentRecorded, func(job entities.Job) (entities.Job, error) {
		if err := lifecycle.CheckPayment(job, amount, method); err != nil {
			return job, err
		}

		reference := ""
		parsed, _ := entities.ParsePaymentMethod(string(method))
		if parsed == entities.PaymentMethodCard && card != nil {
			ref, err := u.charge(ctx, job.Invoice.ID, amount, *card)
			if err != nil {
				return job, err
			}
			reference = ref
			charged = ref
		}

		return lifecycle.RecordPayment(job, lifecycle.PaymentEntry{
			ID:        u.newID(),
			Amount:    amount,
			Method:    parsed,
			Reference: reference,
			Date:      u.clock(),
		})
	})
	if err != nil {
		if charged != "" {
			log.Printf("[payment][usecase] RECONCILE charge not recorded invoice_id=%s provider_payment_id=%s amount=%s err=%v",
				invoiceID, charged, amount.StringFixed(2), err)
			return entities.Invoice{}, &ChargeNotRecordedError{InvoiceID: invoiceID, ProviderPaymentID: charged, Err: err}
		}
		log.Printf("[payment][usecase] record failed invoice_id=%s err=%v", invoiceID, err)
		return entities.Invoice{}, err
	}

	inv := *job.Invoice
	log.Printf("[payment][usecase] record success invoice_id=%s paid=%s total=%s invoice_status=%s job_status=%s",
		inv.ID, inv.PaidAmount.StringFixed(2), inv.TotalAmount.StringFixed(2), inv.Status, job.Status)
	return inv, nil
}

func (u *PaymentUseCase) GetInvoice(ctx context.Context, invoiceID string) (entities.Invoice, error) {
	job, err := u.findJobByInvoice(ctx, invoiceID)
	if err != nil {
		return entities.Invoice{}, err
	}
	return *job.Invoice, nil
}

func (u *PaymentUseCase) ListPayments(ctx context.Context, invoiceID string) ([]entities.Payment, error) {
	inv, err := u.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return inv.Payments, nil
}

func (u *PaymentUseCase) findJobByInvoice(ctx context.Context, invoiceID string) (entities.Job, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return entities.Job{}, ErrInvoiceNotFound
	}
	job, err := u.repo.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		return entities.Job{}, err
	}
	if job.ID == "" || job.Invoice == nil {
		return entities.Job{}, ErrInvoiceNotFound
	}
	return job, nil
}

// charge runs the card through the gateway. The ledger guards have already
// passed, so a successful charge is always recordable.
func (u *PaymentUseCase) charge(ctx context.Context, invoiceID string, amount decimal.Decimal, card CardDetails) (string, error) {
	if u.gateway == nil {
		return "", ErrPaymentGatewayNotConfigured
	}
	installments := card.Installments
	if installments <= 0 {
		installments = 1
	}

	req := map[string]any{
		// The source of truth for the amount is the ledger entry.
		"transaction_amount": amount.InexactFloat64(),
		"installments":       installments,
		"description":        fmt.Sprintf("Invoice %s", invoiceID),
		"external_reference": invoiceID,
	}
	if v := strings.TrimSpace(card.Token); v != "" {
		req["token"] = v
	}
	if v := strings.TrimSpace(card.PaymentMethodID); v != "" {
		req["payment_method_id"] = v
	}
	if v := strings.TrimSpace(card.PayerEmail); v != "" {
		req["payer"] = map[string]any{"email": v, "type": "customer"}
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	log.Printf("[payment][usecase] calling payment gateway invoice_id=%s", invoiceID)
	providerID, providerStatus, _, err := u.gateway.CreatePayment(ctx, payload)
	if err != nil {
		log.Printf("[payment][usecase] payment gateway failed invoice_id=%s err=%v", invoiceID, err)
		switch {
		case isGatewayUnauthorized(err):
			return "", ErrPaymentGatewayUnauthorized
		case isGatewayBadRequest(err):
			return "", ErrPaymentGatewayBadRequest
		}
		return "", err
	}
	if !strings.EqualFold(providerStatus, "approved") {
		log.Printf("[payment][usecase] payment not approved invoice_id=%s provider_payment_id=%s provider_status=%s", invoiceID, providerID, providerStatus)
		return "", ErrPaymentDeclined
	}
	return providerID, nil
}

func isGatewayBadRequest(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}
