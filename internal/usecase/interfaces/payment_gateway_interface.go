package interfaces

import (
	"context"
	"encoding/json"
)

// IPaymentGateway abstracts external card processors (e.g. Mercado Pago).
//
// The payment use case charges card payments through it and keeps the
// provider payment id as the ledger entry reference.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}
