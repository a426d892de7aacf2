package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"fieldservice/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var (
	ErrMissingAccessToken   = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
	ErrGatewayNotConfigured = errors.New("mercado pago gateway not configured")
)

// paymentCreator is the part of payment.Client used to charge cards.
type paymentCreator interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
}

// MercadoPagoGateway charges card payments recorded against invoices.
// In mock mode every charge is approved locally.
type MercadoPagoGateway struct {
	client   paymentCreator
	mockMode bool
	now      func() time.Time
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if MockModeEnabled() {
		log.Printf("[invoice][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, now: time.Now}, nil
	}
	if strings.TrimSpace(accessToken) == "" {
		return nil, ErrMissingAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[invoice][gateway] sdk config failed err=%v", err)
		return nil, err
	}
	log.Printf("[invoice][gateway] mercado pago client initialized")
	return &MercadoPagoGateway{client: payment.NewClient(cfg), now: time.Now}, nil
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, requestPayload json.RawMessage) (string, string, json.RawMessage, error) {
	if g == nil {
		return "", "", nil, ErrGatewayNotConfigured
	}
	if g.mockMode {
		return g.mockCharge(requestPayload)
	}
	if g.client == nil {
		return "", "", nil, ErrGatewayNotConfigured
	}

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		log.Printf("[invoice][gateway] payload unmarshal failed err=%v", err)
		return "", "", nil, err
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		log.Printf("[invoice][gateway] charge failed err=%v", err)
		return "", "", nil, err
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	id := fmt.Sprintf("%d", resp.ID)
	log.Printf("[invoice][gateway] charge done provider_payment_id=%s status=%s", id, resp.Status)
	return id, resp.Status, raw, nil
}

// mockCharge echoes the request back as an approved payment.
func (g *MercadoPagoGateway) mockCharge(requestPayload json.RawMessage) (string, string, json.RawMessage, error) {
	resp := map[string]any{}
	if len(requestPayload) > 0 && json.Valid(requestPayload) {
		if err := json.Unmarshal(requestPayload, &resp); err != nil {
			resp = map[string]any{"request_payload_raw": string(requestPayload)}
		}
	}

	now := g.now().UTC()
	id := "mock-" + strconv.FormatInt(now.UnixNano(), 10)
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	resp["date_approved"] = now.Format(time.RFC3339Nano)

	raw, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	log.Printf("[invoice][gateway] mock charge approved provider_payment_id=%s", id)
	return id, "approved", raw, nil
}

// MockModeEnabled reports whether PAYMENT_GATEWAY_MOCK (or the legacy
// MERCADOPAGO_MOCK) asks for the local mock.
func MockModeEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
