package handlers

import (
	"errors"
	"net/http"

	"fieldservice/internal/domain/lifecycle"
	"fieldservice/internal/usecase"
	"fieldservice/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request payload", http.StatusBadRequest)

// mapError turns usecase and lifecycle errors into the API error shape.
// Lifecycle kinds are surfaced as the error code.
func mapError(err error) *pkg.AppError {
	// Must precede ErrConcurrentUpdate, which it may wrap.
	var charged *usecase.ChargeNotRecordedError
	if errors.As(err, &charged) {
		appErr := pkg.NewDomainError("PAYMENT_NOT_RECORDED", "Card was charged but the payment could not be recorded, do not retry", err, http.StatusInternalServerError)
		return appErr.WithDetail("provider_payment_id", charged.ProviderPaymentID)
	}

	switch {
	case errors.Is(err, usecase.ErrConcurrentUpdate):
		return pkg.NewDomainErrorSimple("CONCURRENT_UPDATE", "Job was modified concurrently, retry", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentDeclined):
		return pkg.NewDomainErrorSimple("PAYMENT_DECLINED", "Payment declined by provider", http.StatusPaymentRequired)
	case errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_BAD_REQUEST", "Payment provider rejected the card data", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Card charging is not configured", http.StatusServiceUnavailable)
	}

	code := lifecycle.Kind(err)
	switch code {
	case "VALIDATION_ERROR":
		appErr := pkg.NewDomainError(code, "Validation failed", err, http.StatusBadRequest)
		var ve *lifecycle.ValidationError
		if errors.As(err, &ve) {
			appErr.WithDetail("field", ve.Field).WithDetail("reason", ve.Reason)
		}
		return appErr
	case "INVALID_LINE_ITEM":
		appErr := pkg.NewDomainError(code, "Invalid line item", err, http.StatusUnprocessableEntity)
		var le *lifecycle.LineItemError
		if errors.As(err, &le) {
			appErr.WithDetail("index", le.Index).WithDetail("reason", le.Reason)
		}
		return appErr
	case "EMPTY_LINE_ITEMS":
		return pkg.NewDomainError(code, "Invoice requires at least one line item", err, http.StatusUnprocessableEntity)
	case "INVALID_AMOUNT":
		return pkg.NewDomainError(code, "Payment amount must be positive with at most two decimals", err, http.StatusUnprocessableEntity)
	case "NOT_FOUND":
		if errors.Is(err, usecase.ErrInvoiceNotFound) {
			return pkg.NewDomainError(code, "Invoice not found", err, http.StatusNotFound)
		}
		return pkg.NewDomainError(code, "Job not found", err, http.StatusNotFound)
	case "INVALID_TRANSITION":
		appErr := pkg.NewDomainError(code, "Status transition not allowed", err, http.StatusConflict)
		var te *lifecycle.TransitionError
		if errors.As(err, &te) {
			appErr.WithDetail("from", string(te.From)).WithDetail("to", string(te.To))
		}
		return appErr
	case "REQUIRES_COMPLETED_STATUS":
		return pkg.NewDomainError(code, "Job must be COMPLETED to be invoiced", err, http.StatusConflict)
	case "ALREADY_INVOICED":
		return pkg.NewDomainError(code, "Job already has an invoice", err, http.StatusConflict)
	case "INVOICE_ALREADY_PAID":
		return pkg.NewDomainError(code, "Invoice is already paid", err, http.StatusConflict)
	case "EXCEEDS_BALANCE":
		return pkg.NewDomainError(code, "Payment exceeds the remaining balance", err, http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
