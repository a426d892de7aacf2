package handlers

import (
	"log"
	"net/http"

	"fieldservice/internal/adapter/http/dto/request"
	"fieldservice/internal/adapter/http/dto/response"
	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase"

	"github.com/gin-gonic/gin"
)

// InvoiceHandler exposes invoices and their payment ledger.

type InvoiceHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewInvoiceHandler(uc usecase.IPaymentUseCase) *InvoiceHandler {
	return &InvoiceHandler{usecase: uc}
}

// GetInvoice godoc
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Param        invoice_id  path      string  true  "Invoice ID"
// @Success      200         {object}  response.InvoiceResponse
// @Failure      404         {object}  pkg.HTTPError
// @Router       /invoices/{invoice_id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	inv, err := h.usecase.GetInvoice(c.Request.Context(), c.Param("invoice_id"))
	if err != nil {
		writeError(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// RecordPayment godoc
// @Summary      Record a payment against an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        invoice_id  path      string                        true  "Invoice ID"
// @Param        payload     body      request.RecordPaymentRequest  true  "Payment"
// @Success      201         {object}  response.InvoiceResponse
// @Failure      400         {object}  pkg.HTTPError
// @Failure      404         {object}  pkg.HTTPError
// @Failure      409         {object}  pkg.HTTPError
// @Failure      422         {object}  pkg.HTTPError
// @Router       /invoices/{invoice_id}/payments [post]
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	invoiceID := c.Param("invoice_id")
	var payload request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[payment][handler] invalid payload invoice_id=%s err=%v", invoiceID, err)
		writeError(c, errInvalidPayload)
		return
	}

	inv, err := h.usecase.RecordPayment(
		c.Request.Context(),
		invoiceID,
		payload.AmountOrZero(),
		entities.PaymentMethod(payload.Method),
		payload.CardDetails(),
	)
	if err != nil {
		log.Printf("[payment][handler] record failed invoice_id=%s err=%v", invoiceID, err)
		writeError(c, mapError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromInvoice(inv))
}

// ListPayments godoc
// @Summary      List the payments of an invoice
// @Tags         invoices
// @Produce      json
// @Param        invoice_id  path      string  true  "Invoice ID"
// @Success      200         {array}   response.PaymentResponse
// @Failure      404         {object}  pkg.HTTPError
// @Router       /invoices/{invoice_id}/payments [get]
func (h *InvoiceHandler) ListPayments(c *gin.Context) {
	payments, err := h.usecase.ListPayments(c.Request.Context(), c.Param("invoice_id"))
	if err != nil {
		writeError(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(payments))
}
