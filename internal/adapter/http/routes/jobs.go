package routes

import (
	"fieldservice/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathJobs     = "/jobs"
	PathInvoices = "/invoices"
)

func addJobRoutes(rg *gin.RouterGroup, h *handlers.JobHandler) {
	jobs := rg.Group(PathJobs)
	{
		jobs.POST("", h.CreateJob)
		jobs.GET("", h.ListJobs)
		jobs.GET("/:job_id", h.GetJob)
		jobs.PUT("/:job_id/appointment", h.AttachAppointment)
		jobs.PATCH("/:job_id/complete", h.MarkCompleted)
		jobs.PATCH("/:job_id/status", h.RequestTransition)
		jobs.POST("/:job_id/invoice", h.GenerateInvoice)
	}
}

func addInvoiceRoutes(rg *gin.RouterGroup, h *handlers.InvoiceHandler) {
	invoices := rg.Group(PathInvoices)
	{
		invoices.GET("/:invoice_id", h.GetInvoice)
		invoices.POST("/:invoice_id/payments", h.RecordPayment)
		invoices.GET("/:invoice_id/payments", h.ListPayments)
	}
}
