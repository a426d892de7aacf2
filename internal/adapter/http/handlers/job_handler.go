package handlers

import (
	"log"
	"net/http"
	"strings"

	"fieldservice/internal/adapter/http/dto/request"
	"fieldservice/internal/adapter/http/dto/response"
	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase"

	"github.com/gin-gonic/gin"
)

// JobHandler handles HTTP requests for the job lifecycle.

type JobHandler struct {
	usecase usecase.IJobUseCase
}

func NewJobHandler(uc usecase.IJobUseCase) *JobHandler {
	return &JobHandler{usecase: uc}
}

// CreateJob godoc
// @Summary      Create a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        payload  body      request.CreateJobRequest  true  "Job"
// @Success      201      {object}  response.JobResponse
// @Failure      400      {object}  pkg.HTTPError
// @Router       /jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	var payload request.CreateJobRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	job, err := h.usecase.CreateJob(c.Request.Context(), payload.Title, payload.Description, payload.ToCustomer())
	if err != nil {
		log.Printf("[job][handler] create failed err=%v", err)
		writeError(c, mapError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromJob(job))
}

// GetJob godoc
// @Summary      Get a job with its appointment and invoice
// @Tags         jobs
// @Produce      json
// @Param        job_id  path      string  true  "Job ID"
// @Success      200     {object}  response.JobResponse
// @Failure      404     {object}  pkg.HTTPError
// @Router       /jobs/{job_id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.usecase.GetJob(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		writeError(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromJob(job))
}

// ListJobs godoc
// @Summary      List jobs, optionally by status
// @Tags         jobs
// @Produce      json
// @Param        status  query     string  false  "NEW, SCHEDULED, COMPLETED, INVOICED or PAID"
// @Success      200     {array}   response.JobResponse
// @Failure      400     {object}  pkg.HTTPError
// @Router       /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	status := entities.JobStatus(strings.ToUpper(strings.TrimSpace(c.Query("status"))))
	jobs, err := h.usecase.ListJobs(c.Request.Context(), status)
	if err != nil {
		writeError(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromJobs(jobs))
}

// AttachAppointment godoc
// @Summary      Attach (or replace) the job appointment
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job_id   path      string                            true  "Job ID"
// @Param        payload  body      request.AttachAppointmentRequest  true  "Appointment"
// @Success      200      {object}  response.JobResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Router       /jobs/{job_id}/appointment [put]
func (h *JobHandler) AttachAppointment(c *gin.Context) {
	jobID := c.Param("job_id")
	var payload request.AttachAppointmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	job, err := h.usecase.AttachAppointment(c.Request.Context(), jobID, payload.Technician, payload.StartTime, payload.EndTime)
	if err != nil {
		log.Printf("[job][handler] attach appointment failed job_id=%s err=%v", jobID, err)
		writeError(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromJob(job))
}

// MarkCompleted godoc
// @Summary      Mark the job as completed
// @Tags         jobs
// @Produce      json
// @Param        job_id  path      string  true  "Job ID"
// @Success      200     {object}  response.JobResponse
// @Failure      404     {object}  pkg.HTTPError
// @Failure      409     {object}  pkg.HTTPError
// @Router       /jobs/{job_id}/complete [patch]
func (h *JobHandler) MarkCompleted(c *gin.Context) {
	jobID := c.Param("job_id")
	job, err := h.usecase.MarkCompleted(c.Request.Context(), jobID)
	if err != nil {
		log.Printf("[job][handler] complete failed job_id=%s err=%v", jobID, err)
		writeError(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromJob(job))
}

// RequestTransition godoc
// @Summary      Move the job to a target status
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job_id   path      string                     true  "Job ID"
// @Param        payload  body      request.TransitionRequest  true  "Target status"
// @Success      200      {object}  response.JobResponse
// @Failure      404      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Router       /jobs/{job_id}/status [patch]
func (h *JobHandler) RequestTransition(c *gin.Context) {
	jobID := c.Param("job_id")
	var payload request.TransitionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	job, err := h.usecase.RequestTransition(c.Request.Context(), jobID, payload.Target())
	if err != nil {
		log.Printf("[job][handler] transition failed job_id=%s target=%s err=%v", jobID, payload.Target(), err)
		writeError(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromJob(job))
}

// GenerateInvoice godoc
// @Summary      Invoice a completed job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job_id   path      string                          true  "Job ID"
// @Param        payload  body      request.GenerateInvoiceRequest  true  "Line items"
// @Success      201      {object}  response.JobResponse
// @Failure      404      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Failure      422      {object}  pkg.HTTPError
// @Router       /jobs/{job_id}/invoice [post]
func (h *JobHandler) GenerateInvoice(c *gin.Context) {
	jobID := c.Param("job_id")
	var payload request.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	job, err := h.usecase.GenerateInvoice(c.Request.Context(), jobID, payload.ToLineItems())
	if err != nil {
		log.Printf("[job][handler] invoice failed job_id=%s err=%v", jobID, err)
		writeError(c, mapError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromJob(job))
}
