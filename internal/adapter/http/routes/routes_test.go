package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fieldservice/internal/adapter/http/handlers"
	"fieldservice/internal/adapter/persistence/repository"
	"fieldservice/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := repository.NewJobMemoryRepository()
	locker := usecase.NewJobLocker()
	jobUC := usecase.NewJobUseCase(repo, nil, locker, decimal.RequireFromString("0.1"))
	paymentUC := usecase.NewPaymentUseCase(repo, nil, locker, nil)
	return NewRouter(handlers.NewJobHandler(jobUC), handlers.NewInvoiceHandler(paymentUC))
}

func call(t *testing.T, r *gin.Engine, method, path, body string, wantStatus int) map[string]any {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != wantStatus {
		t.Fatalf("%s %s: expected %d, got %d: %s", method, path, wantStatus, w.Code, w.Body.String())
	}
	out := map[string]any{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return out
}

func TestPing(t *testing.T) {
	r := newTestRouter(t)
	body := call(t, r, http.MethodGet, "/v1/ping", "", http.StatusOK)
	if body["message"] != "pong" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestJobLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	job := call(t, r, http.MethodPost, "/v1/jobs",
		`{"title":"Fix boiler","customer":{"name":"Ana","email":"ana@example.com"}}`, http.StatusCreated)
	jobID, _ := job["id"].(string)
	if jobID == "" || job["status"] != "NEW" {
		t.Fatalf("unexpected job: %v", job)
	}
	base := "/v1/jobs/" + jobID

	call(t, r, http.MethodPatch, base+"/complete", "", http.StatusConflict)

	job = call(t, r, http.MethodPut, base+"/appointment",
		`{"technician":"Bob","start_time":"2026-03-01T09:00:00Z","end_time":"2026-03-01T11:00:00Z"}`, http.StatusOK)
	if job["status"] != "SCHEDULED" {
		t.Fatalf("expected SCHEDULED, got %v", job["status"])
	}

	job = call(t, r, http.MethodPatch, base+"/complete", "", http.StatusOK)
	if job["status"] != "COMPLETED" {
		t.Fatalf("expected COMPLETED, got %v", job["status"])
	}

	job = call(t, r, http.MethodPost, base+"/invoice",
		`{"line_items":[{"description":"Part","quantity":2,"unit_price":"50"}]}`, http.StatusCreated)
	inv, _ := job["invoice"].(map[string]any)
	invoiceID, _ := inv["id"].(string)
	if job["status"] != "INVOICED" || inv["total_amount"] != "110.00" {
		t.Fatalf("unexpected invoiced job: %v", job)
	}
	call(t, r, http.MethodPost, base+"/invoice",
		`{"line_items":[{"description":"Part","quantity":1,"unit_price":"1"}]}`, http.StatusConflict)

	payments := "/v1/invoices/" + invoiceID + "/payments"
	out := call(t, r, http.MethodPost, payments, `{"amount":"50","method":"Cash"}`, http.StatusCreated)
	if out["status"] != "PARTIALLY_PAID" || out["remaining_balance"] != "60.00" {
		t.Fatalf("unexpected invoice: %v", out)
	}
	call(t, r, http.MethodPost, payments, `{"amount":"70","method":"Cash"}`, http.StatusConflict)
	out = call(t, r, http.MethodPost, payments, `{"amount":"60","method":"bank_transfer"}`, http.StatusCreated)
	if out["status"] != "PAID" || out["can_pay"] != false {
		t.Fatalf("unexpected invoice: %v", out)
	}

	job = call(t, r, http.MethodGet, base, "", http.StatusOK)
	if job["status"] != "PAID" {
		t.Fatalf("expected PAID, got %v", job["status"])
	}

	req := httptest.NewRequest(http.MethodGet, payments, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var list []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if len(list) != 2 || list[1]["method"] != "Bank Transfer" {
		t.Fatalf("unexpected payments: %s", w.Body.String())
	}
}
