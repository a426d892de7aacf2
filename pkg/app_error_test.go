package pkg

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_ToHTTPError(t *testing.T) {
	cause := errors.New("dynamodb timeout")
	appErr := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)

	if !errors.Is(appErr, cause) {
		t.Fatalf("expected AppError to unwrap to its cause")
	}

	b, err := json.Marshal(appErr.ToHTTPError())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(b), "dynamodb") {
		t.Fatalf("cause leaked into body: %s", b)
	}
	if !strings.Contains(string(b), `"code":"INTERNAL_ERROR"`) {
		t.Fatalf("unexpected body: %s", b)
	}
}

func TestAppError_WithDetail(t *testing.T) {
	appErr := NewDomainErrorSimple("INVALID_LINE_ITEM", "Invalid line item", http.StatusUnprocessableEntity).
		WithDetail("index", 2).
		WithDetail("reason", "quantity must be positive")

	body := appErr.ToHTTPError()
	if body.Error.Details["index"] != 2 {
		t.Fatalf("expected index detail, got %v", body.Error.Details)
	}
	if appErr.HTTPStatus != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", appErr.HTTPStatus)
	}
	if appErr.Error() != "INVALID_LINE_ITEM: Invalid line item" {
		t.Fatalf("unexpected message %q", appErr.Error())
	}
}
