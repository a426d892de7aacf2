package lifecycle

import (
	"errors"
	"fmt"
	"testing"

	"fieldservice/internal/domain/entities"
)

func TestKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&TransitionError{From: entities.JobStatusNew, To: entities.JobStatusPaid}, "INVALID_TRANSITION"},
		{&ValidationError{Field: "endTime"}, "VALIDATION_ERROR"},
		{&LineItemError{Index: 2}, "INVALID_LINE_ITEM"},
		{fmt.Errorf("wrapped: %w", ErrExceedsBalance), "EXCEEDS_BALANCE"},
		{ErrAlreadyInvoiced, "ALREADY_INVOICED"},
		{ErrNotFound, "NOT_FOUND"},
		{errors.New("db down"), ""},
	}
	for _, tc := range cases {
		if got := Kind(tc.err); got != tc.want {
			t.Fatalf("Kind(%v): expected %q, got %q", tc.err, tc.want, got)
		}
	}
}
