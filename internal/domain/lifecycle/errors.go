package lifecycle

import (
	"errors"
	"fmt"

	"fieldservice/internal/domain/entities"
)

var (
	ErrInvalidTransition       = errors.New("invalid status transition")
	ErrValidation              = errors.New("validation failed")
	ErrRequiresCompletedStatus = errors.New("job must be COMPLETED to be invoiced")
	ErrEmptyLineItems          = errors.New("invoice requires at least one line item")
	ErrInvalidLineItem         = errors.New("invalid line item")
	ErrAlreadyInvoiced         = errors.New("job already has an invoice")
	ErrInvalidAmount           = errors.New("invalid payment amount")
	ErrExceedsBalance          = errors.New("payment exceeds remaining balance")
	ErrInvoiceAlreadyPaid      = errors.New("invoice is already paid")
	ErrNotFound                = errors.New("not found")
)

// TransitionError carries the rejected edge for diagnostics.
type TransitionError struct {
	From entities.JobStatus
	To   entities.JobStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// ValidationError is scoped to the offending input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// LineItemError names the index of the rejected line item.
type LineItemError struct {
	Index  int
	Reason string
}

func (e *LineItemError) Error() string {
	return fmt.Sprintf("%s at index %d: %s", ErrInvalidLineItem, e.Index, e.Reason)
}

func (e *LineItemError) Is(target error) bool { return target == ErrInvalidLineItem }

var kinds = []struct {
	err  error
	code string
}{
	{ErrInvalidTransition, "INVALID_TRANSITION"},
	{ErrValidation, "VALIDATION_ERROR"},
	{ErrRequiresCompletedStatus, "REQUIRES_COMPLETED_STATUS"},
	{ErrEmptyLineItems, "EMPTY_LINE_ITEMS"},
	{ErrInvalidLineItem, "INVALID_LINE_ITEM"},
	{ErrAlreadyInvoiced, "ALREADY_INVOICED"},
	{ErrInvalidAmount, "INVALID_AMOUNT"},
	{ErrExceedsBalance, "EXCEEDS_BALANCE"},
	{ErrInvoiceAlreadyPaid, "INVOICE_ALREADY_PAID"},
	{ErrNotFound, "NOT_FOUND"},
}

// Kind returns the stable error code of a lifecycle error, or "" when err
// does not belong to the taxonomy.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.code
		}
	}
	return ""
}
