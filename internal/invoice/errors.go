package invoice

import (
	"errors"
	"fmt"
)

// Common invoice pipeline errors
var (
	// ErrRenderFailed is returned when the rendering engine fails while
	// producing the PDF.
	ErrRenderFailed = errors.New("invoice rendering failed")

	// ErrMissingAsset is returned when a mandatory static asset (logo
	// image, brand font) cannot be found at its conventional path.
	ErrMissingAsset = errors.New("missing mandatory render asset")

	// ErrStorageUnavailable is returned when the persistence medium
	// cannot be opened or written.
	ErrStorageUnavailable = errors.New("invoice storage unavailable")

	// ErrNoServices is returned when an invoice is finalized with an
	// empty service list.
	ErrNoServices = errors.New("invoice has no service lines")

	// ErrNegativeAmount is returned when a service line carries a
	// negative amount.
	ErrNegativeAmount = errors.New("service amount is negative")

	// ErrUnknownSigner is returned when signedBy is not one of the
	// configured staff names.
	ErrUnknownSigner = errors.New("signer is not a configured staff member")

	// ErrNotAuthorized is returned when the injected authorizer denies
	// the requested capability.
	ErrNotAuthorized = errors.New("operation not authorized")
)

// PipelineError wraps errors with context about which pipeline step failed.
type PipelineError struct {
	// Op is the operation that failed (e.g., "CreateInvoice", "ClearAll").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("invoice: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("invoice: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *PipelineError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// wrapPipelineError wraps err as a PipelineError unless it already is one.
func wrapPipelineError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var pipeErr *PipelineError
	if errors.As(err, &pipeErr) {
		return err
	}

	return &PipelineError{Op: op, Err: err, Details: details}
}
