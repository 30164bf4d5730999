package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrAllocationFailure is reported when a heap buffer for a Medium or
	// Large value cannot be allocated. It is fatal: the factory never
	// returns it, it hands it to the configured FatalFunc.
	ErrAllocationFailure = zerr.New("buffer allocation failed")

	// ErrInvalidCategory is reported when a value's category tag is outside
	// the defined set at a point where ownership must be decided (clone or
	// release). It is fatal: continuing would mean undefined ownership.
	ErrInvalidCategory = zerr.New("invalid string category")

	// ErrInvalidPolicy is returned when category thresholds are out of range
	// or out of order.
	ErrInvalidPolicy = zerr.New("invalid category policy")
)

// Process exit codes used by the default fatal path, one per fatal error
// kind so callers can tell an allocation failure from a corrupted value.
const (
	ExitAllocationFailure = 1
	ExitInvalidCategory   = 2
)

// ExitCode maps a fatal error to its process exit code.
func ExitCode(err error) int {
	if errors.Is(err, ErrInvalidCategory) {
		return ExitInvalidCategory
	}
	return ExitAllocationFailure
}
