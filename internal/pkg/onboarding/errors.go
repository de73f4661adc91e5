package onboarding

import (
	"errors"
	"fmt"
)

// Cause classifies why an onboarding operation failed. Callers see a single
// 500 status either way; the cause is for logs and for code that needs to
// branch on it.
type Cause string

const (
	CauseStore      Cause = "store"
	CauseExchange   Cause = "exchange"
	CauseValidation Cause = "validation"
)

// Error is the tagged failure returned inside onboarding results.
type Error struct {
	Op    string
	Cause Cause
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("onboarding %s failed (%s): %v", e.Op, e.Cause, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func fail(op string, cause Cause, err error) *Error {
	return &Error{Op: op, Cause: cause, Err: err}
}

// CauseOf extracts the cause tag from an error chain.
func CauseOf(err error) (Cause, bool) {
	var oe *Error
	if errors.As(err, &oe) {
		return oe.Cause, true
	}
	return "", false
}
