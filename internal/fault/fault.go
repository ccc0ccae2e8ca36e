// Package fault defines the contract-violation values raised by the frame
// evaluator. Violations abort the frame with a panic carrying an *Error so the
// failure surfaces at the call site that broke the contract.
package fault

import (
	"errors"
	"fmt"
)

// Code is a machine-readable violation code.
type Code string

const (
	DuplicateType    Code = "DUPLICATE_TYPE"
	UnregisteredType Code = "UNREGISTERED_TYPE"
	TypeMismatch     Code = "TYPE_MISMATCH"
	SlotConsumed     Code = "SLOT_CONSUMED"
	StaleSlot        Code = "STALE_SLOT"
	StaleHandle      Code = "STALE_HANDLE"
	DepthExceeded    Code = "DEPTH_EXCEEDED"
	BudgetExceeded   Code = "BUDGET_EXCEEDED"
	StackUnderflow   Code = "STACK_UNDERFLOW"
	BlockOverflow    Code = "BLOCK_OVERFLOW"
	Reentrant        Code = "REENTRANT"
)

// Error is a contract violation.
type Error struct {
	Code    Code
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("loom: %s: %s", e.Code, e.Message)
}

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Panic raises a violation. It never returns.
func Panic(code Code, format string, args ...any) {
	panic(New(code, format, args...))
}

// Is reports whether err is a violation with the given code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// FromRecovered converts a recovered panic value into an *Error.
// Returns nil if the value is not a violation.
func FromRecovered(r any) *Error {
	switch v := r.(type) {
	case *Error:
		return v
	case error:
		var e *Error
		if errors.As(v, &e) {
			return e
		}
	}
	return nil
}
