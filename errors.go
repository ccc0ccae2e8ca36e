// errors.go re-exports contract-violation types from internal/fault.
package loom

import "github.com/grindlemire/go-loom/internal/fault"

// FatalError is the panic value raised when a frame violates a contract:
// duplicate registration, type mismatch, consumed slot, stale state, runaway
// expansion. The frame is aborted at the violation site; the core never
// recovers these.
type FatalError = fault.Error

// FatalCode classifies a FatalError.
type FatalCode = fault.Code

const (
	ErrDuplicateType    = fault.DuplicateType
	ErrUnregisteredType = fault.UnregisteredType
	ErrTypeMismatch     = fault.TypeMismatch
	ErrSlotConsumed     = fault.SlotConsumed
	ErrStaleSlot        = fault.StaleSlot
	ErrStaleHandle      = fault.StaleHandle
	ErrDepthExceeded    = fault.DepthExceeded
	ErrBudgetExceeded   = fault.BudgetExceeded
	ErrStackUnderflow   = fault.StackUnderflow
	ErrBlockOverflow    = fault.BlockOverflow
	ErrReentrant        = fault.Reentrant
)

// IsFatal reports whether err is a FatalError with the given code.
func IsFatal(err error, code FatalCode) bool {
	return fault.Is(err, code)
}

// RecoverFatal converts a recovered panic value into a FatalError, or nil if
// the panic was not a contract violation. Intended for hosts that want to
// report a failed frame instead of crashing:
//
//	defer func() {
//	    if fe := loom.RecoverFatal(recover()); fe != nil {
//	        log.Error("frame aborted", "code", fe.Code)
//	    }
//	}()
func RecoverFatal(r any) *FatalError {
	if r == nil {
		return nil
	}
	fe := fault.FromRecovered(r)
	if fe == nil {
		panic(r)
	}
	return fe
}
