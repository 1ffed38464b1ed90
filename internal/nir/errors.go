package nir

import (
	"fmt"
	"runtime"
)

// PreconditionError reports a malformed-IR precondition violation
// (spec.md §7 error class 1): these fail loudly and unrecoverably
// because they should never occur in well-formed IR. Serialize never
// recovers one itself; Go's panic/recover is the "assertion / abort /
// panic-equivalent" spec.md asks for.
type PreconditionError struct {
	Code    string
	Message string
	Context map[string]any
	Caller  string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("nir: precondition violation [%s] %s (caller: %s)", e.Code, e.Message, e.Caller)
}

func newPrecondition(code, message string, context map[string]any) *PreconditionError {
	caller := "unknown"

	if pc, _, _, ok := runtime.Caller(1); ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	return &PreconditionError{Code: code, Message: message, Context: context, Caller: caller}
}

// failPrecondition panics with a PreconditionError attributed to its
// caller (the encode function that detected the violation).
func failPrecondition(code, message string, context map[string]any) {
	caller := "unknown"

	if pc, _, _, ok := runtime.Caller(1); ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	panic(&PreconditionError{Code: code, Message: message, Context: context, Caller: caller})
}
