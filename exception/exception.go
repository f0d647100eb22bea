package exception

import (
	"fmt"
	"slices"

	"github.com/thanhminhmr/go-smarttrace/stack"
)

// Exception defines a lightweight exception model for Go, providing mechanisms
// for chaining causes, tracking suppressed errors, and capturing stack traces.
//
// Methods that return Exception may either modify the current exception in place
// or return a new exception instance. Callers should always use the returned
// value and must not assume that the original exception remains unchanged.
type Exception interface {
	// Error returns a string representation of this Exception in the form of "Type: message"
	Error() string

	// GetType returns the type of this Exception.
	GetType() string

	// GetMessage returns the message of this Exception. Can be empty.
	GetMessage() string

	// SetMessage stores a message inside this Exception.
	//
	// Note: This method may modify the current Exception or return a new one. Always
	// use the returned value.
	SetMessage(message string, parameters ...any) Exception

	// GetCause returns the list of underlying causes associated with this Exception.
	// The first one is the primary cause, the others are rendered as suppressed.
	GetCause() []error

	// AddCause attaches one or more underlying causes to this Exception.
	//
	// Note: This method may modify the current Exception or return a new one. Always
	// use the returned value.
	AddCause(errors ...error) Exception

	// GetSuppressed returns the list of suppressed errors that were intentionally
	// ignored or deferred while handling this Exception.
	GetSuppressed() []error

	// AddSuppressed attaches one or more suppressed errors to this Exception.
	//
	// Note: This method may modify the current Exception or return a new one. Always
	// use the returned value.
	AddSuppressed(errors ...error) Exception

	// GetStackTrace returns the stack trace captured for this Exception. The
	// slice may be empty if no stack trace was filled.
	GetStackTrace() stack.Frames

	// FillStackTrace captures the current call stack starting from the caller of
	// FillStackTrace itself and attaches it to the Exception.
	//
	// The skip parameter controls how many additional stack frames
	// are omitted. A value of 0 includes the caller of FillStackTrace,
	// a value of 1 skips that frame, and higher values skip more.
	//
	// Note: This method may modify the current Exception or return a new one. Always
	// use the returned value.
	FillStackTrace(skip int) Exception

	__() // private
}

// exception is handled by pointer so every instance keeps its own identity
// when error chains are walked.
type exception struct {
	Type       string
	Message    string
	Cause      []error
	Suppressed []error
	StackTrace stack.Frames
}

func (e *exception) clone() *exception {
	clone := *e
	clone.Cause = slices.Clone(e.Cause)
	clone.Suppressed = slices.Clone(e.Suppressed)
	return &clone
}

func (e *exception) Error() string {
	if e.Message != "" {
		return e.Type + ": " + e.Message
	}
	return e.Type
}

func (e *exception) GetType() string {
	return e.Type
}

func (e *exception) GetMessage() string {
	return e.Message
}

func (e *exception) SetMessage(message string, parameters ...any) Exception {
	clone := e.clone()
	if len(parameters) > 0 {
		clone.Message = fmt.Sprintf(message, parameters...)
	} else {
		clone.Message = message
	}
	return clone
}

func (e *exception) GetCause() []error {
	return e.Cause
}

func (e *exception) AddCause(errors ...error) Exception {
	clone := e.clone()
	clone.Cause = concat(clone.Cause, errors...)
	return clone
}

func (e *exception) GetSuppressed() []error {
	return e.Suppressed
}

func (e *exception) AddSuppressed(errors ...error) Exception {
	clone := e.clone()
	clone.Suppressed = concat(clone.Suppressed, errors...)
	return clone
}

func (e *exception) GetStackTrace() stack.Frames {
	return e.StackTrace
}

func (e *exception) FillStackTrace(skip int) Exception {
	clone := e.clone()
	clone.StackTrace = stack.Capture(skip + 1)
	return clone
}

func (e *exception) __() {}

func (e *exception) Unwrap() []error {
	return e.Cause
}

func (e *exception) Is(target error) bool {
	return is(e, target)
}

func (e *exception) As(target any) bool {
	return as(e, target)
}
