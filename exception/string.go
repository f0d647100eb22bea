package exception

import (
	"fmt"

	"github.com/thanhminhmr/go-smarttrace/stack"
)

// type check
var _ Exception = String("")

// String is a string-based Exception. Its value is the exception type, and it
// carries no message, causes, suppressed errors or stack trace.
//
// String is often used as a starting point for building a full exception with
// additional context. When a message, causes, suppressed errors or a stack
// trace are added, a new Exception will be created that keeps the type and
// includes the added details:
//
//	err := exception.String("ReadFailed").SetMessage("open %s", name).FillStackTrace(0)
//
// String can also be used as a constant error value, for example:
//
//	const ErrRead = exception.String("read failed")
type String string

func (e String) Error() string {
	return string(e)
}

func (e String) GetType() string {
	return string(e)
}

func (e String) GetMessage() string {
	return ""
}

func (e String) SetMessage(message string, parameters ...any) Exception {
	if message == "" {
		return e
	}
	if len(parameters) > 0 {
		message = fmt.Sprintf(message, parameters...)
	}
	return &exception{
		Type:    string(e),
		Message: message,
	}
}

func (e String) GetCause() []error {
	return nil
}

func (e String) AddCause(errors ...error) Exception {
	if cause := concat(nil, errors...); len(cause) > 0 {
		return &exception{
			Type:  string(e),
			Cause: cause,
		}
	}
	return e
}

func (e String) GetSuppressed() []error {
	return nil
}

func (e String) AddSuppressed(errors ...error) Exception {
	if suppressed := concat(nil, errors...); len(suppressed) > 0 {
		return &exception{
			Type:       string(e),
			Suppressed: suppressed,
		}
	}
	return e
}

func (e String) GetStackTrace() stack.Frames {
	return nil
}

func (e String) FillStackTrace(skip int) Exception {
	return &exception{
		Type:       string(e),
		StackTrace: stack.Capture(skip + 1),
	}
}

func (e String) __() {}

func (e String) Is(target error) bool {
	return is(e, target)
}

func (e String) As(target any) bool {
	return as(e, target)
}
