package exception

import (
	"strings"

	"github.com/thanhminhmr/go-smarttrace/stack"
)

const multipleType = "multiple errors"

// Join combines multiple errors into a single Exception.
//
// Nil values are ignored. If no errors remain, Join returns nil. If there is
// exactly one non-nil error, and it already implements Exception, it is returned
// directly.
//
// Otherwise, Join creates a new Exception that represents multiple causes. This
// special Exception only holds the underlying errors; the first one is its
// primary cause and the others are rendered as suppressed.
func Join(errors ...error) Exception {
	multiple := concat(nil, errors...)
	if len(multiple) == 0 {
		return nil
	}
	if len(multiple) == 1 {
		if inner, ok := multiple[0].(Exception); ok {
			return inner
		}
	}
	return multipleErrors(multiple)
}

type multipleErrors []error

func (e multipleErrors) Error() string {
	messages := make([]string, len(e))
	for i, err := range e {
		messages[i] = err.Error()
	}
	return strings.Join(messages, "\n")
}

func (e multipleErrors) GetType() string {
	return multipleType
}

func (e multipleErrors) GetMessage() string {
	return ""
}

func (e multipleErrors) SetMessage(message string, parameters ...any) Exception {
	return String(multipleType).SetMessage(message, parameters...).AddCause(e)
}

func (e multipleErrors) GetCause() []error {
	return e
}

func (e multipleErrors) AddCause(errors ...error) Exception {
	return multipleErrors(concat(append([]error(nil), e...), errors...))
}

func (e multipleErrors) GetSuppressed() []error {
	return nil
}

func (e multipleErrors) AddSuppressed(errors ...error) Exception {
	if suppressed := concat(nil, errors...); len(suppressed) > 0 {
		return &exception{
			Type:       multipleType,
			Cause:      e,
			Suppressed: suppressed,
		}
	}
	return e
}

func (e multipleErrors) GetStackTrace() stack.Frames {
	return nil
}

func (e multipleErrors) FillStackTrace(skip int) Exception {
	return &exception{
		Type:       multipleType,
		Cause:      e,
		StackTrace: stack.Capture(skip + 1),
	}
}

func (e multipleErrors) __() {}

func (e multipleErrors) Unwrap() []error {
	return e
}
