package snapshot

import (
	"reflect"

	"github.com/thanhminhmr/go-smarttrace/stack"
)

type typed interface {
	GetType() string
}

type messaged interface {
	GetMessage() string
}

type causes interface {
	GetCause() []error
}

type suppressor interface {
	GetSuppressed() []error
}

type stackTracer interface {
	GetStackTrace() stack.Frames
}

// TypeOf returns the fully qualified type identifier of err. Errors
// implementing GetType() string report their own type, others report their
// dynamic type with pointers dereferenced, such as "io/fs.PathError".
func TypeOf(err error) string {
	defer ignorePanic()
	if err == nil {
		return ""
	}
	if e, ok := err.(typed); ok {
		return e.GetType()
	}
	kind := reflect.TypeOf(err)
	for kind.Kind() == reflect.Pointer && kind.Name() == "" {
		kind = kind.Elem()
	}
	if kind.Name() == "" || kind.PkgPath() == "" {
		return kind.String()
	}
	return kind.PkgPath() + "." + kind.Name()
}

// MessageOf returns the message of err: GetMessage() string when
// implemented, Error() otherwise.
func MessageOf(err error) string {
	defer ignorePanic()
	if err == nil {
		return ""
	}
	if e, ok := err.(messaged); ok {
		return e.GetMessage()
	}
	return err.Error()
}

// CauseOf returns the primary cause of err, the first one found through
// GetCause() []error, Cause() error, Unwrap() error or Unwrap() []error.
func CauseOf(err error) error {
	defer ignorePanic()
	switch e := err.(type) {
	case causes:
		return first(e.GetCause())
	case interface{ Cause() error }:
		return e.Cause()
	case interface{ Unwrap() error }:
		return e.Unwrap()
	case interface{ Unwrap() []error }:
		return first(e.Unwrap())
	}
	return nil
}

// SuppressedOf returns the suppressed errors of err followed by every cause
// after the primary one.
func SuppressedOf(err error) []error {
	defer ignorePanic()
	var result []error
	if e, ok := err.(suppressor); ok {
		result = appendNonNil(result, e.GetSuppressed())
	}
	switch e := err.(type) {
	case causes:
		result = appendNonNil(result, rest(e.GetCause()))
	case interface{ Cause() error }, interface{ Unwrap() error }:
		// single cause
	case interface{ Unwrap() []error }:
		result = appendNonNil(result, rest(e.Unwrap()))
	}
	return result
}

// FramesOf returns the call frames recorded by err, through
// GetStackTrace() stack.Frames, Callers() []uintptr or StackTrace() []uintptr.
func FramesOf(err error) stack.Frames {
	defer ignorePanic()
	switch e := err.(type) {
	case stackTracer:
		return e.GetStackTrace()
	case interface{ Callers() []uintptr }:
		return stack.FromPCs(e.Callers())
	case interface{ StackTrace() []uintptr }:
		return stack.FromPCs(e.StackTrace())
	}
	return nil
}

// ignorePanic swallows panics of foreign error methods, such as methods
// called on typed nil pointers. The accessor then returns its zero value.
func ignorePanic() {
	_ = recover()
}

func first(errors []error) error {
	for _, err := range errors {
		if err != nil {
			return err
		}
	}
	return nil
}

func rest(errors []error) []error {
	for i, err := range errors {
		if err != nil {
			return errors[i+1:]
		}
	}
	return nil
}

func appendNonNil(result []error, errors []error) []error {
	for _, err := range errors {
		if err != nil {
			result = append(result, err)
		}
	}
	return result
}
