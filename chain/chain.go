// Package chain walks the cause chain of live errors.
//
// Causes are found the same way snapshots find them: GetCause() []error,
// Cause() error, Unwrap() error or the first of Unwrap() []error.
package chain

import (
	"strings"

	"github.com/thanhminhmr/go-smarttrace/internal"
	"github.com/thanhminhmr/go-smarttrace/snapshot"
)

// DefaultMaxDepth is the number of causes searched when no depth is given.
const DefaultMaxDepth = 10

const messageSeparator = "\n - Caused by: "

// Messages joins the non-blank messages of err and its causes, such as
// "Bean creation failed.\n - Caused by: Invalid running state.". Suppressed
// errors are not included.
func Messages(err error) string {
	builder := &strings.Builder{}
	visited := internal.Visited{}
	for ; err != nil && visited.Visit(err); err = snapshot.CauseOf(err) {
		message := snapshot.MessageOf(err)
		if strings.TrimSpace(message) == "" {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString(messageSeparator)
		}
		builder.WriteString(message)
	}
	return builder.String()
}

// FindCause returns the first error of the chain, err itself being at depth
// 0, whose type is typeName and whose chain messages contain message, ignoring
// case. An empty message matches any error. Errors deeper than maxDepth are
// not checked.
func FindCause(err error, typeName string, message string, maxDepth int) error {
	return walk(err, message, maxDepth, func(node error) bool {
		return snapshot.TypeOf(node) == typeName
	})
}

// Find is FindCause matching errors assignable to T instead of a type name.
func Find[T error](err error, message string, maxDepth int) (T, bool) {
	found := walk(err, message, maxDepth, func(node error) bool {
		_, ok := node.(T)
		return ok
	})
	target, ok := found.(T)
	return target, ok
}

// Contains reports whether the first DefaultMaxDepth causes of err include
// an error of type typeName with the given message.
func Contains(err error, typeName string, message string) bool {
	return FindCause(err, typeName, message, DefaultMaxDepth) != nil
}

// ContainsType reports whether the first DefaultMaxDepth causes of err
// include an error assignable to T.
func ContainsType[T error](err error) bool {
	_, ok := Find[T](err, "", DefaultMaxDepth)
	return ok
}

// NthCause follows at most maxDepth causes and returns the error reached.
//
// NthCause does not fail on short chains: when the chain ends early, the
// last error of the chain is returned, so callers cannot assume maxDepth
// causes were followed. A maxDepth of 0 or less returns err itself.
func NthCause(err error, maxDepth int) error {
	if err == nil {
		return nil
	}
	visited := internal.Visited{}
	visited.Visit(err)
	for depth := 0; depth < maxDepth; depth++ {
		cause := snapshot.CauseOf(err)
		if cause == nil || !visited.Visit(cause) {
			break
		}
		err = cause
	}
	return err
}

// RootCause returns NthCause(err, DefaultMaxDepth).
func RootCause(err error) error {
	return NthCause(err, DefaultMaxDepth)
}

func walk(err error, message string, maxDepth int, matches func(error) bool) error {
	visited := internal.Visited{}
	for depth := 0; err != nil && visited.Visit(err); depth++ {
		if matches(err) && (message == "" || containsFold(Messages(err), message)) {
			return err
		}
		if depth >= maxDepth {
			return nil
		}
		err = snapshot.CauseOf(err)
	}
	return nil
}

func containsFold(text string, substring string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(substring))
}
