//go:build !no_zerolog

package exception

import (
	"github.com/rs/zerolog"
)

func (e String) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", string(e))
}

func (e *exception) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", e.Type)
	if e.Message != "" {
		event.Str("message", e.Message)
	}
	switch len(e.Cause) {
	case 0: // skip
	case 1:
		event.AnErr("cause", e.Cause[0])
	default:
		event.Errs("cause", e.Cause)
	}
	switch len(e.Suppressed) {
	case 0: // skip
	case 1:
		event.AnErr("suppressed", e.Suppressed[0])
	default:
		event.Errs("suppressed", e.Suppressed)
	}
	if len(e.StackTrace) > 0 {
		event.Array("stack_trace", e.StackTrace)
	}
}

func (e multipleErrors) MarshalZerologObject(event *zerolog.Event) {
	switch len(e) {
	case 0: // skip
	case 1:
		event.AnErr("cause", e[0])
	default:
		event.Errs("cause", e)
	}
}
