//go:build !no_zerolog

package stack

import "github.com/rs/zerolog"

func (f Frame) MarshalZerologObject(event *zerolog.Event) {
	event.Str("function", f.String())
	if f.File != "" {
		event.Str("file", f.File)
	}
	if f.Line >= 0 {
		event.Int("line", f.Line)
	}
	if f.Native {
		event.Bool("native", true)
	}
	if f.Module != "" {
		event.Str("module", f.Module)
	}
}

func (s Frames) MarshalZerologArray(array *zerolog.Array) {
	for _, frame := range s {
		array.Object(frame)
	}
}
