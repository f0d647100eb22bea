package stack

import (
	"runtime"
	"strings"

	"github.com/thanhminhmr/go-smarttrace/buildinfo"
)

// Frame is one call-frame record.
type Frame struct {
	// Package is the import path of the package declaring the function.
	Package string
	// Type is the fully qualified name used for package matching: the
	// receiver type for methods, otherwise the package path.
	Type string
	// Function is the member name inside Type.
	Function string
	// File is the source file path, empty if unknown.
	File string
	// Line is the source line, -1 if unknown.
	Line int
	// Native is set for frames without Go source, such as assembly.
	Native bool
	// Module is the path of the Go module owning the package, if known.
	Module string
}

// String returns the fully qualified function name of the frame.
func (f Frame) String() string {
	switch {
	case f.Type == "":
		return f.Function
	case f.Function == "":
		return f.Type
	default:
		return f.Type + "." + f.Function
	}
}

// HasSource reports whether the frame knows its source file.
func (f Frame) HasSource() bool {
	return strings.TrimSpace(f.File) != ""
}

type Frames []Frame

// Capture returns the call stack of the current goroutine, index 0 being
// the caller of Capture. A skip of 1 omits that caller, and so on.
func Capture(skip int) Frames {
	const depth = 64
	var programCounters [depth]uintptr
	programCountersLength := runtime.Callers(2+skip, programCounters[:])
	return FromPCs(programCounters[:programCountersLength])
}

// FromPCs resolves program counters, as returned by runtime.Callers, into
// frames.
func FromPCs(programCounters []uintptr) Frames {
	if len(programCounters) == 0 {
		return nil
	}
	frames := runtime.CallersFrames(programCounters)
	result := make(Frames, 0, len(programCounters))
	for {
		frame, more := frames.Next()
		if frame.Function != "" || frame.File != "" {
			result = append(result, FromRuntime(frame))
		}
		if !more {
			break
		}
	}
	return result
}

// FromRuntime converts a runtime frame. The module is resolved from the
// build information of the running binary.
func FromRuntime(frame runtime.Frame) Frame {
	packagePath, typeName, function := Split(frame.Function)
	result := Frame{
		Package:  packagePath,
		Type:     typeName,
		Function: function,
		File:     frame.File,
		Line:     frame.Line,
		Native:   strings.HasSuffix(frame.File, ".s"),
	}
	if result.File == "" || result.Line <= 0 {
		result.Line = -1
	}
	if info, ok := buildinfo.Default().Resolve(packagePath); ok {
		result.Module = info.Path
	}
	return result
}
