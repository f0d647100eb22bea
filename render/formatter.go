// Package render turns snapshots of error chains into condensed traces.
package render

import "github.com/thanhminhmr/go-smarttrace/stack"

// Formatter turns a single frame into a display line.
type Formatter interface {
	// Format returns the frame line without the leading "at ".
	Format(frame stack.Frame, printModuleName bool, printPackageInformation bool) string

	// ModuleName returns the prefix naming the module of the frame, such as
	// "example.com/app/", or an empty string.
	ModuleName(frame stack.Frame) string

	// PackageInformation returns the library and version suffix of the
	// frame, such as " [golang.org/x/net:v0.30.0]", or an empty string.
	PackageInformation(frame stack.Frame) string

	// NativeMethod is the placeholder for frames without Go source.
	NativeMethod() string

	// UnknownSource is the placeholder for frames without a file.
	UnknownSource() string
}

// Options controls how much of an error chain is rendered.
type Options struct {
	// IgnoreAllCauses stops rendering after the top error.
	IgnoreAllCauses bool
	// MaxDepth, when positive, renders only the first MaxDepth frames of each
	// error instead of reducing them to the root packages.
	MaxDepth int
	// PrintPackageInformation appends library and version to frame lines.
	PrintPackageInformation bool
	// PrintModuleName prefixes frame lines with the module name. Group
	// summary lines carry the module of their first frame only when it is set.
	PrintModuleName bool
	// PrintSuppressed renders suppressed errors.
	PrintSuppressed bool
	// Indent is appended to the line prefix of suppressed errors.
	Indent string
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		PrintModuleName: true,
		PrintSuppressed: true,
		Indent:          "\t",
	}
}
