// Package format provides the frame formatters used by the renderer.
package format

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/thanhminhmr/go-smarttrace/buildinfo"
	"github.com/thanhminhmr/go-smarttrace/render"
	"github.com/thanhminhmr/go-smarttrace/stack"
)

// type check
var (
	_ render.Formatter = Go{}
	_ render.Formatter = Modular{}
)

const (
	nativeMethod  = "(Native Method)"
	unknownSource = "(Unknown Source)"
)

// Go formats frames like "example.com/app.(*Server).Serve(server.go:42)" and
// never prints module names. A nil Resolver uses buildinfo.Default.
type Go struct {
	Resolver buildinfo.Resolver
}

func (f Go) Format(frame stack.Frame, _ bool, printPackageInformation bool) string {
	builder := &strings.Builder{}
	f.write(builder, frame, printPackageInformation)
	return builder.String()
}

func (f Go) write(builder *strings.Builder, frame stack.Frame, printPackageInformation bool) {
	builder.WriteString(frame.String())
	switch {
	case frame.Native:
		builder.WriteString(f.NativeMethod())
	case frame.HasSource():
		builder.WriteString("(")
		builder.WriteString(filepath.Base(frame.File))
		if frame.Line >= 0 {
			builder.WriteString(":")
			builder.WriteString(strconv.Itoa(frame.Line))
		}
		builder.WriteString(")")
	default:
		builder.WriteString(f.UnknownSource())
	}
	if printPackageInformation {
		builder.WriteString(f.PackageInformation(frame))
	}
}

func (f Go) ModuleName(stack.Frame) string {
	return ""
}

// PackageInformation returns the module and version owning the package of
// the frame, such as " [github.com/rs/zerolog:v1.34.0]".
func (f Go) PackageInformation(frame stack.Frame) string {
	resolver := f.Resolver
	if resolver == nil {
		resolver = buildinfo.Default()
	}
	packagePath := frame.Package
	if packagePath == "" {
		packagePath = frame.Module
	}
	if packagePath == "" {
		return ""
	}
	info, ok := resolver.Resolve(packagePath)
	if !ok {
		return ""
	}
	return buildinfo.PackageInformation(info.Path, info.Version)
}

func (f Go) NativeMethod() string {
	return nativeMethod
}

func (f Go) UnknownSource() string {
	return unknownSource
}

// Modular formats frames like Go, prefixed with the module path of the frame,
// such as "example.com/app/example.com/app/api.Handler(api.go:12)".
type Modular struct {
	Go
}

func (f Modular) Format(frame stack.Frame, printModuleName bool, printPackageInformation bool) string {
	builder := &strings.Builder{}
	if printModuleName {
		builder.WriteString(f.ModuleName(frame))
	}
	f.write(builder, frame, printPackageInformation)
	return builder.String()
}

func (f Modular) ModuleName(frame stack.Frame) string {
	if strings.TrimSpace(frame.Module) == "" {
		return ""
	}
	return frame.Module + "/"
}
