package trace

import (
	"github.com/thanhminhmr/go-smarttrace/filter"
	"github.com/thanhminhmr/go-smarttrace/render"
)

// Option overrides a part of the registry configuration for one call.
type Option func(renderer *render.Renderer)

// WithRootPackages replaces the root packages.
func WithRootPackages(names ...string) Option {
	return func(renderer *render.Renderer) {
		renderer.Root = filter.Prefixes(names)
	}
}

// WithGroupPackages replaces the group packages.
func WithGroupPackages(names ...string) Option {
	return func(renderer *render.Renderer) {
		renderer.Group = filter.Prefixes(names)
	}
}

// WithIgnorePackages replaces the ignored packages.
func WithIgnorePackages(names ...string) Option {
	return func(renderer *render.Renderer) {
		renderer.Ignore = filter.Prefixes(names)
	}
}

// WithIgnoreCausePackages replaces the packages whose errors have their
// causes omitted.
func WithIgnoreCausePackages(names ...string) Option {
	return func(renderer *render.Renderer) {
		renderer.IgnoreCause = filter.Prefixes(names)
	}
}

func WithMaxDepth(maxDepth int) Option {
	return func(renderer *render.Renderer) {
		renderer.Options.MaxDepth = maxDepth
	}
}

func WithIgnoreAllCauses(ignoreAllCauses bool) Option {
	return func(renderer *render.Renderer) {
		renderer.Options.IgnoreAllCauses = ignoreAllCauses
	}
}

func WithPackageInformation(printPackageInformation bool) Option {
	return func(renderer *render.Renderer) {
		renderer.Options.PrintPackageInformation = printPackageInformation
	}
}

func WithModuleName(printModuleName bool) Option {
	return func(renderer *render.Renderer) {
		renderer.Options.PrintModuleName = printModuleName
	}
}

func WithSuppressed(printSuppressed bool) Option {
	return func(renderer *render.Renderer) {
		renderer.Options.PrintSuppressed = printSuppressed
	}
}

func WithIndent(indent string) Option {
	return func(renderer *render.Renderer) {
		renderer.Options.Indent = indent
	}
}

func WithFormatter(formatter render.Formatter) Option {
	return func(renderer *render.Renderer) {
		renderer.Formatter = formatter
	}
}

// WithOptions replaces every option at once.
func WithOptions(options render.Options) Option {
	return func(renderer *render.Renderer) {
		renderer.Options = options
	}
}
