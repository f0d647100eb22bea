// Package trace is the entry point for rendering condensed traces of errors.
//
// A Registry holds the package sets and options shared by every rendering
// call. The package-level functions use the Default registry:
//
//	trace.RegisterRootPackage("example.com/app")
//	trace.RegisterGroupPackage("github.com/go-chi/chi/v5")
//	text, err := trace.String(err)
//
// Rendering reads the registry without isolation from concurrent
// registration: a call may observe a package registered while it runs.
// Use the With options to render with a fixed configuration instead.
package trace

import (
	"sync"

	"github.com/thanhminhmr/go-smarttrace/filter"
	"github.com/thanhminhmr/go-smarttrace/format"
	"github.com/thanhminhmr/go-smarttrace/render"
)

// Default is the process-wide registry, using the Go formatter and the
// default options.
var Default = NewRegistry()

// Registry is a set of package names and options safe for concurrent use.
type Registry struct {
	root        filter.PackageSet
	group       filter.PackageSet
	ignore      filter.PackageSet
	ignoreCause filter.PackageSet

	mutex     sync.RWMutex
	options   render.Options
	formatter render.Formatter
}

// NewRegistry returns an empty registry using the Go formatter and the
// default options.
func NewRegistry() *Registry {
	return &Registry{
		options:   render.DefaultOptions(),
		formatter: format.Go{},
	}
}

// RegisterRootPackage registers a package whose frames anchor the trace.
func (r *Registry) RegisterRootPackage(name string) {
	r.root.Add(name)
}

func (r *Registry) ClearRootPackages() {
	r.root.Clear()
}

func (r *Registry) RootPackages() []string {
	return r.root.Values()
}

// RegisterGroupPackage registers a package whose consecutive frames are
// collapsed into one line.
func (r *Registry) RegisterGroupPackage(name string) {
	r.group.Add(name)
}

func (r *Registry) ClearGroupPackages() {
	r.group.Clear()
}

func (r *Registry) GroupPackages() []string {
	return r.group.Values()
}

// RegisterIgnorePackage registers a package whose frames are dropped. With
// ignoreCauses, the causes of errors whose type belongs to the package are
// dropped too.
func (r *Registry) RegisterIgnorePackage(name string, ignoreCauses bool) {
	r.ignore.Add(name)
	if ignoreCauses {
		r.ignoreCause.Add(name)
	}
}

// ClearIgnorePackages clears the ignored packages, including the ones
// ignoring causes.
func (r *Registry) ClearIgnorePackages() {
	r.ignore.Clear()
	r.ignoreCause.Clear()
}

func (r *Registry) IgnorePackages() []string {
	return r.ignore.Values()
}

func (r *Registry) IgnoreCausePackages() []string {
	return r.ignoreCause.Values()
}

func (r *Registry) SetOptions(options render.Options) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.options = options
}

func (r *Registry) Options() render.Options {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.options
}

// SetFormatter replaces the frame formatter. Rendering fails with
// render.ErrFormatterNotConfigured while it is nil.
func (r *Registry) SetFormatter(formatter render.Formatter) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.formatter = formatter
}

func (r *Registry) Formatter() render.Formatter {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.formatter
}

// Renderer returns a renderer reading the package sets of the registry,
// with the current options and formatter, then applies options.
func (r *Registry) Renderer(options ...Option) *render.Renderer {
	r.mutex.RLock()
	renderer := &render.Renderer{
		Formatter:   r.formatter,
		Root:        &r.root,
		Group:       &r.group,
		Ignore:      &r.ignore,
		IgnoreCause: &r.ignoreCause,
		Options:     r.options,
	}
	r.mutex.RUnlock()
	for _, option := range options {
		option(renderer)
	}
	return renderer
}

// String renders the condensed trace of err.
func (r *Registry) String(err error, options ...Option) (string, error) {
	return r.Renderer(options...).Render(err)
}

func RegisterRootPackage(name string) {
	Default.RegisterRootPackage(name)
}

func ClearRootPackages() {
	Default.ClearRootPackages()
}

func RegisterGroupPackage(name string) {
	Default.RegisterGroupPackage(name)
}

func ClearGroupPackages() {
	Default.ClearGroupPackages()
}

func RegisterIgnorePackage(name string, ignoreCauses bool) {
	Default.RegisterIgnorePackage(name, ignoreCauses)
}

func ClearIgnorePackages() {
	Default.ClearIgnorePackages()
}

func SetOptions(options render.Options) {
	Default.SetOptions(options)
}

func SetFormatter(formatter render.Formatter) {
	Default.SetFormatter(formatter)
}

// String renders the condensed trace of err with the Default registry.
func String(err error, options ...Option) (string, error) {
	return Default.String(err, options...)
}
