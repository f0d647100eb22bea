package render

import (
	"strconv"
	"strings"

	"github.com/thanhminhmr/go-smarttrace/exception"
	"github.com/thanhminhmr/go-smarttrace/filter"
	"github.com/thanhminhmr/go-smarttrace/snapshot"
	"github.com/thanhminhmr/go-smarttrace/stack"
)

const ErrFormatterNotConfigured = exception.String("frame formatter is not configured")

type relation int

const (
	relationTop relation = iota
	relationCause
	relationSuppressed
)

// Renderer renders condensed traces. Nil matchers are empty sets.
type Renderer struct {
	Formatter Formatter
	// Root packages anchor the displayed frames.
	Root filter.Matcher
	// Group packages have their consecutive frames collapsed into one line.
	Group filter.Matcher
	// Ignore packages have their frames dropped.
	Ignore filter.Matcher
	// IgnoreCause packages have the causes of their errors omitted.
	IgnoreCause filter.Matcher
	Options     Options
}

// Render snapshots err and renders it. A nil error renders as an empty
// string.
func (r *Renderer) Render(err error) (string, error) {
	if r.Formatter == nil {
		return "", ErrFormatterNotConfigured
	}
	return r.RenderSnapshot(snapshot.New(err))
}

// RenderSnapshot renders node, its suppressed errors and its causes. The
// output of the top node starts with its type, every following line is
// preceded by a newline.
func (r *Renderer) RenderSnapshot(node *snapshot.Snapshot) (string, error) {
	if r.Formatter == nil {
		return "", ErrFormatterNotConfigured
	}
	builder := &strings.Builder{}
	r.node(builder, node, relationTop, "")
	return builder.String(), nil
}

func (r *Renderer) frames(node *snapshot.Snapshot) stack.Frames {
	if r.Options.MaxDepth > 0 {
		return filter.Truncate(node.Frames(), r.Options.MaxDepth)
	}
	return filter.Reduce(node.Frames(), r.Root, r.Ignore)
}

func (r *Renderer) node(builder *strings.Builder, node *snapshot.Snapshot, relation relation, prefix string) {
	if node == nil {
		return
	}
	switch relation {
	case relationCause:
		builder.WriteString("\n" + prefix + "Caused by: ")
	case relationSuppressed:
		builder.WriteString("\n" + prefix + "Suppressed: ")
	}
	builder.WriteString(node.Type())
	if message := node.Message(); strings.TrimSpace(message) != "" {
		builder.WriteString(": " + message)
	}

	walker := groupWalker{renderer: r, builder: builder, prefix: prefix}
	for _, frame := range r.frames(node) {
		walker.next(frame)
	}
	walker.flush()

	if r.Options.PrintSuppressed {
		for _, suppressed := range node.Suppressed() {
			r.node(builder, suppressed, relationSuppressed, prefix+r.Options.Indent)
		}
	}
	if cause := node.Cause(); cause != nil && !r.Options.IgnoreAllCauses && !filter.Contains(r.IgnoreCause, node.Type()) {
		r.node(builder, cause, relationCause, prefix)
	}
}

// groupWalker collapses consecutive frames of the same group package.
type groupWalker struct {
	renderer *Renderer
	builder  *strings.Builder
	prefix   string
	group    string
	first    stack.Frame
	count    int
}

func (w *groupWalker) next(frame stack.Frame) {
	group, ok := match(w.renderer.Group, frame.Type)
	if !ok {
		w.flush()
		w.line(w.format(frame))
		return
	}
	if w.count > 0 && group == w.group {
		w.count++
		return
	}
	w.flush()
	w.group, w.first, w.count = group, frame, 1
}

func (w *groupWalker) flush() {
	switch {
	case w.count == 1:
		w.line(w.format(w.first))
	case w.count > 1:
		options := w.renderer.Options
		formatter := w.renderer.Formatter
		line := w.group + " ... " + strconv.Itoa(w.count-1) + " more"
		if options.PrintModuleName {
			line = formatter.ModuleName(w.first) + line
		}
		if options.PrintPackageInformation {
			line += formatter.PackageInformation(w.first)
		}
		w.line(line)
	}
	w.group, w.first, w.count = "", stack.Frame{}, 0
}

func (w *groupWalker) format(frame stack.Frame) string {
	options := w.renderer.Options
	return w.renderer.Formatter.Format(frame, options.PrintModuleName, options.PrintPackageInformation)
}

func (w *groupWalker) line(text string) {
	w.builder.WriteString("\n" + w.prefix + "\tat " + text)
}

func match(m filter.Matcher, name string) (string, bool) {
	if m == nil {
		return "", false
	}
	return m.Match(name)
}
