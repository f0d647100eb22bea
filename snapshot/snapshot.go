// Package snapshot materializes live errors into immutable, acyclic trees that
// can be traversed without touching the original errors again.
package snapshot

import (
	"strings"

	"github.com/thanhminhmr/go-smarttrace/internal"
	"github.com/thanhminhmr/go-smarttrace/stack"
)

// maxNodes bounds the walk over errors that have no identity to detect
// cycles with.
const maxNodes = 4096

// Snapshot is one node of a copied error chain. The cause and suppressed
// children are owned exclusively by their parent, and the cause chain always
// terminates.
type Snapshot struct {
	typeName   string
	message    string
	cause      *Snapshot
	suppressed []*Snapshot
	frames     stack.Frames
}

// New copies err, its cause chain and its suppressed errors. An error already
// visited anywhere in the tree is not copied again: cycles are cut at the
// repeated node. New returns nil for a nil error.
func New(err error) *Snapshot {
	if err == nil {
		return nil
	}
	builder := builder{visited: internal.Visited{}}
	builder.visited.Visit(err)
	return builder.build(err)
}

// Make creates a node from already known parts. The frames are copied.
func Make(typeName string, message string, frames stack.Frames, cause *Snapshot, suppressed ...*Snapshot) *Snapshot {
	node := &Snapshot{
		typeName:   typeName,
		message:    message,
		cause:      cause,
		suppressed: make([]*Snapshot, 0, len(suppressed)),
		frames:     append(stack.Frames(nil), frames...),
	}
	for _, child := range suppressed {
		if child != nil {
			node.suppressed = append(node.suppressed, child)
		}
	}
	return node
}

type builder struct {
	visited internal.Visited
	nodes   int
}

// build copies err, which must already be marked as visited.
func (b *builder) build(err error) *Snapshot {
	b.nodes++
	node := &Snapshot{
		typeName:   TypeOf(err),
		message:    MessageOf(err),
		suppressed: []*Snapshot{},
		frames:     append(stack.Frames(nil), FramesOf(err)...),
	}
	if cause := CauseOf(err); b.accept(cause) {
		node.cause = b.build(cause)
	}
	for _, suppressed := range SuppressedOf(err) {
		if b.accept(suppressed) {
			node.suppressed = append(node.suppressed, b.build(suppressed))
		}
	}
	return node
}

func (b *builder) accept(err error) bool {
	return err != nil && b.nodes < maxNodes && b.visited.Visit(err)
}

// Type returns the fully qualified type identifier of the error.
func (s *Snapshot) Type() string {
	if s == nil {
		return ""
	}
	return s.typeName
}

// Message returns the error message, possibly empty.
func (s *Snapshot) Message() string {
	if s == nil {
		return ""
	}
	return s.message
}

// Cause returns the copied cause, or nil at the end of the chain.
func (s *Snapshot) Cause() *Snapshot {
	if s == nil {
		return nil
	}
	return s.cause
}

// Suppressed returns the copied suppressed errors in insertion order. The
// result is never nil for a non-nil node.
func (s *Snapshot) Suppressed() []*Snapshot {
	if s == nil {
		return nil
	}
	return append([]*Snapshot{}, s.suppressed...)
}

// Frames returns a copy of the recorded call frames, index 0 being where the
// error originated.
func (s *Snapshot) Frames() stack.Frames {
	if s == nil {
		return nil
	}
	return append(stack.Frames(nil), s.frames...)
}

// Depth returns the length of the cause chain below this node.
func (s *Snapshot) Depth() int {
	depth := 0
	for node := s.Cause(); node != nil; node = node.cause {
		depth++
	}
	return depth
}

// Error returns "Type: message", or only the type for a blank message.
func (s *Snapshot) Error() string {
	if s == nil {
		return ""
	}
	if strings.TrimSpace(s.message) == "" {
		return s.typeName
	}
	return s.typeName + ": " + s.message
}

func (s *Snapshot) GetType() string {
	return s.Type()
}

func (s *Snapshot) GetMessage() string {
	return s.Message()
}

func (s *Snapshot) GetCause() []error {
	if cause := s.Cause(); cause != nil {
		return []error{cause}
	}
	return nil
}

func (s *Snapshot) GetSuppressed() []error {
	if s == nil || len(s.suppressed) == 0 {
		return nil
	}
	result := make([]error, len(s.suppressed))
	for i, child := range s.suppressed {
		result[i] = child
	}
	return result
}

func (s *Snapshot) GetStackTrace() stack.Frames {
	return s.Frames()
}

// Unwrap returns the cause as an error, so the standard errors package can
// walk snapshots.
func (s *Snapshot) Unwrap() error {
	if cause := s.Cause(); cause != nil {
		return cause
	}
	return nil
}
