package filter

import (
	"strings"

	"github.com/thanhminhmr/go-smarttrace/stack"
)

// Reduce selects the frames worth displaying. Every frame matching root is
// kept together with the run of frames not matching ignore right before it.
// Frames after the last root frame are dropped. When no frame matches root,
// Reduce returns every frame not matching ignore. Frames without a type are
// always skipped.
func Reduce(frames stack.Frames, root Matcher, ignore Matcher) stack.Frames {
	var output, pending stack.Frames
	for _, frame := range frames {
		if strings.TrimSpace(frame.Type) == "" {
			continue
		}
		if Contains(root, frame.Type) {
			output = append(output, pending...)
			output = append(output, frame)
			pending = pending[:0]
		} else if !Contains(ignore, frame.Type) {
			pending = append(pending, frame)
		}
	}
	if len(output) == 0 {
		return pending
	}
	return output
}

// Truncate returns at most the first n frames.
func Truncate(frames stack.Frames, n int) stack.Frames {
	if n < 0 {
		n = 0
	}
	if len(frames) > n {
		return frames[:n]
	}
	return frames
}
