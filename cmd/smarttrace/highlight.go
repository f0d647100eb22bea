package main

import (
	"regexp"
	"strings"

	"github.com/fatih/color"
)

var collapsedLine = regexp.MustCompile(`\.\.\. \d+ more`)

type highlighter struct {
	header    *color.Color
	collapsed *color.Color
}

// newHighlighter colors the output when enabled, whether or not the output
// is a terminal.
func newHighlighter(enabled bool) highlighter {
	h := highlighter{
		header:    color.New(color.FgRed, color.Bold),
		collapsed: color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{h.header, h.collapsed} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return h
}

func (h highlighter) highlight(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, "\t")
		indent := line[:len(line)-len(trimmed)]
		switch {
		case i == 0, strings.HasPrefix(trimmed, "Caused by: "), strings.HasPrefix(trimmed, "Suppressed: "):
			lines[i] = indent + h.header.Sprint(trimmed)
		case collapsedLine.MatchString(trimmed):
			lines[i] = indent + h.collapsed.Sprint(trimmed)
		}
	}
	return strings.Join(lines, "\n")
}
