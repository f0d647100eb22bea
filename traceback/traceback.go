// Package traceback parses the textual tracebacks printed by the Go runtime,
// such as the output of an unrecovered panic, into snapshots.
//
// The crashing goroutine becomes the top node, carrying the frames and the
// last panic. Earlier panics it recovered from become its causes and every
// other goroutine of the dump becomes a suppressed error.
package traceback

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/thanhminhmr/go-smarttrace/buildinfo"
	"github.com/thanhminhmr/go-smarttrace/exception"
	"github.com/thanhminhmr/go-smarttrace/snapshot"
	"github.com/thanhminhmr/go-smarttrace/stack"
)

const (
	ErrNoGoroutine = exception.String("no goroutine found in traceback")
	ErrRead        = exception.String("failed to read traceback")
)

// Types of the nodes created by the parser.
const (
	TypePanic        = "panic"
	TypeFatalError   = "fatal error"
	TypeRuntimeError = "runtime.Error"
	TypeGoroutine    = "goroutine"
)

const maxLineSize = 1024 * 1024

var (
	goroutineHeader = regexp.MustCompile(`^goroutine (\d+) (?:.* )?\[(.*)\]:$`)
	fileLine        = regexp.MustCompile(`^\t(.+):(\d+)(?: \+0x[0-9a-fA-F]+)?(?: .*)?$`)
	createdBy       = regexp.MustCompile(`^created by (.+?)(?: in goroutine \d+)?$`)
	recovered       = regexp.MustCompile(`\s*\[recovered[^\]]*\]$`)
)

// Parser parses tracebacks. The zero value is ready to use.
type Parser struct {
	// Resolver fills the module of the parsed frames when set.
	Resolver buildinfo.Resolver
}

// Parse parses a traceback with the zero Parser.
func Parse(reader io.Reader) (*snapshot.Snapshot, error) {
	return Parser{}.Parse(reader)
}

type header struct {
	typeName string
	message  strings.Builder
}

type goroutine struct {
	id       string
	state    string
	frames   stack.Frames
	function string
	pending  bool
}

type state struct {
	parser     Parser
	headers    []*header
	goroutines []*goroutine
	current    *goroutine
	inHeader   bool
}

// Parse reads reader until its end. It returns ErrNoGoroutine when the text
// holds no goroutine block.
func (p Parser) Parse(reader io.Reader) (*snapshot.Snapshot, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	parsing := &state{parser: p}
	for scanner.Scan() {
		parsing.line(strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, ErrRead.AddCause(err)
	}
	parsing.endGoroutine()
	if len(parsing.goroutines) == 0 {
		return nil, ErrNoGoroutine
	}
	return parsing.build(), nil
}

func (s *state) line(line string) {
	if s.current != nil {
		if strings.TrimSpace(line) == "" {
			s.endGoroutine()
		} else {
			s.frameLine(line)
		}
		return
	}
	if match := goroutineHeader.FindStringSubmatch(line); match != nil {
		s.inHeader = false
		s.current = &goroutine{id: match[1], state: match[2]}
		return
	}
	if message, ok := strings.CutPrefix(line, "panic: "); ok && len(s.goroutines) == 0 {
		s.startHeader(TypePanic, message)
		return
	}
	if message, ok := strings.CutPrefix(line, "fatal error: "); ok && len(s.goroutines) == 0 {
		s.startHeader(TypeFatalError, message)
		return
	}
	if !s.inHeader {
		return
	}
	switch {
	case strings.TrimSpace(line) == "":
		s.inHeader = false
	case strings.HasPrefix(line, "\tpanic: "):
		s.startHeader(TypePanic, strings.TrimPrefix(line, "\tpanic: "))
	case strings.HasPrefix(line, "[signal "):
		// signal details of the fault
	default:
		last := s.headers[len(s.headers)-1]
		last.message.WriteString("\n")
		last.message.WriteString(line)
	}
}

func (s *state) startHeader(typeName string, message string) {
	message = recovered.ReplaceAllString(message, "")
	if rest, ok := strings.CutPrefix(message, "runtime error: "); ok && typeName == TypePanic {
		typeName, message = TypeRuntimeError, rest
	}
	node := &header{typeName: typeName}
	node.message.WriteString(message)
	s.headers = append(s.headers, node)
	s.inHeader = true
}

func (s *state) frameLine(line string) {
	current := s.current
	if match := fileLine.FindStringSubmatch(line); match != nil {
		if !current.pending {
			return
		}
		file := match[1]
		lineNumber, err := strconv.Atoi(match[2])
		if err != nil || lineNumber <= 0 {
			lineNumber = -1
		}
		if file == "?" {
			file = ""
		}
		current.frames = append(current.frames, s.frame(current.function, file, lineNumber))
		current.pending = false
		return
	}
	if strings.HasPrefix(line, "\t") || strings.HasPrefix(line, "...") {
		// elided frames and unexpected detail lines
		return
	}
	var function string
	var ok bool
	if match := createdBy.FindStringSubmatch(line); match != nil {
		function, ok = match[1], true
	} else {
		function, ok = stripArguments(line)
	}
	if !ok {
		// trailing output such as "exit status 2"
		s.endGoroutine()
		return
	}
	s.flushFunction()
	current.function = function
	current.pending = true
}

// flushFunction keeps a function line that had no file line.
func (s *state) flushFunction() {
	if current := s.current; current != nil && current.pending {
		current.frames = append(current.frames, s.frame(current.function, "", -1))
		current.pending = false
	}
}

func (s *state) endGoroutine() {
	if s.current == nil {
		return
	}
	s.flushFunction()
	s.goroutines = append(s.goroutines, s.current)
	s.current = nil
}

func (s *state) frame(function string, file string, line int) stack.Frame {
	// builtins such as panic are printed without their package
	if !strings.Contains(function, ".") {
		function = "runtime." + function
	}
	packagePath, typeName, member := stack.Split(function)
	frame := stack.Frame{
		Package:  packagePath,
		Type:     typeName,
		Function: member,
		File:     file,
		Line:     line,
		Native:   strings.HasSuffix(file, ".s"),
	}
	if resolver := s.parser.Resolver; resolver != nil {
		if info, ok := resolver.Resolve(packagePath); ok {
			frame.Module = info.Path
		}
	}
	return frame
}

func (s *state) build() *snapshot.Snapshot {
	others := make([]*snapshot.Snapshot, 0, len(s.goroutines)-1)
	for _, other := range s.goroutines[1:] {
		others = append(others, snapshot.Make(TypeGoroutine+" "+other.id, other.state, other.frames, nil))
	}
	crashed := s.goroutines[0]
	if len(s.headers) == 0 {
		return snapshot.Make(TypeGoroutine+" "+crashed.id, crashed.state, crashed.frames, nil, others...)
	}
	// the last panic is the one that crashed, the previous ones caused it
	var cause *snapshot.Snapshot
	for _, previous := range s.headers[:len(s.headers)-1] {
		cause = snapshot.Make(previous.typeName, previous.message.String(), nil, cause)
	}
	last := s.headers[len(s.headers)-1]
	return snapshot.Make(last.typeName, last.message.String(), crashed.frames, cause, others...)
}

// stripArguments removes the trailing argument list of a function line,
// such as "(0xc000010000, {0x4b2f20?, 0x5})" or "(...)". It reports false
// when the line is not shaped like a frame symbol.
func stripArguments(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasSuffix(line, ")") {
		return "", false
	}
	depth := 0
	for i := len(line) - 1; i >= 0; i-- {
		switch line[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				symbol := line[:i]
				return symbol, symbol != "" && !strings.Contains(symbol, " ")
			}
		}
	}
	return "", false
}
