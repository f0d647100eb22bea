package traceback_test

import (
	"bytes"
	"errors"
	"runtime/debug"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
	"github.com/thanhminhmr/go-smarttrace/buildinfo"
	"github.com/thanhminhmr/go-smarttrace/stack"
	"github.com/thanhminhmr/go-smarttrace/trace"
	"github.com/thanhminhmr/go-smarttrace/traceback"
)

const recoveredPanic = `starting server
panic: runtime error: index out of range [5] with length 3 [recovered]
	panic: wrapped failure

goroutine 1 [running]:
main.handle.func1()
	/home/user/app/main.go:12 +0x65
panic({0x4a1f20?, 0xc000014090?})
	/usr/local/go/src/runtime/panic.go:785 +0x132
main.(*Server).lookup(...)
	/home/user/app/main.go:20
main.(*Server).handle(0xc00001e0c0)
	/home/user/app/main.go:25 +0x1d
main.main()
	/home/user/app/main.go:31 +0x45

goroutine 7 [chan receive, 2 minutes]:
main.worker(0xc000020060)
	/home/user/app/worker.go:8 +0x2b
created by main.main in goroutine 1
	/home/user/app/main.go:29 +0x3a
exit status 2
`

func TestParseRecoveredPanic(t *testing.T) {
	node, err := traceback.Parse(strings.NewReader(recoveredPanic))
	require.NoError(t, err)
	require.Equal(t, traceback.TypePanic, node.Type())
	require.Equal(t, "wrapped failure", node.Message())
	require.Equal(t, traceback.TypeRuntimeError, node.Cause().Type())
	require.Equal(t, "index out of range [5] with length 3", node.Cause().Message())
	require.Nil(t, node.Cause().Cause())

	frames := node.Frames()
	require.Len(t, frames, 5)
	require.Equal(t, stack.Frame{
		Package:  "main",
		Type:     "main",
		Function: "handle.func1",
		File:     "/home/user/app/main.go",
		Line:     12,
	}, frames[0])
	require.Equal(t, "runtime.panic", frames[1].String())
	require.Equal(t, "main.(*Server)", frames[2].Type)
	require.Equal(t, "lookup", frames[2].Function)
	require.Equal(t, 20, frames[2].Line)
	require.Equal(t, "main.main", frames[4].String())

	suppressed := node.Suppressed()
	require.Len(t, suppressed, 1)
	require.Equal(t, "goroutine 7", suppressed[0].Type())
	require.Equal(t, "chan receive, 2 minutes", suppressed[0].Message())
	require.Len(t, suppressed[0].Frames(), 2)
	require.Equal(t, "main.main", suppressed[0].Frames()[1].String())
	require.Equal(t, 29, suppressed[0].Frames()[1].Line)
}

func TestParseAndRender(t *testing.T) {
	node, err := traceback.Parse(strings.NewReader(recoveredPanic))
	require.NoError(t, err)

	registry := trace.NewRegistry()
	registry.RegisterIgnorePackage("runtime", false)
	output, err := registry.String(node)
	require.NoError(t, err)
	require.Equal(t, "panic: wrapped failure"+
		"\n\tat main.handle.func1(main.go:12)"+
		"\n\tat main.(*Server).lookup(main.go:20)"+
		"\n\tat main.(*Server).handle(main.go:25)"+
		"\n\tat main.main(main.go:31)"+
		"\n\tSuppressed: goroutine 7: chan receive, 2 minutes"+
		"\n\t\tat main.worker(worker.go:8)"+
		"\n\t\tat main.main(main.go:29)"+
		"\nCaused by: runtime.Error: index out of range [5] with length 3", output)
}

func TestParseFatalError(t *testing.T) {
	node, err := traceback.Parse(strings.NewReader(`fatal error: all goroutines are asleep - deadlock!

goroutine 1 [chan receive]:
main.main()
	/tmp/sandbox/prog.go:5 +0x1d
`))
	require.NoError(t, err)
	require.Equal(t, traceback.TypeFatalError, node.Type())
	require.Equal(t, "all goroutines are asleep - deadlock!", node.Message())
	require.Empty(t, node.Suppressed())
	require.Len(t, node.Frames(), 1)
}

func TestParseSignalAndMultilineMessage(t *testing.T) {
	node, err := traceback.Parse(strings.NewReader(`panic: runtime error: invalid memory address or nil pointer dereference
[signal SIGSEGV: segmentation violation code=0x1 addr=0x0 pc=0x48f5a6]

goroutine 1 gp=0xc000002380 m=0 mp=0x5a1e40 [running]:
main.main()
	/tmp/x.go:9 +0x6
`))
	require.NoError(t, err)
	require.Equal(t, traceback.TypeRuntimeError, node.Type())
	require.Equal(t, "invalid memory address or nil pointer dereference", node.Message())

	node, err = traceback.Parse(strings.NewReader("panic: first line\r\nsecond line\r\n\r\ngoroutine 1 [running]:\r\nmain.main()\r\n\t?:0\r\n"))
	require.NoError(t, err)
	require.Equal(t, "first line\nsecond line", node.Message())
	require.Equal(t, stack.Frame{Package: "main", Type: "main", Function: "main", Line: -1}, node.Frames()[0])
}

func TestParseGoroutineDump(t *testing.T) {
	node, err := traceback.Parse(bytes.NewReader(debug.Stack()))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(node.Type(), "goroutine "))
	require.Equal(t, "running", node.Message())

	found := false
	for _, frame := range node.Frames() {
		if frame.Function == "TestParseGoroutineDump" {
			found = true
			require.Equal(t, "github.com/thanhminhmr/go-smarttrace/traceback_test", frame.Package)
			require.Positive(t, frame.Line)
		}
	}
	require.True(t, found)
}

func TestParseStopsAtTrailingOutput(t *testing.T) {
	node, err := traceback.Parse(strings.NewReader(`panic: boom

goroutine 1 [running]:
main.main()
	/tmp/x.go:9 +0x6
exit status 2
FAIL	example.com/app	0.012s
`))
	require.NoError(t, err)
	require.Empty(t, node.Suppressed())
	require.Len(t, node.Frames(), 1)
	require.Equal(t, "main.main", node.Frames()[0].String())
}

func TestParseResolvesModules(t *testing.T) {
	parser := traceback.Parser{Resolver: buildinfo.FromModules(buildinfo.Info{Path: "example.com/app"})}
	node, err := parser.Parse(strings.NewReader(`goroutine 1 [running]:
example.com/app/api.(*Handler).ServeHTTP(0xc0000b2000, {0x6b2a40, 0xc0000e0000}, 0xc0000d4000)
	/src/api/handler.go:40 +0x2a
net/http.serverHandler.ServeHTTP({0xc0000a8000?}, {0x6b2a40?, 0xc0000e0000?}, 0xc0000d4000?)
	/usr/local/go/src/net/http/server.go:3210 +0x8e
...additional frames elided...
`))
	require.NoError(t, err)
	frames := node.Frames()
	require.Len(t, frames, 2)
	require.Equal(t, "example.com/app", frames[0].Module)
	require.Equal(t, "example.com/app/api.(*Handler)", frames[0].Type)
	require.Equal(t, "ServeHTTP", frames[0].Function)
	require.Empty(t, frames[1].Module)
	require.Equal(t, "net/http.serverHandler", frames[1].Type)
}

func TestParseFailures(t *testing.T) {
	_, err := traceback.Parse(strings.NewReader("panic: lonely\n\nexit status 2\n"))
	require.ErrorIs(t, err, traceback.ErrNoGoroutine)

	_, err = traceback.Parse(strings.NewReader(""))
	require.ErrorIs(t, err, traceback.ErrNoGoroutine)

	_, err = traceback.Parse(iotest.ErrReader(errors.New("broken pipe")))
	require.ErrorIs(t, err, traceback.ErrRead)
}
