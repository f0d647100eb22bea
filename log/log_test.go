package log_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/fx/fxtest"

	"github.com/thanhminhmr/go-smarttrace/log"
	"github.com/thanhminhmr/go-smarttrace/snapshot"
	"github.com/thanhminhmr/go-smarttrace/stack"
	"github.com/thanhminhmr/go-smarttrace/trace"
)

func sampleError() error {
	return snapshot.Make("example.com/app.Error", "save failed", stack.Frames{
		{Type: "example.com/app.(*Service)", Function: "Save", File: "/src/service.go", Line: 12},
	}, snapshot.Make("example.com/lib.Error", "disk full", nil, nil))
}

const sampleTrace = "example.com/app.Error: save failed" +
	"\n\tat example.com/app.(*Service).Save(service.go:12)" +
	"\nCaused by: example.com/lib.Error: disk full"

func decode(t *testing.T, line []byte) map[string]any {
	t.Helper()
	fields := map[string]any{}
	require.NoError(t, json.Unmarshal(line, &fields))
	return fields
}

func TestConsoleLoggerInstallsStackMarshaler(t *testing.T) {
	previous := zerolog.ErrorStackMarshaler
	lifecycle := fxtest.NewLifecycle(t)
	logger, ctx := log.ConsoleLogger(lifecycle, trace.NewRegistry())
	require.NotNil(t, logger)
	require.Same(t, logger, zerolog.Ctx(ctx))

	lifecycle.RequireStart()
	buffer := &bytes.Buffer{}
	zl := zerolog.New(buffer)
	zl.Error().Stack().Err(sampleError()).Msg("failed")
	require.Equal(t, sampleTrace, decode(t, buffer.Bytes())[zerolog.ErrorStackFieldName])

	lifecycle.RequireStop()
	require.Error(t, ctx.Err())
	buffer.Reset()
	zerolog.ErrorStackMarshaler = previous
	zl = zerolog.New(buffer)
	zl.Error().Err(sampleError()).Msg("failed")
	require.NotContains(t, buffer.String(), zerolog.ErrorStackFieldName)
}

func TestStackMarshalerWithoutFormatter(t *testing.T) {
	registry := trace.NewRegistry()
	registry.SetFormatter(nil)
	require.Nil(t, log.StackMarshaler(registry)(sampleError()))
	require.Equal(t, sampleTrace, log.StackMarshaler(trace.NewRegistry())(sampleError()))
}

func TestTraceObject(t *testing.T) {
	buffer := &bytes.Buffer{}
	zl := zerolog.New(buffer)
	zl.Error().Object("exception", log.Trace(trace.NewRegistry(), sampleError())).Msg("failed")
	exception, ok := decode(t, buffer.Bytes())["exception"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "example.com/app.Error: save failed", exception["error"])
	require.Equal(t, "example.com/app.Error", exception["type"])
	require.Equal(t, sampleTrace, exception["trace"])

	buffer.Reset()
	zl = zerolog.New(buffer)
	zl.Info().Object("exception", log.Trace(nil, nil)).Msg("fine")
	require.Equal(t, map[string]any{}, decode(t, buffer.Bytes())["exception"])
}

func TestFxLogger(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := zerolog.New(buffer)
	fxLogger := log.FxLogger(&logger, trace.NewRegistry())

	fxLogger.LogEvent(&fxevent.OnStartExecuted{FunctionName: "start", CallerName: "main", Err: sampleError()})
	fields := decode(t, buffer.Bytes())
	require.Equal(t, "error", fields["level"])
	require.Equal(t, "OnStart hook failed", fields["message"])
	require.Equal(t, sampleTrace, fields["trace"])

	buffer.Reset()
	fxLogger.LogEvent(&fxevent.Started{})
	fields = decode(t, buffer.Bytes())
	require.Equal(t, "info", fields["level"])
	require.Equal(t, "Started", fields["message"])
	require.NotContains(t, fields, "trace")
}

func TestFxLoggerInApplication(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := zerolog.New(buffer)
	app := fx.New(
		fx.WithLogger(func() fxevent.Logger { return log.FxLogger(&logger, nil) }),
		fx.Invoke(func() error { return errors.New("invoke failed") }),
	)
	require.Error(t, app.Err())
	require.Contains(t, buffer.String(), `"message":"Invoke failed"`)
	require.Contains(t, buffer.String(), `"trace":"`)
	require.Contains(t, buffer.String(), "invoke failed")
}

func TestLogrusHook(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(buffer)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.AddHook(&log.LogrusHook{Registry: trace.NewRegistry()})

	logger.WithError(sampleError()).Error("failed")
	fields := decode(t, buffer.Bytes())
	require.Equal(t, sampleTrace, fields[log.TraceKey])

	buffer.Reset()
	logger.Info("nothing")
	require.False(t, strings.Contains(buffer.String(), log.TraceKey))

	hook := &log.LogrusHook{LogLevels: []logrus.Level{logrus.ErrorLevel}}
	require.Equal(t, []logrus.Level{logrus.ErrorLevel}, hook.Levels())
	require.Equal(t, logrus.AllLevels, (&log.LogrusHook{}).Levels())
}

func TestLogrusHookWithoutFormatter(t *testing.T) {
	registry := trace.NewRegistry()
	registry.SetFormatter(nil)
	buffer := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(buffer)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.AddHook(&log.LogrusHook{Registry: registry})

	entry := logger.WithError(sampleError())
	require.NoError(t, (&log.LogrusHook{Registry: registry}).Fire(entry))
	entry.Error("failed")
	fields := decode(t, buffer.Bytes())
	require.Equal(t, "failed", fields["msg"])
	require.NotContains(t, fields, log.TraceKey)
}
