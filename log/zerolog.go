package log

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/thanhminhmr/go-smarttrace/snapshot"
	"github.com/thanhminhmr/go-smarttrace/trace"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixNano
}

// ConsoleLogger creates the console logger of the application. While the
// application runs, zerolog renders error stacks, as requested with
// Event.Stack, as condensed traces of registry.
func ConsoleLogger(lifecycle fx.Lifecycle, registry *trace.Registry) (*zerolog.Logger, context.Context) {
	// create the logger
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02T15:04:05.000000000Z07:00",
	}).With().Timestamp().Caller().Logger()
	// create the global context with lifecycle cancel binding and the logger
	ctx, cancel := context.WithCancel(logger.WithContext(context.Background()))
	previous := zerolog.ErrorStackMarshaler
	lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			zerolog.ErrorStackMarshaler = StackMarshaler(registry)
			return nil
		},
		OnStop: func(context.Context) error {
			zerolog.ErrorStackMarshaler = previous
			cancel()
			return nil
		},
	})
	return zerolog.Ctx(ctx), ctx
}

// StackMarshaler returns a function suitable for zerolog.ErrorStackMarshaler
// rendering condensed traces. A nil registry means trace.Default.
func StackMarshaler(registry *trace.Registry) func(err error) interface{} {
	registry = registryOrDefault(registry)
	return func(err error) interface{} {
		text, renderErr := registry.String(err)
		if renderErr != nil {
			return nil
		}
		return text
	}
}

// Trace returns an object holding the message, the type and the condensed
// trace of err, for use with Event.Object:
//
//	logger.Error().Object("exception", log.Trace(nil, err)).Msg("request failed")
func Trace(registry *trace.Registry, err error) zerolog.LogObjectMarshaler {
	return traceObject{registry: registryOrDefault(registry), err: err}
}

type traceObject struct {
	registry *trace.Registry
	err      error
}

func (t traceObject) MarshalZerologObject(event *zerolog.Event) {
	if t.err == nil {
		return
	}
	event.Str("error", t.err.Error()).Str("type", snapshot.TypeOf(t.err))
	if text, err := t.registry.String(t.err); err == nil {
		event.Str("trace", text)
	}
}

func registryOrDefault(registry *trace.Registry) *trace.Registry {
	if registry == nil {
		return trace.Default
	}
	return registry
}
