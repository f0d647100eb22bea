package log

import (
	"github.com/rs/zerolog"
	"go.uber.org/dig"
	"go.uber.org/fx/fxevent"

	"github.com/thanhminhmr/go-smarttrace/trace"
)

// fxLogger logs fx events to zerolog, with the condensed trace of failures.
type fxLogger struct {
	*zerolog.Logger
	registry *trace.Registry
}

// FxLogger returns the fx event logger writing to logger. A nil registry
// means trace.Default.
func FxLogger(logger *zerolog.Logger, registry *trace.Registry) fxevent.Logger {
	return fxLogger{Logger: logger, registry: registryOrDefault(registry)}
}

type moduleName string

func (m moduleName) MarshalZerologObject(event *zerolog.Event) {
	if m != "" {
		event.Str("name", string(m))
	}
}

// outcome starts an event at level, or at error level with the failure
// attached when err is not nil.
func (l fxLogger) outcome(err error, level zerolog.Level) *zerolog.Event {
	if err == nil {
		return l.WithLevel(level)
	}
	event := l.Error().Err(dig.RootCause(err))
	if text, renderErr := l.registry.String(err); renderErr == nil {
		event.Str(TraceKey, text)
	}
	return event
}

func pick(err error, success string, failure string) string {
	if err != nil {
		return failure
	}
	return success
}

// LogEvent logs the given event to the provided Zerolog.
func (l fxLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuting:
		l.Trace().
			Str("callee", e.FunctionName).
			Str("caller", e.CallerName).
			Msg("OnStart hook executing")
	case *fxevent.OnStartExecuted:
		l.outcome(e.Err, zerolog.TraceLevel).
			Str("callee", e.FunctionName).
			Str("caller", e.CallerName).
			Dur("runtime", e.Runtime).
			Msg(pick(e.Err, "OnStart hook executed", "OnStart hook failed"))
	case *fxevent.OnStopExecuting:
		l.Trace().
			Str("callee", e.FunctionName).
			Str("caller", e.CallerName).
			Msg("OnStop hook executing")
	case *fxevent.OnStopExecuted:
		l.outcome(e.Err, zerolog.TraceLevel).
			Str("callee", e.FunctionName).
			Str("caller", e.CallerName).
			Dur("runtime", e.Runtime).
			Msg(pick(e.Err, "OnStop hook executed", "OnStop hook failed"))
	case *fxevent.Supplied:
		l.outcome(e.Err, zerolog.InfoLevel).
			Str("type", e.TypeName).
			EmbedObject(moduleName(e.ModuleName)).
			Msg(pick(e.Err, "Supplied", "Error encountered while applying options"))
	case *fxevent.Provided:
		l.outcome(e.Err, zerolog.InfoLevel).
			Str("constructor", e.ConstructorName).
			Strs("types", e.OutputTypeNames).
			EmbedObject(moduleName(e.ModuleName)).
			Bool("private", e.Private).
			Msg(pick(e.Err, "Provided", "Error encountered while applying options"))
	case *fxevent.Replaced:
		l.outcome(e.Err, zerolog.InfoLevel).
			Strs("types", e.OutputTypeNames).
			EmbedObject(moduleName(e.ModuleName)).
			Msg(pick(e.Err, "Replaced", "Error encountered while replacing"))
	case *fxevent.Decorated:
		l.outcome(e.Err, zerolog.InfoLevel).
			Str("decorator", e.DecoratorName).
			Strs("types", e.OutputTypeNames).
			EmbedObject(moduleName(e.ModuleName)).
			Msg(pick(e.Err, "Decorated", "Error encountered while applying options"))
	case *fxevent.Run:
		l.outcome(e.Err, zerolog.TraceLevel).
			Str("name", e.Name).
			Str("kind", e.Kind).
			EmbedObject(moduleName(e.ModuleName)).
			Dur("runtime", e.Runtime).
			Msg(pick(e.Err, "After run", "Run failed"))
	case *fxevent.Invoking:
		l.Info().
			Str("function", e.FunctionName).
			EmbedObject(moduleName(e.ModuleName)).
			Msg("Invoking")
	case *fxevent.Invoked:
		if e.Err != nil {
			l.outcome(e.Err, zerolog.ErrorLevel).
				Str("function", e.FunctionName).
				EmbedObject(moduleName(e.ModuleName)).
				Msg("Invoke failed")
		}
	case *fxevent.Stopping:
		l.Info().
			Stringer("signal", e.Signal).
			Msg("Received signal")
	case *fxevent.Stopped:
		if e.Err != nil {
			l.outcome(e.Err, zerolog.ErrorLevel).Msg("Stop failed")
		}
	case *fxevent.RollingBack:
		l.outcome(e.StartErr, zerolog.ErrorLevel).Msg("Start failed, rolling back")
	case *fxevent.RolledBack:
		if e.Err != nil {
			l.outcome(e.Err, zerolog.ErrorLevel).Msg("Rollback failed")
		}
	case *fxevent.Started:
		l.outcome(e.Err, zerolog.InfoLevel).Msg(pick(e.Err, "Started", "Start failed"))
	case *fxevent.LoggerInitialized:
		l.outcome(e.Err, zerolog.InfoLevel).
			Str("function", e.ConstructorName).
			Msg(pick(e.Err, "Initialized logger", "Logger initialization failed"))
	}
}
