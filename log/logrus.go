package log

import (
	"github.com/sirupsen/logrus"

	"github.com/thanhminhmr/go-smarttrace/trace"
)

// TraceKey is the field holding the condensed trace.
const TraceKey = "trace"

// LogrusHook adds the condensed trace of the error of an entry, set with
// logrus.WithError, as the "trace" field.
type LogrusHook struct {
	// Registry renders the traces, trace.Default when nil.
	Registry *trace.Registry
	// LogLevels are the levels the hook fires on, every level when empty.
	LogLevels []logrus.Level
}

func (h *LogrusHook) Levels() []logrus.Level {
	if len(h.LogLevels) == 0 {
		return logrus.AllLevels
	}
	return h.LogLevels
}

func (h *LogrusHook) Fire(entry *logrus.Entry) error {
	err, ok := entry.Data[logrus.ErrorKey].(error)
	if !ok || err == nil {
		return nil
	}
	text, renderErr := registryOrDefault(h.Registry).String(err)
	if renderErr != nil {
		return nil
	}
	entry.Data[TraceKey] = text
	return nil
}
