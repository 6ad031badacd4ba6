package letta

import (
	"sort"

	"github.com/go-logr/logr"
)

// Logger is the structured logger used by the client and its HTTP layer.
// A nil Logger disables logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// NewLogrLogger adapts a logr.Logger. Debug maps to V(1); Warn is an Info
// entry tagged severity=warning since logr has no warning level.
func NewLogrLogger(logger logr.Logger) Logger {
	return &logrLogger{logger: logger}
}

type logrLogger struct {
	logger logr.Logger
}

func (l *logrLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.V(1).Info(msg, keysAndValues(fields)...)
}

func (l *logrLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, keysAndValues(fields)...)
}

func (l *logrLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, append(keysAndValues(fields), "severity", "warning")...)
}

func (l *logrLogger) Error(msg string, fields map[string]interface{}) {
	var err error
	if e, ok := fields["error"].(error); ok {
		err = e
	}

	l.logger.Error(err, msg, keysAndValues(fields)...)
}

// keysAndValues flattens fields in key order so output is stable.
func keysAndValues(fields map[string]interface{}) []interface{} {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	kv := make([]interface{}, 0, len(keys)*2)
	for _, k := range keys {
		kv = append(kv, k, fields[k])
	}

	return kv
}
