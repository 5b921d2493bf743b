package deskmates

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Logger is the minimal leveled logging interface the client emits to.
// Key/value pairs follow each message, logfmt style.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// NewLogrusLogger adapts a logrus logger to the Logger interface. Passing nil
// uses the logrus standard logger.
func NewLogrusLogger(l *logrus.Logger) Logger {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &logrusLogger{logger: l}
}

type logrusLogger struct {
	logger *logrus.Logger
}

func (l *logrusLogger) Debug(msg string, kv ...any) { l.withFields(kv).Debug(msg) }
func (l *logrusLogger) Info(msg string, kv ...any)  { l.withFields(kv).Info(msg) }
func (l *logrusLogger) Warn(msg string, kv ...any)  { l.withFields(kv).Warn(msg) }
func (l *logrusLogger) Error(msg string, kv ...any) { l.withFields(kv).Error(msg) }

func (l *logrusLogger) withFields(kv []any) *logrus.Entry {
	fields := make(logrus.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		fields[key] = kv[i+1]
	}
	return l.logger.WithFields(fields)
}
