package logging

import (
	"context"
	"log/slog"
	"time"
)

type Attr = slog.Attr

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Strings(key string, values []string) Attr { return slog.Any(key, values) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// PID tags a record with the supervised backend's process ID.
func PID(pid int) Attr { return slog.Int(FieldPID, pid) }

// Address tags a record with the backend's host:port.
func Address(addr string) Attr { return slog.String(FieldAddress, addr) }

// Window tags a record with a registered window name.
func Window(name string) Attr { return slog.String(FieldWindow, name) }

func Event(eventType string) Attr { return slog.String(FieldEventType, eventType) }

// Hint is the next step an operator should take.
func Hint(hint string) Attr { return slog.String(FieldErrorHint, hint) }

// Impact is what the user loses because of the record's condition.
func Impact(impact string) Attr { return slog.String(FieldImpact, impact) }

// Args converts attributes into the variadic form slog methods accept.
func Args(attrs ...Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger scopes logger to one launcher component. A nil logger
// yields a no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

const defaultHint = "check the launcher log for details"

// WarnWithContext logs a warning that always carries an event type, a hint
// and an impact; missing ones get defaults.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	attrs = withDefaults(attrs,
		Event(eventType),
		Hint(defaultHint),
		Impact("the launcher continues in a degraded state"),
	)
	logger.Warn(msg, Args(attrs...)...)
}

// ErrorWithContext logs an error that always carries an event type and a hint.
func ErrorWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	attrs = withDefaults(attrs, Event(eventType), Hint(defaultHint))
	logger.Error(msg, Args(attrs...)...)
}

// withDefaults appends each fallback whose key attrs does not set.
func withDefaults(attrs []Attr, fallbacks ...Attr) []Attr {
	for _, fb := range fallbacks {
		if !hasKey(attrs, fb.Key) {
			attrs = append(attrs, fb)
		}
	}
	return attrs
}

func hasKey(attrs []Attr, key string) bool {
	for _, a := range attrs {
		if a.Key == key {
			return true
		}
	}
	return false
}

// NoopHandler discards all log output.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }
