package skin

import (
	"context"
	"log/slog"
)

// HintOp names a table mutation.
type HintOp string

const (
	OpSet     HintOp = "set"
	OpRemove  HintOp = "remove"
	OpClear   HintOp = "clear"
	OpPublish HintOp = "publish"
)

// HintEvent describes a table mutation for logging. Err is set when the
// activity hooks rejected the matching event.
type HintEvent struct {
	Op      HintOp
	TableID string
	Aspect  Aspect
	Hint    Hint
	Changed bool
	Err     error
}

// Logger records table mutations.
type Logger interface {
	LogHint(HintEvent)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(HintEvent)

// LogHint implements Logger.
func (f LoggerFunc) LogHint(event HintEvent) {
	if f != nil {
		f(event)
	}
}

type noopLogger struct{}

func (noopLogger) LogHint(HintEvent) {}

// SlogLogger forwards events to l: mutations at debug level, hook failures
// at warn level. A nil logger discards everything.
func SlogLogger(l *slog.Logger) Logger {
	if l == nil {
		return noopLogger{}
	}
	return slogLogger{l: l}
}

type slogLogger struct {
	l *slog.Logger
}

func (s slogLogger) LogHint(event HintEvent) {
	level := slog.LevelDebug
	if event.Err != nil {
		level = slog.LevelWarn
	}
	ctx := context.Background()
	if !s.l.Enabled(ctx, level) {
		return
	}
	attrs := []slog.Attr{
		slog.String("op", string(event.Op)),
		slog.String("table", event.TableID),
		slog.String("aspect", event.Aspect.String()),
		slog.Bool("changed", event.Changed),
	}
	if event.Hint.IsValid() {
		attrs = append(attrs, slog.String("hint", event.Hint.String()))
	}
	if event.Err != nil {
		attrs = append(attrs, slog.Any("error", event.Err))
	}
	s.l.LogAttrs(ctx, level, "skin hint", attrs...)
}
