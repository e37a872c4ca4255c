package tokens

import (
	"context"
	"log/slog"
	"time"
)

// EvaluatorLogEvent describes an evaluation attempt for logging.
type EvaluatorLogEvent struct {
	Engine   string
	Expr     string
	Scope    string
	Target   string
	Duration time.Duration
	Err      error
}

// EvaluatorLogger records evaluator events.
type EvaluatorLogger interface {
	LogEvaluation(EvaluatorLogEvent)
}

// EvaluatorLoggerFunc adapts a function to EvaluatorLogger.
type EvaluatorLoggerFunc func(EvaluatorLogEvent)

// LogEvaluation implements EvaluatorLogger.
func (f EvaluatorLoggerFunc) LogEvaluation(event EvaluatorLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopEvaluatorLogger struct{}

func (noopEvaluatorLogger) LogEvaluation(EvaluatorLogEvent) {}

// NoopEvaluatorLogger discards every event.
func NoopEvaluatorLogger() EvaluatorLogger { return noopEvaluatorLogger{} }

// SlogEvaluatorLogger reports evaluations at debug level and failures at
// warn level.
func SlogEvaluatorLogger(l *slog.Logger) EvaluatorLogger {
	if l == nil {
		return noopEvaluatorLogger{}
	}
	return EvaluatorLoggerFunc(func(event EvaluatorLogEvent) {
		attrs := []slog.Attr{
			slog.String("engine", event.Engine),
			slog.String("expr", event.Expr),
			slog.String("scope", event.Scope),
			slog.Duration("duration", event.Duration),
		}
		if event.Target != "" {
			attrs = append(attrs, slog.String("target", event.Target))
		}
		if event.Err != nil {
			attrs = append(attrs, slog.Any("error", event.Err))
			l.LogAttrs(context.Background(), slog.LevelWarn, "tokens: evaluation failed", attrs...)
			return
		}
		l.LogAttrs(context.Background(), slog.LevelDebug, "tokens: evaluated", attrs...)
	})
}
