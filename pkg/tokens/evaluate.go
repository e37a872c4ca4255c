package tokens

import "time"

// Evaluate runs expr with e and reports the attempt to logger. A nil
// evaluator falls back to the expr engine.
func Evaluate(e Evaluator, logger EvaluatorLogger, ctx Context, expr string) (any, error) {
	if e == nil {
		e = NewExprEvaluator()
	}
	if logger == nil {
		logger = NoopEvaluatorLogger()
	}
	engine := EngineName(e)
	start := time.Now()
	value, err := e.Evaluate(ctx, expr)
	duration := time.Since(start)
	err = evaluationError(engine, StageRun, expr, ctx, err)
	logger.LogEvaluation(EvaluatorLogEvent{
		Engine:   engine,
		Expr:     expr,
		Scope:    ctx.scopeLabel(),
		Target:   ctx.Target,
		Duration: duration,
		Err:      err,
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// EvaluateNumber is Evaluate followed by ToNumber.
func EvaluateNumber(e Evaluator, logger EvaluatorLogger, ctx Context, expr string) (float64, error) {
	value, err := Evaluate(e, logger, ctx, expr)
	if err != nil {
		return 0, err
	}
	number, err := ToNumber(value)
	if err != nil {
		return 0, evaluationError(EngineName(e), StageConvert, expr, ctx, err)
	}
	return number, nil
}
