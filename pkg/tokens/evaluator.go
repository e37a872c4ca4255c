package tokens

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyExpression is returned for blank expressions.
	ErrEmptyExpression = errors.New("tokens: expression must not be empty")
	// ErrNotNumeric is returned when a result cannot be used as a metric.
	ErrNotNumeric = errors.New("tokens: value is not numeric")

	errMissingEvaluator = errors.New("compiled program missing evaluator")
)

// Context carries the inputs of an evaluation. Every token is bound as a
// top level variable and again under "tokens"; Args is bound as "args" and
// Scope as "scope". Target names the hint being computed and is only used
// in errors and logs.
type Context struct {
	Tokens Set
	Args   map[string]any
	Scope  string
	Target string
}

func (ctx Context) withDefaults() Context {
	if ctx.Tokens == nil {
		ctx.Tokens = Set{}
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	return ctx
}

func (ctx Context) scopeLabel() string {
	if ctx.Scope != "" {
		return ctx.Scope
	}
	return "unknown"
}

// Evaluator executes token expressions.
type Evaluator interface {
	Evaluate(ctx Context, expr string) (any, error)
	Compile(expr string) (Program, error)
}

// Program is a compiled expression that can be evaluated repeatedly.
type Program interface {
	Evaluate(ctx Context) (any, error)
}

// EngineName returns a short label for the evaluator implementation.
func EngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	if named, ok := e.(interface{ engineName() string }); ok {
		return named.engineName()
	}
	return "custom"
}

// ToNumber coerces numeric results of any engine to float64.
func ToNumber(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotNumeric, value)
	}
}
