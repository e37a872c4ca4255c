package tokens

import (
	"errors"
	"strings"
)

// Stage names the phase an evaluation failed in.
type Stage string

const (
	StageCompile Stage = "compile"
	StageRun     Stage = "run"
	StageConvert Stage = "convert"
)

// EvaluationError reports a failed token expression. Target is the hint the
// expression was computing, taken from Context.Target; editors set it to the
// aspect label.
type EvaluationError struct {
	Engine string
	Stage  Stage
	Expr   string
	Scope  string
	Target string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString("tokens: ")
	b.WriteString(e.Engine)
	if e.Stage != "" {
		b.WriteString(" " + string(e.Stage))
	}
	if e.Target != "" {
		b.WriteString(" " + e.Target)
	}
	if e.Expr == "" {
		b.WriteString(" expr=<empty>")
	} else {
		b.WriteString(" expr=" + quote(e.Expr))
	}
	if e.Scope != "" {
		b.WriteString(" scope=" + e.Scope)
	}
	b.WriteString(": ")
	b.WriteString(errorText(e.Err))
	return b.String()
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func errorText(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}

// evaluationError attaches engine, stage and the context's scope and target
// to err. An EvaluationError already in the chain only gets its blank fields
// filled, so the innermost stage wins.
func evaluationError(engine string, stage Stage, expr string, ctx Context, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		fill(&evalErr.Engine, engine)
		fill((*string)(&evalErr.Stage), string(stage))
		fill(&evalErr.Expr, expr)
		fill(&evalErr.Scope, ctx.Scope)
		fill(&evalErr.Target, ctx.Target)
		return evalErr
	}

	return &EvaluationError{
		Engine: engine,
		Stage:  stage,
		Expr:   expr,
		Scope:  ctx.Scope,
		Target: ctx.Target,
		Err:    err,
	}
}

func fill(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
