package tokens

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprEvaluatorOption configures an expr evaluator instance.
type ExprEvaluatorOption func(*engine)

// ExprWithProgramCache wires a ProgramCache into the expr evaluator.
func ExprWithProgramCache(cache ProgramCache) ExprEvaluatorOption { return withCache(cache) }

// ExprWithFunctionRegistry wires a FunctionRegistry into the expr evaluator.
// Registered functions are callable by name and through call("name", ...).
func ExprWithFunctionRegistry(registry *FunctionRegistry) ExprEvaluatorOption {
	return withRegistry(registry)
}

// exprEvaluator executes token expressions using github.com/expr-lang/expr.
type exprEvaluator struct {
	engine
}

// NewExprEvaluator constructs an Evaluator backed by expr-lang/expr.
func NewExprEvaluator(opts ...ExprEvaluatorOption) Evaluator {
	return &exprEvaluator{engine: newEngine("expr", opts)}
}

// Evaluate compiles and runs expression against the context tokens.
func (e *exprEvaluator) Evaluate(ctx Context, expression string) (any, error) {
	program, err := e.compile(expression)
	if err != nil {
		return nil, err
	}
	return e.run(ctx.withDefaults(), program, expression)
}

// Compile returns a program that evaluates expression per invocation.
func (e *exprEvaluator) Compile(expression string) (Program, error) {
	program, err := e.compile(expression)
	if err != nil {
		return nil, err
	}
	return &exprProgram{
		evaluator:  e,
		program:    program,
		expression: expression,
	}, nil
}

func (e *exprEvaluator) compile(expression string) (*exprvm.Program, error) {
	if expression == "" {
		return nil, e.fail(StageCompile, "", Context{}, ErrEmptyExpression)
	}
	return loadProgram(&e.engine, expression, func() (*exprvm.Program, error) {
		return exprlang.Compile(expression, e.options()...)
	})
}

// options declares no environment so any token name compiles; unknown
// names evaluate to nil.
func (e *exprEvaluator) options() []exprlang.Option {
	options := []exprlang.Option{
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	}
	if e.registry == nil {
		return options
	}
	options = append(options, exprlang.Function("call", func(arguments ...any) (any, error) {
		if len(arguments) == 0 {
			return nil, fmt.Errorf("tokens: call requires function name")
		}
		name, ok := arguments[0].(string)
		if !ok {
			return nil, fmt.Errorf("tokens: call name must be string")
		}
		return e.call(name, arguments[1:]...)
	}))
	for _, name := range e.registry.Names() {
		fn := name
		options = append(options, exprlang.Function(fn, func(arguments ...any) (any, error) {
			return e.call(fn, arguments...)
		}))
	}
	return options
}

func (e *exprEvaluator) run(ctx Context, program *exprvm.Program, expression string) (any, error) {
	result, err := exprlang.Run(program, environment(ctx))
	if err != nil {
		return nil, e.fail(StageRun, expression, ctx, err)
	}
	return result, nil
}

type exprProgram struct {
	evaluator  *exprEvaluator
	program    *exprvm.Program
	expression string
}

func (p *exprProgram) Evaluate(ctx Context) (any, error) {
	if p.evaluator == nil {
		return nil, evaluationError("expr", StageRun, p.expression, ctx, errMissingEvaluator)
	}
	return p.evaluator.run(ctx.withDefaults(), p.program, p.expression)
}

// environment binds tokens as top level variables. The reserved names
// tokens, args and scope win over tokens of the same name.
func environment(ctx Context) map[string]any {
	env := make(map[string]any, len(ctx.Tokens)+3)
	for key, value := range ctx.Tokens {
		env[key] = value
	}
	env["tokens"] = map[string]any(ctx.Tokens)
	env["args"] = ctx.Args
	env["scope"] = ctx.Scope
	return env
}
