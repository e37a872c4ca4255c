package tokens

import (
	"reflect"

	celgo "github.com/google/cel-go/cel"
	functions "github.com/google/cel-go/common/functions"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// CELEvaluatorOption configures the CEL evaluator.
type CELEvaluatorOption func(*engine)

// CELWithProgramCache wires a ProgramCache into the CEL evaluator.
func CELWithProgramCache(cache ProgramCache) CELEvaluatorOption { return withCache(cache) }

// CELWithFunctionRegistry wires a FunctionRegistry into the CEL evaluator.
// Registered functions are reached through call("name", [args]).
func CELWithFunctionRegistry(registry *FunctionRegistry) CELEvaluatorOption {
	return withRegistry(registry)
}

var anySliceType = reflect.TypeOf([]any{})

type celEvaluator struct {
	engine
}

// NewCELEvaluator constructs an Evaluator backed by cel-go. CEL does not mix
// integers and doubles, so metric expressions use double literals such as
// unit * 2.0.
func NewCELEvaluator(opts ...CELEvaluatorOption) Evaluator {
	return &celEvaluator{engine: newEngine("cel", opts)}
}

func (e *celEvaluator) Evaluate(ctx Context, expression string) (any, error) {
	if expression == "" {
		return nil, e.fail(StageCompile, "", Context{}, ErrEmptyExpression)
	}
	ctx = ctx.withDefaults()
	program, err := loadProgram(&e.engine, expression, func() (celgo.Program, error) {
		return e.compile(expression, ctx.Tokens)
	})
	if err != nil {
		return nil, err
	}
	return e.run(ctx, program, expression)
}

// Compile defers compilation to the first evaluation, since the CEL
// environment declares one variable per token.
func (e *celEvaluator) Compile(expression string) (Program, error) {
	if expression == "" {
		return nil, e.fail(StageCompile, "", Context{}, ErrEmptyExpression)
	}
	return &celCompiledProgram{
		evaluator:  e,
		expression: expression,
	}, nil
}

// compile type-checks expression against an environment declaring one
// dyn variable per token.
func (e *celEvaluator) compile(expression string, tokens Set) (celgo.Program, error) {
	env, err := e.buildEnv(tokens)
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	return env.Program(ast)
}

func (e *celEvaluator) buildEnv(tokens Set) (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("tokens", celgo.MapType(celgo.StringType, celgo.DynType)),
		celgo.Variable("args", celgo.MapType(celgo.StringType, celgo.DynType)),
		celgo.Variable("scope", celgo.StringType),
	}
	if e.registry != nil {
		opts = append(opts, celgo.Function("call", celgo.Overload(
			"call_dyn",
			[]*celgo.Type{celgo.StringType, celgo.ListType(celgo.DynType)},
			celgo.DynType,
			celgo.BinaryBinding(e.callBinding()),
		)))
	}
	for _, key := range tokens.Names() {
		if reserved(key) || !identifier(key) {
			continue
		}
		opts = append(opts, celgo.Variable(key, celgo.DynType))
	}
	return celgo.NewEnv(opts...)
}

func (e *celEvaluator) run(ctx Context, program celgo.Program, expression string) (any, error) {
	out, _, err := program.Eval(activation(ctx))
	if err != nil {
		return nil, e.fail(StageRun, expression, ctx, err)
	}
	return out.Value(), nil
}

func activation(ctx Context) map[string]any {
	vars := environment(ctx)
	for key := range vars {
		if !reserved(key) && !identifier(key) {
			delete(vars, key)
		}
	}
	return vars
}

type celCompiledProgram struct {
	evaluator  *celEvaluator
	expression string
}

func (p *celCompiledProgram) Evaluate(ctx Context) (any, error) {
	if p.evaluator == nil {
		return nil, evaluationError("cel", StageRun, p.expression, ctx, errMissingEvaluator)
	}
	return p.evaluator.Evaluate(ctx, p.expression)
}

// callBinding dispatches call(name, [args]) to the registry.
func (e *celEvaluator) callBinding() functions.BinaryOp {
	return func(nameVal, argsVal ref.Val) ref.Val {
		name, ok := nameVal.Value().(string)
		if !ok {
			return types.NewErr("tokens: call name must be string")
		}
		native, err := argsVal.ConvertToNative(anySliceType)
		if err != nil {
			return types.NewErr("tokens: call arguments must be a list")
		}
		result, err := e.call(name, native.([]any)...)
		if err != nil {
			return types.NewErr("%s", err.Error())
		}
		if result == nil {
			return types.NullValue
		}
		return types.DefaultTypeAdapter.NativeToValue(result)
	}
}

func reserved(name string) bool {
	switch name {
	case "tokens", "args", "scope":
		return true
	}
	return false
}

func identifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
