//go:build js_eval

package tokens

import (
	"fmt"

	"github.com/dop251/goja"
)

type jsEvaluator struct {
	engine
}

// NewJSEvaluator constructs an Evaluator backed by goja.
func NewJSEvaluator(opts ...JSEvaluatorOption) Evaluator {
	return &jsEvaluator{engine: newEngine("js", opts)}
}

// JSEvaluatorAvailable reports whether the binary was built with js_eval.
func JSEvaluatorAvailable() bool {
	return true
}

func (e *jsEvaluator) Evaluate(ctx Context, expression string) (any, error) {
	program, err := e.compile(expression)
	if err != nil {
		return nil, err
	}
	return e.run(ctx.withDefaults(), expression, program)
}

func (e *jsEvaluator) Compile(expression string) (Program, error) {
	program, err := e.compile(expression)
	if err != nil {
		return nil, err
	}
	return &jsProgram{
		evaluator:  e,
		expression: expression,
		program:    program,
	}, nil
}

func (e *jsEvaluator) compile(expression string) (*goja.Program, error) {
	if expression == "" {
		return nil, e.fail(StageCompile, "", Context{}, ErrEmptyExpression)
	}
	return loadProgram(&e.engine, expression, func() (*goja.Program, error) {
		return goja.Compile("", wrapExpression(expression), false)
	})
}

// run executes program on a fresh runtime; goja runtimes are not safe for
// concurrent use.
func (e *jsEvaluator) run(ctx Context, expression string, program *goja.Program) (any, error) {
	vm := goja.New()
	if err := e.injectContext(vm, ctx); err != nil {
		return nil, e.fail(StageRun, expression, ctx, err)
	}
	value, err := vm.RunProgram(program)
	if err != nil {
		return nil, e.fail(StageRun, expression, ctx, err)
	}
	return value.Export(), nil
}

func (e *jsEvaluator) injectContext(vm *goja.Runtime, ctx Context) error {
	for key, value := range environment(ctx) {
		if err := vm.Set(key, value); err != nil {
			return err
		}
	}
	if e.registry == nil {
		return nil
	}
	if err := vm.Set("call", func(name string, arguments ...any) (any, error) {
		return e.call(name, arguments...)
	}); err != nil {
		return err
	}
	for _, name := range e.registry.Names() {
		fn := name
		if err := vm.Set(fn, func(arguments ...any) (any, error) {
			return e.call(fn, arguments...)
		}); err != nil {
			return err
		}
	}
	return nil
}

func wrapExpression(expression string) string {
	return fmt.Sprintf("(function(){ return (%s); })()", expression)
}

type jsProgram struct {
	evaluator  *jsEvaluator
	expression string
	program    *goja.Program
}

func (p *jsProgram) Evaluate(ctx Context) (any, error) {
	if p.evaluator == nil {
		return nil, evaluationError("js", StageRun, p.expression, ctx, errMissingEvaluator)
	}
	return p.evaluator.run(ctx.withDefaults(), p.expression, p.program)
}
