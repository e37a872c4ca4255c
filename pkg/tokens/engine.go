package tokens

// engine is the state shared by every evaluator: its name, an optional
// program cache and the functions exposed to expressions.
type engine struct {
	name     string
	cache    ProgramCache
	registry *FunctionRegistry
}

func newEngine[O ~func(*engine)](name string, opts []O) engine {
	e := engine{name: name}
	for _, opt := range opts {
		if opt != nil {
			opt(&e)
		}
	}
	return e
}

func withCache(cache ProgramCache) func(*engine) {
	return func(e *engine) {
		e.cache = cache
	}
}

func withRegistry(registry *FunctionRegistry) func(*engine) {
	return func(e *engine) {
		if registry != nil {
			e.registry = registry.Clone()
		}
	}
}

// loadProgram returns the cached program for expression, compiling and
// caching it on a miss. Cache entries of another type are ignored.
func loadProgram[P any](e *engine, expression string, compile func() (P, error)) (P, error) {
	key := cacheKey(e.name, expression)
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			if program, ok := cached.(P); ok {
				return program, nil
			}
		}
	}
	program, err := compile()
	if err != nil {
		var zero P
		return zero, e.fail(StageCompile, expression, Context{}, err)
	}
	if e.cache != nil {
		e.cache.Set(key, program)
	}
	return program, nil
}

func (e *engine) engineName() string { return e.name }

func (e *engine) fail(stage Stage, expression string, ctx Context, err error) error {
	return evaluationError(e.name, stage, expression, ctx, err)
}

func (e *engine) call(name string, arguments ...any) (any, error) {
	return e.registry.Call(name, arguments...)
}

// JSEvaluatorOption configures the JS evaluator. The options are accepted
// by builds without js_eval too.
type JSEvaluatorOption func(*engine)

// JSWithProgramCache wires a ProgramCache into the JS evaluator.
func JSWithProgramCache(cache ProgramCache) JSEvaluatorOption { return withCache(cache) }

// JSWithFunctionRegistry wires a FunctionRegistry into the JS evaluator.
func JSWithFunctionRegistry(registry *FunctionRegistry) JSEvaluatorOption {
	return withRegistry(registry)
}
