package tokens

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownFunction is returned when an expression calls a function that
// is not registered.
var ErrUnknownFunction = errors.New("tokens: unknown function")

// Function represents a callable exposed to expressions.
type Function func(args ...any) (any, error)

// FunctionRegistry stores custom functions keyed by name. Names are case
// insensitive.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions: make(map[string]Function),
	}
}

// Register stores fn under name guarding against duplicates.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if fn == nil {
		return fmt.Errorf("tokens: function %q is nil", name)
	}
	if name == "" {
		return fmt.Errorf("tokens: function name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]Function)
	}
	key := strings.ToLower(name)
	if _, exists := r.functions[key]; exists {
		return fmt.Errorf("tokens: function %q already registered", name)
	}
	r.functions[key] = fn
	return nil
}

// Clone returns a shallow copy of the registry.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{
		functions: make(map[string]Function, len(r.functions)),
	}
	for name, fn := range r.functions {
		clone.functions[name] = fn
	}
	return clone
}

// Call executes the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
	r.mu.RLock()
	fn := r.functions[strings.ToLower(name)]
	r.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
	return fn(args...)
}

// Names returns registered function names sorted alphabetically.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultFunctions returns a registry with the metric helpers shared by every
// engine: clamp(v, lo, hi) and snap(v), which rounds to the nearest pixel.
func DefaultFunctions() *FunctionRegistry {
	r := NewFunctionRegistry()
	_ = r.Register("clamp", func(args ...any) (any, error) {
		values, err := numbers("clamp", 3, args)
		if err != nil {
			return nil, err
		}
		v, lo, hi := values[0], values[1], values[2]
		return max(lo, min(v, hi)), nil
	})
	_ = r.Register("snap", func(args ...any) (any, error) {
		values, err := numbers("snap", 1, args)
		if err != nil {
			return nil, err
		}
		return float64(int64(values[0] + 0.5*sign(values[0]))), nil
	})
	return r
}

func numbers(name string, want int, args []any) ([]float64, error) {
	if len(args) != want {
		return nil, fmt.Errorf("tokens: %s expects %d arguments, got %d", name, want, len(args))
	}
	out := make([]float64, len(args))
	for i, arg := range args {
		v, err := ToNumber(arg)
		if err != nil {
			return nil, fmt.Errorf("tokens: %s argument %d: %w", name, i, err)
		}
		out[i] = v
	}
	return out, nil
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
