package skin

import (
	"errors"
	"fmt"
	"sort"
)

// Scope names one precedence layer of a Stack, such as the element
// overrides or the active skin. Higher priorities are consulted first.
type Scope struct {
	Name     string         `json:"name"`
	Label    string         `json:"label,omitempty"`
	Priority int            `json:"priority"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ScopeOption configures metadata on Scope creation.
type ScopeOption func(*scopeConfig)

type scopeConfig struct {
	label    string
	metadata map[string]any
}

// WithScopeLabel sets a human-friendly label on the scope.
func WithScopeLabel(label string) ScopeOption {
	return func(cfg *scopeConfig) {
		cfg.label = label
	}
}

// WithScopeMetadata attaches metadata to the scope. The map is copied.
func WithScopeMetadata(metadata map[string]any) ScopeOption {
	return func(cfg *scopeConfig) {
		if len(metadata) == 0 {
			return
		}
		cfg.metadata = copyMetadata(metadata)
	}
}

// NewScope builds a Scope. Validation is deferred to NewStack.
func NewScope(name string, priority int, opts ...ScopeOption) Scope {
	cfg := scopeConfig{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return Scope{
		Name:     name,
		Label:    cfg.label,
		Priority: priority,
		Metadata: copyMetadata(cfg.metadata),
	}
}

func (s Scope) clone() Scope {
	return Scope{
		Name:     s.Name,
		Label:    s.Label,
		Priority: s.Priority,
		Metadata: copyMetadata(s.Metadata),
	}
}

// Layer pairs a scope with the table answering for it.
type Layer struct {
	Scope Scope
	Table *Table
}

// NewLayer constructs a Layer.
func NewLayer(scope Scope, table *Table) Layer {
	return Layer{Scope: scope.clone(), Table: table}
}

var (
	// ErrScopeNameRequired indicates a missing scope name.
	ErrScopeNameRequired = errors.New("skin: scope name must be provided")
	// ErrDuplicateScopeName indicates two layers with the same scope name.
	ErrDuplicateScopeName = errors.New("skin: scope names must be unique")
	// ErrPriorityOrder indicates duplicate priorities.
	ErrPriorityOrder = errors.New("skin: scope priorities must be strictly ordered")
	// ErrTableRequired indicates a layer without a table.
	ErrTableRequired = errors.New("skin: layer table must be provided")
)

// Stack chains tables from strongest to weakest scope. A query is answered
// by the first layer whose table resolves it; weaker layers are not
// consulted. Tables are shared, not copied: hints set on a table after
// stack construction are visible through the stack.
type Stack struct {
	layers []Layer
}

// Resolution reports where a stack query was answered.
type Resolution struct {
	Aspect  Aspect
	Scope   Scope
	TableID string
}

// NewStack validates and sorts the layers so the highest priority is first.
func NewStack(layers ...Layer) (*Stack, error) {
	if len(layers) == 0 {
		return &Stack{}, nil
	}

	seenNames := make(map[string]struct{}, len(layers))
	copied := make([]Layer, len(layers))
	for i, layer := range layers {
		if layer.Scope.Name == "" {
			return nil, ErrScopeNameRequired
		}
		if layer.Table == nil {
			return nil, fmt.Errorf("%w: %s", ErrTableRequired, layer.Scope.Name)
		}
		if _, ok := seenNames[layer.Scope.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateScopeName, layer.Scope.Name)
		}
		seenNames[layer.Scope.Name] = struct{}{}
		copied[i] = Layer{Scope: layer.Scope.clone(), Table: layer.Table}
	}

	sort.Slice(copied, func(i, j int) bool {
		if copied[i].Scope.Priority == copied[j].Scope.Priority {
			return copied[i].Scope.Name < copied[j].Scope.Name
		}
		return copied[i].Scope.Priority > copied[j].Scope.Priority
	})

	for i := 1; i < len(copied); i++ {
		if copied[i-1].Scope.Priority <= copied[i].Scope.Priority {
			return nil, fmt.Errorf("%w: %d", ErrPriorityOrder, copied[i].Scope.Priority)
		}
	}

	return &Stack{layers: copied}, nil
}

// Layers returns the layers strongest first. Scopes are copied, tables are
// shared.
func (s *Stack) Layers() []Layer {
	if s == nil || len(s.layers) == 0 {
		return nil
	}
	out := make([]Layer, len(s.layers))
	for i := range s.layers {
		out[i] = Layer{Scope: s.layers[i].Scope.clone(), Table: s.layers[i].Table}
	}
	return out
}

// Len returns the number of layers in the stack.
func (s *Stack) Len() int {
	if s == nil {
		return 0
	}
	return len(s.layers)
}

// Table returns the table of the named scope.
func (s *Stack) Table(name string) (*Table, bool) {
	if s == nil {
		return nil, false
	}
	for _, layer := range s.layers {
		if layer.Scope.Name == name {
			return layer.Table, true
		}
	}
	return nil, false
}

// ResolvedHint asks every layer in order and returns the first hit.
func (s *Stack) ResolvedHint(aspect Aspect) (Hint, Resolution, bool) {
	if s == nil {
		return Hint{}, Resolution{}, false
	}
	for _, layer := range s.layers {
		if hint, resolved, ok := layer.Table.ResolvedHint(aspect); ok {
			return hint, Resolution{
				Aspect:  resolved,
				Scope:   layer.Scope.clone(),
				TableID: layer.Table.ID(),
			}, true
		}
	}
	return Hint{}, Resolution{}, false
}

// ResolvedAnimator asks every layer for an animator in order.
func (s *Stack) ResolvedAnimator(aspect Aspect) (Aspect, AnimationHint, bool) {
	if s == nil {
		return 0, AnimationHint{}, false
	}
	for _, layer := range s.layers {
		if resolved, hint, ok := layer.Table.ResolvedAnimator(aspect); ok {
			return resolved, hint, true
		}
	}
	return 0, AnimationHint{}, false
}

// Animation resolves the animation hint for the animator flavour of aspect
// through the layers.
func (s *Stack) Animation(aspect Aspect) AnimationHint {
	hint, _, ok := s.ResolvedHint(aspect.WithAnimator(true))
	if !ok {
		return AnimationHint{}
	}
	animation, _ := hint.Animation()
	return animation
}

// IsResolutionMatching reports whether both aspects are answered by the
// same entry of the same layer. The first layer resolving either aspect
// decides; when no layer resolves either, both are equally absent.
func (s *Stack) IsResolutionMatching(aspect1, aspect2 Aspect) bool {
	if s == nil {
		return true
	}
	for _, layer := range s.layers {
		_, _, ok1 := layer.Table.ResolvedHint(aspect1)
		_, _, ok2 := layer.Table.ResolvedHint(aspect2)
		if !ok1 && !ok2 {
			continue
		}
		if ok1 != ok2 {
			return false
		}
		return layer.Table.IsResolutionMatching(aspect1, aspect2)
	}
	return true
}

// ResolveWithTrace resolves aspect recording the trace of every layer
// consulted.
func (s *Stack) ResolveWithTrace(aspect Aspect) StackTrace {
	trace := StackTrace{Query: aspect}
	if s == nil {
		return trace
	}
	for _, layer := range s.layers {
		layerTrace := layer.Table.ResolveWithTrace(aspect)
		trace.Layers = append(trace.Layers, Provenance{
			Scope: layer.Scope.clone(),
			Trace: layerTrace,
		})
		if layerTrace.Found {
			break
		}
	}
	return trace
}

func copyMetadata(origin map[string]any) map[string]any {
	if len(origin) == 0 {
		return nil
	}
	out := make(map[string]any, len(origin))
	for key, value := range origin {
		out[key] = value
	}
	return out
}
