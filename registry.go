package skin

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ElementType identifies an element class that declares subcontrols and
// states. Types form families through their parent chain; subcontrol codes
// are allocated per family root.
type ElementType struct {
	name   string
	parent *ElementType
}

// NewElementType declares a type derived from parent (nil for a root).
func NewElementType(name string, parent *ElementType) *ElementType {
	return &ElementType{name: name, parent: parent}
}

func (t *ElementType) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

func (t *ElementType) Parent() *ElementType {
	if t == nil {
		return nil
	}
	return t.parent
}

// Root returns the first ancestor without a parent.
func (t *ElementType) Root() *ElementType {
	if t == nil {
		return nil
	}
	root := t
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Inherits reports whether t is other or derives from it.
func (t *ElementType) Inherits(other *ElementType) bool {
	for cur := t; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}
	return false
}

func (t *ElementType) String() string { return t.Name() }

type subcontrolEntry struct {
	owner *ElementType
	name  string
}

// family holds the subcontrol codes of one type hierarchy.
type family struct {
	entries []subcontrolEntry // index is code-1
	byName  map[subcontrolKey]Subcontrol
}

type subcontrolKey struct {
	owner *ElementType
	name  string
}

type stateEntry struct {
	names  map[State]string
	byName map[string]State
}

// Registry assigns subcontrol codes and state bits. Codes are stable for the
// lifetime of the registry and never reassigned. Registration is expected to
// happen during package initialisation, before the first lookup.
type Registry struct {
	mu       sync.RWMutex
	families map[*ElementType]*family
	states   map[*ElementType]*stateEntry
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		families: make(map[*ElementType]*family),
		states:   make(map[*ElementType]*stateEntry),
	}
}

// NextSubcontrol allocates the next code of t's family for name. Calling it
// again with the same type and name returns the code allocated first.
func (r *Registry) NextSubcontrol(t *ElementType, name string) (Subcontrol, error) {
	if t == nil {
		return NoSubcontrol, registrationError(t, name, 0, ErrElementTypeRequired)
	}
	if name == "" {
		return NoSubcontrol, registrationError(t, name, 0, ErrNameRequired)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.families == nil {
		r.families = make(map[*ElementType]*family)
	}
	root := t.Root()
	fam := r.families[root]
	if fam == nil {
		fam = &family{byName: make(map[subcontrolKey]Subcontrol)}
		r.families[root] = fam
	}

	key := subcontrolKey{owner: t, name: name}
	if code, ok := fam.byName[key]; ok {
		return code, nil
	}
	if len(fam.entries) >= int(LastSubcontrol) {
		return NoSubcontrol, registrationError(t, name, uint16(len(fam.entries)), ErrSubcontrolOverflow)
	}
	fam.entries = append(fam.entries, subcontrolEntry{owner: t, name: name})
	code := Subcontrol(len(fam.entries))
	fam.byName[key] = code
	return code, nil
}

// MustNextSubcontrol is NextSubcontrol that panics on failure.
func (r *Registry) MustNextSubcontrol(t *ElementType, name string) Subcontrol {
	code, err := r.NextSubcontrol(t, name)
	if err != nil {
		panic(err)
	}
	return code
}

// RegisterState names a user state bit for t. The value must be a single bit
// between FirstUserState and LastUserState.
func (r *Registry) RegisterState(t *ElementType, value State, name string) (State, error) {
	if err := validateState(value, State.IsUser); err != nil {
		return NoState, registrationError(t, name, uint16(value), err)
	}
	return r.registerState(t, value, name)
}

// RegisterSystemState names a toolkit state bit for t. The value must be a
// single bit outside the user range.
func (r *Registry) RegisterSystemState(t *ElementType, value State, name string) (State, error) {
	if err := validateState(value, State.IsSystem); err != nil {
		return NoState, registrationError(t, name, uint16(value), err)
	}
	return r.registerState(t, value, name)
}

// MustRegisterState is RegisterState that panics on failure.
func (r *Registry) MustRegisterState(t *ElementType, value State, name string) State {
	state, err := r.RegisterState(t, value, name)
	if err != nil {
		panic(err)
	}
	return state
}

// MustRegisterSystemState is RegisterSystemState that panics on failure.
func (r *Registry) MustRegisterSystemState(t *ElementType, value State, name string) State {
	state, err := r.RegisterSystemState(t, value, name)
	if err != nil {
		panic(err)
	}
	return state
}

func validateState(value State, inRange func(State) bool) error {
	if !value.single() {
		return ErrStateNotSingleBit
	}
	if !inRange(value) {
		return ErrStateOutOfRange
	}
	return nil
}

func (r *Registry) registerState(t *ElementType, value State, name string) (State, error) {
	if t == nil {
		return NoState, registrationError(t, name, uint16(value), ErrElementTypeRequired)
	}
	if name == "" {
		return NoState, registrationError(t, name, uint16(value), ErrNameRequired)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.states == nil {
		r.states = make(map[*ElementType]*stateEntry)
	}
	entry := r.states[t]
	if entry == nil {
		entry = &stateEntry{
			names:  make(map[State]string),
			byName: make(map[string]State),
		}
		r.states[t] = entry
	}
	if existing, ok := entry.byName[name]; ok {
		if existing == value {
			return value, nil
		}
		return NoState, registrationError(t, name, uint16(value),
			fmt.Errorf("%w: %s is 0x%04x", ErrStateConflict, name, uint16(existing)))
	}
	if existing, ok := entry.names[value]; ok {
		return NoState, registrationError(t, name, uint16(value),
			fmt.Errorf("%w: bit taken by %s", ErrStateConflict, existing))
	}
	inherited, err := r.checkLineage(t, value, name)
	if err != nil {
		return NoState, registrationError(t, name, uint16(value), err)
	}
	if inherited {
		return value, nil
	}
	entry.names[value] = name
	entry.byName[name] = value
	return value, nil
}

// checkLineage compares a registration with those of t's ancestors and
// descendants, which share state bits with t. Siblings may reuse a bit. It
// reports whether an ancestor already registered the same state.
func (r *Registry) checkLineage(t *ElementType, value State, name string) (bool, error) {
	inherited := false
	for other, entry := range r.states {
		if other == t || !(t.Inherits(other) || other.Inherits(t)) {
			continue
		}
		existing, bitTaken := entry.names[value]
		if bitTaken && existing != name {
			return false, fmt.Errorf("%w: bit taken by %s", ErrStateConflict, qualified(other, existing))
		}
		if bit, ok := entry.byName[name]; ok && bit != value {
			return false, fmt.Errorf("%w: %s is 0x%04x", ErrStateConflict, qualified(other, name), uint16(bit))
		}
		if bitTaken && t.Inherits(other) {
			inherited = true
		}
	}
	return inherited, nil
}

// Subcontrols returns the codes declared by t itself, in allocation order.
func (r *Registry) Subcontrols(t *ElementType) []Subcontrol {
	if t == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fam := r.families[t.Root()]
	if fam == nil {
		return nil
	}
	var out []Subcontrol
	for i, entry := range fam.entries {
		if entry.owner == t {
			out = append(out, Subcontrol(i+1))
		}
	}
	return out
}

// SubcontrolNames returns the qualified names of the codes declared by t.
func (r *Registry) SubcontrolNames(t *ElementType) []string {
	codes := r.Subcontrols(t)
	if len(codes) == 0 {
		return nil
	}
	names := make([]string, len(codes))
	for i, code := range codes {
		names[i] = r.SubcontrolName(t, code)
	}
	return names
}

// SubcontrolName returns "Type::Name" for a code of t's family, or an empty
// string when the code is unknown.
func (r *Registry) SubcontrolName(t *ElementType, code Subcontrol) string {
	if t == nil || code == NoSubcontrol {
		return ""
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fam := r.families[t.Root()]
	if fam == nil || int(code) > len(fam.entries) {
		return ""
	}
	entry := fam.entries[code-1]
	return qualified(entry.owner, entry.name)
}

// StateName returns "Type::Name" for a state registered on t or one of its
// ancestors, or an empty string.
func (r *Registry) StateName(t *ElementType, state State) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for cur := t; cur != nil; cur = cur.parent {
		if entry := r.states[cur]; entry != nil {
			if name, ok := entry.names[state]; ok {
				return qualified(cur, name)
			}
		}
	}
	return ""
}

// StateNames returns the qualified names of every state visible from t,
// sorted by significance, most significant first.
func (r *Registry) StateNames(t *ElementType) []string {
	r.mu.RLock()
	visible := map[State]string{}
	for cur := t; cur != nil; cur = cur.parent {
		entry := r.states[cur]
		if entry == nil {
			continue
		}
		for state, name := range entry.names {
			if _, shadowed := visible[state]; !shadowed {
				visible[state] = qualified(cur, name)
			}
		}
	}
	r.mu.RUnlock()

	states := make([]State, 0, len(visible))
	for state := range visible {
		states = append(states, state)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] > states[j] })
	names := make([]string, len(states))
	for i, state := range states {
		names[i] = visible[state]
	}
	return names
}

// Describe renders a using the subcontrol and state names visible from t.
func (r *Registry) Describe(t *ElementType, a Aspect) string {
	return a.describe(
		func(s Subcontrol) string {
			if name := r.SubcontrolName(t, s); name != "" {
				return name
			}
			return fmt.Sprintf("Subcontrol(%d)", s)
		},
		func(s State) string {
			if name := r.StateName(t, s); name != "" {
				return name
			}
			return fmt.Sprintf("State(0x%04x)", uint16(s))
		},
	)
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process wide registry used by the package
// level helpers.
func DefaultRegistry() *Registry { return defaultRegistry }

// NextSubcontrol allocates a subcontrol code in the default registry.
func NextSubcontrol(t *ElementType, name string) (Subcontrol, error) {
	return defaultRegistry.NextSubcontrol(t, name)
}

// MustNextSubcontrol allocates a subcontrol code in the default registry,
// panicking on failure. Intended for package level var blocks.
func MustNextSubcontrol(t *ElementType, name string) Subcontrol {
	return defaultRegistry.MustNextSubcontrol(t, name)
}

// RegisterState registers a user state bit in the default registry.
func RegisterState(t *ElementType, value State, name string) (State, error) {
	return defaultRegistry.RegisterState(t, value, name)
}

// MustRegisterState registers a user state bit in the default registry,
// panicking when the value is outside the user range.
func MustRegisterState(t *ElementType, value State, name string) State {
	return defaultRegistry.MustRegisterState(t, value, name)
}

// MustRegisterSystemState registers a system state bit in the default
// registry, panicking when the value is inside the user range.
func MustRegisterSystemState(t *ElementType, value State, name string) State {
	return defaultRegistry.MustRegisterSystemState(t, value, name)
}

// SubcontrolName looks up a subcontrol name in the default registry.
func SubcontrolName(t *ElementType, code Subcontrol) string {
	return defaultRegistry.SubcontrolName(t, code)
}

// StateName looks up a state name in the default registry.
func StateName(t *ElementType, state State) string {
	return defaultRegistry.StateName(t, state)
}

// Describe renders a with names from the default registry.
func Describe(t *ElementType, a Aspect) string {
	return defaultRegistry.Describe(t, a)
}

func qualified(t *ElementType, name string) string {
	var b strings.Builder
	b.WriteString(t.Name())
	b.WriteString("::")
	b.WriteString(name)
	return b.String()
}
