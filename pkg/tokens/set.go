package tokens

import (
	"sort"
	"strings"
)

// Set maps design token names, such as "unit" or "accent", to values.
// Values are numbers, colour strings or nested sets grouping related tokens
// ("palette" holding "primary" and "secondary").
type Set map[string]any

// Merge combines sets, strongest first. A token defined by a stronger set
// hides the same token in weaker sets; nested sets are merged token by
// token so a theme can override one palette entry and keep the rest.
func Merge(sets ...Set) Set {
	out := Set{}
	for i := len(sets) - 1; i >= 0; i-- {
		for key, value := range sets[i] {
			out[key] = mergeValue(value, out[key])
		}
	}
	return out
}

func mergeValue(strong, weak any) any {
	strongSet, ok := asSet(strong)
	if !ok {
		return strong
	}
	weakSet, ok := asSet(weak)
	if !ok {
		return strongSet.Clone()
	}
	merged := weakSet.Clone()
	for key, value := range strongSet {
		merged[key] = mergeValue(value, merged[key])
	}
	return merged
}

func asSet(value any) (Set, bool) {
	switch v := value.(type) {
	case Set:
		return v, v != nil
	case map[string]any:
		return Set(v), v != nil
	default:
		return nil, false
	}
}

// Clone returns a copy of the set. Nested sets are copied as well.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s))
	for key, value := range s {
		if nested, ok := asSet(value); ok {
			out[key] = nested.Clone()
			continue
		}
		out[key] = value
	}
	return out
}

// Names returns the top level token names sorted alphabetically.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the token at path. Dots descend into nested sets, so
// "palette.primary" reads the primary entry of the palette group.
func (s Set) Lookup(path string) (any, bool) {
	if value, ok := s[path]; ok {
		return value, true
	}
	current := s
	segments := strings.Split(path, ".")
	for i, segment := range segments {
		value, ok := current[segment]
		if !ok {
			return nil, false
		}
		if i == len(segments)-1 {
			return value, true
		}
		if current, ok = asSet(value); !ok {
			return nil, false
		}
	}
	return nil, false
}

// Number returns the numeric value of the token at path.
func (s Set) Number(path string) (float64, bool) {
	value, ok := s.Lookup(path)
	if !ok {
		return 0, false
	}
	number, err := ToNumber(value)
	if err != nil {
		return 0, false
	}
	return number, true
}

// String returns the string value of the token at path.
func (s Set) String(path string) (string, bool) {
	value, ok := s.Lookup(path)
	if !ok {
		return "", false
	}
	text, ok := value.(string)
	return text, ok
}
