package activity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrIncompleteEvent marks events without a verb, object type or object
	// id. Hooks drop them instead of failing.
	ErrIncompleteEvent = errors.New("activity: event needs verb, object type and object id")
	// ErrInvalidAspect marks an aspect that is missing from a hint event, set
	// on a table event, or not in the FormatAspect form.
	ErrInvalidAspect = errors.New("activity: invalid aspect")
)

// Event describes a skin mutation that can be fanned out to hooks. IDs are
// strings so hooks do not depend on the table id format. Aspect carries the
// packed key of hint events as produced by FormatAspect.
type Event struct {
	Verb       string
	ActorID    string
	ObjectType string
	ObjectID   string
	Channel    string
	Aspect     string
	Metadata   map[string]any
	OccurredAt time.Time
}

const aspectDigits = 16

// FormatAspect renders a packed aspect as 0x followed by 16 hex digits.
func FormatAspect(aspect uint64) string {
	return fmt.Sprintf("0x%016x", aspect)
}

// ParseAspect reverses FormatAspect. Shorter or unprefixed forms are
// rejected so every event spells a given key the same way.
func ParseAspect(text string) (uint64, error) {
	digits, ok := strings.CutPrefix(text, "0x")
	if !ok || len(digits) != aspectDigits {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAspect, text)
	}
	value, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAspect, text)
	}
	return value, nil
}

// AspectValue returns the packed aspect carried by the event.
func (e Event) AspectValue() (uint64, bool) {
	value, err := ParseAspect(strings.TrimSpace(e.Aspect))
	return value, err == nil
}

// Validate checks the identifiers and the aspect: hint events must carry a
// well formed one, table events none.
func (e Event) Validate() error {
	if e.Verb == "" || e.ObjectType == "" || e.ObjectID == "" {
		return ErrIncompleteEvent
	}
	switch e.ObjectType {
	case ObjectTypeHint:
		if _, err := ParseAspect(e.Aspect); err != nil {
			return fmt.Errorf("%s %s: %w", e.Verb, e.ObjectID, err)
		}
	case ObjectTypeTable:
		if e.Aspect != "" {
			return fmt.Errorf("%w: %s carries %q", ErrInvalidAspect, e.Verb, e.Aspect)
		}
	}
	return nil
}

// ActivityHook receives normalized activity events.
type ActivityHook interface {
	Notify(ctx context.Context, event Event) error
}

// HookFunc allows plain functions to satisfy ActivityHook.
type HookFunc func(ctx context.Context, event Event) error

// Notify dispatches to the underlying function.
func (fn HookFunc) Notify(ctx context.Context, event Event) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

// Hooks fans out events to zero or more hooks.
type Hooks []ActivityHook

// Enabled reports whether there are any hooks to notify.
func (h Hooks) Enabled() bool {
	return len(h) > 0
}

// Notify normalizes and validates the event, then forwards it to every hook
// and joins their errors. Incomplete events are dropped; events with a bad
// aspect are rejected before any hook sees them.
func (h Hooks) Notify(ctx context.Context, event Event) error {
	if len(h) == 0 {
		return nil
	}

	normalized, err := Accept(event)
	if err != nil {
		return err
	}
	if normalized == nil {
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var errs []error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, *normalized); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Accept normalizes event and validates it. It returns nil and no error for
// incomplete events, which hooks skip.
func Accept(event Event) (*Event, error) {
	normalized := NormalizeEvent(event)
	if err := normalized.Validate(); err != nil {
		if errors.Is(err, ErrIncompleteEvent) {
			return nil, nil
		}
		return nil, err
	}
	return &normalized, nil
}

// NormalizeEvent trims identifiers, clones metadata and stamps the event
// when OccurredAt is zero.
func NormalizeEvent(event Event) Event {
	normalized := event
	for _, field := range []*string{
		&normalized.Verb,
		&normalized.ActorID,
		&normalized.ObjectType,
		&normalized.ObjectID,
		&normalized.Channel,
		&normalized.Aspect,
	} {
		*field = strings.TrimSpace(*field)
	}
	normalized.Metadata = cloneMap(event.Metadata)
	if normalized.OccurredAt.IsZero() {
		normalized.OccurredAt = time.Now()
	}
	return normalized
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
