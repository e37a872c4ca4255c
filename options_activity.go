package skin

import (
	"context"

	"github.com/goliatone/go-skin/pkg/activity"
)

// WithActivityHooks attaches hooks notified after every successful table
// mutation. Hooks are cloned and nil entries dropped.
func WithActivityHooks(hooks activity.Hooks) TableOption {
	normalized := activity.CloneHooks(hooks)
	return func(cfg *tableConfig) {
		cfg.hooks = normalized
	}
}

// WithActivityChannel overrides the channel stamped on emitted events.
func WithActivityChannel(channel string) TableOption {
	return func(cfg *tableConfig) {
		cfg.channel = channel
	}
}

// ActivityHooks returns a copy of the hooks configured on the table.
func (t *Table) ActivityHooks() activity.Hooks {
	if t == nil {
		return nil
	}
	return activity.CloneHooks(t.cfg.hooks)
}

func newEmitter(cfg tableConfig) *activity.Emitter {
	if len(cfg.hooks) == 0 {
		return nil
	}
	return activity.NewEmitter(cfg.hooks, activity.Config{Enabled: true, Channel: cfg.channel})
}

// publish fans an event out to the hooks. Callers check the emitter first
// so tables without hooks never build events. Failures are logged and never
// affect the mutation that triggered them.
func (t *Table) publish(aspect Aspect, event activity.Event) {
	if err := t.emitter.Emit(context.Background(), event); err != nil {
		t.cfg.logger.LogHint(HintEvent{
			Op:      OpPublish,
			TableID: t.cfg.id,
			Aspect:  aspect,
			Err:     err,
		})
	}
}

func (t *Table) hintEventInput(aspect Aspect, oldValue, newValue Hint) activity.HintEventInput {
	input := activity.HintEventInput{
		ActorID: t.cfg.actorID,
		TableID: t.cfg.id,
		Aspect:  activity.FormatAspect(uint64(aspect)),
		Metadata: map[string]any{
			"aspect_label": aspect.String(),
		},
	}
	if oldValue.IsValid() {
		input.OldValue = oldValue.String()
	}
	if newValue.IsValid() {
		input.NewValue = newValue.String()
		input.Metadata["kind"] = newValue.Kind().String()
	}
	return input
}
