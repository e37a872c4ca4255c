package activity

import (
	"strings"
	"time"
)

const (
	VerbHintSet      = "hint.set"
	VerbHintRemoved  = "hint.removed"
	VerbTableCleared = "table.cleared"

	ObjectTypeHint  = "skin.hint"
	ObjectTypeTable = "skin.table"
)

// HintEventInput describes the common fields of hint table events.
type HintEventInput struct {
	ActorID    string
	TableID    string
	Aspect     string
	Channel    string
	OldValue   any
	NewValue   any
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildHintSetEvent reports an inserted or changed hint.
func BuildHintSetEvent(input HintEventInput) Event {
	return buildHintEvent(VerbHintSet, ObjectTypeHint, input)
}

// BuildHintRemovedEvent reports a removed hint.
func BuildHintRemovedEvent(input HintEventInput) Event {
	return buildHintEvent(VerbHintRemoved, ObjectTypeHint, input)
}

// BuildTableClearedEvent reports a table dropping all of its hints.
func BuildTableClearedEvent(input HintEventInput) Event {
	return buildHintEvent(VerbTableCleared, ObjectTypeTable, input)
}

func buildHintEvent(verb, objectType string, input HintEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.OldValue != nil {
		metadata = ensureMetadata(metadata)
		metadata["old_value"] = input.OldValue
	}
	if input.NewValue != nil {
		metadata = ensureMetadata(metadata)
		metadata["new_value"] = input.NewValue
	}

	objectID := strings.TrimSpace(input.TableID)
	if objectID == "" {
		objectID = objectType
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		ObjectType: objectType,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Aspect:     strings.TrimSpace(input.Aspect),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
