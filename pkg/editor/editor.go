// Package editor populates skin tables programmatically. Every setter
// accepts optional state combinations: without any the hint is stored under
// the aspect as given, otherwise one entry is stored per combination with
// the combination added to the aspect's states. Listing combinations
// explicitly avoids depending on the bit by bit state fallback of the
// resolver.
package editor

import (
	"errors"
	"fmt"
	"strings"

	skin "github.com/goliatone/go-skin"
	"github.com/goliatone/go-skin/pkg/tokens"
)

var (
	// ErrUnknownToken indicates a $name reference to a missing token.
	ErrUnknownToken = errors.New("editor: unknown token")
	// ErrTokenCycle indicates token references that never reach a value.
	ErrTokenCycle = errors.New("editor: token reference cycle")
)

const maxTokenDepth = 8

// Option configures an Editor.
type Option func(*Editor)

// WithTokens sets the design tokens used by expressions and $name colour
// references. The set is copied.
func WithTokens(set tokens.Set) Option {
	return func(e *Editor) {
		e.tokens = set.Clone()
	}
}

// WithEvaluator sets the engine for metric expressions. The default is the
// expr engine with DefaultFunctions.
func WithEvaluator(evaluator tokens.Evaluator) Option {
	return func(e *Editor) {
		if evaluator != nil {
			e.evaluator = evaluator
		}
	}
}

// WithEvaluatorLogger reports every metric expression evaluation.
func WithEvaluatorLogger(logger tokens.EvaluatorLogger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Editor writes hints into a table.
type Editor struct {
	table     *skin.Table
	tokens    tokens.Set
	evaluator tokens.Evaluator
	logger    tokens.EvaluatorLogger
}

// New returns an editor writing into table, or into a fresh table when
// table is nil.
func New(table *skin.Table, opts ...Option) *Editor {
	if table == nil {
		table = skin.NewTable()
	}
	e := &Editor{
		table:  table,
		tokens: tokens.Set{},
		logger: tokens.NoopEvaluatorLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.evaluator == nil {
		e.evaluator = tokens.NewExprEvaluator(tokens.ExprWithFunctionRegistry(tokens.DefaultFunctions()))
	}
	return e
}

// Table returns the table being edited.
func (e *Editor) Table() *skin.Table { return e.table }

// Tokens returns a copy of the configured tokens.
func (e *Editor) Tokens() tokens.Set { return e.tokens.Clone() }

// SetHint stores hint under aspect for every combination.
func (e *Editor) SetHint(aspect skin.Aspect, hint skin.Hint, combos ...skin.States) {
	for _, key := range expand(aspect, combos) {
		e.table.SetHint(key, hint)
	}
}

// RemoveHint removes the hint of every combination and reports whether
// anything was removed.
func (e *Editor) RemoveHint(aspect skin.Aspect, combos ...skin.States) bool {
	removed := false
	for _, key := range expand(aspect, combos) {
		if e.table.RemoveHint(key) {
			removed = true
		}
	}
	return removed
}

// SetMetric stores a number under the metric flavour of aspect.
func (e *Editor) SetMetric(aspect skin.Aspect, value float64, combos ...skin.States) {
	e.SetHint(aspect.WithType(skin.Metric), skin.NumberHint(value), combos...)
}

// SetMetricExpr evaluates expr against the tokens and stores the result as
// a metric.
func (e *Editor) SetMetricExpr(aspect skin.Aspect, expr string, combos ...skin.States) error {
	ctx := tokens.Context{Tokens: e.tokens, Scope: e.table.ID(), Target: aspect.String()}
	value, err := tokens.EvaluateNumber(e.evaluator, e.logger, ctx, expr)
	if err != nil {
		return fmt.Errorf("editor: metric: %w", err)
	}
	e.SetMetric(aspect, value, combos...)
	return nil
}

// SetColor stores a colour under the color flavour of aspect.
func (e *Editor) SetColor(aspect skin.Aspect, c skin.RGBA, combos ...skin.States) {
	e.SetHint(aspect.WithType(skin.Color), skin.ColorHint(c), combos...)
}

// SetColorString parses value as a hex colour, a colour name or a $name
// reference to a token holding either.
func (e *Editor) SetColorString(aspect skin.Aspect, value string, combos ...skin.States) error {
	c, err := e.ParseColor(value)
	if err != nil {
		return fmt.Errorf("editor: color %s: %w", aspect, err)
	}
	e.SetColor(aspect, c, combos...)
	return nil
}

// ParseColor resolves token references and parses the colour.
func (e *Editor) ParseColor(value string) (skin.RGBA, error) {
	seen := value
	for depth := 0; strings.HasPrefix(value, "$"); depth++ {
		if depth == maxTokenDepth {
			return skin.RGBA{}, fmt.Errorf("%w: %s", ErrTokenCycle, seen)
		}
		name := value[1:]
		next, ok := e.tokens.String(name)
		if !ok {
			return skin.RGBA{}, fmt.Errorf("%w: %s", ErrUnknownToken, name)
		}
		value = next
	}
	return skin.ParseColor(value)
}

// SetStrutSize stores the minimum size of aspect.
func (e *Editor) SetStrutSize(aspect skin.Aspect, width, height float64, combos ...skin.States) {
	e.SetHint(aspect.WithPrimitive(skin.Metric, skin.StrutSize), skin.ExtentHint(width, height), combos...)
}

// SetMargin stores the outer margins of aspect.
func (e *Editor) SetMargin(aspect skin.Aspect, margins skin.Margins, combos ...skin.States) {
	e.SetHint(aspect.WithPrimitive(skin.Metric, skin.Margin), skin.MarginsHint(margins), combos...)
}

// SetPadding stores the inner padding of aspect.
func (e *Editor) SetPadding(aspect skin.Aspect, padding skin.Margins, combos ...skin.States) {
	e.SetHint(aspect.WithPrimitive(skin.Metric, skin.Padding), skin.MarginsHint(padding), combos...)
}

// SetSpacing stores the spacing between children of aspect.
func (e *Editor) SetSpacing(aspect skin.Aspect, spacing float64, combos ...skin.States) {
	e.SetHint(aspect.WithPrimitive(skin.Metric, skin.Spacing), skin.NumberHint(spacing), combos...)
}

// SetAnimation stores an animation hint under the animator flavour of
// aspect.
func (e *Editor) SetAnimation(aspect skin.Aspect, hint skin.AnimationHint, combos ...skin.States) {
	for _, key := range expand(aspect, combos) {
		e.table.SetAnimation(key, hint)
	}
}

func expand(aspect skin.Aspect, combos []skin.States) []skin.Aspect {
	if len(combos) == 0 {
		return []skin.Aspect{aspect}
	}
	keys := make([]skin.Aspect, 0, len(combos))
	for _, states := range combos {
		keys = append(keys, aspect.AddStates(states))
	}
	return keys
}
