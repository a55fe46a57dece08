package tact

import (
	"log/slog"
	"strings"
)

// Creator builds Actions for one tag under one shaping strategy.
//
// A creator is defined once (typically at package init) and reused for the
// process lifetime; it is stateless beyond its closed-over tag and shape
// and safe for concurrent use. Tag uniqueness across a reducer's clauses
// is the caller's responsibility; there is no global registry.
type Creator struct {
	tag   string
	shape Shape
}

// NewCreator defines a creator bound to tag under the given shape.
// At most one shape may be supplied; omitting it behaves as Empty().
//
// Fails fast with a ConfigError when tag is empty or blank, or when a
// Base shape carries no base function.
func NewCreator(tag string, shape ...Shape) (*Creator, error) {
	if strings.TrimSpace(tag) == "" {
		return nil, newConfigError(ErrCodeEmptyTag, "tag", "tag must be a non-empty string")
	}

	s := Empty()
	if len(shape) > 0 {
		s = shape[0]
	}
	if s.kind == ShapeBase && s.base == nil {
		return nil, newConfigError(ErrCodeNilBase, "shape", "base shape requires a base function")
	}

	return &Creator{tag: tag, shape: s}, nil
}

// MustCreator is like NewCreator but panics on configuration errors.
// Intended for package-level creator declarations.
func MustCreator(tag string, shape ...Shape) *Creator {
	c, err := NewCreator(tag, shape...)
	if err != nil {
		panic(err)
	}
	return c
}

// Tag returns the creator's bound tag, so calling code can compare an
// action's tag against it without constructing an action.
func (c *Creator) Tag() string { return c.tag }

// Shape returns the creator's bound shape.
func (c *Creator) Shape() Shape { return c.shape }

// New constructs an Action from args according to the creator's shape:
//
//   - Empty: args are ignored.
//   - Payload: the single argument is stored under "payload"; an absent
//     argument is treated as nil.
//   - Props: the single argument must be a map[string]any, merged at the
//     top level alongside the tag.
//   - Base: args are forwarded to the base function and its result merged.
//
// The bound tag can never be overridden: a "tag" key supplied via Props or
// produced by a Base function is dropped (with a debug diagnostic, since
// it usually indicates a caller mistake rather than intent).
//
// Each call allocates a fresh Fields map; mutating one action's fields
// never affects another.
func (c *Creator) New(args ...any) Action {
	act := Action{Tag: c.tag}

	switch c.shape.kind {
	case ShapePayload:
		var payload any
		if len(args) > 0 {
			payload = args[0]
		}
		act.Fields = map[string]any{PayloadField: payload}

	case ShapeProps:
		var props map[string]any
		if len(args) > 0 {
			props, _ = args[0].(map[string]any)
		}
		act.Fields = c.mergeFields(props)

	case ShapeBase:
		act.Fields = c.mergeFields(c.shape.base(args...))

	default:
		// Empty shape: no extra fields, any arguments ignored.
	}

	return act
}

// mergeFields copies src into a fresh map, dropping any "tag" key so the
// bound tag always wins.
func (c *Creator) mergeFields(src map[string]any) map[string]any {
	fields := make(map[string]any, len(src))
	for k, v := range src {
		if k == "tag" {
			slog.Debug("tact: dropping field that would shadow the bound tag",
				"tag", c.tag, "shadowed", v)
			continue
		}
		fields[k] = v
	}
	return fields
}
