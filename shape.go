package tact

// ShapeKind discriminates the payload-shaping strategies a creator can be
// bound to. The shape is chosen once, at creator-definition time, never
// per action.
type ShapeKind string

const (
	// ShapeEmpty produces actions with no extra fields.
	ShapeEmpty ShapeKind = "empty"

	// ShapePayload produces actions with a single "payload" field holding
	// an arbitrary caller value.
	ShapePayload ShapeKind = "payload"

	// ShapeProps merges a flat field mapping alongside the tag.
	ShapeProps ShapeKind = "props"

	// ShapeBase delegates field construction to a caller-supplied base
	// function; its result is merged under the creator's tag.
	ShapeBase ShapeKind = "base"
)

// BaseFunc builds the extra fields for a base-shaped creator from the
// construction arguments. The returned map is merged into the action;
// the creator's tag always wins over any "tag" key the map carries.
type BaseFunc func(args ...any) map[string]any

// Shape is the explicit configuration value selecting a shaping strategy.
// Construct one with Empty, Payload, Props, or Base.
type Shape struct {
	kind ShapeKind
	base BaseFunc
}

// Kind reports the shape's strategy discriminant.
func (s Shape) Kind() ShapeKind { return s.kind }

// Empty returns the shape for actions with no extra fields.
// Creators default to it when no shape is supplied.
func Empty() Shape { return Shape{kind: ShapeEmpty} }

// Payload returns the shape that stores the single construction argument
// under the "payload" field.
func Payload() Shape { return Shape{kind: ShapePayload} }

// Props returns the shape that flattens a field mapping alongside the tag.
func Props() Shape { return Shape{kind: ShapeProps} }

// Base returns the shape that delegates field construction to fn.
// A nil fn is rejected by NewCreator.
func Base(fn BaseFunc) Shape { return Shape{kind: ShapeBase, base: fn} }
