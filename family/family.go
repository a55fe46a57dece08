// Package family compiles declarative action-family definitions into
// tact creators.
//
// A family names a set of actions, each bound to a shape and, for
// props-shaped actions, a typed field schema. Families can be written in
// CUE (see cue.go) or YAML (see yaml.go); both compile to the same
// FamilySpec, which validates against schema rules and builds the
// creator set for a reducer.
//
// Base-shaped actions are deliberately not expressible here: a base
// constructor is code, not data. Define those with tact.NewCreator
// directly.
package family

import (
	"fmt"

	"github.com/roach88/tact"
)

// ValidTypes defines the allowed type strings for props fields.
var ValidTypes = map[string]bool{
	"string": true,
	"int":    true,
	"float":  true,
	"bool":   true,
	"array":  true,
	"object": true,
}

// ValidShapes defines the shape kinds a declarative action may use.
// Base is excluded: it requires a caller-supplied function.
var ValidShapes = map[string]bool{
	string(tact.ShapeEmpty):   true,
	string(tact.ShapePayload): true,
	string(tact.ShapeProps):   true,
}

// FamilySpec is a compiled action-family definition.
type FamilySpec struct {
	Name    string      `json:"name" yaml:"name"`
	Actions []ActionDef `json:"actions" yaml:"actions"`
}

// ActionDef declares one action: its tag, shape, and (for props-shaped
// actions) the field schema.
type ActionDef struct {
	Name  string            `json:"name" yaml:"name"`
	Shape string            `json:"shape" yaml:"shape"`
	Props map[string]string `json:"props,omitempty" yaml:"props,omitempty"`
}

// Creators builds the creator set for the family, keyed by tag.
// The spec should be validated first; creator construction itself only
// fails on tags tact rejects (empty or blank).
func (s *FamilySpec) Creators() (map[string]*tact.Creator, error) {
	creators := make(map[string]*tact.Creator, len(s.Actions))

	for _, def := range s.Actions {
		shape := tact.Empty()
		switch tact.ShapeKind(def.Shape) {
		case tact.ShapePayload:
			shape = tact.Payload()
		case tact.ShapeProps:
			shape = tact.Props()
		case tact.ShapeEmpty, "":
			// Empty is the default.
		default:
			return nil, fmt.Errorf("action %q: shape %q has no creator form", def.Name, def.Shape)
		}

		c, err := tact.NewCreator(def.Name, shape)
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", def.Name, err)
		}
		creators[def.Name] = c
	}

	return creators, nil
}

// Tags returns the family's action tags in declaration order.
func (s *FamilySpec) Tags() []string {
	tags := make([]string, len(s.Actions))
	for i, def := range s.Actions {
		tags[i] = def.Name
	}
	return tags
}
