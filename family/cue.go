package family

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CompileFamily parses a CUE value into a FamilySpec.
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
//
// The CUE value should be the family struct itself:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`family: { name: "cart", ... }`)
//	spec, err := family.CompileFamily(v.LookupPath(cue.ParsePath("family")))
func CompileFamily(v cue.Value) (*FamilySpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &FamilySpec{}

	// Family name: explicit name field wins, otherwise the struct label
	// (the path selector), matching `families: cart: {...}` definitions.
	nameVal := v.LookupPath(cue.ParsePath("name"))
	if nameVal.Exists() {
		name, err := nameVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		spec.Name = name
	} else if labels := v.Path().Selectors(); len(labels) > 0 {
		spec.Name = labels[len(labels)-1].String()
	}

	var err error
	spec.Actions, err = parseActionDefs(v)
	if err != nil {
		return nil, err
	}
	if len(spec.Actions) == 0 {
		return nil, &CompileError{
			Field:   "actions",
			Message: "at least one action is required",
			Pos:     v.Pos(),
		}
	}

	return spec, nil
}

// CompileDir loads all .cue files under dir, unifies them, and compiles
// every top-level entry of the "families" struct, keyed by label.
// Families come back sorted by name for deterministic output.
func CompileDir(dir string) ([]*FamilySpec, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("definitions directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("definitions path %s is not a directory", dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.cue"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .cue files found in %s", dir)
	}
	sort.Strings(paths)

	cctx := cuecontext.New()
	value := cctx.CompileString("{}")
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		v := cctx.CompileBytes(src, cue.Filename(path))
		if err := v.Err(); err != nil {
			return nil, formatCUEError(err)
		}
		value = value.Unify(v)
	}
	if err := value.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	famRoot := value.LookupPath(cue.ParsePath("families"))
	if !famRoot.Exists() {
		return nil, &CompileError{
			Field:   "families",
			Message: "no families struct found in definitions",
			Pos:     value.Pos(),
		}
	}

	iter, err := famRoot.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var specs []*FamilySpec
	for iter.Next() {
		spec, err := CompileFamily(iter.Value())
		if err != nil {
			return nil, err
		}
		if spec.Name == "" {
			spec.Name = iter.Label()
		}
		specs = append(specs, spec)
	}

	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs, nil
}

// parseActionDefs extracts the action list from a family value.
func parseActionDefs(v cue.Value) ([]ActionDef, error) {
	actionsVal := v.LookupPath(cue.ParsePath("actions"))
	if !actionsVal.Exists() {
		return nil, nil
	}

	iter, err := actionsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var defs []ActionDef
	for iter.Next() {
		def, err := parseActionDef(iter.Value())
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// parseActionDef parses a single action entry: name, shape, and the
// optional props schema.
func parseActionDef(v cue.Value) (ActionDef, error) {
	var def ActionDef

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return def, &CompileError{
			Field:   "actions.name",
			Message: "action name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return def, formatCUEError(err)
	}
	def.Name = name

	shapeVal := v.LookupPath(cue.ParsePath("shape"))
	if shapeVal.Exists() {
		shape, err := shapeVal.String()
		if err != nil {
			return def, formatCUEError(err)
		}
		def.Shape = shape
	} else {
		def.Shape = "empty"
	}

	propsVal := v.LookupPath(cue.ParsePath("props"))
	if propsVal.Exists() {
		def.Props = make(map[string]string)
		propsIter, err := propsVal.Fields()
		if err != nil {
			return def, formatCUEError(err)
		}
		for propsIter.Next() {
			propType, err := extractTypeName(propsIter.Value())
			if err != nil {
				return def, err
			}
			def.Props[propsIter.Label()] = propType
		}
	}

	return def, nil
}

// extractTypeName converts a CUE type constraint to a props type string.
func extractTypeName(v cue.Value) (string, error) {
	// Literal type names are allowed too: qty: "int"
	if s, err := v.String(); err == nil {
		if ValidTypes[s] {
			return s, nil
		}
		return "", &CompileError{
			Field:   "type",
			Message: fmt.Sprintf("invalid type name %q, must be one of: string, int, float, bool, array, object", s),
			Pos:     v.Pos(),
		}
	}

	switch v.IncompleteKind() {
	case cue.StringKind:
		return "string", nil
	case cue.IntKind:
		return "int", nil
	case cue.FloatKind, cue.NumberKind:
		return "float", nil
	case cue.BoolKind:
		return "bool", nil
	case cue.ListKind:
		return "array", nil
	case cue.StructKind:
		return "object", nil
	default:
		return "", &CompileError{
			Field:   "type",
			Message: fmt.Sprintf("unsupported type kind: %v", v.IncompleteKind()),
			Pos:     v.Pos(),
		}
	}
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := cueerrors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: strings.TrimSpace(firstErr.Error()),
			Pos:     positions[0],
		}
	}

	return err
}
