package family

import (
	"fmt"
	"strings"
)

// Validation error codes (E101-E199)
const (
	// FamilySpec errors (E101-E109)
	ErrFamilyNameEmpty = "E101" // family name is required
	ErrFamilyNoActions = "E102" // at least one action required
	ErrActionNameEmpty = "E103" // action name must be non-empty
	ErrDuplicateAction = "E104" // duplicate action name
	ErrInvalidShape    = "E105" // shape must be empty|payload|props
	ErrInvalidPropType = "E106" // invalid props field type
	ErrPropsOnBadShape = "E107" // props schema on a non-props action
	ErrReservedPropKey = "E108" // "tag" is not a legal props field
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a FamilySpec against schema rules.
// Returns all errors found (does not fail-fast) so authors can fix a
// definition file in one pass.
func Validate(spec *FamilySpec) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(spec.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "family name is required",
			Code:    ErrFamilyNameEmpty,
		})
	}

	if len(spec.Actions) == 0 {
		errs = append(errs, ValidationError{
			Field:   "actions",
			Message: "at least one action is required",
			Code:    ErrFamilyNoActions,
		})
	}

	seen := make(map[string]bool)
	for i, def := range spec.Actions {
		field := fmt.Sprintf("actions[%d]", i)

		if strings.TrimSpace(def.Name) == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: "action name must be a non-empty string",
				Code:    ErrActionNameEmpty,
			})
		}
		if seen[def.Name] {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: fmt.Sprintf("duplicate action name: %q", def.Name),
				Code:    ErrDuplicateAction,
			})
		}
		seen[def.Name] = true

		shape := def.Shape
		if shape == "" {
			shape = "empty"
		}
		if !ValidShapes[shape] {
			errs = append(errs, ValidationError{
				Field:   field + ".shape",
				Message: fmt.Sprintf("invalid shape %q, must be one of: empty, payload, props", def.Shape),
				Code:    ErrInvalidShape,
			})
		}

		if len(def.Props) > 0 && shape != "props" {
			errs = append(errs, ValidationError{
				Field:   field + ".props",
				Message: fmt.Sprintf("props schema is only allowed on props-shaped actions, not %q", shape),
				Code:    ErrPropsOnBadShape,
			})
		}

		for propName, propType := range def.Props {
			if propName == "tag" {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.props.%s", field, propName),
					Message: `"tag" is reserved for the action's own tag and can never be a props field`,
					Code:    ErrReservedPropKey,
				})
				continue
			}
			if !ValidTypes[propType] {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.props.%s", field, propName),
					Message: fmt.Sprintf("invalid type %q, must be one of: string, int, float, bool, array, object", propType),
					Code:    ErrInvalidPropType,
				})
			}
		}
	}

	return errs
}
