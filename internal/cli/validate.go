package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tact/family"
)

// ErrCodeGeneric is the code for load and compile errors that carry no
// schema code of their own.
const ErrCodeGeneric = "E100"

// ValidationResult holds validation results for one or more families.
type ValidationResult struct {
	Valid    bool                     `json:"valid"`
	Families []string                 `json:"families,omitempty"`
	Errors   []family.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <families-dir | family.yaml>",
		Short: "Validate action-family definitions",
		Long: `Validate action-family definitions against schema rules.

Accepts a directory of CUE definitions or a single YAML family file.
All schema violations are reported in one pass.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	specs, err := loadFamilies(path)
	if err != nil {
		return outputLoadError(formatter, err)
	}

	formatter.VerboseLog("Compiled %d family definition(s) from %s", len(specs), path)

	var names []string
	var allErrors []family.ValidationError
	for _, spec := range specs {
		formatter.VerboseLog("Validating family: %s", spec.Name)
		names = append(names, spec.Name)
		allErrors = append(allErrors, family.Validate(spec)...)
	}

	if len(allErrors) > 0 {
		return outputValidationErrors(formatter, names, allErrors)
	}
	return outputValidateSuccess(formatter, names)
}

// loadFamilies compiles family definitions from a CUE directory or a
// single YAML file.
func loadFamilies(path string) ([]*family.FamilySpec, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("cannot read %s: %v", path, err))
	}

	if info.IsDir() {
		return family.CompileDir(path)
	}

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		spec, err := family.LoadFamilyFile(path)
		if err != nil {
			return nil, err
		}
		return []*family.FamilySpec{spec}, nil
	}

	return nil, NewExitError(ExitCommandError,
		fmt.Sprintf("%s is neither a directory nor a YAML family file", path))
}

// outputLoadError reports a load or compile failure. Missing paths are
// command errors (exit 2); definitions that fail to compile are
// validation failures (exit 1).
func outputLoadError(formatter *OutputFormatter, err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		_ = formatter.Error(ErrCodeGeneric, exitErr.Message, nil)
		return exitErr
	}

	var compileErr *family.CompileError
	if errors.As(err, &compileErr) {
		_ = formatter.Error(ErrCodeGeneric, compileErr.Error(), compileErr.Field)
	} else {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
	}
	return NewExitError(ExitFailure, err.Error())
}

func outputValidateSuccess(formatter *OutputFormatter, names []string) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Families: names})
	}

	fmt.Fprintf(formatter.Writer, "✓ %d family definition(s) valid\n", len(names))
	return nil
}

func outputValidationErrors(formatter *OutputFormatter, names []string, errs []family.ValidationError) error {
	if formatter.Format == "json" {
		response := Response{
			Status: "error",
			Data: ValidationResult{
				Valid:    false,
				Families: names,
				Errors:   errs,
			},
			Error: &ResponseError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, e := range errs {
		fmt.Fprintf(formatter.Writer, "  %s %s: %s\n", e.Code, e.Field, e.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
