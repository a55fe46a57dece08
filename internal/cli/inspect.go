package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/tact/family"
	"github.com/roach88/tact/internal/canon"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	var familyName string

	cmd := &cobra.Command{
		Use:   "inspect <families-dir | family.yaml>",
		Short: "Show compiled action-family definitions",
		Long: `Show the compiled form of action-family definitions.

JSON output is canonical: byte-identical for equal definitions, so it
can be diffed or checked into golden files.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, args[0], familyName, cmd)
		},
	}

	cmd.Flags().StringVar(&familyName, "family", "", "show only the named family")

	return cmd
}

func runInspect(opts *RootOptions, path, familyName string, cmd *cobra.Command) error {
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

	if familyName != "" {
		specs = filterFamilies(specs, familyName)
		if len(specs) == 0 {
			_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("family %q not found in %s", familyName, path), nil)
			return NewExitError(ExitCommandError, fmt.Sprintf("family %q not found", familyName))
		}
	}

	if formatter.Format == "json" {
		return outputInspectCanonical(formatter, specs)
	}
	return outputInspectText(formatter, specs)
}

func filterFamilies(specs []*family.FamilySpec, name string) []*family.FamilySpec {
	var out []*family.FamilySpec
	for _, s := range specs {
		if s.Name == name {
			out = append(out, s)
		}
	}
	return out
}

func outputInspectCanonical(formatter *OutputFormatter, specs []*family.FamilySpec) error {
	list := make([]any, len(specs))
	for i, s := range specs {
		list[i] = s
	}

	data, err := canon.Marshal(map[string]any{"families": list})
	if err != nil {
		return WrapExitError(ExitCommandError, "serialize families", err)
	}

	fmt.Fprintf(formatter.Writer, "%s\n", data)
	return nil
}

func outputInspectText(formatter *OutputFormatter, specs []*family.FamilySpec) error {
	for i, s := range specs {
		if i > 0 {
			fmt.Fprintln(formatter.Writer)
		}
		fmt.Fprintf(formatter.Writer, "family %s (%d action(s))\n", s.Name, len(s.Actions))

		for _, def := range s.Actions {
			shape := def.Shape
			if shape == "" {
				shape = "empty"
			}
			fmt.Fprintf(formatter.Writer, "  %-30s %s\n", def.Name, shape)

			props := make([]string, 0, len(def.Props))
			for name := range def.Props {
				props = append(props, name)
			}
			sort.Strings(props)
			for _, name := range props {
				fmt.Fprintf(formatter.Writer, "    %-28s %s\n", name, def.Props[name])
			}
		}
	}
	return nil
}
