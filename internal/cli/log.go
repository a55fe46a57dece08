package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tact/internal/canon"
	"github.com/roach88/tact/journal"
)

// entryView is the CLI-facing shape of a journal entry.
type entryView struct {
	ID     string         `json:"id"`
	Seq    int64          `json:"seq"`
	Tag    string         `json:"tag"`
	Fields map[string]any `json:"fields,omitempty"`
}

// LogResult holds the entries read from a journal.
type LogResult struct {
	Entries []entryView `json:"entries"`
	Count   int         `json:"count"`
}

// NewLogCommand creates the log command.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	var since int64

	cmd := &cobra.Command{
		Use:   "log <journal-db>",
		Short: "Print journal entries in seq order",
		Long: `Print the entries of an action journal in ascending seq order.

With --since, only entries with seq strictly greater than the given
value are printed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(rootOpts, args[0], since, cmd)
		},
	}

	cmd.Flags().Int64Var(&since, "since", 0, "only entries with seq > this value")

	return cmd
}

func runLog(opts *RootOptions, dbPath string, since int64, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	j, err := openJournal(formatter, dbPath)
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.ReadSince(cmd.Context(), since)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "read journal", err)
	}

	formatter.VerboseLog("Read %d entry(ies) from %s", len(entries), dbPath)

	if formatter.Format == "json" {
		views := make([]entryView, len(entries))
		for i, e := range entries {
			views[i] = entryView(e)
		}
		return formatter.Success(LogResult{Entries: views, Count: len(views)})
	}

	for _, e := range entries {
		fields, err := canon.Marshal(e.Fields)
		if err != nil {
			return WrapExitError(ExitCommandError, "serialize entry fields", err)
		}
		fmt.Fprintf(formatter.Writer, "%6d  %-30s %s\n", e.Seq, e.Tag, fields)
	}
	fmt.Fprintf(formatter.Writer, "%d entry(ies)\n", len(entries))
	return nil
}

// openJournal opens a journal database that must already exist; log and
// replay never create one as a side effect.
func openJournal(formatter *OutputFormatter, dbPath string) (*journal.Journal, error) {
	j, err := journal.OpenExisting(dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "open journal", err)
	}
	return j, nil
}
