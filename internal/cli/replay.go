package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// ReplayResult holds the outcome of replaying a journal.
type ReplayResult struct {
	Entries   int              `json:"entries"`
	LastSeq   int64            `json:"last_seq"`
	Tags      map[string]int64 `json:"tags,omitempty"`
	Anomalies []string         `json:"anomalies,omitempty"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <journal-db>",
		Short: "Replay a journal and report dispatch statistics",
		Long: `Replay every entry of an action journal in seq order.

Reports entry and per-tag counts, and verifies the replay invariant:
seq values must be strictly ascending with no duplicates. A journal
that violates the invariant fails with exit code 1.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runReplay(opts *RootOptions, dbPath string, cmd *cobra.Command) error {
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

	entries, err := j.ReadAll(cmd.Context())
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "read journal", err)
	}

	result := ReplayResult{
		Entries: len(entries),
		Tags:    make(map[string]int64, 8),
	}

	var prevSeq int64
	for i, e := range entries {
		result.Tags[e.Tag]++
		result.LastSeq = e.Seq

		if i > 0 && e.Seq <= prevSeq {
			result.Anomalies = append(result.Anomalies,
				fmt.Sprintf("entry %s: seq %d does not advance past %d", e.ID, e.Seq, prevSeq))
		}
		prevSeq = e.Seq
	}

	formatter.VerboseLog("Replayed %d entry(ies), last seq %d", result.Entries, result.LastSeq)

	if len(result.Anomalies) > 0 {
		return outputReplayFailure(formatter, result)
	}
	return outputReplaySuccess(formatter, result)
}

func outputReplaySuccess(formatter *OutputFormatter, result ReplayResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Replayed %d entry(ies), last seq %d\n", result.Entries, result.LastSeq)
	for _, tag := range sortedTags(result.Tags) {
		fmt.Fprintf(formatter.Writer, "  %-30s %d\n", tag, result.Tags[tag])
	}
	return nil
}

func outputReplayFailure(formatter *OutputFormatter, result ReplayResult) error {
	if formatter.Format == "json" {
		_ = formatter.Error(ErrCodeGeneric, "replay invariant violated", result)
		return NewExitError(ExitFailure, fmt.Sprintf("replay failed with %d anomaly(ies)", len(result.Anomalies)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Replay invariant violated")
	for _, a := range result.Anomalies {
		fmt.Fprintf(formatter.Writer, "  %s\n", a)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("replay failed with %d anomaly(ies)", len(result.Anomalies)))
}

func sortedTags(tags map[string]int64) []string {
	out := make([]string, 0, len(tags))
	for tag := range tags {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
