package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/pgqlcheck/internal/report"
	"github.com/roach88/pgqlcheck/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	Database string
	Limit    int
	ByKind   bool
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "List recorded check runs",
		Long: `List check runs recorded with check --db, most recent first.

With a run ID, show the per-query results of that run. With --by-kind,
count recorded diagnostics per kind across all runs.

Example:
  pgqlcheck runs --db runs.db
  pgqlcheck runs --db runs.db --by-kind
  pgqlcheck runs --db runs.db 0192f3c4-...`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database written by check --db")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "maximum runs to list (0 = all)")
	cmd.Flags().BoolVar(&opts.ByKind, "by-kind", false, "count diagnostics per kind across all runs")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runRuns(opts *RunsOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	if opts.ByKind && len(args) > 0 {
		_ = formatter.Error(ErrCodeGeneric, "--by-kind does not take a run ID", nil)
		return NewExitError(ExitCommandError, "--by-kind does not take a run ID")
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()

	if opts.ByKind {
		counts, err := st.CountByKind(ctx)
		if err != nil {
			_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to count diagnostics", err)
		}
		return formatter.Success(kindCounts(counts))
	}

	if len(args) == 0 {
		runs, err := st.Runs(ctx, opts.Limit)
		if err != nil {
			_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
		return formatter.Success(runList(runs))
	}

	run, err := st.GetRun(ctx, args[0])
	if err == nil {
		var results []report.Query
		results, err = st.Results(ctx, run.ID)
		if err == nil {
			return formatter.Success(runDetail{Run: run, Queries: results})
		}
	}
	if errors.Is(err, store.ErrRunNotFound) {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("run %q not found", args[0]), nil)
		return WrapExitError(ExitCommandError, "run not found", err)
	}
	_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
	return WrapExitError(ExitCommandError, "failed to read run", err)
}

type runList []store.Run

func (l runList) WriteText(w io.Writer) error {
	if len(l) == 0 {
		_, err := fmt.Fprintln(w, "no runs recorded")
		return err
	}
	for _, r := range l {
		if err := writeRunLine(w, r); err != nil {
			return err
		}
	}
	return nil
}

func writeRunLine(w io.Writer, r store.Run) error {
	_, err := fmt.Fprintf(w, "#%d %s %s [%s] %d queries, %d failed, %d errors, %d diagnostics\n",
		r.Seq, r.ID, r.StartedAt.Format(time.RFC3339), r.Version, r.Queries, r.Failed, r.Errors, r.Diagnostics)
	return err
}

type runDetail struct {
	Run     store.Run      `json:"run"`
	Queries []report.Query `json:"queries"`
}

func (d runDetail) WriteText(w io.Writer) error {
	if err := writeRunLine(w, d.Run); err != nil {
		return err
	}
	return report.WriteText(w, &report.Report{
		Queries: d.Queries,
		Summary: report.Summary{
			Queries:     d.Run.Queries,
			Failed:      d.Run.Failed,
			Errors:      d.Run.Errors,
			Diagnostics: d.Run.Diagnostics,
		},
	})
}

type kindCounts map[string]int

func (k kindCounts) WriteText(w io.Writer) error {
	if len(k) == 0 {
		_, err := fmt.Fprintln(w, "no diagnostics recorded")
		return err
	}
	kinds := make([]string, 0, len(k))
	for kind := range k {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		if _, err := fmt.Fprintf(w, "%s %d\n", kind, k[kind]); err != nil {
			return err
		}
	}
	return nil
}
