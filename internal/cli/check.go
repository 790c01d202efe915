package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/roach88/pgqlcheck/internal/checker"
	"github.com/roach88/pgqlcheck/internal/fixture"
	"github.com/roach88/pgqlcheck/internal/report"
	"github.com/roach88/pgqlcheck/internal/store"
	"github.com/roach88/pgqlcheck/internal/version"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	LangVersion string
	Database    string
	Jobs        int
	FailFast    bool
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Type-check fixture queries",
		Long: `Type-check every query in the given fixture files or directories.

A document's own version field takes precedence over --lang-version.
With --db the run and its diagnostics are recorded in a SQLite database.

Example:
  pgqlcheck check ./queries
  pgqlcheck check --lang-version v1.0 --db runs.db q1.yaml q2.cue`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.LangVersion, "lang-version", version.Current.String(), "default PGQL language version")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 0, "queries checked in parallel (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", false, "stop at the first fixture that fails to load")

	return cmd
}

func runCheck(opts *CheckOptions, paths []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	log := newLogger(opts.Verbose, cmd.ErrOrStderr())
	defer log.Sync()

	policy, err := version.ForTag(opts.LangVersion)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidVersion, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid language version", err)
	}

	mode := fixture.CollectAll
	if opts.FailFast {
		mode = fixture.FailFast
	}
	fixtures, err := fixture.Load(paths, mode)
	if err != nil {
		return loadFailure(formatter, err)
	}
	formatter.VerboseLog("Loaded %d quer(ies) from %d path(s)", len(fixtures), len(paths))

	jobs := make([]checker.Job, 0, len(fixtures))
	for _, f := range fixtures {
		p, err := f.Policy(policy)
		if err != nil {
			// Decode already rejected unknown document versions.
			return WrapExitError(ExitCommandError, "invalid fixture version", err)
		}
		jobs = append(jobs, checker.Job{Name: f.Name, Source: f.File, Query: f.Query, Env: f.Env, Policy: p})
	}

	runner := checker.NewRunner(opts.Jobs)
	runner.WithLogger(log)
	outcomes, err := runner.Run(cmd.Context(), jobs)
	if err != nil {
		return WrapExitError(ExitCommandError, "check interrupted", err)
	}

	r := report.New(outcomes)

	if opts.Database != "" {
		if err := recordRun(cmd, opts.Database, r, policy, log); err != nil {
			_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
	}

	if err := formatter.Success(textReport{r}); err != nil {
		return err
	}
	if r.HasFindings() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d queries have findings", r.Summary.Failed+r.Summary.Errors, r.Summary.Queries))
	}
	return nil
}

// textReport renders as text in text mode and as the report in JSON mode.
type textReport struct {
	*report.Report
}

func (t textReport) WriteText(w io.Writer) error { return report.WriteText(w, t.Report) }

func (t textReport) MarshalJSON() ([]byte, error) { return json.Marshal(t.Report) }

func recordRun(cmd *cobra.Command, path string, r *report.Report, policy version.Policy, log *zap.Logger) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.RecordRun(cmd.Context(), r, policy.Version.String())
	if err != nil {
		return err
	}
	log.Info("Recorded run", zap.String("run_id", run.ID), zap.Int64("seq", run.Seq), zap.String("db", path))
	return nil
}

func loadFailure(formatter *OutputFormatter, err error) error {
	var details []string
	for _, e := range multierr.Errors(err) {
		details = append(details, e.Error())
	}

	code := ErrCodeGeneric
	var le *fixture.LoadError
	if errors.As(err, &le) {
		code = le.Code
	}
	_ = formatter.Error(code, "failed to load fixtures", details)
	return WrapExitError(ExitCommandError, "failed to load fixtures", err)
}
