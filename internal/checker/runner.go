package checker

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/pgqlcheck/internal/ast"
	"github.com/roach88/pgqlcheck/internal/symbols"
	"github.com/roach88/pgqlcheck/internal/version"
)

// Job is one query to check in a batch.
type Job struct {
	Name   string
	Source string // where the query came from, e.g. a fixture file
	Query  *ast.Query
	Env    symbols.Environment
	Policy version.Policy
}

// Outcome is the result of one Job. Err is set when the job's environment
// did not cover a variable of its query; Result is nil in that case.
type Outcome struct {
	Job    Job
	Result *Result
	Err    error
}

// Runner checks independent queries in parallel. Every job gets its own
// collector; environments are read-only and may be shared between jobs.
type Runner struct {
	// Jobs bounds the number of concurrent analyses. Zero means GOMAXPROCS.
	Jobs int

	Logger *zap.Logger
}

// NewRunner returns a Runner running at most jobs analyses at once.
func NewRunner(jobs int) *Runner {
	return &Runner{
		Jobs:   jobs,
		Logger: zap.NewNop(),
	}
}

// WithLogger sets the logger for the runner.
func (r *Runner) WithLogger(log *zap.Logger) {
	r.Logger = log.With(zap.String("component", "checker"))
}

// Run checks every job and returns the outcomes in input order. A failing
// job does not stop the others; the returned error is only set when ctx is
// cancelled before all jobs ran.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Outcome, error) {
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}
	limit := r.Jobs
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]Outcome, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range jobs {
		i := i
		job := jobs[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			log.Debug("Checking query", zap.String("job", job.Name), zap.Stringer("version", job.Policy.Version))

			res, err := Check(job.Query, job.Env, job.Policy)
			outcomes[i] = Outcome{Job: job, Result: res, Err: err}

			if err != nil {
				log.Warn("Check failed", zap.String("job", job.Name), zap.Error(err))
				return nil
			}
			log.Info("Checked query",
				zap.String("job", job.Name),
				zap.Int("diagnostics", len(res.Diagnostics)),
				zap.Duration("elapsed", time.Since(start)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}
