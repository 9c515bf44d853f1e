package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gosfc/internal/logging"
	"github.com/yaklabco/gosfc/pkg/loader"
)

// Runner loads discovered files with a bounded worker pool.
type Runner struct {
	// LoadOptions are passed to every loader.Load call.
	LoadOptions []loader.Option
}

// New creates a Runner that loads files with opts.
func New(opts ...loader.Option) *Runner {
	return &Runner{LoadOptions: opts}
}

// Run discovers files under opts.Paths and loads them concurrently.
// Outcomes are ordered by path regardless of completion order. A file that
// cannot be read is recorded in its outcome and does not stop the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logger.Debug("loading components",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, jobs,
	)

	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		group.Go(func() error {
			res, loadErr := loader.Load(logging.WithComponent(gctx, path), path, r.LoadOptions...)
			if loadErr != nil && isContextErr(loadErr) {
				return loadErr
			}
			outcomes[i] = FileOutcome{Path: path, Result: res, Error: loadErr}
			done[i] = true
			return nil
		})
	}

	waitErr := group.Wait()

	for i, outcome := range outcomes {
		if done[i] {
			result.accumulate(outcome)
		}
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
	)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	if waitErr != nil {
		return result, fmt.Errorf("run: %w", waitErr)
	}
	return result, nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
