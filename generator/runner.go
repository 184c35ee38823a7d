package generator

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oasmodels/config"
)

// JobResult is the outcome of one job run by RunJobs.
type JobResult struct {
	Job    *config.Job
	Result *Result
	// Err is the fatal error that aborted the job, if any
	Err error
}

// RunJobs runs independent jobs concurrently, at most g.Workers at a time.
// A failing job records its error in its own JobResult and does not stop
// the others. Results are returned in job order.
func (g *Generator) RunJobs(ctx context.Context, jobs []*config.Job) []JobResult {
	results := make([]JobResult, len(jobs))

	workers := g.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var eg errgroup.Group
	eg.SetLimit(workers)
	for i, job := range jobs {
		eg.Go(func() error {
			results[i].Job = job
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Result, results[i].Err = g.GenerateJob(ctx, job)
			return nil
		})
	}
	_ = eg.Wait()
	return results
}

// Failed returns the results of the jobs that failed.
func Failed(results []JobResult) []JobResult {
	var out []JobResult
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
