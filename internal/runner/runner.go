package runner

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ytget/yt-batch/internal/download"
	"github.com/ytget/yt-batch/internal/model"
	"github.com/ytget/yt-batch/internal/report"
	"github.com/ytget/yt-batch/internal/retry"
)

// Runner coordinates the worker pool for one batch run
type Runner struct {
	invoker  download.Invoker
	policy   *retry.Policy
	reporter *report.Reporter
	limit    int
}

// New creates a runner with the given concurrency limit
func New(inv download.Invoker, policy *retry.Policy, rep *report.Reporter, limit int) *Runner {
	if limit < 1 {
		limit = 1
	}
	return &Runner{
		invoker:  inv,
		policy:   policy,
		reporter: rep,
		limit:    limit,
	}
}

// Run processes all requests and returns their results in input order. Every
// request yields exactly one terminal result: requests scheduled after
// cancellation come back skipped, and the reporter sees each result once.
func (r *Runner) Run(ctx context.Context, reqs []model.DownloadRequest) []model.DownloadResult {
	r.reporter.Start(len(reqs))

	results := make([]model.DownloadResult, len(reqs))

	g := new(errgroup.Group)
	g.SetLimit(r.limit)

	for i := range reqs {
		g.Go(func() error {
			req := &reqs[i]
			res := r.policy.Execute(ctx, req, r.invoker, r.reporter.ProgressFunc(req))
			results[i] = res
			r.reporter.Done(res)
			return nil
		})
	}

	g.Wait()
	r.reporter.Wait()
	return results
}
