package retry

import (
	"context"
	"math"
	"time"

	"github.com/ytget/yt-batch/internal/download"
	"github.com/ytget/yt-batch/internal/model"
)

// Policy holds the retry parameters shared by all requests of a run
type Policy struct {
	MaxRetries    int
	BackoffBase   time.Duration
	BackoffFactor float64
	BackoffCap    time.Duration

	// OnTransition observes state changes; used by the reporter. May be nil.
	OnTransition func(req *model.DownloadRequest, state model.RequestState)
}

// NewPolicy creates a policy with the given attempt budget and backoff curve
func NewPolicy(maxRetries int, base time.Duration, factor float64, cap time.Duration) *Policy {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if factor < 1 {
		factor = 1
	}
	return &Policy{
		MaxRetries:    maxRetries,
		BackoffBase:   base,
		BackoffFactor: factor,
		BackoffCap:    cap,
	}
}

// Backoff returns the wait before attempt n+1 (n is zero-based)
func (p *Policy) Backoff(attempt int) time.Duration {
	d := time.Duration(float64(p.BackoffBase) * math.Pow(p.BackoffFactor, float64(attempt)))
	if p.BackoffCap > 0 && d > p.BackoffCap {
		return p.BackoffCap
	}
	return d
}

// Execute runs the full retry lifecycle for one request and returns its
// single terminal result. A retryable failure consumes one retry slot; a
// terminal failure ends the lifecycle after exactly one attempt.
func (p *Policy) Execute(ctx context.Context, req *model.DownloadRequest, inv download.Invoker, onProgress func(download.Progress)) model.DownloadResult {
	result := model.DownloadResult{
		Request:   *req,
		StartedAt: time.Now(),
	}

	if ctx.Err() != nil {
		result.Status = model.StatusSkipped
		result.ErrorKind = model.ErrorKindInterrupted
		result.Error = ctx.Err().Error()
		result.FinishedAt = time.Now()
		return result
	}

	state := model.StatePending
	transition := func(next model.RequestState) {
		if !state.CanTransitionTo(next) {
			return
		}
		state = next
		if p.OnTransition != nil {
			p.OnTransition(req, next)
		}
	}

	budget := p.MaxRetries
	if budget < 0 {
		budget = 0
	}

	var lastErr *download.Error
	for attempt := 0; attempt <= budget; attempt++ {
		transition(model.StateAttempting)
		result.Attempts++

		outcome, err := inv.Invoke(ctx, req, onProgress)
		if err == nil {
			transition(model.StateSucceeded)
			result.Status = model.StatusSuccess
			if outcome != nil {
				result.OutputPath = outcome.OutputPath
				result.Bytes = outcome.Bytes
			}
			result.FinishedAt = time.Now()
			return result
		}

		lastErr = download.Classify(err, "")
		if !lastErr.Retryable() || attempt == budget {
			break
		}

		transition(model.StateRetryWait)
		if waitErr := p.wait(ctx, p.Backoff(attempt)); waitErr != nil {
			lastErr = download.NewError(model.ErrorKindInterrupted, waitErr)
			break
		}
	}

	transition(model.StateFailed)
	result.Status = model.StatusFailed
	result.ErrorKind = lastErr.Kind
	result.Error = lastErr.Error()
	result.FinishedAt = time.Now()
	return result
}

// wait sleeps out the backoff unless the context is cancelled first
func (p *Policy) wait(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
