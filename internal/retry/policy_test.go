package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ytget/yt-batch/internal/download"
	"github.com/ytget/yt-batch/internal/model"
)

// fakeInvoker returns scripted outcomes in order, repeating the last one
type fakeInvoker struct {
	errs    []error
	calls   int
	outcome *download.Outcome
}

func (f *fakeInvoker) Invoke(ctx context.Context, req *model.DownloadRequest, onProgress func(download.Progress)) (*download.Outcome, error) {
	idx := f.calls
	f.calls++
	if idx >= len(f.errs) {
		idx = len(f.errs) - 1
	}
	if idx >= 0 && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	if f.outcome != nil {
		return f.outcome, nil
	}
	return &download.Outcome{}, nil
}

func testPolicy(maxRetries int) *Policy {
	return NewPolicy(maxRetries, time.Millisecond, 2.0, 10*time.Millisecond)
}

func testRequest() *model.DownloadRequest {
	return &model.DownloadRequest{ID: "req-1", URL: "https://youtube.com/watch?v=test"}
}

func TestExecuteSuccessFirstAttempt(t *testing.T) {
	inv := &fakeInvoker{errs: []error{nil}, outcome: &download.Outcome{OutputPath: "/tmp/video.mp4", Bytes: 1024}}
	result := testPolicy(3).Execute(context.Background(), testRequest(), inv, nil)

	if result.Status != model.StatusSuccess {
		t.Errorf("Expected success, got %s", result.Status)
	}
	if result.Attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", result.Attempts)
	}
	if result.OutputPath != "/tmp/video.mp4" {
		t.Errorf("Expected output path to be set, got '%s'", result.OutputPath)
	}
}

func TestExecuteRetryableExhaustsBudget(t *testing.T) {
	netErr := download.NewError(model.ErrorKindNetwork, errors.New("timed out"))
	inv := &fakeInvoker{errs: []error{netErr}}

	maxRetries := 3
	result := testPolicy(maxRetries).Execute(context.Background(), testRequest(), inv, nil)

	if result.Status != model.StatusFailed {
		t.Errorf("Expected failed, got %s", result.Status)
	}
	// A request whose call always fails retryably reaches Failed after
	// exactly maxRetries+1 attempts
	if result.Attempts != maxRetries+1 {
		t.Errorf("Expected %d attempts, got %d", maxRetries+1, result.Attempts)
	}
	if result.ErrorKind != model.ErrorKindNetwork {
		t.Errorf("Expected network error kind, got %s", result.ErrorKind)
	}
}

func TestExecuteTerminalFailsAfterOneAttempt(t *testing.T) {
	fmtErr := download.NewError(model.ErrorKindFormatUnavailable, errors.New("requested format is not available"))
	inv := &fakeInvoker{errs: []error{fmtErr}}

	result := testPolicy(5).Execute(context.Background(), testRequest(), inv, nil)

	if result.Status != model.StatusFailed {
		t.Errorf("Expected failed, got %s", result.Status)
	}
	if result.Attempts != 1 {
		t.Errorf("Expected exactly 1 attempt for terminal error, got %d", result.Attempts)
	}
	if result.ErrorKind != model.ErrorKindFormatUnavailable {
		t.Errorf("Expected format_unavailable, got %s", result.ErrorKind)
	}
}

func TestExecuteRecoversAfterRetry(t *testing.T) {
	netErr := download.NewError(model.ErrorKindNetwork, errors.New("connection reset"))
	inv := &fakeInvoker{errs: []error{netErr, netErr, nil}}

	result := testPolicy(3).Execute(context.Background(), testRequest(), inv, nil)

	if result.Status != model.StatusSuccess {
		t.Errorf("Expected success after retries, got %s", result.Status)
	}
	if result.Attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", result.Attempts)
	}
}

func TestExecuteSkipsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inv := &fakeInvoker{errs: []error{nil}}
	result := testPolicy(3).Execute(ctx, testRequest(), inv, nil)

	if result.Status != model.StatusSkipped {
		t.Errorf("Expected skipped, got %s", result.Status)
	}
	if inv.calls != 0 {
		t.Errorf("Expected no invocations after cancellation, got %d", inv.calls)
	}
	if result.ErrorKind != model.ErrorKindInterrupted {
		t.Errorf("Expected interrupted kind, got %s", result.ErrorKind)
	}
}

func TestExecuteCancellationDuringBackoff(t *testing.T) {
	netErr := download.NewError(model.ErrorKindNetwork, errors.New("timed out"))
	inv := &fakeInvoker{errs: []error{netErr}}

	policy := NewPolicy(5, time.Hour, 2.0, 0)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	result := policy.Execute(ctx, testRequest(), inv, nil)

	if result.Status != model.StatusFailed {
		t.Errorf("Expected failed, got %s", result.Status)
	}
	if result.ErrorKind != model.ErrorKindInterrupted {
		t.Errorf("Expected interrupted kind, got %s", result.ErrorKind)
	}
	if inv.calls != 1 {
		t.Errorf("Expected 1 invocation before cancellation, got %d", inv.calls)
	}
}

func TestExecuteTransitions(t *testing.T) {
	netErr := download.NewError(model.ErrorKindNetwork, errors.New("timed out"))
	inv := &fakeInvoker{errs: []error{netErr, nil}}

	policy := testPolicy(2)
	var states []model.RequestState
	policy.OnTransition = func(req *model.DownloadRequest, st model.RequestState) {
		states = append(states, st)
	}

	policy.Execute(context.Background(), testRequest(), inv, nil)

	want := []model.RequestState{
		model.StateAttempting,
		model.StateRetryWait,
		model.StateAttempting,
		model.StateSucceeded,
	}
	if len(states) != len(want) {
		t.Fatalf("Expected %d transitions, got %d: %v", len(want), len(states), states)
	}
	for i, st := range want {
		if states[i] != st {
			t.Errorf("Transition %d: expected %s, got %s", i, st, states[i])
		}
	}
}

func TestBackoffCurve(t *testing.T) {
	policy := NewPolicy(5, 2*time.Second, 2.0, 10*time.Second)

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 2 * time.Second},
		{1, 4 * time.Second},
		{2, 8 * time.Second},
		{3, 10 * time.Second}, // capped
		{4, 10 * time.Second},
	}

	for _, c := range cases {
		if got := policy.Backoff(c.attempt); got != c.want {
			t.Errorf("Backoff(%d) = %v, want %v", c.attempt, got, c.want)
		}
	}
}
