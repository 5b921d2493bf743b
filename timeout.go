package deskmates

import (
	"context"
	"net/http"
	"time"
)

// httpResult is the outcome of one fully-consumed attempt: status, raw body
// bytes and the body decoded as a generic JSON value (nil for 204 responses).
type httpResult struct {
	status int
	body   []byte
	value  any
}

// withTimeout races a single attempt against a timer. Whichever settles first
// determines the outcome: if the timer fires, the call fails with a 408 typed
// error and the attempt's context is cancelled. Cancellation is best effort;
// the timeout result is authoritative regardless of what the abandoned
// attempt eventually does. No retry logic lives here.
func withTimeout(ctx context.Context, d time.Duration, fn func(context.Context) (*httpResult, error)) (*httpResult, error) {
	attemptCtx, cancel := context.WithCancel(ctx)

	type outcome struct {
		res *httpResult
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := fn(attemptCtx)
		done <- outcome{res: res, err: err}
		cancel()
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case out := <-done:
		return out.res, out.err
	case <-timer.C:
		cancel()
		return nil, &APIError{
			Message:    "request timed out",
			StatusCode: http.StatusRequestTimeout,
			Cause:      ErrTimeout,
		}
	}
}
