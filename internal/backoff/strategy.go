package backoff

import "time"

// Strategy computes the delay to wait after a failed attempt before the next
// one starts. attempt is zero-based: the delay after the first failure uses
// attempt 0.
type Strategy interface {
	Delay(attempt int, base time.Duration) time.Duration
}

// Exponential doubles the base delay for every completed attempt, producing
// the schedule base, 2*base, 4*base, ... with no jitter.
type Exponential struct{}

// Delay implements Strategy.
func (Exponential) Delay(attempt int, base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	if attempt < 0 {
		attempt = 0
	}
	// Shifting past 30 doublings would overflow any sane base.
	if attempt > 30 {
		attempt = 30
	}
	d := base << uint(attempt)
	if d < base {
		d = base
	}
	return d
}
