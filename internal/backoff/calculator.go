package backoff

import "time"

// Calculator provides backoff calculation using a configurable strategy. It
// centralizes delay logic so the retry loop never computes schedules inline.
type Calculator struct {
	strategy Strategy
}

// NewCalculator creates a calculator with the specified strategy.
func NewCalculator(strategy Strategy) *Calculator {
	return &Calculator{strategy: strategy}
}

// Delay computes the backoff duration for the given attempt and base delay.
// It delegates to the configured strategy for the actual calculation.
func (c *Calculator) Delay(attempt int, base time.Duration) time.Duration {
	return c.strategy.Delay(attempt, base)
}

// Default returns a calculator configured with the exponential strategy,
// which is the schedule the request pipeline uses.
func Default() *Calculator {
	return NewCalculator(Exponential{})
}
