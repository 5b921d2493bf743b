package deskmates

// withRetry executes attempt up to retries+1 times, sleeping the exponential
// backoff schedule between failures. A typed 4xx error short-circuits: a
// malformed request will not succeed by repeating it. Everything else
// (network failure, decode failure, timeout, 5xx) is retried until the budget
// is spent, and the last observed error is surfaced in typed form.
func (c *Client) withRetry(call *callOptions, requestID, method, endpoint string, attempt func() (*httpResult, error)) (*httpResult, error) {
	var lastErr error

	for i := 0; i <= call.retries; i++ {
		if i > 0 {
			if c.debugOn(c.debug.logRetries()) {
				c.logger.Info("retry attempt",
					"requestID", requestID, "attempt", i, "maxRetries", call.retries,
					"method", method, "endpoint", endpoint)
			}
			if c.metrics != nil {
				c.metrics.RecordRetry(method, endpoint, i)
			}
		}

		res, err := attempt()
		if err == nil {
			return res, nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return nil, wrapTransportError(err)
		}
		if i == call.retries {
			break
		}

		delay := c.backoff.Delay(i, call.retryDelay)
		if c.debugOn(c.debug.logRetries()) {
			c.logger.Info("scheduling retry",
				"requestID", requestID, "attempt", i+1, "backoff", delay,
				"method", method, "endpoint", endpoint)
		}
		c.sleep(delay)
	}

	return nil, wrapTransportError(lastErr)
}
