package http

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

var (
	ErrCircuitOpen = errors.New("circuit breaker open")
	ErrRateLimited = errors.New("rate limit wait canceled")
)

// StatusError is returned for any non 2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http error: status %d", e.StatusCode)
}

// DecodeError is returned when a 2xx body cannot be decoded into the expected type.
type DecodeError struct {
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("http decode error: status %d: %v", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// BackoffConfig controls exponential backoff behaviour.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// BreakerConfig configures the per client circuit breaker.
type BreakerConfig struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// ConsecutiveFailures opens the breaker, defaults to 5.
	ConsecutiveFailures uint32
	OnStateChange       func(name string, from, to gobreaker.State)
}

func newCircuitBreaker(cfg BreakerConfig) *gobreaker.CircuitBreaker {
	threshold := cfg.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: cfg.OnStateChange,
	})
}

// attemptResult carries one response through the circuit breaker.
type attemptResult struct {
	successResp any
	errorResp   any
	status      int
	err         error
}

// retryable reports whether a failed attempt may succeed when repeated.
func retryable(status int, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return false
	}
	return status == 0 || status == http.StatusTooManyRequests || status >= 500
}

// doRequestWithBackoff runs doRequest behind the rate limiter and circuit breaker, retrying
// transport failures, 429 and 5xx with exponential delay. backoff overrides the client default.
func (hc *Client) doRequestWithBackoff(ctx context.Context, method, path string, queryParams map[string]string, headers map[string]string, body any, successResp any, errorResp any, backoff *BackoffConfig) (any, any, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if backoff == nil {
		backoff = hc.backoff
	}
	maxRetries := 0
	if backoff != nil && backoff.MaxRetries > 0 && backoff.InitialInterval > 0 {
		maxRetries = backoff.MaxRetries
	}

	for attempt := 0; ; attempt++ {
		if hc.limiter != nil {
			if err := hc.limiter.Wait(ctx); err != nil {
				return nil, nil, 0, fmt.Errorf("%w: %v", ErrRateLimited, err)
			}
		}

		result, err := hc.executeAttempt(ctx, method, path, queryParams, headers, body, successResp, errorResp)
		if err != nil {
			return nil, nil, 0, err
		}

		if !retryable(result.status, result.err) || attempt >= maxRetries {
			return result.successResp, result.errorResp, result.status, result.err
		}

		delay := backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if backoff.MaxInterval > 0 && delay > backoff.MaxInterval {
			delay = backoff.MaxInterval
		}

		if hc.logger != nil {
			hc.logger.LogRequestRetry(method, redactURL(hc.buildURL(path)), headers, "", result.status, "", delay.Milliseconds(), result.err, attempt+1, maxRetries)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, nil, result.status, ctx.Err()
		case <-timer.C:
		}
	}
}

// executeAttempt sends one request. Only retryable failures count against the breaker; the
// returned error is set when the breaker refused the call.
func (hc *Client) executeAttempt(ctx context.Context, method, path string, queryParams map[string]string, headers map[string]string, body any, successResp any, errorResp any) (attemptResult, error) {
	run := func() (any, error) {
		success, failure, status, err := hc.doRequest(ctx, method, path, queryParams, headers, body, successResp, errorResp)
		result := attemptResult{successResp: success, errorResp: failure, status: status, err: err}
		if retryable(status, err) {
			return result, err
		}
		return result, nil
	}

	if hc.breaker == nil {
		out, _ := run()
		return out.(attemptResult), nil
	}

	out, err := hc.breaker.Execute(run)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return attemptResult{}, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	result, ok := out.(attemptResult)
	if !ok {
		// nil result
		return attemptResult{err: err}, nil
	}
	return result, nil
}
