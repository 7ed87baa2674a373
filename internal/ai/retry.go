package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// RetryPolicy bounds how often a request is re-sent
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// DefaultRetryPolicy returns two retries starting at one second
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 2, BaseDelay: time.Second}
}

// DoWithRetry sends the request built by newRequest and returns the first
// 200 response. Any other status is turned into an error by checkResponse;
// transport failures and retryable provider errors are re-sent with
// exponential backoff, rate limits after Retry-After. Non-retryable errors
// (bad key, quota, validation) are returned at once. newRequest is called
// once per attempt so the body can be re-read.
func DoWithRetry(ctx context.Context, client *http.Client, policy RetryPolicy, provider string,
	newRequest func(ctx context.Context) (*http.Request, error),
	checkResponse func(resp *http.Response) error) (*http.Response, error) {
	attempts := policy.MaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		last := attempt == attempts-1
		delay := policy.BaseDelay << attempt

		req, err := newRequest(ctx)
		if err != nil {
			return nil, NewProviderErrorWithCause(ErrTypeInternal, "failed to create request", provider, err)
		}

		resp, err := client.Do(req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, contextError(provider, ctxErr)
			}
			if last {
				return nil, NewProviderErrorWithCause(ErrTypeNetwork, "request failed after retries", provider, err)
			}
			if err := sleep(ctx, delay); err != nil {
				return nil, contextError(provider, err)
			}
			continue
		}

		if resp.StatusCode == http.StatusOK {
			return resp, nil
		}

		err = responseError(resp, provider, checkResponse)
		_ = resp.Body.Close()

		if last || !IsRetryableError(err) {
			return nil, err
		}
		var pe *ProviderError
		if errors.As(err, &pe) && pe.Type == ErrTypeRateLimit && pe.RetryAfter >= 0 {
			delay = time.Duration(pe.RetryAfter) * time.Second
		}
		if err := sleep(ctx, delay); err != nil {
			return nil, contextError(provider, err)
		}
	}

	return nil, NewProviderError(ErrTypeNetwork, "max retries exceeded", provider)
}

// responseError classifies a non-200 response. A 429 that the provider did
// not classify is a rate limit; Retry-After is recorded on rate limits.
func responseError(resp *http.Response, provider string, checkResponse func(*http.Response) error) error {
	var err error
	if checkResponse != nil {
		err = checkResponse(resp)
	}
	if err == nil {
		errType := ErrTypeProvider
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			errType = ErrTypeRateLimit
		case resp.StatusCode >= 500:
			errType = ErrTypeNetwork
		}
		err = NewProviderError(errType, fmt.Sprintf("request failed with status %d", resp.StatusCode), provider).
			WithStatus(resp.StatusCode)
	}

	var pe *ProviderError
	if errors.As(err, &pe) && pe.Type == ErrTypeRateLimit {
		pe.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
	}
	return err
}

func parseRetryAfter(v string) int {
	if v == "" {
		return -1
	}
	seconds, err := strconv.Atoi(v)
	if err != nil || seconds < 0 {
		return -1
	}
	return seconds
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func contextError(provider string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewProviderErrorWithCause(ErrTypeTimeout, "request timed out", provider, err)
	}
	return NewProviderErrorWithCause(ErrTypeNetwork, fmt.Sprintf("request aborted: %v", err), provider, err)
}
