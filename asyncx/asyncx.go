// Package asyncx provides small concurrency helpers with context awareness.
package asyncx

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/reqcraft/reqcraft/errx"
)

// AsyncErrors is the error registry for concurrency helper failures.
var AsyncErrors = errx.NewRegistry("ASYNC")

var (
	ErrCanceled      = AsyncErrors.Register("CANCELED", errx.TypeSystem, 499, "Operation was canceled")
	ErrTimeout       = AsyncErrors.Register("TIMEOUT", errx.TypeTimeout, 408, "Operation timed out")
	ErrRetryAttempts = AsyncErrors.Register("INVALID_RETRY_ATTEMPTS", errx.TypeBadRequest, 400, "Invalid retry attempts")
)

func ctxErr(ctx context.Context) error {
	if ctx.Err() == context.Canceled {
		return AsyncErrors.NewWithCause(ErrCanceled, ctx.Err())
	}
	return AsyncErrors.NewWithCause(ErrTimeout, ctx.Err())
}

// Retry runs fn up to attempts times with exponential backoff between tries.
// 10% jitter is added to each delay so many callers retrying together do not
// stampede. Returns the last error wrapped when every attempt failed.
func Retry[T any](ctx context.Context, attempts int, initialBackoff time.Duration,
	fn func(ctx context.Context) (T, error)) (T, error) {

	var zero T
	if attempts <= 0 {
		return zero, AsyncErrors.New(ErrRetryAttempts).WithDetail("provided", attempts)
	}

	var lastErr error
	backoff := initialBackoff
	for i := 0; i < attempts; i++ {
		select {
		case <-ctx.Done():
			return zero, ctxErr(ctx)
		default:
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if i == attempts-1 {
			break
		}

		jitter := time.Duration(rand.Float64() * 0.1 * float64(backoff))
		select {
		case <-time.After(backoff + jitter):
			backoff *= 2
		case <-ctx.Done():
			return zero, ctxErr(ctx)
		}
	}

	return zero, errx.Wrap(lastErr, "all retry attempts failed", errx.TypeSystem)
}

// All runs fn on every item in parallel and returns the results in input
// order. The first error cancels the remaining work and is returned.
func All[T any, R any](ctx context.Context, items []T, fn func(ctx context.Context, item T) (R, error)) ([]R, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	results := make([]R, len(items))
	errCh := make(chan error, 1)

	for i, item := range items {
		wg.Add(1)
		go func(idx int, it T) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			default:
			}

			result, err := fn(ctx, it)
			if err != nil {
				select {
				case errCh <- err:
					cancel()
				default:
				}
				return
			}
			results[idx] = result
		}(i, item)
	}
	wg.Wait()

	select {
	case err := <-errCh:
		return nil, errx.Wrap(err, "async operation failed", errx.TypeSystem)
	default:
		return results, nil
	}
}
