package probe

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultTimeout bounds a Run call when the caller passes no timeout.
const DefaultTimeout = 2 * time.Second

// Run executes checks in order under a shared deadline and returns the first
// failure. Nil checks are skipped. Both the info endpoints and the route
// assembler's readiness gate use it.
func Run(ctx context.Context, timeout time.Duration, checks ...Func) error {
	checks = Filter(checks)
	if len(checks) == 0 {
		return nil
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if ctx == nil {
		ctx = context.Background()
	}
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for idx, check := range checks {
		if err := check(probeCtx); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("probe %d timed out after %s", idx+1, timeout)
			}
			if errors.Is(err, context.Canceled) {
				return fmt.Errorf("probe %d was cancelled", idx+1)
			}
			return fmt.Errorf("probe %d failed: %w", idx+1, err)
		}
	}
	return nil
}

// Filter drops nil checks. It returns nil when nothing remains.
func Filter(checks []Func) []Func {
	if len(checks) == 0 {
		return nil
	}

	filtered := make([]Func, 0, len(checks))
	for _, check := range checks {
		if check != nil {
			filtered = append(filtered, check)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}
