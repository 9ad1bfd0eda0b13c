package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSleep 记录等待而不真正睡眠
type recordingSleep struct {
	calls []time.Duration
	err   error
}

func (s *recordingSleep) sleep(_ context.Context, d time.Duration) error {
	s.calls = append(s.calls, d)
	return s.err
}

func TestRetry_SucceedsFirstAttempt(t *testing.T) {
	s := &recordingSleep{}
	calls := 0

	err := Retry(context.Background(), RetryPolicy{Attempts: 5, Delay: 3 * time.Second, Sleep: s.sleep},
		func(ctx context.Context, attempt int) error {
			calls++
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, s.calls)
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	s := &recordingSleep{}
	var failures []int

	err := Retry(context.Background(), RetryPolicy{
		Attempts:  5,
		Delay:     3 * time.Second,
		Sleep:     s.sleep,
		OnFailure: func(attempt int, err error) { failures = append(failures, attempt) },
	}, func(ctx context.Context, attempt int) error {
		if attempt < 3 {
			return errors.New("connection refused")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, failures)
	assert.Equal(t, []time.Duration{3 * time.Second, 3 * time.Second}, s.calls)
}

func TestRetry_Exhausted(t *testing.T) {
	s := &recordingSleep{}
	cause := errors.New("connection refused")
	calls := 0

	err := Retry(context.Background(), RetryPolicy{Attempts: 5, Delay: 3 * time.Second, Sleep: s.sleep},
		func(ctx context.Context, attempt int) error {
			calls++
			return cause
		})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAttemptsExhausted)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 5, calls)
	assert.Len(t, s.calls, 4, "只在两次尝试之间等待")
}

func TestRetry_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), RetryPolicy{Sleep: (&recordingSleep{}).sleep},
		func(ctx context.Context, attempt int) error {
			calls++
			return errors.New("boom")
		})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_SleepInterrupted(t *testing.T) {
	s := &recordingSleep{err: context.Canceled}
	calls := 0

	err := Retry(context.Background(), RetryPolicy{Attempts: 5, Delay: time.Second, Sleep: s.sleep},
		func(ctx context.Context, attempt int) error {
			calls++
			return errors.New("boom")
		})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestSleepContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, SleepContext(ctx, time.Hour), context.Canceled)

	assert.NoError(t, SleepContext(context.Background(), time.Millisecond))
	assert.NoError(t, SleepContext(context.Background(), 0))
}
