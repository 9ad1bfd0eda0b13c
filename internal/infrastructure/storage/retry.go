package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrAttemptsExhausted 重试次数用尽
var ErrAttemptsExhausted = errors.New("all attempts failed")

// SleepFunc 等待函数，ctx 取消时应提前返回
type SleepFunc func(ctx context.Context, d time.Duration) error

// RetryPolicy 固定间隔的有界重试策略
type RetryPolicy struct {
	// Attempts 总尝试次数（含第一次），小于 1 时按 1 处理
	Attempts int
	// Delay 两次尝试之间的固定间隔
	Delay time.Duration
	// Sleep 可注入的等待函数，为空时使用 SleepContext
	Sleep SleepFunc
	// OnFailure 每次失败后回调（可选）
	OnFailure func(attempt int, err error)
}

// Retry 按策略执行 fn，直到成功或次数用尽
func Retry(ctx context.Context, policy RetryPolicy, fn func(ctx context.Context, attempt int) error) error {
	attempts := max(policy.Attempts, 1)
	sleep := policy.Sleep
	if sleep == nil {
		sleep = SleepContext
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(ctx, attempt)
		if lastErr == nil {
			return nil
		}
		if policy.OnFailure != nil {
			policy.OnFailure(attempt, lastErr)
		}
		if attempt == attempts {
			break
		}
		if err := sleep(ctx, policy.Delay); err != nil {
			return fmt.Errorf("retry interrupted after attempt %d: %w", attempt, err)
		}
	}

	return fmt.Errorf("%w (%d): %w", ErrAttemptsExhausted, attempts, lastErr)
}

// SleepContext 等待 d 或 ctx 结束
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
