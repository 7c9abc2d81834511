package jobcontext

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type temporaryErr struct{ temporary bool }

func (e temporaryErr) Error() string   { return "upstream failure" }
func (e temporaryErr) Temporary() bool { return e.temporary }

func fastOptions() Options {
	return Options{MaxRetries: 3, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}
}

func TestBegin_SetsMetadata(t *testing.T) {
	ctx, cancel := Begin(context.Background(), "expiry_sweep", time.Minute)
	defer cancel()

	meta := GetJobMetadata(ctx)
	assert.Equal(t, "expiry_sweep", meta.JobType)
	assert.NotZero(t, meta.JobID)
	assert.False(t, meta.StartTime.IsZero())

	_, hasDeadline := ctx.Deadline()
	assert.True(t, hasDeadline)
}

func TestRun_RetriesRetryableErrors(t *testing.T) {
	calls := 0
	err := Run(context.Background(), fastOptions(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		assert.Equal(t, 2, GetRetryAttempt(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRun_StopsOnPermanentError(t *testing.T) {
	calls := 0
	err := Run(context.Background(), fastOptions(), func(ctx context.Context) error {
		calls++
		return errors.New("invalid input")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRun_GivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	err := Run(context.Background(), fastOptions(), func(ctx context.Context) error {
		calls++
		return temporaryErr{temporary: true}
	})

	require.Error(t, err)
	assert.Equal(t, 4, calls)
}

func TestRun_RecoversPanic(t *testing.T) {
	err := Run(context.Background(), fastOptions(), func(ctx context.Context) error {
		panic("boom")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic recovered")
}

func TestIsRetryableError(t *testing.T) {
	assert.False(t, IsRetryableError(nil))
	assert.True(t, IsRetryableError(errors.New("ERROR: deadlock detected (SQLSTATE 40P01)")))
	assert.True(t, IsRetryableError(temporaryErr{temporary: true}))
	assert.False(t, IsRetryableError(temporaryErr{temporary: false}))
	assert.False(t, IsRetryableError(errors.New("record not found")))
}
