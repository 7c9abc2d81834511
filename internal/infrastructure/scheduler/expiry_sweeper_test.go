package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExpirer struct {
	calls int
	n     int64
	err   error
}

func (s *stubExpirer) ExpireDue(ctx context.Context) (int64, error) {
	s.calls++
	return s.n, s.err
}

func TestRunOnce_ReturnsExpiredCount(t *testing.T) {
	expirer := &stubExpirer{n: 3}
	s := NewExpirySweeper(expirer, "@every 1m", time.Second, nil)

	assert.Equal(t, int64(3), s.RunOnce(context.Background()))
	assert.Equal(t, 1, expirer.calls)
}

func TestRunOnce_SwallowsPermanentFailure(t *testing.T) {
	expirer := &stubExpirer{err: errors.New("relation does not exist")}
	s := NewExpirySweeper(expirer, "@every 1m", time.Second, nil)

	assert.Equal(t, int64(0), s.RunOnce(context.Background()))
	assert.Equal(t, 1, expirer.calls)
}

func TestStart_RejectsInvalidSchedule(t *testing.T) {
	s := NewExpirySweeper(&stubExpirer{}, "not a schedule", time.Second, nil)
	require.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	s := NewExpirySweeper(&stubExpirer{}, "@every 1h", time.Second, nil)
	require.NoError(t, s.Start())
	s.Stop()
}
