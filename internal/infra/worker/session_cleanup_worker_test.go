package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingCleaner struct {
	calls atomic.Int32
	n     int64
	err   error
}

func (c *countingCleaner) CleanupSessions(context.Context) (int64, error) {
	c.calls.Add(1)
	return c.n, c.err
}

func TestSessionCleanupWorkerTicksUntilCancel(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	cleaner := &countingCleaner{n: 2}
	w := NewSessionCleanupWorker(cleaner, 5*time.Millisecond, zap.New(core))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return cleaner.calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	<-done

	assert.NotZero(t, logs.FilterMessage("expired sessions removed").Len())
	assert.Equal(t, 1, logs.FilterMessage("session cleanup worker stopped").Len())
}

func TestSessionCleanupWorkerLogsErrors(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	w := NewSessionCleanupWorker(&countingCleaner{err: errors.New("db down")}, time.Hour, zap.New(core))

	w.cleanup(context.Background())

	assert.Equal(t, 1, logs.FilterMessage("expired session cleanup failed").Len())
}

func TestNewSessionCleanupWorkerDefaults(t *testing.T) {
	w := NewSessionCleanupWorker(&countingCleaner{}, 0, nil)
	assert.Equal(t, time.Hour, w.tickInterval)
	assert.NotNil(t, w.logger)
}
