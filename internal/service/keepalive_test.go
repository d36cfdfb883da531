package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	calls atomic.Int64
	err   error
}

func (f *fakePinger) PingContext(context.Context) error {
	f.calls.Add(1)
	return f.err
}

func TestNewKeepaliveService_RequiresDB(t *testing.T) {
	_, err := NewKeepaliveService(KeepaliveOptions{})
	assert.Error(t, err)
}

func TestNewKeepaliveService_Defaults(t *testing.T) {
	svc, err := NewKeepaliveService(KeepaliveOptions{DB: &fakePinger{}})
	require.NoError(t, err)
	assert.Equal(t, 72*time.Hour, svc.interval)
	assert.Equal(t, 10*time.Second, svc.timeout)
}

func TestKeepaliveRun_ProbesImmediatelyAndStopsOnCancel(t *testing.T) {
	pinger := &fakePinger{}
	svc, err := NewKeepaliveService(KeepaliveOptions{
		DB:       pinger,
		Interval: time.Hour,
		Timeout:  time.Second,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	require.Eventually(t, func() bool {
		return pinger.calls.Load() == 1
	}, time.Second, 10*time.Millisecond, "first probe should fire without waiting for a tick")

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestKeepaliveRun_ProbesOnInterval(t *testing.T) {
	pinger := &fakePinger{}
	svc, err := NewKeepaliveService(KeepaliveOptions{
		DB:       pinger,
		Interval: 20 * time.Millisecond,
		Timeout:  time.Second,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	require.Eventually(t, func() bool {
		return pinger.calls.Load() >= 3
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestKeepaliveRun_ProbeFailureDoesNotStopLoop(t *testing.T) {
	pinger := &fakePinger{err: errors.New("connection reset")}
	svc, err := NewKeepaliveService(KeepaliveOptions{
		DB:       pinger,
		Interval: 20 * time.Millisecond,
		Timeout:  time.Second,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	require.Eventually(t, func() bool {
		return pinger.calls.Load() >= 2
	}, time.Second, 10*time.Millisecond, "the loop keeps probing after failures")

	cancel()
	<-done
}
