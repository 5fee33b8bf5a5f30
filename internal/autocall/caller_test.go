package autocall

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
)

const (
	testInterval = 5 * time.Millisecond
	waitFor      = time.Second
)

func TestCaller_Start(t *testing.T) {
	t.Run("Stops when tick reports done", func(t *testing.T) {
		// Given: a tick that finishes on its third call
		caller := New(testInterval)
		var calls atomic.Int32

		// When: the caller is started
		require.NoError(t, caller.Start(context.Background(), func(context.Context) bool {
			return calls.Add(1) == 3
		}))
		done := caller.Done()

		// Then: it runs exactly three ticks and stops by itself
		select {
		case <-done:
		case <-time.After(waitFor):
			t.Fatal("caller did not stop")
		}
		assert.Equal(t, int32(3), calls.Load())
		assert.False(t, caller.Running())
	})

	t.Run("Second start is rejected", func(t *testing.T) {
		caller := New(time.Hour)
		tick := func(context.Context) bool { return false }

		require.NoError(t, caller.Start(context.Background(), tick))
		t.Cleanup(caller.Stop)

		err := caller.Start(context.Background(), tick)

		require.ErrorIs(t, err, apperror.ErrAutoCallRunning)
	})

	t.Run("Context cancellation stops calling", func(t *testing.T) {
		caller := New(testInterval)
		ctx, cancel := context.WithCancel(context.Background())

		require.NoError(t, caller.Start(ctx, func(context.Context) bool { return false }))
		done := caller.Done()
		cancel()

		select {
		case <-done:
		case <-time.After(waitFor):
			t.Fatal("caller did not stop")
		}
		assert.False(t, caller.Running())
	})
}

func TestCaller_StopAndWait(t *testing.T) {
	// Given: a tick that is in flight and blocked
	caller := New(testInterval)
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	require.NoError(t, caller.Start(context.Background(), func(context.Context) bool {
		if calls.Add(1) == 1 {
			close(entered)
			<-release
		}
		return false
	}))

	select {
	case <-entered:
	case <-time.After(waitFor):
		t.Fatal("tick did not run")
	}

	// When: the caller is stopped and waited on
	returned := make(chan struct{})
	go func() {
		caller.StopAndWait()
		close(returned)
	}()

	// Then: it waits for the running tick and nothing ticks afterwards
	select {
	case <-returned:
		t.Fatal("StopAndWait returned while a tick was running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)

	select {
	case <-returned:
	case <-time.After(waitFor):
		t.Fatal("StopAndWait did not return")
	}

	time.Sleep(4 * testInterval)
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, caller.Running())
}

func TestCaller_Stop(t *testing.T) {
	t.Run("No ticks after stop", func(t *testing.T) {
		// Given: a running caller that has ticked at least once
		caller := New(testInterval)
		var calls atomic.Int32
		require.NoError(t, caller.Start(context.Background(), func(context.Context) bool {
			calls.Add(1)
			return false
		}))
		require.Eventually(t, func() bool { return calls.Load() > 0 }, waitFor, testInterval)
		done := caller.Done()

		// When: it is stopped
		caller.Stop()
		<-done
		stoppedAt := calls.Load()

		// Then: it no longer runs or ticks
		time.Sleep(5 * testInterval)
		assert.Equal(t, stoppedAt, calls.Load())
		assert.False(t, caller.Running())

		// Then: stopping again is harmless
		caller.Stop()
	})

	t.Run("Stop from inside tick", func(t *testing.T) {
		caller := New(testInterval)

		require.NoError(t, caller.Start(context.Background(), func(context.Context) bool {
			caller.Stop()
			return false
		}))

		require.Eventually(t, func() bool { return !caller.Running() }, waitFor, testInterval)
	})
}

func TestCaller_Toggle(t *testing.T) {
	caller := New(time.Hour)
	tick := func(context.Context) bool { return false }

	assert.True(t, caller.Toggle(context.Background(), tick))
	assert.True(t, caller.Running())

	assert.False(t, caller.Toggle(context.Background(), tick))
	assert.False(t, caller.Running())

	select {
	case <-caller.Done():
	default:
		t.Fatal("done channel of a stopped caller must be closed")
	}
}

func TestNew_DefaultInterval(t *testing.T) {
	assert.Equal(t, DefaultInterval, New(0).interval)
}
