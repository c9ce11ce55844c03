package utils

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebounceRunsLastCallOnce(t *testing.T) {
	var d Debouncer
	var calls, last atomic.Int32
	for i := int32(1); i <= 5; i++ {
		d.Debounce(20*time.Millisecond, func() {
			calls.Add(1)
			last.Store(i)
		})
	}
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(5), last.Load())
	assert.False(t, d.LastCalled().IsZero())
}

func TestStopCancelsPendingCall(t *testing.T) {
	var d Debouncer
	var calls atomic.Int32
	d.Debounce(10*time.Millisecond, func() { calls.Add(1) })
	d.Stop()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
	assert.True(t, d.LastCalled().IsZero())
}
