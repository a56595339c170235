package service

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	d := NewLookupDebouncer(30 * time.Millisecond)

	var calls atomic.Int32
	for i := 0; i < 10; i++ {
		d.Trigger("session-1", func() { calls.Add(1) })
	}

	assert.Eventually(t, func() bool {
		return calls.Load() == 1
	}, time.Second, 10*time.Millisecond)

	// Quiet period passed; make sure nothing else fires
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncerKeysAreIndependent(t *testing.T) {
	d := NewLookupDebouncer(20 * time.Millisecond)

	var a, b atomic.Int32
	d.Trigger("session-a", func() { a.Add(1) })
	d.Trigger("session-b", func() { b.Add(1) })

	assert.Eventually(t, func() bool {
		return a.Load() == 1 && b.Load() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestDebouncerCancel(t *testing.T) {
	d := NewLookupDebouncer(20 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger("session-1", func() { calls.Add(1) })
	d.Cancel("session-1")

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestDebouncerLatestWins(t *testing.T) {
	d := NewLookupDebouncer(20 * time.Millisecond)

	var got atomic.Int32
	d.Trigger("session-1", func() { got.Store(1) })
	d.Trigger("session-1", func() { got.Store(2) })

	assert.Eventually(t, func() bool {
		return got.Load() == 2
	}, time.Second, 10*time.Millisecond)
}
