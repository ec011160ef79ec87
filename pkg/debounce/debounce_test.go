package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer(t *testing.T) {
	t.Run("SingleCall", func(t *testing.T) {
		var called atomic.Int32
		d := New(20 * time.Millisecond)

		d.Do(func() { called.Add(1) })
		assert.True(t, d.Pending())

		assert.Eventually(t, func() bool {
			return called.Load() == 1
		}, time.Second, 5*time.Millisecond)
		assert.False(t, d.Pending())
	})

	t.Run("RapidCallsRunLastOnce", func(t *testing.T) {
		var called, last atomic.Int32
		d := New(50 * time.Millisecond)

		for i := int32(1); i <= 10; i++ {
			d.Do(func() {
				last.Store(i)
				called.Add(1)
			})
			time.Sleep(2 * time.Millisecond)
		}

		time.Sleep(150 * time.Millisecond)
		assert.Equal(t, int32(1), called.Load())
		assert.Equal(t, int32(10), last.Load())
	})

	t.Run("Cancel", func(t *testing.T) {
		var called atomic.Int32
		d := New(30 * time.Millisecond)

		d.Do(func() { called.Add(1) })
		d.Cancel()
		assert.False(t, d.Pending())

		time.Sleep(80 * time.Millisecond)
		assert.Zero(t, called.Load())
	})

	t.Run("Flush", func(t *testing.T) {
		var called atomic.Int32
		d := New(30 * time.Millisecond)

		d.Do(func() { called.Add(10) })
		d.Flush(func() { called.Add(1) })
		assert.Equal(t, int32(1), called.Load())

		time.Sleep(80 * time.Millisecond)
		assert.Equal(t, int32(1), called.Load())
	})
}
