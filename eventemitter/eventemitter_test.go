package eventemitter

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/holmberd/go-jsonio/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTarget(t *testing.T) {
	t.Run("Return event name", func(t *testing.T) {
		target := NewTarget[string]("saved")
		assert.Equal(t, "saved", target.Name(), "should return correct event name")
	})

	t.Run("Add listener and emit event", func(t *testing.T) {
		target := NewTarget[string]("saved")
		var got string
		token := target.AddListener(func(name string) { got = name })
		assert.NotZero(t, token, "should return a valid token")

		ok := target.Emit("a.json")
		assert.True(t, ok, "should return true when listener is triggered")
		assert.Equal(t, "a.json", got, "should pass the emitted argument")
	})

	t.Run("Tokens are unique", func(t *testing.T) {
		target := NewTarget[int]("tokens")
		t1 := target.AddListener(func(int) {})
		t2 := target.AddListener(func(int) {})
		assert.NotEqual(t, t1, t2)
		assert.Equal(t, 2, target.Len())
	})

	t.Run("Listeners run in order", func(t *testing.T) {
		target := NewTarget[int]("ordered")
		var calls []int
		target.AddListener(func(v int) { calls = append(calls, v*1) })
		target.AddListener(func(v int) { calls = append(calls, v*10) })

		target.Emit(2)
		assert.Equal(t, []int{2, 20}, calls)
	})

	t.Run("Emit event with no listeners", func(t *testing.T) {
		target := NewTarget[int]("empty")
		assert.False(t, target.Emit(1), "should return false if no listeners are registered")
	})

	t.Run("Remove existing listener", func(t *testing.T) {
		target := NewTarget[int]("removable")
		called := false
		token := target.AddListener(func(int) { called = true })

		assert.True(t, target.RemoveListener(token), "should remove the listener")
		target.Emit(1)
		assert.False(t, called, "should not call listener after removal")
	})

	t.Run("Remove non-existent listener", func(t *testing.T) {
		target := NewTarget[int]("missing")
		assert.False(t, target.RemoveListener(ListenerToken(0)))
	})

	t.Run("Remove all listeners", func(t *testing.T) {
		target := NewTarget[int]("wipe")
		target.AddListener(func(int) {})
		target.AddListener(func(int) {})

		assert.True(t, target.RemoveAllListeners(), "should remove all listeners")
		assert.False(t, target.Emit(1), "should not emit after removing all listeners")
		assert.False(t, target.RemoveAllListeners(), "should return false when empty")
	})

	t.Run("Listener may remove itself", func(t *testing.T) {
		target := NewTarget[int]("self-removing")
		count := 0
		var token ListenerToken
		token = target.AddListener(func(int) {
			count++
			target.RemoveListener(token)
		})

		target.Emit(1)
		target.Emit(2)
		assert.Equal(t, 1, count)
		assert.Zero(t, target.Len())
	})

	t.Run("Emit concurrent events", func(t *testing.T) {
		target := NewTarget[int]("tick")
		const numListeners = 100
		const numEmitters = 50
		var wg sync.WaitGroup
		var called atomic.Int32

		for j := 0; j < numListeners; j++ {
			target.AddListener(func(int) { called.Add(1) })
		}
		for i := 0; i < numEmitters; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				target.Emit(i)
			}()
		}
		testutil.WaitWithTimeout(t, &wg, time.Second)
		assert.Equal(t, numListeners*numEmitters, int(called.Load()), "should have called all listeners for each emit")
	})
}
