// Package eventemitter provides typed event targets that call registered
// listeners with the argument passed to Emit.
//
// Each listener is called synchronously when an event is emitted, in the order
// it was added. If you want asynchronous (non-blocking) listeners, wrap your
// listener in a go routine.
//
// Example:
//
//	saved := eventemitter.NewTarget[[]string]("saved")
//	token := saved.AddListener(func(names []string) { fmt.Println(names) })
//	saved.Emit([]string{"a.json"}) // Output: [a.json]
//	saved.RemoveListener(token)
package eventemitter

import (
	"slices"
	"sync"
	"sync/atomic"
)

// ListenerToken identifies a listener added to a Target.
type ListenerToken uint64

var lastToken atomic.Uint64

func nextToken() ListenerToken {
	return ListenerToken(lastToken.Add(1))
}

type listener[A any] struct {
	token   ListenerToken
	handler func(A)
}

// Target is a named event whose listeners receive a value of type A.
// It is safe for concurrent use.
type Target[A any] struct {
	name      string
	mu        sync.RWMutex
	listeners []listener[A]
}

func NewTarget[A any](name string) *Target[A] {
	return &Target[A]{name: name}
}

func (t *Target[A]) Name() string {
	return t.name
}

// AddListener adds a listener and returns the token used to remove it.
func (t *Target[A]) AddListener(handler func(A)) ListenerToken {
	t.mu.Lock()
	defer t.mu.Unlock()

	token := nextToken()
	t.listeners = append(t.listeners, listener[A]{token: token, handler: handler})
	return token
}

// RemoveListener removes the listener added with token.
// It reports whether a listener was removed.
func (t *Target[A]) RemoveListener(token ListenerToken) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := slices.IndexFunc(t.listeners, func(l listener[A]) bool { return l.token == token })
	if i < 0 {
		return false
	}
	t.listeners = slices.Delete(t.listeners, i, i+1)
	return true
}

// RemoveAllListeners removes every listener and reports whether there were any.
func (t *Target[A]) RemoveAllListeners() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.listeners) == 0 {
		return false
	}
	t.listeners = nil
	return true
}

// Len returns the number of listeners.
func (t *Target[A]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.listeners)
}

// Emit calls each listener synchronously with arg.
// It reports whether any listener was called.
//
// Listeners run outside the lock, so a listener may add or remove listeners;
// such changes take effect from the next Emit.
func (t *Target[A]) Emit(arg A) bool {
	t.mu.RLock()
	listeners := slices.Clone(t.listeners)
	t.mu.RUnlock()

	if len(listeners) == 0 {
		return false
	}
	for _, l := range listeners {
		l.handler(arg)
	}
	return true
}
