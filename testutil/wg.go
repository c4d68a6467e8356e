package testutil

import (
	"sync"
	"testing"
	"time"
)

// WaitWithTimeout fails the test if wg is not done within timeout.
func WaitWithTimeout(t *testing.T, wg *sync.WaitGroup, timeout time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
		t.Fatalf("timeout after %s waiting for WaitGroup", timeout)
	}
}
