package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner("working...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()
}

func TestSpinnerDoubleStop(t *testing.T) {
	s := newSpinner("working...")
	s.Start()
	s.Stop()
	s.Stop() // must not panic
}

func TestSpinnerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "working...")
	s.Start()
	cancel()

	deadline := time.After(time.Second)
	select {
	case <-s.stopped:
	case <-deadline:
		t.Fatal("spinner did not stop after context cancellation")
	}
	if !s.Cancelled() {
		t.Error("Cancelled() = false after context cancellation")
	}
}
