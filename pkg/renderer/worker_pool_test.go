package renderer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_RunsEveryTask(t *testing.T) {
	pool := NewWorkerPool(3)
	seen := make([]int32, 100)

	err := pool.Run(context.Background(), len(seen), func(task int) error {
		atomic.AddInt32(&seen[task], 1)
		return nil
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for task, n := range seen {
		if n != 1 {
			t.Errorf("Task %d ran %d times", task, n)
		}
	}
}

func TestWorkerPool_BoundedConcurrency(t *testing.T) {
	pool := NewWorkerPool(2)
	var running, peak atomic.Int32

	err := pool.Run(context.Background(), 50, func(int) error {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		running.Add(-1)
		return nil
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if peak.Load() > 2 {
		t.Errorf("Expected at most 2 concurrent tasks, saw %d", peak.Load())
	}
}

func TestWorkerPool_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := NewWorkerPool(4).Run(context.Background(), 10, func(task int) error {
		if task == 3 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("Expected boom, got %v", err)
	}
}

func TestWorkerPool_DefaultWorkers(t *testing.T) {
	if n := NewWorkerPool(0).GetNumWorkers(); n <= 0 {
		t.Errorf("Expected CPU count workers, got %d", n)
	}
}
