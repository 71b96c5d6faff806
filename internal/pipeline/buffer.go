// internal/pipeline/buffer.go
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Buffer is a fixed-capacity FIFO ring shared by one or more producers and
// consumers. Put blocks while the ring is full and Take blocks while it is
// empty; every value put is taken exactly once.
//
// Two counting semaphores track free and filled slots. The mutex only guards
// the slot array and indices, never the work done around Put and Take.
type Buffer[T any] struct {
	mu    sync.Mutex
	slots []T
	head  int // next slot to take
	tail  int // next slot to fill
	count int

	free   *semaphore.Weighted
	filled *semaphore.Weighted
}

// NewBuffer returns an empty buffer holding at most capacity values.
func NewBuffer[T any](capacity int) (*Buffer[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	filled := semaphore.NewWeighted(int64(capacity))
	// The filled-slot count starts at zero: hold every permit until a Put
	// releases one.
	filled.TryAcquire(int64(capacity))
	return &Buffer[T]{
		slots:  make([]T, capacity),
		free:   semaphore.NewWeighted(int64(capacity)),
		filled: filled,
	}, nil
}

// Put appends v, waiting for a free slot. It fails only if ctx is done
// before a slot frees up, in which case v is not enqueued.
func (b *Buffer[T]) Put(ctx context.Context, v T) error {
	if err := b.free.Acquire(ctx, 1); err != nil {
		return err
	}
	b.mu.Lock()
	b.slots[b.tail] = v
	b.tail = (b.tail + 1) % len(b.slots)
	b.count++
	b.mu.Unlock()

	b.filled.Release(1)
	return nil
}

// Take removes the oldest value, waiting until one is available.
func (b *Buffer[T]) Take(ctx context.Context) (T, error) {
	var zero T
	if err := b.filled.Acquire(ctx, 1); err != nil {
		return zero, err
	}
	b.mu.Lock()
	v := b.slots[b.head]
	b.slots[b.head] = zero
	b.head = (b.head + 1) % len(b.slots)
	b.count--
	b.mu.Unlock()

	b.free.Release(1)
	return v, nil
}

// Len returns the number of values waiting to be taken.
func (b *Buffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Cap returns the fixed capacity.
func (b *Buffer[T]) Cap() int { return len(b.slots) }
