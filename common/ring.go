package common

import (
	"sync"
)

// RingBuffer keeps the last N values added, safe for concurrent use.
type RingBuffer[T any] struct {
	mu     sync.Mutex
	buffer []T
	next   int
	count  int
}

// NewRingBuffer creates a ring buffer holding at most size values.
// A size below one is treated as one.
func NewRingBuffer[T any](size int) *RingBuffer[T] {
	if size < 1 {
		size = 1
	}
	return &RingBuffer[T]{buffer: make([]T, size)}
}

// Add stores value, dropping the oldest value when full.
func (rb *RingBuffer[T]) Add(value T) {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.buffer[rb.next] = value
	rb.next = (rb.next + 1) % len(rb.buffer)
	if rb.count < len(rb.buffer) {
		rb.count++
	}
}

// Get returns the stored values, oldest first.
func (rb *RingBuffer[T]) Get() []T {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	out := make([]T, 0, rb.count)
	start := rb.next - rb.count + len(rb.buffer)
	for i := 0; i < rb.count; i++ {
		out = append(out, rb.buffer[(start+i)%len(rb.buffer)])
	}
	return out
}

// Last returns the newest value, or false when empty.
func (rb *RingBuffer[T]) Last() (T, bool) {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	var zero T
	if rb.count == 0 {
		return zero, false
	}
	return rb.buffer[(rb.next-1+len(rb.buffer))%len(rb.buffer)], true
}

func (rb *RingBuffer[T]) Len() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.count
}
