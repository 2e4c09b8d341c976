// Package mailbox provides a keyed single-slot job buffer for the daemon's
// worker loop.
package mailbox

import "sync"

// Mailbox holds at most one pending job per key; the latest Put for a key
// wins. It is NOT a queue: a burst of triggers for the same target collapses
// into one run. Keys are served in the order they first became pending.
type Mailbox[K comparable, T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	jobs   map[K]T
	order  []K
	closed bool
}

// New creates an empty mailbox.
func New[K comparable, T any]() *Mailbox[K, T] {
	m := &Mailbox[K, T]{jobs: make(map[K]T)}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Put stores a job under key, replacing any job already pending for it.
// It never blocks. Puts after Close are dropped.
func (m *Mailbox[K, T]) Put(key K, job T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	if _, pending := m.jobs[key]; !pending {
		m.order = append(m.order, key)
	}
	m.jobs[key] = job
	m.cond.Signal()
}

// Take blocks until a job is available and returns it, or returns false once
// the mailbox is closed and drained.
func (m *Mailbox[K, T]) Take() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for len(m.order) == 0 && !m.closed {
		m.cond.Wait()
	}
	if len(m.order) == 0 {
		var zero T
		return zero, false
	}

	key := m.order[0]
	m.order = m.order[1:]
	job := m.jobs[key]
	delete(m.jobs, key)
	return job, true
}

// Pending reports how many keys currently have a job waiting.
func (m *Mailbox[K, T]) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order)
}

// Close wakes all blocked Take calls. Pending jobs can still be drained.
func (m *Mailbox[K, T]) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.cond.Broadcast()
}
