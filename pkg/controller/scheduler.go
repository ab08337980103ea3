// Package controller implements the client-side resource-state
// synchronization shared by every screen: generic list controllers,
// modal form controllers, debounced search, and the optimistic
// like flow with delayed reconciliation.
package controller

import (
	"sort"
	"sync"
	"time"
)

// Scheduler abstracts delayed execution so timer-driven behavior
// (debounce, like reconciliation, banner expiry) is deterministic in
// tests. The returned stop function cancels the callback if it has not
// fired yet.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (stop func())
}

type wallScheduler struct{}

func (wallScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// WallClock returns the real-time Scheduler backed by time.AfterFunc.
func WallClock() Scheduler { return wallScheduler{} }

// Manual is a Scheduler driven by explicit Advance calls. Tests use it
// to fire delayed work without waiting on the wall clock.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	nextID  int
	pending map[int]*manualEntry
}

type manualEntry struct {
	id  int
	due time.Duration
	fn  func()
}

// NewManual creates a Manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{pending: make(map[int]*manualEntry)}
}

// AfterFunc implements Scheduler.
func (m *Manual) AfterFunc(d time.Duration, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e := &manualEntry{id: m.nextID, due: m.now + d, fn: fn}
	m.pending[e.id] = e
	id := e.id
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.pending, id)
	}
}

// Advance moves the clock forward by d, firing every due callback in
// schedule order.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var due []*manualEntry
	for id, e := range m.pending {
		if e.due <= m.now {
			due = append(due, e)
			delete(m.pending, id)
		}
	}
	m.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].id < due[j].id
	})
	for _, e := range due {
		e.fn()
	}
}

// Pending reports how many callbacks are armed.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
