// Package decisionlog keeps an in-memory ring of recent gate decisions.
// The HTTP middleware records every allow/deny it observes; the pure access
// evaluator never writes here itself.
package decisionlog

import (
	"sync"
	"time"

	"github.com/xraph/gatehouse/id"
)

// Entry is a single recorded gate decision.
type Entry struct {
	ID        id.ID     `json:"id"`
	Subject   string    `json:"subject"` // identity id, or "anonymous"
	Path      string    `json:"path,omitempty"`
	Rule      string    `json:"rule"` // e.g. `permission=view_user`, `module=units action=delete`
	Allowed   bool      `json:"allowed"`
	CreatedAt time.Time `json:"created_at"`
}

// Log is a fixed-capacity ring of decision entries. When full, the oldest
// entry is overwritten.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
	next    int
	full    bool
}

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 256

// New creates a decision log holding at most capacity entries.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{entries: make([]Entry, capacity)}
}

// Append records a decision. A zero ID and CreatedAt are filled in.
func (l *Log) Append(e Entry) {
	if e.ID.IsNil() {
		e.ID = id.NewDecisionID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[l.next] = e
	l.next++
	if l.next == len(l.entries) {
		l.next = 0
		l.full = true
	}
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.full {
		return len(l.entries)
	}
	return l.next
}

// Recent returns up to n entries, newest first. n <= 0 returns all.
func (l *Log) Recent(n int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count := l.next
	if l.full {
		count = len(l.entries)
	}
	if n <= 0 || n > count {
		n = count
	}

	out := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		idx := l.next - 1 - i
		if idx < 0 {
			idx += len(l.entries)
		}
		out = append(out, l.entries[idx])
	}
	return out
}
