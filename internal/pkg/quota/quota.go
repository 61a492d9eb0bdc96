// Package quota implements the per-session free-tier gate. A gate is a
// two-state counter: open while the number of admitted attempts is below
// the limit, closed forever after.
package quota

import "sync"

// Gate tracks admitted generation attempts for one session.
// Safe for concurrent use.
type Gate struct {
	mu    sync.Mutex
	count int
	limit int
}

// NewGate creates a gate admitting at most limit attempts.
func NewGate(limit int) *Gate {
	return &Gate{limit: limit}
}

// TryConsume admits the attempt and increments the counter, or rejects it
// leaving the counter unchanged. Admission and increment happen under one
// lock, so two concurrent calls can never share a quota unit.
func (g *Gate) TryConsume() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.count >= g.limit {
		return false
	}
	g.count++
	return true
}

// Count returns the number of admitted attempts so far.
func (g *Gate) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.count
}

// Limit returns the configured attempt limit.
func (g *Gate) Limit() int {
	return g.limit
}

// Remaining returns how many attempts are still admissible.
func (g *Gate) Remaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.count >= g.limit {
		return 0
	}
	return g.limit - g.count
}
