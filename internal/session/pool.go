package session

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/abhisek/keydrill/internal/drill"
)

// Pool holds the drills still to be mastered and the running statistics.
// It is owned by one Session and is not safe for concurrent use.
type Pool struct {
	active    []drill.ID
	mastered  []drill.ID
	failed    []drill.ID
	durations []time.Duration
}

// NewPool creates a pool over ids. Duplicate IDs are kept once.
func NewPool(ids []drill.ID) *Pool {
	p := &Pool{}
	seen := make(map[drill.ID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		p.active = append(p.active, id)
	}
	return p
}

// Len returns the number of drills still active.
func (p *Pool) Len() int {
	return len(p.active)
}

// Select picks an active drill uniformly at random. The drill stays in the
// pool; it leaves only through Remove.
func (p *Pool) Select(rng *rand.Rand) (drill.ID, bool) {
	if len(p.active) == 0 {
		return 0, false
	}
	return p.active[rng.IntN(len(p.active))], true
}

// Remove takes id out of the active pool. It reports whether id was active.
func (p *Pool) Remove(id drill.ID) bool {
	i := slices.Index(p.active, id)
	if i < 0 {
		return false
	}
	p.active = slices.Delete(p.active, i, i+1)
	return true
}

// RecordOutcome stores the result of one attempt. A success removes the
// drill from the pool; a failure leaves it for a later round.
func (p *Pool) RecordOutcome(id drill.ID, success bool, d time.Duration) {
	p.durations = append(p.durations, d)
	if success {
		if p.Remove(id) {
			p.mastered = append(p.mastered, id)
		}
		return
	}
	p.failed = append(p.failed, id)
}

// Stats are the running totals shown above every question.
type Stats struct {
	Mastered int
	Failed   int
	Attempts int
	Mean     time.Duration
}

// Stats returns the current totals. Mean is zero before the first attempt.
func (p *Pool) Stats() Stats {
	s := Stats{
		Mastered: len(p.mastered),
		Failed:   len(p.failed),
		Attempts: len(p.durations),
	}
	if s.Attempts > 0 {
		var total time.Duration
		for _, d := range p.durations {
			total += d
		}
		s.Mean = total / time.Duration(s.Attempts)
	}
	return s
}

// Failures counts failed attempts per drill.
func (p *Pool) Failures() map[drill.ID]int {
	counts := make(map[drill.ID]int)
	for _, id := range p.failed {
		counts[id]++
	}
	return counts
}
