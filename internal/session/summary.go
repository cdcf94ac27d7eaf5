package session

import (
	"cmp"
	"slices"
	"time"

	"github.com/abhisek/keydrill/internal/drill"
)

// MaxHardest caps the number of drills listed in a summary.
const MaxHardest = 3

// Hardest is a drill that needed more than one attempt.
type Hardest struct {
	ID       drill.ID
	Prompt   string
	Failures int
}

// Summary holds the data displayed when a session ends.
type Summary struct {
	SessionID string
	Duration  time.Duration
	Attempts  int
	Mastered  int
	Failed    int
	Mean      time.Duration
	Remaining int
	Hardest   []Hardest
}

// Complete reports whether every drill was mastered.
func (s *Summary) Complete() bool {
	return s.Remaining == 0
}

// BuildSummary creates a Summary from the pool. describe names a drill.
func BuildSummary(id string, pool *Pool, elapsed time.Duration, describe func(drill.ID) string) *Summary {
	st := pool.Stats()
	s := &Summary{
		SessionID: id,
		Duration:  elapsed,
		Attempts:  st.Attempts,
		Mastered:  st.Mastered,
		Failed:    st.Failed,
		Mean:      st.Mean,
		Remaining: pool.Len(),
	}

	for d, n := range pool.Failures() {
		s.Hardest = append(s.Hardest, Hardest{ID: d, Prompt: describe(d), Failures: n})
	}
	slices.SortFunc(s.Hardest, func(a, b Hardest) int {
		if c := cmp.Compare(b.Failures, a.Failures); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if len(s.Hardest) > MaxHardest {
		s.Hardest = s.Hardest[:MaxHardest]
	}
	return s
}
