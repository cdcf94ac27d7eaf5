package session

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/abhisek/keydrill/internal/drill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool_Dedupes(t *testing.T) {
	p := NewPool([]drill.ID{0, 1, 1, 2, 0})
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, []drill.ID{0, 1, 2}, p.active)
}

func TestPool_SelectEmpty(t *testing.T) {
	p := NewPool(nil)
	_, ok := p.Select(rand.New(rand.NewPCG(1, 2)))
	assert.False(t, ok)
}

func TestPool_SelectWithReplacement(t *testing.T) {
	p := NewPool([]drill.ID{7})
	rng := rand.New(rand.NewPCG(1, 2))

	for range 5 {
		id, ok := p.Select(rng)
		require.True(t, ok)
		assert.Equal(t, drill.ID(7), id)
	}
	assert.Equal(t, 1, p.Len())
}

func TestPool_SelectCoversEveryDrill(t *testing.T) {
	p := NewPool([]drill.ID{0, 1, 2, 3})
	rng := rand.New(rand.NewPCG(3, 4))

	seen := map[drill.ID]bool{}
	for range 200 {
		id, _ := p.Select(rng)
		seen[id] = true
	}
	assert.Len(t, seen, 4)
}

func TestPool_RemoveExactlyOnce(t *testing.T) {
	p := NewPool([]drill.ID{0, 1})

	assert.True(t, p.Remove(1))
	assert.False(t, p.Remove(1))
	assert.Equal(t, []drill.ID{0}, p.active)
}

func TestPool_RecordOutcome(t *testing.T) {
	p := NewPool([]drill.ID{0, 1})

	p.RecordOutcome(0, false, time.Second)
	p.RecordOutcome(0, false, 3*time.Second)
	assert.Equal(t, 2, p.Len(), "failed drills stay active")

	p.RecordOutcome(0, true, 2*time.Second)
	assert.Equal(t, []drill.ID{1}, p.active)

	// A second success for an already mastered drill is not counted twice.
	p.RecordOutcome(0, true, 2*time.Second)

	st := p.Stats()
	assert.Equal(t, 1, st.Mastered)
	assert.Equal(t, 2, st.Failed)
	assert.Equal(t, 4, st.Attempts)
	assert.Equal(t, 2*time.Second, st.Mean)
	assert.Equal(t, map[drill.ID]int{0: 2}, p.Failures())
}

func TestPool_StatsWithoutAttempts(t *testing.T) {
	st := NewPool([]drill.ID{0}).Stats()
	assert.Equal(t, Stats{}, st)
}

func TestBuildSummary_Hardest(t *testing.T) {
	p := NewPool([]drill.ID{0, 1, 2, 3, 4})
	fail := func(id drill.ID, n int) {
		for range n {
			p.RecordOutcome(id, false, time.Second)
		}
	}
	fail(3, 1)
	fail(1, 3)
	fail(4, 2)
	fail(2, 2)
	p.RecordOutcome(0, true, time.Second)

	s := BuildSummary("abc", p, time.Minute, func(id drill.ID) string {
		return []string{"a", "b", "c", "d", "e"}[id]
	})

	assert.Equal(t, "abc", s.SessionID)
	assert.Equal(t, time.Minute, s.Duration)
	assert.Equal(t, 9, s.Attempts)
	assert.Equal(t, 1, s.Mastered)
	assert.Equal(t, 8, s.Failed)
	assert.Equal(t, 4, s.Remaining)
	assert.False(t, s.Complete())
	assert.Equal(t, []Hardest{
		{ID: 1, Prompt: "b", Failures: 3},
		{ID: 2, Prompt: "c", Failures: 2},
		{ID: 4, Prompt: "e", Failures: 2},
	}, s.Hardest)
}
