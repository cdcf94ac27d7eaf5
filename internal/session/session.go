// Package session runs drills drawn at random until every one is mastered.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/keydrill/internal/drill"
	"github.com/abhisek/keydrill/internal/logging"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Executor runs one drill and reports overall success.
type Executor interface {
	Execute(id drill.ID) (bool, error)
}

// Screen shows the per-question header.
type Screen interface {
	Clear()
	Stats(correct, incorrect int, avg time.Duration)
	Ordinal(n int)
}

// Options configures a Session.
type Options struct {
	Pool   *Pool
	Exec   Executor
	Screen Screen
	Rand   *rand.Rand

	// Describe names a drill in the summary and in logs. Optional.
	Describe func(drill.ID) string

	// Now defaults to time.Now.
	Now func() time.Time

	Log *logrus.Entry
}

// Session is one run through the pool.
type Session struct {
	ID string

	pool     *Pool
	exec     Executor
	screen   Screen
	rng      *rand.Rand
	describe func(drill.ID) string
	now      func() time.Time
	log      *logrus.Entry

	asked int
}

// New validates opts and creates a Session with a fresh ID.
func New(opts Options) (*Session, error) {
	if opts.Pool == nil {
		return nil, errors.New("session: pool is required")
	}
	if opts.Exec == nil {
		return nil, errors.New("session: executor is required")
	}
	if opts.Screen == nil {
		return nil, errors.New("session: screen is required")
	}
	if opts.Rand == nil {
		return nil, errors.New("session: random source is required")
	}

	s := &Session{
		ID:       uuid.New().String(),
		pool:     opts.Pool,
		exec:     opts.Exec,
		screen:   opts.Screen,
		rng:      opts.Rand,
		describe: opts.Describe,
		now:      opts.Now,
		log:      opts.Log,
	}
	if s.describe == nil {
		s.describe = func(id drill.ID) string { return fmt.Sprintf("drill %d", id) }
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	s.log = s.log.WithField("session_id", s.ID)
	return s, nil
}

// Run asks drills until the pool is empty. It stops early when ctx is done
// or the executor fails; the attempt in progress is then not recorded. The
// returned summary is never nil.
func (s *Session) Run(ctx context.Context) (*Summary, error) {
	start := s.now()
	s.log.WithField("drills", s.pool.Len()).Info("session started")

	err := s.loop(ctx)

	sum := BuildSummary(s.ID, s.pool, s.now().Sub(start), s.describe)
	entry := s.log.WithFields(logrus.Fields{
		"attempts": sum.Attempts,
		"mastered": sum.Mastered,
		"failed":   sum.Failed,
	})
	if err != nil {
		entry.WithError(err).Info("session stopped")
		return sum, err
	}
	entry.Info("session complete")
	return sum, nil
}

func (s *Session) loop(ctx context.Context) error {
	for s.pool.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		st := s.pool.Stats()
		s.screen.Clear()
		s.screen.Stats(st.Mastered, st.Failed, st.Mean)

		id, _ := s.pool.Select(s.rng)
		s.asked++
		s.screen.Ordinal(s.asked)

		began := s.now()
		ok, err := s.exec.Execute(id)
		if err != nil {
			return fmt.Errorf("drill %d: %w", id, err)
		}
		elapsed := s.now().Sub(began)
		s.pool.RecordOutcome(id, ok, elapsed)

		s.log.WithFields(logrus.Fields{
			"drill":   s.describe(id),
			"success": ok,
			"elapsed": elapsed,
		}).Info("attempt recorded")
	}
	return nil
}
