package drill

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/abhisek/keydrill/internal/keys"
	"github.com/abhisek/keydrill/internal/logging"
	"github.com/sirupsen/logrus"
)

// ErrInterrupted is returned when the interrupt key is read. It ends the
// whole session, not only the current task.
var ErrInterrupted = errors.New("drill: interrupted")

// DefaultPace is the pause after a fully successful task.
const DefaultPace = 400 * time.Millisecond

// Praise holds the phrases shown after a correct answer.
var Praise = []string{"Great!", "Excellent!", "Awesome!", "Keep it up!", "Perfect!"}

// KeyReader supplies decoded keys.
type KeyReader interface {
	ReadKey(prev keys.Key) (keys.Key, error)
}

// Printer receives the transcript of a task execution.
type Printer interface {
	Question(text string)
	Echo(k keys.Key)
	Mismatch(got keys.Key, expected string)
	PressAnyKey()
	Praise(phrase string)
}

// Runner executes tasks from a Tree.
type Runner struct {
	Tree *Tree
	Keys KeyReader
	Out  Printer
	Rand *rand.Rand

	// Pace is slept after a fully successful execution.
	Pace  time.Duration
	Sleep func(time.Duration)

	Log *logrus.Entry
}

// Execute runs the task with the given ID and its sub-tasks. It returns true
// when the task's own keys matched with no mistake and every sub-task also
// succeeded. The result is stored as the task's mastery flag.
func (r *Runner) Execute(id ID) (bool, error) {
	t := r.Tree.Task(id)
	if t == nil {
		return false, errors.New("drill: unknown task")
	}

	if t.Runs > 0 {
		r.Tree.Reroll(id)
	}
	t.Runs++
	t.State = StateInProgress

	log := r.logger().WithFields(logrus.Fields{
		"ordinal": t.Ordinal,
		"run":     t.Runs,
	})

	r.Out.Question(t.Resolved.Prompt)

	matched, err := r.match(t, log)
	if err != nil {
		t.State = StateFailed
		return false, err
	}

	ok := matched
	if matched {
		r.Out.Praise(Praise[r.Rand.IntN(len(Praise))])
		// Every sub-task runs, even after a sibling fails.
		for _, child := range t.Children {
			childOK, err := r.Execute(child)
			if err != nil {
				t.State = StateFailed
				return false, err
			}
			ok = ok && childOK
		}
	}

	t.Mastered = ok
	if ok {
		t.State = StateSucceeded
		r.pause()
	} else {
		t.State = StateFailed
	}
	log.WithField("success", ok).Debug("task executed")
	return ok, nil
}

// match compares decoded keys against the expected tokens, stopping at the
// first mismatch. It reports whether no mismatch occurred.
func (r *Runner) match(t *Task, log *logrus.Entry) (bool, error) {
	var prev keys.Key
	for _, expected := range t.Resolved.Expected() {
		k, err := r.next(prev)
		if err != nil {
			return false, err
		}
		prev = k

		r.Out.Echo(k)

		if k != keys.Key(expected) {
			log.WithFields(logrus.Fields{
				"expected": expected,
				"got":      string(k),
			}).Debug("key mismatch")
			r.Out.Mismatch(k, t.Resolved.ExpectedText())
			r.Out.PressAnyKey()
			if _, err := r.next(""); err != nil {
				return false, err
			}
			return false, nil
		}
		if k == "q" {
			break
		}
	}
	return true, nil
}

// next reads one effective key. A bare escape is a prefix, so the key after
// it is used instead.
func (r *Runner) next(prev keys.Key) (keys.Key, error) {
	k, err := r.Keys.ReadKey(prev)
	if err != nil {
		return "", err
	}
	if k == keys.Escape {
		if k, err = r.Keys.ReadKey(k); err != nil {
			return "", err
		}
	}
	if k == keys.Interrupt {
		return k, ErrInterrupted
	}
	return k, nil
}

func (r *Runner) pause() {
	if r.Pace <= 0 {
		return
	}
	sleep := r.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(r.Pace)
}

func (r *Runner) logger() *logrus.Entry {
	if r.Log != nil {
		return r.Log
	}
	return logging.Discard()
}
