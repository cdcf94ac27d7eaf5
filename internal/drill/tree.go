package drill

import (
	"fmt"
	"math/rand/v2"
	"sync/atomic"

	"github.com/abhisek/keydrill/internal/randomize"
)

// ID indexes a task within its Tree.
type ID int

// ordinals hands out task ordinals across every tree in the process.
var ordinals atomic.Int64

// Task is one drill item.
type Task struct {
	ID      ID
	Ordinal int64

	// Base is the template as declared; Resolved is Base with the current
	// placeholder assignment applied.
	Base     randomize.Template
	Resolved randomize.Template

	// Applied is true when the current assignment changed the template.
	Applied bool

	// Children are executed in order after this task's own keys match.
	Children []ID

	Mastered bool
	State    State

	// Runs counts executions, including the current one.
	Runs int
}

// Tree owns every task node. Sub-tasks are referenced by ID from their parent.
type Tree struct {
	tasks []*Task
	roots []ID
	rng   *rand.Rand
}

// NewTree creates an empty tree drawing placeholder values from rng.
func NewTree(rng *rand.Rand) *Tree {
	return &Tree{rng: rng}
}

// Add creates a top-level task.
func (t *Tree) Add(prompt, keys string) ID {
	id := t.newTask(prompt, keys)
	t.roots = append(t.roots, id)
	return id
}

// AddChild creates a sub-task of parent.
func (t *Tree) AddChild(parent ID, prompt, keys string) (ID, error) {
	p := t.Task(parent)
	if p == nil {
		return 0, fmt.Errorf("add sub-task: unknown parent %d", parent)
	}
	id := t.newTask(prompt, keys)
	p.Children = append(p.Children, id)
	return id, nil
}

func (t *Tree) newTask(prompt, keys string) ID {
	id := ID(len(t.tasks))
	task := &Task{
		ID:      id,
		Ordinal: ordinals.Add(1),
		Base:    randomize.Template{Prompt: prompt, Keys: keys},
		State:   StateNotStarted,
	}
	t.tasks = append(t.tasks, task)
	t.Reroll(id)
	return id
}

// Task returns the task with the given ID, or nil.
func (t *Tree) Task(id ID) *Task {
	if id < 0 || int(id) >= len(t.tasks) {
		return nil
	}
	return t.tasks[id]
}

// Roots returns the top-level task IDs in declaration order.
func (t *Tree) Roots() []ID {
	out := make([]ID, len(t.roots))
	copy(out, t.roots)
	return out
}

// Len returns the number of tasks, sub-tasks included.
func (t *Tree) Len() int {
	return len(t.tasks)
}

// Reroll draws a fresh assignment and resolves the task's base template.
func (t *Tree) Reroll(id ID) {
	task := t.Task(id)
	if task == nil {
		return
	}
	task.Resolved, task.Applied = randomize.Apply(randomize.NewAssignment(t.rng), task.Base)
}
