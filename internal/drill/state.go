package drill

// State is a task's position in its execution lifecycle.
type State string

const (
	StateNotStarted State = "not-started"
	StateInProgress State = "in-progress"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)
