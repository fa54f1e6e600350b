package command

// State is the execution state of a Command.
type State int

const (
	StateReady State = iota
	StateExecuting
	StateCompleted
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "READY"
	case StateExecuting:
		return "EXECUTING"
	case StateCompleted:
		return "COMPLETED"
	case StateDisposed:
		return "DISPOSED"
	default:
		return "UNKNOWN"
	}
}
