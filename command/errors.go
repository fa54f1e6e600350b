package command

import (
	"errors"
	"fmt"
)

// ErrNeverCompletes is returned by Buffer.OnCompleted: a buffer drains
// forever and has no terminal completed state, so a completion subscription
// on it is a programming error. Subscribe to OnIdle instead.
var ErrNeverCompletes = errors.New("command: buffer never completes; subscribe to OnIdle instead")

// InvalidStateError reports an operation invoked while the command was in a
// state that forbids it, e.g. Execute on an already-executing command. It
// signals a contract violation by the caller and is never retried.
type InvalidStateError struct {
	Op    string
	State State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("command: cannot %s while %s", e.Op, e.State)
}

var _ error = (*InvalidStateError)(nil)
