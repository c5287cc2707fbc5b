package process

// State represents the lifecycle state of a process
type State string

const (
	StateNew        State = "NEW"
	StateReady      State = "READY"
	StateRunning    State = "RUNNING"
	StateBlocked    State = "BLOCKED"
	StateTerminated State = "TERMINATED"
)

func (s State) IsTerminated() bool {
	return s == StateTerminated
}
