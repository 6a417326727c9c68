package process

// State of a child process handle.
type State int

const (
	Starting State = iota
	Running
	Exited
	Interrupted
)

// Exit code reported for a child stopped by the operator when the platform
// gives no better one (128 + SIGINT).
const InterruptedExitCode = 130

func (state State) String() string {
	switch state {
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Exited:
		return "exited"
	case Interrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Status is a handle state plus, once the child has ended, its exit code.
type Status struct {
	State    State
	ExitCode int
}

// Ended reports whether the child is gone.
func (status Status) Ended() bool {
	return status.State == Exited || status.State == Interrupted
}

func (status Status) Success() bool {
	return status.State == Exited && status.ExitCode == 0
}
