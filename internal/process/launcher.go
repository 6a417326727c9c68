package process

import (
	"context"
	"errors"
	"sync"

	"equipmenttracker.dev/launcher/pkg/eventemitter"
)

var ErrAlreadyRunning = errors.New("a child process is already running")

// Launcher starts a fixed command and keeps at most one handle alive.
type Launcher struct {
	command Command
	mutex   sync.Mutex
	current *Handle

	// Event emitters
	StateChangedEventEmitter *eventemitter.EventEmitter[Status]
}

func NewLauncher(command Command) *Launcher {
	return &Launcher{
		command:                  command,
		StateChangedEventEmitter: &eventemitter.EventEmitter[Status]{},
	}
}

// Start spawns the command unless a previous handle is still running.
func (launcher *Launcher) Start(ctx context.Context) (*Handle, error) {
	launcher.mutex.Lock()
	defer launcher.mutex.Unlock()
	if launcher.current != nil && !launcher.current.Status().Ended() {
		return nil, ErrAlreadyRunning
	}
	handle, err := Start(ctx, launcher.command, launcher.StateChangedEventEmitter)
	if err != nil {
		return nil, err
	}
	launcher.current = handle
	return handle, nil
}

// Launch starts the command and waits for it to end.
func (launcher *Launcher) Launch(ctx context.Context) (Status, error) {
	handle, err := launcher.Start(ctx)
	if err != nil {
		return Status{}, err
	}
	return handle.Wait(), nil
}
