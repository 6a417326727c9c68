package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"equipmenttracker.dev/launcher/pkg/eventemitter"
	"github.com/sirupsen/logrus"
)

var ErrLaunchFailed = errors.New("launch failed")

// Command describes the program to run. Nil streams follow os/exec: stdin
// reads from the null device and output is discarded.
type Command struct {
	Path   string
	Args   []string
	Dir    string
	Env    []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (command Command) String() string {
	return exec.Command(command.Path, command.Args...).String()
}

// Handle owns a started child process.
type Handle struct {
	command      *exec.Cmd
	context      context.Context
	stateChanged *eventemitter.EventEmitter[Status]
	waitOnce     sync.Once
	mutex        sync.Mutex
	status       Status
}

// Start spawns command and returns its handle in the Running state.
// Cancelling ctx forwards an interrupt to the child. Every state transition
// is emitted on stateChanged when it is not nil.
func Start(ctx context.Context, command Command, stateChanged *eventemitter.EventEmitter[Status]) (*Handle, error) {
	process := exec.CommandContext(ctx, command.Path, command.Args...)
	process.Dir = command.Dir
	if len(command.Env) > 0 {
		process.Env = append(os.Environ(), command.Env...)
	}
	process.Stdin = command.Stdin
	process.Stdout = command.Stdout
	process.Stderr = command.Stderr
	process.Cancel = func() error {
		return interrupt(process.Process)
	}

	handle := &Handle{
		command:      process,
		context:      ctx,
		stateChanged: stateChanged,
	}
	handle.transition(Status{State: Starting})
	logrus.Debugf("Starting %s", command)
	if err := process.Start(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLaunchFailed, err)
	}
	handle.transition(Status{State: Running})
	return handle, nil
}

// Wait blocks until the child ends. It is safe to call more than once.
func (handle *Handle) Wait() Status {
	handle.waitOnce.Do(func() {
		err := handle.command.Wait()
		if err != nil {
			logrus.Debugf("%s: %+v", handle.command.Path, err)
		}
		handle.transition(classify(handle.command.ProcessState, handle.context.Err() != nil))
	})
	return handle.Status()
}

func (handle *Handle) Status() Status {
	handle.mutex.Lock()
	defer handle.mutex.Unlock()
	return handle.status
}

func (handle *Handle) transition(status Status) {
	handle.mutex.Lock()
	handle.status = status
	handle.mutex.Unlock()
	if handle.stateChanged != nil {
		handle.stateChanged.Emit(status)
	}
}

func classify(processState *os.ProcessState, cancelled bool) Status {
	if processState == nil {
		if cancelled {
			return Status{State: Interrupted, ExitCode: InterruptedExitCode}
		}
		return Status{State: Exited, ExitCode: -1}
	}
	code, signaled := exitCode(processState)
	if signaled || cancelled {
		if code == 0 {
			code = InterruptedExitCode
		}
		return Status{State: Interrupted, ExitCode: code}
	}
	return Status{State: Exited, ExitCode: code}
}

func interrupt(process *os.Process) error {
	if err := process.Signal(os.Interrupt); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			return err
		}
		// Interrupt delivery is not supported everywhere (Windows).
		return process.Kill()
	}
	return nil
}
