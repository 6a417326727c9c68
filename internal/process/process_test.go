package process_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"equipmenttracker.dev/launcher/internal/process"
	"equipmenttracker.dev/launcher/pkg/eventemitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helperEnvironment = "LAUNCHER_HELPER_PROCESS=1"

// The test binary re-executes itself as the child process.
func helperCommand(mode string, stdout *bytes.Buffer) process.Command {
	return process.Command{
		Path:   os.Args[0],
		Args:   []string{"-test.run=TestHelperProcess", "--", mode},
		Env:    []string{helperEnvironment},
		Stdout: stdout,
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("LAUNCHER_HELPER_PROCESS") != "1" {
		return
	}
	mode := os.Args[len(os.Args)-1]
	switch mode {
	case "exit0":
		fmt.Println("serving")
		os.Exit(0)
	case "exit3":
		os.Exit(3)
	case "serve":
		fmt.Println("serving")
		time.Sleep(time.Minute)
		os.Exit(0)
	}
	os.Exit(2)
}

func recordStates(emitter *eventemitter.EventEmitter[process.Status]) *[]process.State {
	states := []process.State{}
	emitter.Subscribe(func(status process.Status) { states = append(states, status.State) })
	return &states
}

func TestStartAndWaitNormalExit(t *testing.T) {
	stdout := &bytes.Buffer{}
	emitter := &eventemitter.EventEmitter[process.Status]{}
	states := recordStates(emitter)

	handle, err := process.Start(context.Background(), helperCommand("exit0", stdout), emitter)
	require.NoError(t, err)
	status := handle.Wait()

	assert.Equal(t, process.Status{State: process.Exited, ExitCode: 0}, status)
	assert.True(t, status.Success())
	assert.Equal(t, "serving\n", stdout.String())
	assert.Equal(t, []process.State{process.Starting, process.Running, process.Exited}, *states)
}

func TestWaitReportsExitCode(t *testing.T) {
	handle, err := process.Start(context.Background(), helperCommand("exit3", &bytes.Buffer{}), nil)
	require.NoError(t, err)

	status := handle.Wait()
	assert.Equal(t, process.Status{State: process.Exited, ExitCode: 3}, status)
	assert.False(t, status.Success())
	// A second wait returns the same status.
	assert.Equal(t, status, handle.Wait())
}

func TestCancelInterruptsChild(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("interrupt forwarding falls back to kill on windows")
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	emitter := &eventemitter.EventEmitter[process.Status]{}
	states := recordStates(emitter)

	handle, err := process.Start(ctx, helperCommand("serve", &bytes.Buffer{}), emitter)
	require.NoError(t, err)
	assert.Equal(t, process.Running, handle.Status().State)

	cancel()
	status := handle.Wait()

	assert.Equal(t, process.Interrupted, status.State)
	assert.Equal(t, process.InterruptedExitCode, status.ExitCode)
	assert.Equal(t, []process.State{process.Starting, process.Running, process.Interrupted}, *states)
}

func TestStartMissingEntryPoint(t *testing.T) {
	handle, err := process.Start(context.Background(), process.Command{Path: "equipment-tracker-missing-binary"}, nil)

	assert.Nil(t, handle)
	assert.ErrorIs(t, err, process.ErrLaunchFailed)
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestLauncherLaunch(t *testing.T) {
	launcher := process.NewLauncher(helperCommand("exit3", &bytes.Buffer{}))
	states := recordStates(launcher.StateChangedEventEmitter)

	status, err := launcher.Launch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, process.Status{State: process.Exited, ExitCode: 3}, status)
	assert.Equal(t, []process.State{process.Starting, process.Running, process.Exited}, *states)
}

func TestLauncherSingleHandle(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("interrupt forwarding falls back to kill on windows")
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	launcher := process.NewLauncher(helperCommand("serve", &bytes.Buffer{}))

	handle, err := launcher.Start(ctx)
	require.NoError(t, err)

	_, err = launcher.Start(ctx)
	assert.ErrorIs(t, err, process.ErrAlreadyRunning)

	cancel()
	assert.Equal(t, process.Interrupted, handle.Wait().State)

	// Once the previous child is gone a new one may start.
	nextContext, nextCancel := context.WithCancel(context.Background())
	next, err := launcher.Start(nextContext)
	require.NoError(t, err)
	nextCancel()
	assert.Equal(t, process.Interrupted, next.Wait().State)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "starting", process.Starting.String())
	assert.Equal(t, "running", process.Running.String())
	assert.Equal(t, "exited", process.Exited.String())
	assert.Equal(t, "interrupted", process.Interrupted.String())
}
