//go:build !windows

package process

import (
	"os"
	"syscall"
)

func exitCode(processState *os.ProcessState) (code int, signaled bool) {
	if status, ok := processState.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal()), true
	}
	return processState.ExitCode(), false
}
