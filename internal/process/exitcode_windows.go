package process

import "os"

func exitCode(processState *os.ProcessState) (code int, signaled bool) {
	return processState.ExitCode(), false
}
