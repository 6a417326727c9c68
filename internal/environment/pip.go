package environment

import (
	"context"
	"fmt"
	"io"
	"os"

	"equipmenttracker.dev/launcher/internal/manifest"
	"equipmenttracker.dev/launcher/internal/process"
	"github.com/sirupsen/logrus"
)

// Pip installs requirements with `python -m pip`.
type Pip struct {
	Python string
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

func NewPip(python string, dir string) *Pip {
	return &Pip{
		Python: python,
		Dir:    dir,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Arguments returns the interpreter arguments installing requirements, or
// nil when there is nothing to install.
func (pip *Pip) Arguments(requirements *manifest.Manifest) []string {
	arguments := []string{"-m", "pip", "install", "--disable-pip-version-check", "--no-input"}
	switch requirements.Format {
	case manifest.PyProject:
		if len(requirements.Requirements) == 0 {
			return nil
		}
		for _, requirement := range requirements.Requirements {
			arguments = append(arguments, requirement.String())
		}
	default:
		arguments = append(arguments, "-r", requirements.Path)
	}
	return arguments
}

func (pip *Pip) Install(ctx context.Context, requirements *manifest.Manifest) error {
	arguments := pip.Arguments(requirements)
	if arguments == nil {
		logrus.Debugf("No requirements declared in %s", requirements.Path)
		return nil
	}
	handle, err := process.Start(ctx, process.Command{
		Path:   pip.Python,
		Args:   arguments,
		Dir:    pip.Dir,
		Stdout: pip.Stdout,
		Stderr: pip.Stderr,
	}, nil)
	if err != nil {
		return err
	}
	status := handle.Wait()
	switch {
	case status.State == process.Interrupted:
		return fmt.Errorf("pip install interrupted: %w", ctx.Err())
	case !status.Success():
		return fmt.Errorf("pip install exited with status %d", status.ExitCode)
	}
	return nil
}
