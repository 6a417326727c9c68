package bootstrap

import (
	"time"

	"equipmenttracker.dev/launcher/internal/manifest"
	"equipmenttracker.dev/launcher/internal/process"
)

// Fault classifies how a run went wrong.
type Fault int

const (
	NoFault Fault = iota
	MissingManifest
	ProvisioningFailed
	LaunchFailed
	InterruptedByOperator
)

func (fault Fault) String() string {
	switch fault {
	case NoFault:
		return "None"
	case MissingManifest:
		return "MissingManifest"
	case ProvisioningFailed:
		return "ProvisioningFailed"
	case LaunchFailed:
		return "LaunchFailed"
	case InterruptedByOperator:
		return "InterruptedByOperator"
	default:
		return "Unknown"
	}
}

// Launcher exit codes for runs where the server never reported its own.
const (
	ExitMissingManifest    = 66
	ExitProvisioningFailed = 69
	ExitLaunchFailed       = 127
)

// Outcome summarises one launcher run.
type Outcome struct {
	StartedAt  time.Time
	FinishedAt time.Time

	Fault Fault
	Err   error

	Requirements *manifest.Manifest
	Provisioned  bool
	// Installer failure tolerated before starting the server anyway.
	ProvisioningError error

	Launched bool
	Status   process.Status
}

func (outcome Outcome) ExitCode() int {
	switch {
	case outcome.Fault == MissingManifest:
		return ExitMissingManifest
	case outcome.Fault == LaunchFailed:
		return ExitLaunchFailed
	case outcome.Launched:
		return outcome.Status.ExitCode
	case outcome.Fault == InterruptedByOperator:
		return process.InterruptedExitCode
	case outcome.Fault == ProvisioningFailed:
		return ExitProvisioningFailed
	default:
		return 0
	}
}
