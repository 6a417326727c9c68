package bootstrap

import (
	"context"
	"errors"
	"time"

	"equipmenttracker.dev/launcher/internal/console"
	"equipmenttracker.dev/launcher/internal/manifest"
	"equipmenttracker.dev/launcher/internal/process"
	"equipmenttracker.dev/launcher/internal/provisioner"
	"equipmenttracker.dev/launcher/pkg/eventemitter"
	"github.com/sirupsen/logrus"
)

type Provisioner interface {
	Provision(ctx context.Context) (*manifest.Manifest, error)
}

type Launcher interface {
	Launch(ctx context.Context) (process.Status, error)
}

// Controller runs provisioning, the server and the console hold, strictly
// one after the other.
type Controller struct {
	provisioner               Provisioner
	launcher                  Launcher
	console                   *console.Console
	haltOnProvisioningFailure bool
	now                       func() time.Time

	// Event emitters
	FinishedEventEmitter *eventemitter.EventEmitter[Outcome]
}

func NewController(provisioner Provisioner, launcher Launcher, console *console.Console, haltOnProvisioningFailure bool) *Controller {
	if provisioner == nil || launcher == nil || console == nil {
		panic("Controller collaborators cannot be nil")
	}
	return &Controller{
		provisioner:               provisioner,
		launcher:                  launcher,
		console:                   console,
		haltOnProvisioningFailure: haltOnProvisioningFailure,
		now:                       time.Now,
		FinishedEventEmitter:      &eventemitter.EventEmitter[Outcome]{},
	}
}

// Run performs one launcher run. The console hold happens on every path,
// after the outcome has been emitted.
func (controller *Controller) Run(ctx context.Context) (outcome Outcome) {
	outcome.StartedAt = controller.now()
	defer func() {
		outcome.FinishedAt = controller.now()
		logrus.Debugf("Run finished: fault %s, exit code %d", outcome.Fault, outcome.ExitCode())
		controller.FinishedEventEmitter.Emit(outcome)
		if err := controller.console.Hold(); err != nil {
			logrus.Error("Cannot hold the console")
			logrus.Errorf("%+v", err)
		}
	}()

	controller.console.Banner()
	controller.console.Installing()
	requirements, err := controller.provisioner.Provision(ctx)
	outcome.Requirements = requirements
	if err != nil {
		controller.console.Fault(err)
		switch {
		case errors.Is(err, provisioner.ErrMissingManifest):
			outcome.Fault = MissingManifest
			outcome.Err = err
			return
		case ctx.Err() != nil:
			outcome.Fault = InterruptedByOperator
			outcome.Err = err
			return
		}
		outcome.Fault = ProvisioningFailed
		outcome.Err = err
		outcome.ProvisioningError = err
		if controller.haltOnProvisioningFailure {
			logrus.Debug("Not starting the server after the provisioning failure")
			return
		}
	} else {
		outcome.Provisioned = true
	}
	if ctx.Err() != nil {
		outcome.Fault = InterruptedByOperator
		outcome.Err = ctx.Err()
		return
	}

	controller.console.Starting()
	controller.console.Instructions()
	status, err := controller.launcher.Launch(ctx)
	if err != nil {
		controller.console.Fault(err)
		outcome.Err = err
		if ctx.Err() != nil {
			outcome.Fault = InterruptedByOperator
			return
		}
		outcome.Fault = LaunchFailed
		return
	}
	outcome.Launched = true
	outcome.Status = status
	if status.State == process.Interrupted {
		outcome.Fault = InterruptedByOperator
		outcome.Err = nil
	}
	return
}
