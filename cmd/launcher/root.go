package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"equipmenttracker.dev/launcher/internal/bootstrap"
	"equipmenttracker.dev/launcher/internal/configloader"
	"equipmenttracker.dev/launcher/internal/console"
	"equipmenttracker.dev/launcher/internal/environment"
	"equipmenttracker.dev/launcher/internal/process"
	"equipmenttracker.dev/launcher/internal/provisioner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd(exitCode *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "launcher",
		Short:         "Install the Equipment Tracker requirements and start its server",
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Trap the operator's interrupt so the console hold still happens;
			// the child receives it through context cancellation.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			configuration, err := configloader.LoadConfiguration(APPLICATION_NAME, "")
			if err != nil {
				// Without a configuration the hold setting is unknown; keep the
				// error on screen anyway.
				fmt.Fprintln(cmd.OutOrStdout(), "error: "+err.Error())
				if holdError := console.NewKeypressHold(cmd.InOrStdin(), cmd.OutOrStdout()).Hold(); holdError != nil {
					logrus.Errorf("%+v", holdError)
				}
				return err
			}
			*exitCode = run(ctx, configuration, streams{
				in:     cmd.InOrStdin(),
				out:    cmd.OutOrStdout(),
				errOut: cmd.ErrOrStderr(),
			})
			return nil
		},
	}
	return cmd
}

type streams struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// run wires the launcher from configuration and performs one run, returning
// the process exit code.
func run(ctx context.Context, configuration configloader.Config, streams streams) int {
	logrus.SetOutput(streams.errOut)
	if level, err := logrus.ParseLevel(configuration.LogLevel); err != nil {
		logrus.Errorf("%+v", err)
	} else {
		logrus.SetLevel(level)
	}
	logrus.Debugf("Launching %s v.%s", configuration.ApplicationName, version)

	var holder console.Holder = console.NoHold{}
	if configuration.Hold {
		holder = console.NewKeypressHold(streams.in, streams.out)
	}
	operatorConsole := console.NewConsole(streams.out, holder,
		configuration.ApplicationName, configuration.ServerURL, configuration.Color)

	pip := environment.NewPip(configuration.Python, configuration.WorkDir)
	pip.Stdout = streams.out
	pip.Stderr = streams.errOut

	manifestPath := configuration.ManifestPath
	if !filepath.IsAbs(manifestPath) {
		manifestPath = filepath.Join(configuration.WorkDir, manifestPath)
	}

	launcher := process.NewLauncher(process.Command{
		Path:   configuration.Python,
		Args:   []string{configuration.EntryPoint},
		Dir:    configuration.WorkDir,
		Stdin:  streams.in,
		Stdout: streams.out,
		Stderr: streams.errOut,
	})
	launcher.StateChangedEventEmitter.Subscribe(func(status process.Status) {
		logrus.Debugf("Server %s", status.State)
	})

	controller := bootstrap.NewController(
		provisioner.NewProvisioner(manifestPath, pip),
		launcher,
		operatorConsole,
		configuration.HaltOnProvisioningFailure)

	if configuration.RunHistory != "" {
		if recorder := openHistory(configuration.RunHistory); recorder != nil {
			defer recorder.Close()
			controller.FinishedEventEmitter.Subscribe(func(outcome bootstrap.Outcome) {
				recordOutcome(recorder, manifestPath, outcome)
			})
		}
	}

	return controller.Run(ctx).ExitCode()
}
