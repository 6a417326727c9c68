package main

import (
	"database/sql"

	"equipmenttracker.dev/launcher/internal/bootstrap"
	"equipmenttracker.dev/launcher/internal/history"
	"equipmenttracker.dev/launcher/internal/history/sqlite"
	"github.com/sirupsen/logrus"
)

// openHistory returns nil when the run history cannot be opened; the
// launcher runs without it.
func openHistory(path string) *history.Recorder {
	recorder, err := history.Open(&sqlite.SQLiteDelegate{Path: path})
	if err != nil {
		logrus.Error("Cannot open the run history")
		logrus.Errorf("%+v", err)
		return nil
	}
	return recorder
}

func recordOutcome(recorder *history.Recorder, manifestPath string, outcome bootstrap.Outcome) {
	run := history.NewRun(outcome.StartedAt)
	run.FinishedAt = sql.NullTime{Time: outcome.FinishedAt, Valid: true}
	run.ManifestPath = manifestPath
	if outcome.Requirements != nil {
		run.Requirements = len(outcome.Requirements.Requirements)
	}
	run.Provisioned = outcome.Provisioned
	run.Launched = outcome.Launched
	if outcome.Fault != bootstrap.NoFault {
		run.Fault = sql.NullString{String: outcome.Fault.String(), Valid: true}
	}
	if outcome.Launched {
		run.State = outcome.Status.State.String()
	}
	run.ExitCode = outcome.ExitCode()

	if err := recorder.Record(run); err != nil {
		logrus.Error("Cannot record the run")
		logrus.Errorf("%+v", err)
	}
}
