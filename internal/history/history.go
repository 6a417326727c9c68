package history

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Run is one launcher execution.
type Run struct {
	ID           string `gorm:"primaryKey"`
	StartedAt    time.Time
	FinishedAt   sql.NullTime
	ManifestPath string
	Requirements int
	Provisioned  bool
	Launched     bool
	Fault        sql.NullString
	State        string
	ExitCode     int
}

// Delegate persists runs.
type Delegate interface {
	Open() error
	Migrate() error
	Create(value interface{}) error
	CreateOrUpdate(value interface{}) error
	List(entities interface{}) error
	Close() error
}

type Recorder struct {
	delegate Delegate
}

// Open connects the delegate and brings its schema up to date.
func Open(delegate Delegate) (recorder *Recorder, err error) {
	logrus.Debug("Connecting to run history")
	if err = delegate.Open(); err != nil {
		return
	}
	logrus.Debug("Applying run history migrations")
	if err = delegate.Migrate(); err != nil {
		delegate.Close()
		return
	}
	recorder = &Recorder{delegate: delegate}
	return
}

func NewRun(startedAt time.Time) *Run {
	return &Run{
		ID:        uuid.NewString(),
		StartedAt: startedAt,
	}
}

func (recorder *Recorder) Record(run *Run) error {
	return recorder.delegate.CreateOrUpdate(run)
}

func (recorder *Recorder) Runs() (runs []Run, err error) {
	err = recorder.delegate.List(&runs)
	return
}

func (recorder *Recorder) Close() error {
	return recorder.delegate.Close()
}
