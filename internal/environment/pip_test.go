package environment_test

import (
	"context"
	"os/exec"
	"testing"

	"equipmenttracker.dev/launcher/internal/environment"
	"equipmenttracker.dev/launcher/internal/manifest"
	"equipmenttracker.dev/launcher/internal/process"
	"github.com/stretchr/testify/assert"
)

func TestPipArgumentsRequirementsFile(t *testing.T) {
	pip := environment.NewPip("python", ".")
	arguments := pip.Arguments(&manifest.Manifest{
		Path:   "/srv/tracker/requirements.txt",
		Format: manifest.Requirements,
	})
	assert.Equal(t, []string{"-m", "pip", "install", "--disable-pip-version-check", "--no-input",
		"-r", "/srv/tracker/requirements.txt"}, arguments)
}

func TestPipArgumentsPyProject(t *testing.T) {
	pip := environment.NewPip("python", ".")
	arguments := pip.Arguments(&manifest.Manifest{
		Path:   "pyproject.toml",
		Format: manifest.PyProject,
		Requirements: []manifest.Requirement{
			{Name: "flask", Constraint: ">=3"},
			{Name: "flask-cors"},
		},
	})
	assert.Equal(t, []string{"-m", "pip", "install", "--disable-pip-version-check", "--no-input",
		"flask>=3", "flask-cors"}, arguments)
}

func TestPipArgumentsEmptyPyProject(t *testing.T) {
	pip := environment.NewPip("python", ".")
	assert.Nil(t, pip.Arguments(&manifest.Manifest{Format: manifest.PyProject}))
}

func TestPipInstallNothingToInstall(t *testing.T) {
	pip := environment.NewPip("equipment-tracker-missing-python", ".")
	assert.NoError(t, pip.Install(context.Background(), &manifest.Manifest{Format: manifest.PyProject}))
}

func TestPipInstallMissingInterpreter(t *testing.T) {
	pip := environment.NewPip("equipment-tracker-missing-python", ".")
	err := pip.Install(context.Background(), &manifest.Manifest{Path: "requirements.txt"})
	assert.ErrorIs(t, err, process.ErrLaunchFailed)
	assert.ErrorIs(t, err, exec.ErrNotFound)
}
