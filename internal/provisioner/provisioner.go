package provisioner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"equipmenttracker.dev/launcher/internal/environment"
	"equipmenttracker.dev/launcher/internal/manifest"
	"github.com/sirupsen/logrus"
)

var (
	ErrMissingManifest    = errors.New("missing manifest")
	ErrProvisioningFailed = errors.New("provisioning failed")
)

// Provisioner installs the packages declared by a manifest into an
// environment.
type Provisioner struct {
	manifestPath string
	environment  environment.Environment
}

func NewProvisioner(manifestPath string, environment environment.Environment) *Provisioner {
	if environment == nil {
		panic("Provisioner environment is nil")
	}
	return &Provisioner{
		manifestPath: manifestPath,
		environment:  environment,
	}
}

// Provision reads the manifest and runs the installer once. The manifest is
// returned whenever it could be read, even if installing failed.
func (provisioner *Provisioner) Provision(ctx context.Context) (requirements *manifest.Manifest, err error) {
	manifestPath := provisioner.manifestPath
	if absolutePath, absoluteError := filepath.Abs(manifestPath); absoluteError == nil {
		manifestPath = absolutePath
	}

	if requirements, err = manifest.Load(manifestPath); err != nil {
		if errors.Is(err, manifest.ErrInvalid) {
			return nil, fmt.Errorf("%w: %w", ErrProvisioningFailed, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrMissingManifest, err)
	}
	logrus.Debugf("Installing %d requirements from %s", len(requirements.Requirements), requirements.Path)

	if err = provisioner.environment.Install(ctx, requirements); err != nil {
		return requirements, fmt.Errorf("%w: %w", ErrProvisioningFailed, err)
	}
	logrus.Debug("Requirements installed")
	return requirements, nil
}
