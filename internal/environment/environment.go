package environment

import (
	"context"

	"equipmenttracker.dev/launcher/internal/manifest"
)

// Environment is the package set the server runs against. Installing is a
// process-wide side effect that outlives the launcher.
type Environment interface {
	Install(ctx context.Context, requirements *manifest.Manifest) error
}
