package mock

import (
	"context"

	"equipmenttracker.dev/launcher/internal/manifest"
)

// Environment keeps the installed package set in memory.
type Environment struct {
	Error         error
	Installed     map[string]string
	Installations []string
	Calls         int
}

func (m *Environment) Install(ctx context.Context, requirements *manifest.Manifest) error {
	m.Calls++
	if m.Error != nil {
		return m.Error
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.Installed == nil {
		m.Installed = make(map[string]string)
	}
	for _, requirement := range requirements.Requirements {
		name := requirement.NormalizedName()
		if _, ok := m.Installed[name]; ok {
			continue
		}
		m.Installed[name] = requirement.Constraint
		m.Installations = append(m.Installations, name)
	}
	return nil
}
