package manifest

import (
	"regexp"
	"strings"
)

// Format identifies the host ecosystem file a manifest was read from.
type Format int

const (
	Requirements Format = iota // pip requirements file
	PyProject                  // pyproject.toml [project] table
)

func (format Format) String() string {
	switch format {
	case PyProject:
		return "pyproject"
	default:
		return "requirements"
	}
}

// Requirement is one declared package and its version constraint, both as
// written in the manifest.
type Requirement struct {
	Name       string
	Constraint string
}

// NormalizedName returns the name compared the way Python packaging does.
func (requirement Requirement) NormalizedName() string {
	return NormalizeName(requirement.Name)
}

func (requirement Requirement) String() string {
	return requirement.Name + requirement.Constraint
}

// Manifest is the ordered list of requirements read from Path.
type Manifest struct {
	Path         string
	Format       Format
	Requirements []Requirement
}

var separatorsRun = regexp.MustCompile(`[-_.]+`)

func NormalizeName(name string) string {
	return separatorsRun.ReplaceAllString(strings.ToLower(name), "-")
}
