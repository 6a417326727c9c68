package manifest

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalid marks a pyproject manifest that was read but could not be
// decoded.
var ErrInvalid = errors.New("invalid manifest")

var byteOrderMark = []byte("\ufeff")

// Load reads the manifest at path. The format is chosen from the file name:
// pyproject.toml files are read as TOML, anything else as a pip
// requirements file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, byteOrderMark)
	var requirements []Requirement
	format := FormatOf(path)
	switch format {
	case PyProject:
		requirements, err = ParsePyProject(data)
	default:
		requirements, err = ParseRequirements(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrInvalid, path, err)
	}
	return &Manifest{
		Path:         path,
		Format:       format,
		Requirements: requirements,
	}, nil
}

func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return PyProject
	}
	return Requirements
}

// ParseRequirements reads a pip requirements file. Comments, blank lines and
// option lines (-r, --index-url, ...) are skipped; backslash continuations
// are joined. Lines that are not a name with a constraint (local archives,
// URLs, editable paths) are kept whole in Name for pip to interpret.
func ParseRequirements(data []byte) ([]Requirement, error) {
	requirements := []Requirement{}
	scanner := bufio.NewScanner(bytes.NewReader(bytes.TrimPrefix(data, byteOrderMark)))
	pending := ""
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasSuffix(line, "\\") {
			pending += strings.TrimSuffix(line, "\\")
			continue
		}
		line = pending + line
		pending = ""

		if index := strings.Index(line, " #"); index >= 0 {
			line = line[:index]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		requirement, err := ParseRequirement(line)
		if err != nil || isLocation(requirement) {
			requirement = Requirement{Name: line}
		}
		requirements = append(requirements, requirement)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return requirements, nil
}

// isLocation reports whether a split line was really a path or URL, such as
// ./wheels/tracker.whl, /opt/tracker.tar.gz or https://host/tracker.zip.
func isLocation(requirement Requirement) bool {
	if strings.Trim(requirement.Name, ".") == "" {
		return true
	}
	return strings.HasPrefix(requirement.Constraint, "/") ||
		strings.HasPrefix(requirement.Constraint, "\\") ||
		strings.HasPrefix(requirement.Constraint, ":")
}

type pyProject struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
}

// ParsePyProject reads [project].dependencies from a pyproject.toml file.
func ParsePyProject(data []byte) ([]Requirement, error) {
	var document pyProject
	if _, err := toml.Decode(string(data), &document); err != nil {
		return nil, err
	}
	requirements := make([]Requirement, 0, len(document.Project.Dependencies))
	for index, dependency := range document.Project.Dependencies {
		requirement, err := ParseRequirement(dependency)
		if err != nil {
			return nil, fmt.Errorf("dependency %d: %w", index, err)
		}
		requirements = append(requirements, requirement)
	}
	return requirements, nil
}

// ParseRequirement splits a PEP 508 style specifier into name and
// constraint. Extras, version specifiers, URLs and markers all stay in the
// constraint.
func ParseRequirement(specifier string) (Requirement, error) {
	specifier = strings.TrimSpace(specifier)
	end := strings.IndexFunc(specifier, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' ||
			r == '-' || r == '_' || r == '.')
	})
	if end == -1 {
		end = len(specifier)
	}
	if end == 0 {
		return Requirement{}, fmt.Errorf("invalid requirement %q", specifier)
	}
	return Requirement{
		Name:       specifier[:end],
		Constraint: strings.TrimSpace(specifier[end:]),
	}, nil
}
