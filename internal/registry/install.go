package registry

import (
	"fmt"
	"strings"
)

// InstallResult reports a simulated installation. Nothing is written and no
// dependency graph is walked; the steps are labels only.
type InstallResult struct {
	Success              bool     `json:"success"`
	Component            string   `json:"component"`
	Steps                []string `json:"steps"`
	FilesInstalled       int      `json:"files_installed"`
	DependenciesResolved int      `json:"dependencies_resolved"`
}

// SimulateInstall builds the install step list for name.
func (s *Store) SimulateInstall(name string) (InstallResult, error) {
	rec, err := s.GetComponent(name)
	if err != nil {
		return InstallResult{}, err
	}

	return InstallResult{
		Success:              true,
		Component:            rec.Name,
		Steps:                installSteps(rec),
		FilesInstalled:       len(rec.Files),
		DependenciesResolved: len(rec.Dependencies) + len(rec.RegistryDependencies),
	}, nil
}

func installSteps(rec ComponentRecord) []string {
	steps := make([]string, 0, 6)
	steps = append(steps, fmt.Sprintf("Downloading %s...", rec.Name))

	if len(rec.RegistryDependencies) > 0 {
		steps = append(steps, "Installing registry dependencies: "+strings.Join(rec.RegistryDependencies, ", "))
	}

	steps = append(steps, "Resolving dependencies...", "Installing files...")

	// npm dependencies go immediately before the final step.
	if len(rec.Dependencies) > 0 {
		steps = append(steps, "Installing npm dependencies: "+strings.Join(rec.Dependencies, ", "))
	}

	return append(steps, "Updating configuration...")
}
