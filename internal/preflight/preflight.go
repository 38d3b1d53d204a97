// Package preflight provides pre-flight validation for required binaries
// and the deploy directory layout.
package preflight

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/cameronsjo/stevedore/internal/config"
)

// BinaryCheck represents an external binary and its purpose.
type BinaryCheck struct {
	Name        string
	Required    bool   // false = warning only
	InstallHint string // e.g., "brew install sops" or "https://..."
}

// requiredBinaries defines binaries that must be present for stevedore to function.
var requiredBinaries = []BinaryCheck{
	{
		Name:        "git",
		Required:    true,
		InstallHint: "Install git: https://git-scm.com/downloads",
	},
	{
		Name:        "gcloud",
		Required:    true,
		InstallHint: "Install the Google Cloud CLI: https://cloud.google.com/sdk/docs/install",
	},
}

// optionalBinaries defines binaries that enhance stevedore functionality
// but are not strictly required. The docker daemon is only needed for the
// build stage, sops only when an environment carries encrypted secrets.
var optionalBinaries = []BinaryCheck{
	{
		Name:        "docker",
		Required:    false,
		InstallHint: "Install Docker: https://docs.docker.com/get-docker/",
	},
	{
		Name:        "sops",
		Required:    false,
		InstallHint: "Install sops: brew install sops",
	},
}

// CheckBinaries validates all required and optional binaries are available.
// Returns list of missing binaries with install hints.
func CheckBinaries() []BinaryCheck {
	var missing []BinaryCheck

	allBinaries := append(requiredBinaries, optionalBinaries...)
	for _, bin := range allBinaries {
		if _, err := exec.LookPath(bin.Name); err != nil {
			missing = append(missing, bin)
		}
	}

	return missing
}

// CheckRequiredBinaries validates only required binaries are available.
// Returns list of missing required binaries.
func CheckRequiredBinaries() []BinaryCheck {
	var missing []BinaryCheck

	for _, bin := range requiredBinaries {
		if _, err := exec.LookPath(bin.Name); err != nil {
			missing = append(missing, bin)
		}
	}

	return missing
}

// CheckOptionalBinaries validates optional binaries and returns missing ones.
// Returns list of missing optional binaries as warnings.
func CheckOptionalBinaries() []BinaryCheck {
	var missing []BinaryCheck

	for _, bin := range optionalBinaries {
		if _, err := exec.LookPath(bin.Name); err != nil {
			missing = append(missing, bin)
		}
	}

	return missing
}

// CheckAll performs all binary checks and returns warnings and errors.
// Errors are for missing required binaries, warnings are for missing optional binaries.
func CheckAll() (warnings []string, errors []string) {
	for _, bin := range CheckRequiredBinaries() {
		errors = append(errors, bin.Name+": "+bin.InstallHint)
	}

	for _, bin := range CheckOptionalBinaries() {
		warnings = append(warnings, bin.Name+": "+bin.InstallHint)
	}

	return warnings, errors
}

// IsBinaryAvailable checks if a specific binary is available in PATH.
func IsBinaryAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// LayoutProblem describes one defect in the deploy directory layout.
type LayoutProblem struct {
	Path   string
	Detail string
}

func (p LayoutProblem) String() string {
	return fmt.Sprintf("%s: %s", p.Path, p.Detail)
}

// CheckLayout validates the deploy directory has everything a deployment
// invocation will touch: the config directory, at least one environment
// document, and the two manifest templates.
func CheckLayout(layout *config.Layout) []LayoutProblem {
	var problems []LayoutProblem

	if _, err := os.Stat(layout.ConfigDir()); err != nil {
		problems = append(problems, LayoutProblem{
			Path:   layout.ConfigDir(),
			Detail: "config directory not found (run `stevedore init`)",
		})
		return problems
	}

	envs, err := layout.Environments()
	if err != nil {
		problems = append(problems, LayoutProblem{Path: layout.ConfigDir(), Detail: err.Error()})
	} else if len(envs) == 0 {
		problems = append(problems, LayoutProblem{
			Path:   layout.ConfigDir(),
			Detail: "no environment documents found",
		})
	}

	for _, tmpl := range []string{layout.ServiceTemplatePath(), layout.JobTemplatePath()} {
		if _, err := os.Stat(tmpl); err != nil {
			problems = append(problems, LayoutProblem{Path: tmpl, Detail: "template not found"})
		}
	}

	return problems
}
