// Package preflight validates that the external tools the deployment
// workflow shells out to are actually available.
package preflight

import (
	"os/exec"
)

// BinaryCheck represents a required binary and its purpose.
type BinaryCheck struct {
	Name        string
	Required    bool   // false = warning only
	InstallHint string // e.g., "brew install sops" or "https://..."
}

// requiredBinaries defines binaries the apply step depends on. The
// generator itself never invokes them, but generated output is useless
// without them.
var requiredBinaries = []BinaryCheck{
	{
		Name:        "kubectl",
		Required:    true,
		InstallHint: "Install kubectl: https://kubernetes.io/docs/tasks/tools/",
	},
}

// optionalBinaries enhance the workflow but are not strictly required.
var optionalBinaries = []BinaryCheck{
	{
		Name:        "sops",
		Required:    false,
		InstallHint: "Install sops: brew install sops (needed for encrypted credentials files)",
	},
	{
		Name:        "docker",
		Required:    false,
		InstallHint: "Install Docker: https://docs.docker.com/get-docker/",
	},
}

// CheckRequiredBinaries returns the required binaries missing from PATH.
func CheckRequiredBinaries() []BinaryCheck {
	var missing []BinaryCheck

	for _, bin := range requiredBinaries {
		if _, err := exec.LookPath(bin.Name); err != nil {
			missing = append(missing, bin)
		}
	}

	return missing
}

// CheckOptionalBinaries returns the optional binaries missing from PATH.
func CheckOptionalBinaries() []BinaryCheck {
	var missing []BinaryCheck

	for _, bin := range optionalBinaries {
		if _, err := exec.LookPath(bin.Name); err != nil {
			missing = append(missing, bin)
		}
	}

	return missing
}

// CheckAll performs all pre-flight checks.
// Errors are missing required binaries, warnings are missing optional ones.
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
