package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smart-dc/mlflowctl/internal/config"
	"github.com/smart-dc/mlflowctl/internal/preflight"
	"github.com/smart-dc/mlflowctl/internal/ui"
)

// doctorCmd runs pre-flight checks on the deployment workspace.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Pre-flight checks - binaries, configs, collisions",
	Long: `Check that the deployment workspace is ready to generate and apply.

This command verifies:
  1. External binaries (kubectl required; sops and docker optional)
  2. Each environment's config file is present and readable
  3. Environments do not collide on namespace or ingress path

Use this before a deploy to catch problems early.`,
	Run: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) {
	ui.Header("=== mlflowctl doctor ===")
	fmt.Println()

	var errors, warnings int

	ui.Blue.Println("--- External Binaries ---")
	warnList, errList := preflight.CheckAll()
	for _, e := range errList {
		ui.Error("%s", e)
		errors++
	}
	for _, w := range warnList {
		ui.Warning("%s", w)
		warnings++
	}
	if len(errList) == 0 && len(warnList) == 0 {
		ui.Success("all binaries available")
	}
	fmt.Println()

	ui.Blue.Println("--- Environment Configs ---")
	var envs []*config.Environment
	for _, envID := range config.Environments {
		path := config.Path(deployRoot, envID)
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			ui.Warning("%s: no config at %s", envID, path)
			warnings++
			continue
		}
		env, err := config.Peek(deployRoot, envID)
		if err != nil {
			ui.Error("%s: %v", envID, err)
			errors++
			continue
		}
		envs = append(envs, env)
		ui.Success("%s: %s", envID, path)
	}
	fmt.Println()

	ui.Blue.Println("--- Cross-Environment ---")
	if err := config.CheckCollisions(envs); err != nil {
		ui.Error("%v", err)
		errors++
	} else {
		ui.Success("environments are isolated")
	}
	fmt.Println()

	ui.Blue.Println("--- Summary ---")
	if errors > 0 {
		ui.Red.Printf("  Errors: %d\n", errors)
	}
	if warnings > 0 {
		ui.Yellow.Printf("  Warnings: %d\n", warnings)
	}
	if errors == 0 && warnings == 0 {
		ui.Green.Println("  * All checks passed")
	}
	fmt.Println()

	if errors > 0 {
		ui.Red.Println("Doctor found problems. Fix errors before deploying.")
		os.Exit(1)
	} else if warnings > 0 {
		ui.Yellow.Println("Ready, with warnings.")
	} else {
		ui.Green.Println("Ready to deploy!")
	}
}
