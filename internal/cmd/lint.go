package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smart-dc/mlflowctl/internal/config"
	"github.com/smart-dc/mlflowctl/internal/template"
	"github.com/smart-dc/mlflowctl/internal/ui"
)

// lintCmd validates the template registry and every environment config.
var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate templates and environment configs",
	Long: `Validate the template registry and every environment's configuration
without rendering or writing anything.

Checks performed:
  1. Template registry consistency (declared vs referenced placeholders,
     cross-template placeholder type conflicts)
  2. Required config fields for each environment
  3. Cross-environment namespace and ingress path collisions

Credentials files are not resolved; use 'generate --dry-run' for a full
rehearsal including credentials.`,
	Run: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) {
	errors := 0

	ui.Blue.Println("--- Template Registry ---")
	if err := template.Lint(); err != nil {
		if lintErr, ok := err.(*template.LintError); ok {
			for _, p := range lintErr.Problems {
				ui.Error("%s", p)
				errors++
			}
		} else {
			ui.Error("%v", err)
			errors++
		}
	} else {
		ui.Success("%d templates consistent", len(template.List()))
	}
	fmt.Println()

	ui.Blue.Println("--- Environment Configs ---")
	var envs []*config.Environment
	for _, envID := range config.Environments {
		env, err := config.Peek(deployRoot, envID)
		if err != nil {
			ui.Error("%s: %v", envID, err)
			errors++
			continue
		}

		if verr := env.Validate(); verr != nil {
			ui.Error("%v", verr)
			errors++
			continue
		}

		envs = append(envs, env)
		ui.Success("%s: config valid", envID)
	}
	fmt.Println()

	ui.Blue.Println("--- Cross-Environment ---")
	if err := config.CheckCollisions(envs); err != nil {
		ui.Error("%v", err)
		errors++
	} else {
		ui.Success("no namespace or ingress path collisions")
	}
	fmt.Println()

	if errors > 0 {
		ui.Red.Printf("Lint failed with %d error(s).\n", errors)
		os.Exit(1)
	}
	ui.Green.Println("All checks passed!")
}
