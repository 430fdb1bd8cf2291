// Package cmd provides the CLI commands for mlflowctl.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.3.1"

// deployRoot is the deployment repository root, holding one directory per
// environment plus the generated output underneath each.
var deployRoot string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mlflowctl",
	Short: "Render environment-specific Kubernetes manifests for MLflow",
	Long: `mlflowctl - MLflow deployment manifest generator

Renders the fixed set of MLflow manifest templates (secret, PV, PVC,
deployment, service, ingress) against one environment's configuration
and writes the result to <environment>/generated/, ready for
kubectl apply -f.

GENERATION
  generate <env>        Render manifests for dev or prod
    --dry-run, -n       Print manifests without writing
    --diff, -d          Diff against existing generated files
    --all, -a           Generate every environment

DIAGNOSTICS
  lint                  Check templates and all environment configs
  doctor                Pre-flight checks - binaries, configs, collisions
  templates             List templates and their placeholders

MAINTENANCE
  update                Update mlflowctl to the latest release`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&deployRoot, "root", "r", ".", "Deployment root containing the environment directories")
	rootCmd.SetVersionTemplate("mlflowctl version {{.Version}}\n")
}
