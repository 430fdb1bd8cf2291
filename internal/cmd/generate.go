package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/smart-dc/mlflowctl/internal/config"
	"github.com/smart-dc/mlflowctl/internal/generate"
	"github.com/smart-dc/mlflowctl/internal/render"
	"github.com/smart-dc/mlflowctl/internal/ui"
)

var (
	generateDryRun bool
	generateDiff   bool
	generateAll    bool
)

// generateCmd renders an environment's manifests to <env>/generated/.
var generateCmd = &cobra.Command{
	Use:   "generate [environment]",
	Short: "Render manifests into <environment>/generated/",
	Long: `Render the full MLflow manifest set for an environment.

All templates are rendered before anything is written; if any template
fails, every failure is reported and no files are touched. A successful
run fully replaces the environment's generated/ directory.

Examples:
  mlflowctl generate dev          # Render dev manifests
  mlflowctl generate -n prod      # Dry run - print without writing
  mlflowctl generate -d prod      # Diff against existing output
  mlflowctl generate --all        # Render every environment`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeEnvironments,
	RunE:              runGenerate,
}

func init() {
	generateCmd.Flags().BoolVarP(&generateDryRun, "dry-run", "n", false, "Print rendered manifests without writing")
	generateCmd.Flags().BoolVarP(&generateDiff, "diff", "d", false, "Show diff against existing generated files")
	generateCmd.Flags().BoolVarP(&generateAll, "all", "a", false, "Generate every known environment")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	ctx := context.Background()

	var envIDs []string
	switch {
	case generateAll && len(args) > 0:
		return fmt.Errorf("--all cannot be combined with an environment argument")
	case generateAll:
		envIDs = config.Environments
	case len(args) == 1:
		envIDs = args
	default:
		return fmt.Errorf("environment required (one of: %s)", strings.Join(config.Environments, ", "))
	}

	failures := 0
	for _, envID := range envIDs {
		n, err := generateOne(ctx, envID)
		if err != nil {
			return err
		}
		failures += n
	}

	if failures > 0 {
		return fmt.Errorf("%d template(s) failed to render", failures)
	}
	return nil
}

// generateOne handles a single environment and returns the number of
// template failures it reported.
func generateOne(ctx context.Context, envID string) (int, error) {
	if generateDryRun || generateDiff {
		result, manifests, err := generate.Render(ctx, deployRoot, envID)
		if err != nil {
			return 0, err
		}
		if result.Failed() {
			reportFailures(result)
			return len(result.Failures), nil
		}
		if generateDiff {
			showDiff(result, manifests)
			return 0, nil
		}
		for _, m := range manifests {
			ui.Blue.Printf("--- %s/%s ---\n", envID, m.FileName)
			fmt.Print(string(m.Content))
		}
		return 0, nil
	}

	result, err := generate.Run(ctx, deployRoot, envID)
	if err != nil {
		return 0, err
	}
	if result.Failed() {
		reportFailures(result)
		return len(result.Failures), nil
	}

	ui.Success("%s: wrote %d manifests to %s", envID, len(result.Written), result.OutputDir)
	for _, name := range result.Written {
		fmt.Printf("  %s\n", name)
	}
	return 0, nil
}

// reportFailures enumerates every failing template, not just the first.
func reportFailures(result *generate.Result) {
	ui.Error("%s: %d template(s) failed, nothing written", result.Environment, len(result.Failures))
	for _, f := range result.Failures {
		fmt.Fprintf(os.Stderr, "  %s: %v\n", f.TemplateID, f.Err)
	}
}

// showDiff prints a diff of each would-be manifest against the file
// currently in the environment's generated directory.
func showDiff(result *generate.Result, manifests []*render.Manifest) {
	dmp := diffmatchpatch.New()
	changed := 0

	for _, m := range manifests {
		existing, err := os.ReadFile(filepath.Join(result.OutputDir, m.FileName))
		if err != nil {
			existing = nil // new file
		}

		if string(existing) == string(m.Content) {
			continue
		}
		changed++

		ui.Blue.Printf("--- %s/%s ---\n", result.Environment, m.FileName)
		diffs := dmp.DiffMain(string(existing), string(m.Content), false)
		fmt.Print(dmp.DiffPrettyText(diffs))
	}

	if changed == 0 {
		ui.Success("%s: no changes", result.Environment)
	}
}
