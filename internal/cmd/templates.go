package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smart-dc/mlflowctl/internal/template"
	"github.com/smart-dc/mlflowctl/internal/ui"
)

// templatesCmd lists the template registry.
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List templates and their placeholders",
	Long:  `List the manifest templates in apply order with their declared placeholders.`,
	Run:   runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, args []string) {
	ui.Blue.Println("Templates in apply order:")
	for i, def := range template.List() {
		ui.Step(i+1, "%s → %s", def.ID, def.FileName)
		for _, p := range def.Placeholders {
			fmt.Printf("      ${%s} (%s)\n", p.Name, p.Kind)
		}
	}
}
