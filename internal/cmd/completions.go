package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/smart-dc/mlflowctl/internal/config"
)

// completeEnvironments completes environment identifiers for generate.
func completeEnvironments(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Don't complete if we already have an argument
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var names []string
	for _, envID := range config.Environments {
		if strings.HasPrefix(envID, toComplete) {
			names = append(names, envID)
		}
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}
