package main

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/healthtrack-backend/internal/app"
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze SYMPTOM...",
	Short:   "Analyze symptoms and print the result as JSON",
	Example: `  healthtrack analyze itching "skin rash"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			return printJSON(cmd.OutOrStdout(), a.Services.Engine.Analyze(cmd.Context(), args))
		})
	},
}
