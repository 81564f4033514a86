package main

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/healthtrack-backend/internal/app"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print knowledge graph node and relationship counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			stats, err := a.Services.Store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stats)
		})
	},
}
