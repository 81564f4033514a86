package main

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/healthtrack-backend/internal/app"
	"github.com/yungbote/healthtrack-backend/internal/domain"
	"github.com/yungbote/healthtrack-backend/internal/providers"
)

var (
	providerSpecialization string
	providerMinRating      float64
)

var providersCmd = &cobra.Command{
	Use:   "providers [CONDITION]",
	Short: "Recommend providers for a condition, or search the directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			ctx := cmd.Context()
			if len(args) == 1 {
				rec, err := providers.Recommend(ctx, a.Services.Directory, args[0], a.Cfg.Providers.Location)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), rec)
			}
			filter := domain.ProviderFilter{Specialization: providerSpecialization, Limit: providers.SearchLimit}
			if cmd.Flags().Changed("min-rating") {
				filter.MinRating = &providerMinRating
			}
			found, total, err := a.Services.Directory.Search(ctx, filter)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"doctors": found, "count": total})
		})
	},
}

func init() {
	providersCmd.Flags().StringVar(&providerSpecialization, "specialization", "", "substring match on specialization")
	providersCmd.Flags().Float64Var(&providerMinRating, "min-rating", 0, "minimum rating (0-5)")
}
