package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/yungbote/healthtrack-backend/internal/app"
	"github.com/yungbote/healthtrack-backend/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "healthtrack",
	Short:         "Symptom analysis API and tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var logMode string

func init() {
	rootCmd.PersistentFlags().StringVar(&logMode, "log-mode", "", "override LOG_MODE (development, production, test)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(serveCmd, analyzeCmd, statsCmd, providersCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if logMode != "" {
		cfg.Env = logMode
	}
	return cfg, nil
}

// withApp builds the application for a one-shot command and closes it afterwards.
func withApp(ctx context.Context, fn func(a *app.App) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// one-shot commands stay quiet unless asked
	if logMode == "" {
		cfg.Env = "test"
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
