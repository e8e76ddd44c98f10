package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/wordsmithery/internal/observability"
	"github.com/jonathan/wordsmithery/internal/tones"
	"github.com/jonathan/wordsmithery/internal/types"
)

var optionsJSON bool

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Show the regions, promotions and tones that can be selected",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withTones(cmd, func(ctx context.Context, repo *tones.Repository) error {
			profiles := repo.Load(ctx)
			if !optionsJSON {
				observability.NewPrinter(cmd.OutOrStdout()).PrintOptions(types.Regions, types.Promotions, profiles)
				return nil
			}

			data, err := json.MarshalIndent(map[string]any{
				"regions":           types.Regions,
				"promotions":        types.Promotions,
				"default_region":    types.DefaultRegion,
				"default_promotion": types.DefaultPromotion(),
				"tones":             profiles,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal options: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		})
	},
}

func init() {
	optionsCmd.Flags().BoolVar(&optionsJSON, "json", false, "Print as JSON")
	rootCmd.AddCommand(optionsCmd)
}
