package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/wordsmithery/internal/observability"
	"github.com/jonathan/wordsmithery/internal/tones"
)

var tonesCmd = &cobra.Command{
	Use:   "tones",
	Short: "List and edit brand tone profiles",
}

var tonesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tone profiles",
	Args:  cobra.NoArgs,
	RunE:  runTonesList,
}

var tonesSetCmd = &cobra.Command{
	Use:   "set <id> <description>",
	Short: "Replace the description of a tone profile",
	Args:  cobra.ExactArgs(2),
	RunE:  runTonesSet,
}

var tonesResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default tone profiles",
	Args:  cobra.NoArgs,
	RunE:  runTonesReset,
}

var tonesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all tone profiles with a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTonesImport,
}

var tonesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the tone profiles as JSON",
	Args:  cobra.NoArgs,
	RunE:  runTonesExport,
}

var tonesExportOut string

func init() {
	tonesExportCmd.Flags().StringVarP(&tonesExportOut, "out", "o", "", "Output file (default stdout)")

	tonesCmd.AddCommand(tonesListCmd, tonesSetCmd, tonesResetCmd, tonesImportCmd, tonesExportCmd)
	rootCmd.AddCommand(tonesCmd)
}

// withTones runs fn against the configured tone repository
func withTones(cmd *cobra.Command, fn func(ctx context.Context, repo *tones.Repository) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	repo, store, err := openTones(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	return fn(ctx, repo)
}

func runTonesList(cmd *cobra.Command, _ []string) error {
	return withTones(cmd, func(ctx context.Context, repo *tones.Repository) error {
		observability.NewPrinter(cmd.OutOrStdout()).PrintTones(repo.Load(ctx))
		return nil
	})
}

func runTonesSet(cmd *cobra.Command, args []string) error {
	return withTones(cmd, func(ctx context.Context, repo *tones.Repository) error {
		profile, err := repo.UpdateDescription(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", profile.Name, profile.ID) //nolint:errcheck
		return nil
	})
}

func runTonesReset(cmd *cobra.Command, _ []string) error {
	return withTones(cmd, func(ctx context.Context, repo *tones.Repository) error {
		profiles, err := repo.Reset(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %d default tone profiles\n", len(profiles)) //nolint:errcheck
		return nil
	})
}

func runTonesImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read tone file: %w", err)
	}
	return withTones(cmd, func(ctx context.Context, repo *tones.Repository) error {
		profiles, err := repo.Import(ctx, data)
		if err != nil {
			return fmt.Errorf("failed to import tones: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tone profiles\n", len(profiles)) //nolint:errcheck
		return nil
	})
}

func runTonesExport(cmd *cobra.Command, _ []string) error {
	return withTones(cmd, func(ctx context.Context, repo *tones.Repository) error {
		data, err := repo.Export(ctx)
		if err != nil {
			return err
		}
		if tonesExportOut == "" {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		}
		if err := os.WriteFile(tonesExportOut, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", tonesExportOut) //nolint:errcheck
		return nil
	})
}
