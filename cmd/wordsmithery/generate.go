package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/wordsmithery/internal/fetch"
	"github.com/jonathan/wordsmithery/internal/generation"
	"github.com/jonathan/wordsmithery/internal/observability"
	"github.com/jonathan/wordsmithery/internal/prompts"
	"github.com/jonathan/wordsmithery/internal/rendering"
	"github.com/jonathan/wordsmithery/internal/schemas"
	"github.com/jonathan/wordsmithery/internal/tones"
	"github.com/jonathan/wordsmithery/internal/types"
	selectionschema "github.com/jonathan/wordsmithery/schemas"
)

// Output formats accepted by --format
const (
	formatText = "text"
	formatJSON = "json"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft marketing copy for one or more regions",
	Long: `Drafts copy for each selected region in order, one call at a time. If any region fails,
nothing is printed and a single error is reported.

A brief file (--brief) holds a saved selection; flags override its values.`,
	RunE: runGenerate,
}

var (
	generateTone       string
	generateRegions    []string
	generatePromotion  string
	generateDetails    string
	generateDetailsURL string
	generateUseBrowser bool
	generateBrief      string
	generateFormat     string
)

func init() {
	generateCmd.Flags().StringVarP(&generateTone, "tone", "t", tones.ParentBrandID, "Tone profile id")
	generateCmd.Flags().StringArrayVarP(&generateRegions, "region", "r", []string{types.DefaultRegion}, "Target region (repeatable)")
	generateCmd.Flags().StringVarP(&generatePromotion, "promotion", "p", types.DefaultPromotion(), "Promotion theme")
	generateCmd.Flags().StringVarP(&generateDetails, "details", "d", "", "Campaign details: offers, dates and conditions")
	generateCmd.Flags().StringVar(&generateDetailsURL, "details-url", "", "Landing page URL whose text is added to the details")
	generateCmd.Flags().BoolVar(&generateUseBrowser, "use-browser", false, "Render the landing page in headless Chrome (for SPA sites)")
	generateCmd.Flags().StringVar(&generateBrief, "brief", "", "Path to a selection JSON file")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", formatText, "Output format: text, markdown, html or json")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if !isKnownFormat(generateFormat) {
		return fmt.Errorf("unsupported format %q (use text, markdown, html or json)", generateFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sel, err := buildSelection(cmd)
	if err != nil {
		return err
	}

	if generateDetailsURL != "" {
		pageText, err := fetch.Brief(ctx, generateDetailsURL, fetch.BriefOptions{
			UseBrowser: generateUseBrowser,
			Verbose:    cfg.Verbose,
		})
		if err != nil {
			return fmt.Errorf("failed to read landing page: %w", err)
		}
		sel.Details = mergeDetails(sel.Details, pageText)
	}

	if !generation.CanGenerate(sel) {
		return errors.New("nothing to generate: select at least one region and enter campaign details")
	}
	if err := sel.CheckCatalog(); err != nil {
		return err
	}

	repo, store, err := openTones(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	runner, closeBackend, err := newRunner(ctx, cfg, repo)
	if err != nil {
		return err
	}
	defer closeBackend() //nolint:errcheck

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	var onProgress generation.ProgressCallback
	if cfg.Verbose {
		onProgress = printer.PrintProgress
	}

	results, err := runner.Run(ctx, sel, onProgress)
	if err != nil {
		// The runner has logged the cause
		message := generation.UserFacing(err)
		if cfg.Verbose {
			printer.PrintError(message)
		}
		return errors.New(message)
	}

	if cfg.Verbose {
		for _, result := range results {
			printer.PrintResult(result)
		}
	}
	return writeResults(cmd.OutOrStdout(), results, generateFormat)
}

// buildSelection starts from the --brief file, if any, and applies explicitly set flags
func buildSelection(cmd *cobra.Command) (types.Selection, error) {
	sel := types.Selection{
		ToneID:    generateTone,
		Regions:   generateRegions,
		Promotion: generatePromotion,
		Details:   generateDetails,
	}
	if generateBrief == "" {
		return sel, nil
	}

	brief, err := readBrief(generateBrief)
	if err != nil {
		return sel, err
	}

	flags := cmd.Flags()
	if flags.Changed("tone") || brief.ToneID == "" {
		brief.ToneID = generateTone
	}
	if flags.Changed("region") {
		brief.Regions = generateRegions
	}
	if flags.Changed("promotion") {
		brief.Promotion = generatePromotion
	}
	if flags.Changed("details") {
		brief.Details = generateDetails
	}
	return brief, nil
}

// readBrief loads a selection file and checks it against the selection schema
func readBrief(path string) (types.Selection, error) {
	var sel types.Selection

	data, err := os.ReadFile(path)
	if err != nil {
		return sel, fmt.Errorf("failed to read brief file: %w", err)
	}
	if err := schemas.ValidateJSONString(selectionschema.Selection, string(data)); err != nil {
		return sel, fmt.Errorf("invalid brief file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &sel); err != nil {
		return sel, fmt.Errorf("failed to parse brief file: %w", err)
	}
	return sel, nil
}

// mergeDetails appends landing page text to whatever details were typed
func mergeDetails(details, pageText string) string {
	pageText = strings.TrimSpace(pageText)
	if pageText == "" {
		return details
	}
	section := prompts.MustRender("generation.json", "brief-from-page", map[string]string{
		"PageText": pageText,
	})
	if strings.TrimSpace(details) == "" {
		return section
	}
	return strings.TrimSpace(details) + "\n\n" + section
}

func isKnownFormat(format string) bool {
	switch format {
	case formatText, formatJSON, rendering.FormatMarkdown, rendering.FormatHTML:
		return true
	}
	return false
}

// writeResults prints results in the requested format
func writeResults(out io.Writer, results []types.GenerationResult, format string) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err

	case rendering.FormatMarkdown, rendering.FormatHTML:
		doc, err := rendering.Render(results, format)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, doc)
		return err

	default:
		for i, result := range results {
			if i > 0 {
				fmt.Fprintln(out) //nolint:errcheck
			}
			if _, err := fmt.Fprintf(out, "%s\n%s\n\n%s\n", strings.ToUpper(result.Region),
				strings.Repeat("-", len(result.Region)), result.Content); err != nil {
				return err
			}
		}
		return nil
	}
}
