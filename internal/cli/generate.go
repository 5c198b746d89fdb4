package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agentdex-labs/agentdex/internal/catalog"
	"github.com/agentdex-labs/agentdex/internal/classify"
	"github.com/agentdex-labs/agentdex/internal/config"
	"github.com/agentdex-labs/agentdex/internal/logging"
	"github.com/agentdex-labs/agentdex/internal/manifest"
)

var (
	generateOutput   string
	generatePatterns []string
	generateTaxonomy string
	generateDryRun   bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Manifest output path (default: <root>/"+manifest.FileName+")")
	generateCmd.Flags().StringArrayVar(&generatePatterns, "pattern", nil, "Candidate filename pattern, repeatable (default: *_agent.py)")
	generateCmd.Flags().StringVar(&generateTaxonomy, "taxonomy", "", "Taxonomy override file (YAML)")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Scan and classify without writing the manifest")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate [root]",
	Short: "Generate the catalog manifest from agent sources",
	Long: `Scan a directory tree for agent plugin sources, extract their declared
metadata without executing them, and write the catalog manifest.

Malformed sources degrade to partial entries and are counted in the run
summary; only an unreadable root or a failed manifest write aborts the run.
Rerunning over an unchanged tree reproduces the same manifest except for
the generated timestamp.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	root := resolveRoot(args)
	output := generateOutput
	if output == "" {
		output = config.Get(config.KeyOutput)
	}
	if output == "" {
		output = config.DefaultOutput(root)
	}

	patterns := generatePatterns
	if len(patterns) == 0 {
		patterns = config.Patterns()
	}

	taxonomyPath := generateTaxonomy
	if taxonomyPath == "" {
		taxonomyPath = config.Get(config.KeyTaxonomy)
	}
	tax, err := classify.Load(taxonomyPath)
	if err != nil {
		return err
	}

	m, sum, err := catalog.Generate(root, catalog.Options{
		Patterns: patterns,
		Exclude:  excludeWithin(root, output),
		Taxonomy: tax,
	})
	if err != nil {
		return err
	}

	if generateDryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Dry run: %d agents in %d categories, %d presets (nothing written)\n",
			m.Statistics.TotalAgents, m.Statistics.TotalCategories, m.Statistics.TotalPresets)
		printSummary(cmd, sum)
		return nil
	}

	if err := manifest.Write(m, output); err != nil {
		return err
	}
	logging.Info().
		Str("output", output).
		Int("agents", m.Statistics.TotalAgents).
		Msg("manifest written")

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d agents in %d categories, %d presets\n",
		output, m.Statistics.TotalAgents, m.Statistics.TotalCategories, m.Statistics.TotalPresets)
	printSummary(cmd, sum)
	return nil
}

// resolveRoot picks the scan root: positional argument, configured default,
// then the current directory.
func resolveRoot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if r := config.Get(config.KeyRoot); r != "" {
		return r
	}
	return "."
}

// excludeWithin returns the scan exclusion for an output path that lives
// inside the scan root, so a previously generated manifest is never
// ingested as input.
func excludeWithin(root, output string) []string {
	rel, err := filepath.Rel(root, output)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return nil
	}
	return []string{filepath.ToSlash(rel)}
}

func printSummary(cmd *cobra.Command, sum catalog.Summary) {
	fmt.Fprintf(cmd.OutOrStdout(), "Sources: %d scanned", sum.Scanned)
	if sum.Scanned > 0 {
		var parts []string
		if sum.Full > 0 {
			parts = append(parts, color.GreenString("%d full", sum.Full))
		}
		if sum.Partial > 0 {
			parts = append(parts, color.YellowString("%d partial", sum.Partial))
		}
		if sum.Empty > 0 {
			parts = append(parts, color.YellowString("%d empty", sum.Empty))
		}
		if sum.Failed > 0 {
			parts = append(parts, color.RedString("%d unreadable", sum.Failed))
		}
		fmt.Fprintf(cmd.OutOrStdout(), " (%s)", strings.Join(parts, ", "))
	}
	fmt.Fprintln(cmd.OutOrStdout())
}
