package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agentdex-labs/agentdex/internal/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest>",
	Short: "Validate a catalog manifest",
	Long: `Check a manifest against the catalog JSON Schema, verify its version is
compatible with this build, and cross-check internal consistency: agent
keys, category members, preset members, and statistics.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]

	result, err := manifest.ValidateFile(path)
	if err != nil {
		return err
	}
	if !result.Valid {
		fmt.Fprintf(cmd.OutOrStdout(), "%s schema violations in %s:\n", color.RedString("✗"), path)
		for _, issue := range result.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", msg)
		}
		return fmt.Errorf("manifest %s failed schema validation", path)
	}

	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	if err := manifest.CompatibleVersion(m.Version); err != nil {
		return err
	}
	if problems := manifest.CheckIntegrity(m); len(problems) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s integrity problems in %s:\n", color.RedString("✗"), path)
		for _, p := range problems {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", p)
		}
		return fmt.Errorf("manifest %s failed integrity checks", path)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s is valid\n", color.GreenString("✓"), path)
	fmt.Fprintf(cmd.OutOrStdout(), "  %d agents, %d categories, %d presets (manifest version %s)\n",
		m.Statistics.TotalAgents, m.Statistics.TotalCategories, m.Statistics.TotalPresets, m.Version)
	return nil
}
