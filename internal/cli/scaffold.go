package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentdex-labs/agentdex/internal/branding"
	"github.com/agentdex-labs/agentdex/internal/scaffold"
)

var (
	scaffoldDir      string
	scaffoldCategory string
)

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold <name>",
	Short: "Scaffold a starter agent source file",
	Long: `Create a starter agent source file carrying the declared name, metadata
block, and docstring conventions the generator extracts.

Examples:
  agentdex scaffold order-verification
  agentdex scaffold upsell-helper --dir ./agents --category Commerce`,
	Args: cobra.ExactArgs(1),
	RunE: runScaffold,
}

func init() {
	scaffoldCmd.Flags().StringVar(&scaffoldDir, "dir", ".", "Directory to create the file in")
	scaffoldCmd.Flags().StringVar(&scaffoldCategory, "category", "", "Category hint recorded in the metadata")
	rootCmd.AddCommand(scaffoldCmd)
}

func runScaffold(cmd *cobra.Command, args []string) error {
	data, err := scaffold.NewData(args[0], scaffoldCategory)
	if err != nil {
		return err
	}

	result, err := scaffold.Generate(data, scaffoldDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", result.Path)
	if len(result.Warnings) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "\nWarnings:")
		for _, w := range result.Warnings {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", w)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nNext steps:")
	fmt.Fprintf(cmd.OutOrStdout(), "  1. Edit %s to implement run() and describe the agent\n", result.Path)
	fmt.Fprintf(cmd.OutOrStdout(), "  2. Run '%s generate %s' to publish it into the catalog\n", branding.CLIName(), scaffoldDir)
	return nil
}
