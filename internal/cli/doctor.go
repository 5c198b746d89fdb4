package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/agentdex-labs/agentdex/internal/classify"
	"github.com/agentdex-labs/agentdex/internal/config"
	"github.com/agentdex-labs/agentdex/internal/manifest"
	"github.com/agentdex-labs/agentdex/internal/scanner"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor [root]",
	Short: "Health check for the catalog setup",
	Long: `Run diagnostic checks on the configuration file, the taxonomy, the scan
root, and any previously generated manifest. Nothing is written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	root := resolveRoot(args)

	problems := checkConfigFile(out)
	problems += checkTaxonomy(out)
	problems += checkScanRoot(out, root)

	outputPath := config.Get(config.KeyOutput)
	if outputPath == "" {
		outputPath = config.DefaultOutput(root)
	}
	problems += checkManifestFile(out, outputPath)

	if problems > 0 {
		return fmt.Errorf("doctor found %d problem(s)", problems)
	}
	fmt.Fprintln(out, "All checks passed.")
	return nil
}

func checkConfigFile(out io.Writer) int {
	fmt.Fprintln(out, "Config check:")
	path := config.FilePath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(out, "  [INFO] no config file at %s (defaults apply)\n", path)
			return 0
		}
		fmt.Fprintf(out, "  [FAIL] cannot read %s: %v\n", path, err)
		return 1
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		fmt.Fprintf(out, "  [FAIL] cannot parse %s: %v\n", path, err)
		return 1
	}
	fmt.Fprintf(out, "  [ OK ] %s is valid\n", path)
	return 0
}

func checkTaxonomy(out io.Writer) int {
	fmt.Fprintln(out, "Taxonomy check:")
	path := config.Get(config.KeyTaxonomy)
	tax, err := classify.Load(path)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] cannot load %s: %v\n", path, err)
		return 1
	}
	if path == "" {
		fmt.Fprintf(out, "  [ OK ] embedded default taxonomy (%d categories)\n", len(tax.Names()))
	} else {
		fmt.Fprintf(out, "  [ OK ] %s (%d categories)\n", path, len(tax.Names()))
	}
	return 0
}

func checkScanRoot(out io.Writer, root string) int {
	fmt.Fprintln(out, "Scan root check:")
	info, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		fmt.Fprintf(out, "  [WARN] root %s does not exist; a run would publish an empty catalog\n", root)
		return 0
	case err != nil:
		fmt.Fprintf(out, "  [FAIL] cannot read root %s: %v\n", root, err)
		return 1
	case !info.IsDir():
		fmt.Fprintf(out, "  [FAIL] root %s is not a directory\n", root)
		return 1
	}
	found, err := scanner.Scan(root, scanner.Options{Patterns: config.Patterns()})
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] scanning %s: %v\n", root, err)
		return 1
	}
	fmt.Fprintf(out, "  [ OK ] root %s: %d candidate files\n", root, len(found))
	return 0
}

func checkManifestFile(out io.Writer, path string) int {
	fmt.Fprintln(out, "Manifest check:")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(out, "  [INFO] no manifest at %s yet\n", path)
		return 0
	}

	result, err := manifest.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return 1
	}
	if !result.Valid {
		fmt.Fprintf(out, "  [FAIL] %s has %d schema violation(s)\n", path, len(result.Issues))
		return 1
	}

	m, err := manifest.Load(path)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] reading %s: %v\n", path, err)
		return 1
	}
	if err := manifest.CompatibleVersion(m.Version); err != nil {
		fmt.Fprintf(out, "  [WARN] %v; regenerate with this build\n", err)
		return 0
	}
	if integrity := manifest.CheckIntegrity(m); len(integrity) > 0 {
		fmt.Fprintf(out, "  [FAIL] %s has %d integrity problem(s)\n", path, len(integrity))
		return 1
	}
	fmt.Fprintf(out, "  [ OK ] %s (%d agents)\n", path, m.Statistics.TotalAgents)
	return 0
}
