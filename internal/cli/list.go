package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agentdex-labs/agentdex/internal/catalog"
	"github.com/agentdex-labs/agentdex/internal/classify"
	"github.com/agentdex-labs/agentdex/internal/config"
	"github.com/agentdex-labs/agentdex/internal/extract"
	"github.com/agentdex-labs/agentdex/internal/manifest"
)

var (
	listCategoryFilter string
	listJSON           bool
)

var listCmd = &cobra.Command{
	Use:   "list [root]",
	Short: "List discovered agents without writing a manifest",
	Long: `Scan a directory tree and print the agents that would enter the catalog.
The source tree is read fresh; nothing is written to disk.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listCategoryFilter, "category", "", "Filter by category (e.g., Commerce)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a discovered agent for display.
type listEntry struct {
	ID           string `json:"id"`
	Category     string `json:"category"`
	Completeness string `json:"completeness"`
	Source       string `json:"source_path"`
	Description  string `json:"description,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	root := resolveRoot(args)

	tax, err := classify.Load(config.Get(config.KeyTaxonomy))
	if err != nil {
		return err
	}
	m, _, err := catalog.Generate(root, catalog.Options{
		Patterns: config.Patterns(),
		Taxonomy: tax,
	})
	if err != nil {
		return err
	}

	var entries []listEntry
	for _, d := range orderedAgents(m) {
		if listCategoryFilter != "" && d.Category != listCategoryFilter {
			continue
		}
		entries = append(entries, listEntry{
			ID:           d.ID,
			Category:     d.Category,
			Completeness: string(d.Completeness),
			Source:       d.SourcePath,
			Description:  d.Description,
		})
	}

	if len(entries) == 0 {
		if listCategoryFilter != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No agents in category %q\n", listCategoryFilter)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No agents found.")
		}
		return nil
	}

	if listJSON {
		return printListJSON(cmd, entries)
	}
	return printListTable(cmd, entries)
}

func printListTable(cmd *cobra.Command, entries []listEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORY\tCOMPLETENESS\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.Category, e.Completeness, truncate(e.Description, 60))
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, entries []listEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

// truncate shortens long descriptions for table cells.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// orderedAgents returns the manifest's agents in discovery order, which the
// full-catalog preset preserves. Agents maps are unordered by themselves.
func orderedAgents(m *manifest.Manifest) []*extract.Declaration {
	for _, p := range m.SuggestedPresets {
		if p.Origin != manifest.OriginFull {
			continue
		}
		agents := make([]*extract.Declaration, 0, len(p.Agents))
		for _, id := range p.Agents {
			if d, ok := m.Agents[id]; ok {
				agents = append(agents, d)
			}
		}
		return agents
	}
	// Hand-edited manifests may lack the preset; fall back to sorted keys.
	ids := make([]string, 0, len(m.Agents))
	for id := range m.Agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	agents := make([]*extract.Declaration, 0, len(ids))
	for _, id := range ids {
		agents = append(agents, m.Agents[id])
	}
	return agents
}
