package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agentdex-labs/agentdex/internal/config"
	"github.com/agentdex-labs/agentdex/internal/extract"
	"github.com/agentdex-labs/agentdex/internal/manifest"
)

var (
	searchManifestPath   string
	searchCategoryFilter string
	searchTagFilter      string
	searchJSON           bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search agents recorded in a catalog manifest",
	Long: `Search the agents recorded in a previously generated catalog manifest.

The query matches identifiers, descriptions, docstrings, and source paths
(case-insensitive substring). Use --category and --tag to narrow results.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchManifestPath, "manifest", "", "Manifest to search (default: configured output path)")
	searchCmd.Flags().StringVar(&searchCategoryFilter, "category", "", "Filter by category (e.g., Commerce)")
	searchCmd.Flags().StringVar(&searchTagFilter, "tag", "", "Filter by tags (comma-separated, matches any)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(searchCmd)
}

// searchEntry represents a matching agent for display.
type searchEntry struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
	Source      string   `json:"source_path"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	path := searchManifestPath
	if path == "" {
		path = config.Get(config.KeyOutput)
	}
	if path == "" {
		path = config.DefaultOutput(resolveRoot(nil))
	}

	m, err := manifest.Load(path)
	if err != nil {
		return err
	}

	filterTags := splitTags(searchTagFilter)

	var entries []searchEntry
	for _, d := range orderedAgents(m) {
		if !matchesAgent(d, query, searchCategoryFilter, filterTags) {
			continue
		}
		entries = append(entries, searchEntry{
			ID:          d.ID,
			Category:    d.Category,
			Tags:        d.Tags,
			Description: d.Description,
			Source:      d.SourcePath,
		})
	}

	if len(entries) == 0 {
		msg := "No agents found"
		if query != "" {
			msg += fmt.Sprintf(" matching %q", query)
		}
		if searchCategoryFilter != "" {
			msg += fmt.Sprintf(" with --category=%s", searchCategoryFilter)
		}
		if searchTagFilter != "" {
			msg += fmt.Sprintf(" with --tag=%s", searchTagFilter)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}

	if searchJSON {
		return printSearchJSON(cmd, entries)
	}
	return printSearchTable(cmd, entries)
}

// matchesAgent returns true if the agent matches all provided filters.
// Filters are AND-combined: the agent must pass every non-empty one.
func matchesAgent(d *extract.Declaration, query, categoryFilter string, filterTags []string) bool {
	if categoryFilter != "" && !strings.EqualFold(d.Category, categoryFilter) {
		return false
	}

	if len(filterTags) > 0 && !matchesAnyTag(d.Tags, filterTags) {
		return false
	}

	if query != "" {
		q := strings.ToLower(query)
		hay := strings.ToLower(strings.Join([]string{
			d.ID, d.Description, d.ModuleDoc, d.ClassDoc, d.SourcePath,
		}, "\n"))
		if !strings.Contains(hay, q) {
			return false
		}
	}

	return true
}

// matchesAnyTag returns true if any of the agent's tags match any of the
// filter tags. Comparison is case-insensitive.
func matchesAnyTag(agentTags, filterTags []string) bool {
	for _, ft := range filterTags {
		ftLower := strings.ToLower(ft)
		for _, at := range agentTags {
			if strings.ToLower(at) == ftLower {
				return true
			}
		}
	}
	return false
}

// splitTags parses a comma-separated tag filter into trimmed entries.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(t); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func printSearchTable(cmd *cobra.Command, entries []searchEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORY\tTAGS\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.Category, strings.Join(e.Tags, ","), truncate(e.Description, 60))
	}
	return w.Flush()
}

func printSearchJSON(cmd *cobra.Command, entries []searchEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
