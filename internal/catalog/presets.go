package catalog

import (
	"fmt"

	"github.com/agentdex-labs/agentdex/internal/manifest"
)

// presets synthesizes the suggested bundles in their fixed output order:
// the Full Catalog, one suite per nonempty category in taxonomy order, the
// taxonomy's combination rules, and the Essential preset drawn from the
// core category. Given identical input the result is byte-deterministic.
func (b *Builder) presets(categories map[string][]string) []manifest.Preset {
	out := []manifest.Preset{{
		Name:        "Full Catalog",
		Description: "Every discovered agent.",
		Symbol:      "📚",
		Agents:      append([]string(nil), b.order...),
		Origin:      manifest.OriginFull,
	}}

	for _, cat := range b.tax.Categories {
		members := categories[cat.Name]
		if len(members) == 0 {
			continue
		}
		out = append(out, manifest.Preset{
			Name:        cat.Name + " Suite",
			Description: fmt.Sprintf("All %s agents.", cat.Name),
			Symbol:      cat.Symbol,
			Agents:      append([]string(nil), members...),
			Origin:      manifest.OriginCategory,
		})
	}

	for _, rule := range b.tax.Combinations {
		members := combine(categories, rule.Categories)
		if members == nil {
			continue
		}
		out = append(out, manifest.Preset{
			Name:        rule.Name,
			Description: rule.Description,
			Symbol:      rule.Symbol,
			Agents:      members,
			Origin:      manifest.OriginCombination,
		})
	}

	if core := categories[b.tax.Core]; len(core) > 0 {
		out = append(out, manifest.Preset{
			Name:        "Essential",
			Description: fmt.Sprintf("Starter set drawn from %s.", b.tax.Core),
			Symbol:      "⭐",
			Agents:      append([]string(nil), core...),
			Origin:      manifest.OriginEssential,
		})
	}

	return out
}

// combine unions the member lists of the named categories in rule order,
// deduplicated. It returns nil when any source category is empty, which
// suppresses the rule entirely.
func combine(categories map[string][]string, names []string) []string {
	if len(names) == 0 {
		return nil
	}

	var members []string
	seen := make(map[string]struct{})
	for _, name := range names {
		ids := categories[name]
		if len(ids) == 0 {
			return nil
		}
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			members = append(members, id)
		}
	}
	return members
}
