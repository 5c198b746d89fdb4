package catalog

import (
	"sort"

	"github.com/agentdex-labs/agentdex/internal/classify"
)

// crossReference records, on every declaration, the IDs of other agents
// whose class names its raw source mentions. Matches are word-bounded and
// case-sensitive, since class identifiers are. The edges are advisory
// metadata only: no resolution, no cycle detection, no effect on ordering.
func (b *Builder) crossReference() {
	type ref struct {
		class string
		id    string
	}
	var known []ref
	for _, id := range b.order {
		if class := b.agents[id].ClassName; class != "" {
			known = append(known, ref{class: class, id: id})
		}
	}
	if len(known) == 0 {
		return
	}

	for _, id := range b.order {
		d := b.agents[id]
		raw := d.Raw()
		if raw == "" {
			continue
		}

		var deps []string
		for _, r := range known {
			if r.id == id {
				continue
			}
			if classify.ContainsWord(raw, r.class) {
				deps = append(deps, r.id)
			}
		}
		if len(deps) > 0 {
			sort.Strings(deps)
			d.Dependencies = deps
		}
	}
}
