package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/agentdex-labs/agentdex/internal/classify"
	"github.com/agentdex-labs/agentdex/internal/extract"
	"github.com/agentdex-labs/agentdex/internal/logging"
	"github.com/agentdex-labs/agentdex/internal/manifest"
	"github.com/agentdex-labs/agentdex/internal/scanner"
)

// Summary aggregates per-file outcomes of one generation run.
type Summary struct {
	Scanned int // candidate files seen
	Full    int // fully parsed declarations
	Partial int // partially parsed declarations
	Empty   int // files with nothing recoverable
	Failed  int // files that could not be read
}

// Options configure one generation run.
type Options struct {
	// Patterns select candidate filenames; scanner defaults apply when empty.
	Patterns []string

	// Exclude lists root-relative paths the scanner must skip, typically a
	// previously generated manifest inside the scan root.
	Exclude []string

	// Taxonomy drives classification and preset synthesis. The embedded
	// default is used when nil.
	Taxonomy *classify.Taxonomy
}

// Generate runs the full pipeline over root: scan, extract, classify,
// mine, cross-reference, synthesize presets, and assemble the manifest.
// Unreadable or malformed files degrade to partial entries and are counted
// in the summary; only root-level filesystem failures return an error.
func Generate(root string, opts Options) (*manifest.Manifest, Summary, error) {
	files, err := scanner.Scan(root, scanner.Options{
		Patterns: opts.Patterns,
		Exclude:  opts.Exclude,
	})
	if err != nil {
		return nil, Summary{}, err
	}

	b := New(opts.Taxonomy)
	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			b.AddFailure(rel, err)
			continue
		}
		b.Add(extract.Source(rel, data))
	}

	return b.Manifest(), b.Summary(), nil
}

// Builder accumulates declarations for one generation run. Every run gets
// its own Builder, so repeated or concurrent runs never share state.
type Builder struct {
	tax     *classify.Taxonomy
	order   []string // agent IDs in discovery order
	agents  map[string]*extract.Declaration
	summary Summary
}

// New returns an empty Builder classifying against tax, or the default
// taxonomy when tax is nil.
func New(tax *classify.Taxonomy) *Builder {
	if tax == nil {
		tax = classify.Default()
	}
	return &Builder{
		tax:    tax,
		agents: make(map[string]*extract.Declaration),
	}
}

// Add ingests one extracted declaration: classification, tag and use-case
// mining, and identifier deduplication. Insertion order is preserved as
// the catalog's discovery order.
func (b *Builder) Add(d *extract.Declaration) {
	b.summary.Scanned++
	switch d.Completeness {
	case extract.CompletenessFull:
		b.summary.Full++
	case extract.CompletenessNone:
		b.summary.Empty++
		logging.Warn().Str("source", d.SourcePath).Msg("no agent metadata recovered")
	default:
		b.summary.Partial++
		logging.Warn().Str("source", d.SourcePath).Str("id", d.ID).Msg("partial agent metadata")
	}

	b.tax.Classify(d)
	b.tax.Mine(d)

	id := b.uniqueID(d.ID)
	if id != d.ID {
		logging.Warn().
			Str("id", d.ID).
			Str("assigned", id).
			Str("source", d.SourcePath).
			Msg("duplicate agent identifier")
		d.ID = id
	}

	b.order = append(b.order, id)
	b.agents[id] = d
}

// AddFailure records a candidate file that could not be read.
func (b *Builder) AddFailure(path string, err error) {
	b.summary.Scanned++
	b.summary.Failed++
	logging.Warn().Str("source", path).Err(err).Msg("skipping unreadable agent source")
}

// Summary returns the run counters accumulated so far.
func (b *Builder) Summary() Summary {
	return b.summary
}

// Manifest assembles the final catalog: advisory cross references,
// normalized tag sets, category membership, suggested presets, and
// statistics. Everything except the timestamp is deterministic for a
// given input set.
func (b *Builder) Manifest() *manifest.Manifest {
	b.crossReference()

	for _, id := range b.order {
		d := b.agents[id]
		d.Tags = normalizeTags(d.Tags)
	}

	categories := b.categories()
	presets := b.presets(categories)

	return &manifest.Manifest{
		Version:   manifest.Version,
		Generated: time.Now().UTC().Format(time.RFC3339),
		Statistics: manifest.Statistics{
			TotalAgents:     len(b.order),
			TotalCategories: len(categories),
			TotalPresets:    len(presets),
		},
		Agents:           b.agents,
		Categories:       categories,
		SuggestedPresets: presets,
	}
}

// categories groups agent IDs by primary category, members in discovery
// order. Categories with no members are absent.
func (b *Builder) categories() map[string][]string {
	out := make(map[string][]string)
	for _, id := range b.order {
		cat := b.agents[id].Category
		out[cat] = append(out[cat], id)
	}
	return out
}

// uniqueID returns id if free, otherwise the first free numbered variant.
func (b *Builder) uniqueID(id string) string {
	if id == "" {
		id = "agent"
	}
	if _, taken := b.agents[id]; !taken {
		return id
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d", id, n)
		if _, taken := b.agents[candidate]; !taken {
			return candidate
		}
	}
}

// normalizeTags sorts and deduplicates a tag set.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	sort.Strings(tags)
	out := tags[:1]
	for _, tag := range tags[1:] {
		if tag != out[len(out)-1] {
			out = append(out, tag)
		}
	}
	return out
}
