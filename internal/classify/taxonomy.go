package classify

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"go.yaml.in/yaml/v3"
)

// Fallback is the terminal category assigned when no keyword matches.
const Fallback = "Other"

//go:embed taxonomy.yaml
var taxonomyYAML []byte

// Category is one taxonomy bucket used for primary classification.
type Category struct {
	Name     string   `yaml:"name"`
	Symbol   string   `yaml:"symbol"`
	Keywords []string `yaml:"keywords"`
}

// Combination is a hand-authored cross-category preset rule. The resulting
// preset unions the member categories and is only emitted when every source
// category has at least one member.
type Combination struct {
	Name        string   `yaml:"name"`
	Symbol      string   `yaml:"symbol"`
	Description string   `yaml:"description"`
	Categories  []string `yaml:"categories"`
}

// Taxonomy is the full classification configuration: ordered categories,
// the designated core category backing the Essential preset, combination
// preset rules, the domain-tag vocabulary, and use-case lead-in phrases.
type Taxonomy struct {
	Core         string        `yaml:"core"`
	Categories   []Category    `yaml:"categories"`
	Combinations []Combination `yaml:"combinations"`
	Vocabulary   []string      `yaml:"vocabulary"`
	Phrases      []string      `yaml:"phrases"`
}

var (
	defaultOnce sync.Once
	defaultTax  *Taxonomy
)

// Default returns the embedded taxonomy.
func Default() *Taxonomy {
	defaultOnce.Do(func() {
		var t Taxonomy
		if err := yaml.Unmarshal(taxonomyYAML, &t); err != nil {
			// The embedded taxonomy ships with the binary; if it cannot
			// be parsed, classification still works with the bare
			// fallback category.
			defaultTax = &Taxonomy{Categories: []Category{{Name: Fallback}}}
			return
		}
		t.ensureFallback()
		defaultTax = &t
	})
	return defaultTax
}

// Load reads a taxonomy from a YAML file. An empty path returns the
// embedded default.
func Load(path string) (*Taxonomy, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy %s: %w", path, err)
	}

	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing taxonomy %s: %w", path, err)
	}
	if len(t.Categories) == 0 {
		return nil, fmt.Errorf("taxonomy %s declares no categories", path)
	}

	t.ensureFallback()
	return &t, nil
}

// ensureFallback guarantees the terminal catch-all category exists.
func (t *Taxonomy) ensureFallback() {
	for _, c := range t.Categories {
		if c.Name == Fallback {
			return
		}
	}
	t.Categories = append(t.Categories, Category{Name: Fallback, Symbol: "📦"})
}

// Category returns the named category.
func (t *Taxonomy) Category(name string) (Category, bool) {
	for _, c := range t.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// Names returns the category names in taxonomy order.
func (t *Taxonomy) Names() []string {
	names := make([]string, len(t.Categories))
	for i, c := range t.Categories {
		names[i] = c.Name
	}
	return names
}
