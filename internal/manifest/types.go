package manifest

import "github.com/agentdex-labs/agentdex/internal/extract"

// Version is the manifest schema version stamped on every generated catalog.
const Version = "1.0.0"

// FileName is the default output artifact name, written under the scan root
// unless an explicit output path is configured.
const FileName = "catalog_manifest.json"

// Preset origins describe which synthesis rule produced a preset.
const (
	OriginFull        = "full"
	OriginCategory    = "category"
	OriginCombination = "combination"
	OriginEssential   = "essential"
)

// Preset is a named, ordered bundle of agent identifiers suggested to
// catalog consumers.
type Preset struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Symbol      string   `json:"symbol,omitempty"`
	Agents      []string `json:"agents"`
	Origin      string   `json:"origin"`
}

// Statistics summarize one generated catalog.
type Statistics struct {
	TotalAgents     int `json:"total_agents"`
	TotalCategories int `json:"total_categories"`
	TotalPresets    int `json:"total_presets"`
}

// Manifest is the single durable, versioned artifact of a generation run.
// It is replaced wholesale on every run; there is no incremental merge.
// Category member lists and preset member lists keep discovery order, so
// regenerating from an unchanged tree is byte-identical apart from the
// Generated timestamp.
type Manifest struct {
	Version          string                          `json:"version"`
	Generated        string                          `json:"generated"`
	Statistics       Statistics                      `json:"statistics"`
	Agents           map[string]*extract.Declaration `json:"agents"`
	Categories       map[string][]string             `json:"categories"`
	SuggestedPresets []Preset                        `json:"suggested_presets"`
}
