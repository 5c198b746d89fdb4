package manifest

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/catalog.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is a single schema violation.
type ValidationIssue struct {
	Path    string // instance location, e.g. "/agents/OrderVerification/id"
	Message string // human-readable error message
	Keyword string // schema keyword that failed
}

// getSchema compiles the embedded catalog schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("catalog.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("catalog.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate checks raw manifest JSON against the embedded catalog schema.
// The error return is for schema compilation or JSON parse failures;
// schema violations are reported in the ValidationResult.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing manifest JSON: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	return &ValidationResult{Valid: false, Issues: extractIssues(validationErr)}, nil
}

// ValidateFile reads a manifest file and validates it against the schema.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return Validate(data)
}

// extractIssues flattens the validation error tree into deduplicated
// leaf-level issues with localized messages.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	seen := make(map[string]struct{})

	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, cause := range e.Causes {
				walk(cause)
			}
			return
		}

		path := ""
		if len(e.InstanceLocation) > 0 {
			path = "/" + strings.Join(e.InstanceLocation, "/")
		}
		var keyword, msg string
		if e.ErrorKind != nil {
			if kp := e.ErrorKind.KeywordPath(); len(kp) > 0 {
				keyword = kp[len(kp)-1]
			}
			msg = e.ErrorKind.LocalizedString(printer)
		}
		// Container keywords carry no property-level detail.
		if keyword == "" || keyword == "$ref" {
			return
		}

		key := path + "|" + keyword + "|" + msg
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		issues = append(issues, ValidationIssue{Path: path, Message: msg, Keyword: keyword})
	}
	walk(ve)

	if len(issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	return issues
}

// CheckIntegrity verifies the cross-field invariants a schema cannot
// express: preset and category members must exist in the agents map, map
// keys must match declaration identifiers, and statistics must agree with
// the actual counts. It returns a deterministic list of problems, empty
// when the manifest is internally consistent.
func CheckIntegrity(m *Manifest) []string {
	var problems []string

	ids := make([]string, 0, len(m.Agents))
	for id := range m.Agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		d := m.Agents[id]
		if d == nil {
			problems = append(problems, fmt.Sprintf("agent %q has no declaration", id))
			continue
		}
		if d.ID != id {
			problems = append(problems, fmt.Sprintf("agent key %q does not match declaration id %q", id, d.ID))
		}
	}

	catNames := make([]string, 0, len(m.Categories))
	for name := range m.Categories {
		catNames = append(catNames, name)
	}
	sort.Strings(catNames)

	for _, name := range catNames {
		for _, id := range m.Categories[name] {
			d, ok := m.Agents[id]
			if !ok {
				problems = append(problems, fmt.Sprintf("category %q lists unknown agent %q", name, id))
				continue
			}
			if d != nil && d.Category != name {
				problems = append(problems, fmt.Sprintf("agent %q is filed under %q but declares category %q", id, name, d.Category))
			}
		}
	}

	for _, p := range m.SuggestedPresets {
		for _, id := range p.Agents {
			if _, ok := m.Agents[id]; !ok {
				problems = append(problems, fmt.Sprintf("preset %q references unknown agent %q", p.Name, id))
			}
		}
		if p.Origin == OriginFull && len(p.Agents) != m.Statistics.TotalAgents {
			problems = append(problems, fmt.Sprintf("preset %q has %d members, want %d", p.Name, len(p.Agents), m.Statistics.TotalAgents))
		}
	}

	if got, want := m.Statistics.TotalAgents, len(m.Agents); got != want {
		problems = append(problems, fmt.Sprintf("statistics report %d agents, manifest has %d", got, want))
	}
	if got, want := m.Statistics.TotalCategories, len(m.Categories); got != want {
		problems = append(problems, fmt.Sprintf("statistics report %d categories, manifest has %d", got, want))
	}
	if got, want := m.Statistics.TotalPresets, len(m.SuggestedPresets); got != want {
		problems = append(problems, fmt.Sprintf("statistics report %d presets, manifest has %d", got, want))
	}

	return problems
}
