package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Completeness indicates how much metadata was recovered from a source file.
type Completeness string

// Completeness levels, from best to worst.
const (
	// CompletenessFull means both a display name and a parseable metadata
	// mapping were recovered.
	CompletenessFull Completeness = "full"
	// CompletenessPartial means some metadata was recovered (a name, a
	// docstring, or a class) but not the full declaration shape.
	CompletenessPartial Completeness = "partial"
	// CompletenessNone means nothing was recovered; the declaration carries
	// only its filename-derived identifier.
	CompletenessNone Completeness = "none"
)

// ParamSpec describes a single declared parameter.
type ParamSpec struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// ParamEntry is one named parameter in declaration order.
type ParamEntry struct {
	Name string
	Spec ParamSpec
}

// ParamSchema is an order-preserving mapping of parameter name to spec.
// It marshals to a JSON object whose keys appear in declaration order and
// unmarshals back preserving that order, so manifests survive a round trip
// byte-identically.
type ParamSchema []ParamEntry

// Names returns the parameter names in declaration order.
func (p ParamSchema) Names() []string {
	names := make([]string, len(p))
	for i, e := range p {
		names[i] = e.Name
	}
	return names
}

// Get returns the spec for a named parameter.
func (p ParamSchema) Get(name string) (ParamSpec, bool) {
	for _, e := range p {
		if e.Name == name {
			return e.Spec, true
		}
	}
	return ParamSpec{}, false
}

// MarshalJSON emits a JSON object with keys in declaration order.
func (p ParamSchema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(e.Spec)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key order.
func (p *ParamSchema) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("parameters: expected JSON object, got %v", tok)
	}

	var entries ParamSchema
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("parameters: expected string key, got %v", keyTok)
		}
		var spec ParamSpec
		if err := dec.Decode(&spec); err != nil {
			return fmt.Errorf("parameters: decoding %q: %w", key, err)
		}
		entries = append(entries, ParamEntry{Name: key, Spec: spec})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*p = entries
	return nil
}

// Declaration is the structured, best-effort description recovered from one
// agent plugin source file. Category, Tags, UseCases, and Dependencies are
// filled in by later pipeline stages; the extractor leaves them empty.
type Declaration struct {
	ID           string       `json:"id"`
	SourcePath   string       `json:"source_path"`
	ClassName    string       `json:"class_name,omitempty"`
	Description  string       `json:"description,omitempty"`
	Parameters   ParamSchema  `json:"parameters,omitempty"`
	ModuleDoc    string       `json:"module_doc,omitempty"`
	ClassDoc     string       `json:"class_doc,omitempty"`
	Category     string       `json:"category"`
	Tags         []string     `json:"tags,omitempty"`
	UseCases     []string     `json:"use_cases,omitempty"`
	Dependencies []string     `json:"dependencies,omitempty"`
	Completeness Completeness `json:"completeness"`

	// raw holds the original source text for downstream keyword scanning.
	// It is deliberately not serialized.
	raw string
}

// Raw returns the original source text the declaration was extracted from.
// Declarations loaded back from a manifest have no raw text.
func (d *Declaration) Raw() string {
	return d.raw
}

// DocText returns the concatenated documentation text the use-case miner
// scans: description, module docstring, and class docstring.
func (d *Declaration) DocText() string {
	return join(d.Description, d.ModuleDoc, d.ClassDoc)
}

// TagText returns the text the domain-tag vocabulary is matched against:
// documentation text plus parameter names and descriptions.
func (d *Declaration) TagText() string {
	parts := []string{d.DocText()}
	for _, e := range d.Parameters {
		parts = append(parts, e.Name, e.Spec.Description)
	}
	return join(parts...)
}

// SearchText returns the concatenation the classifier scores against:
// identifier, description, parameter names, docstrings, and raw source.
func (d *Declaration) SearchText() string {
	parts := []string{d.ID, d.Description}
	parts = append(parts, d.Parameters.Names()...)
	parts = append(parts, d.ModuleDoc, d.ClassDoc, d.raw)
	return join(parts...)
}

func join(parts ...string) string {
	var buf bytes.Buffer
	for _, p := range parts {
		if p == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(p)
	}
	return buf.String()
}
