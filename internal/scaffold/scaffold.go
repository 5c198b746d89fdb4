package scaffold

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"github.com/agentdex-labs/agentdex/internal/classify"
	"github.com/agentdex-labs/agentdex/internal/extract"
)

//go:embed scaffolds/agent.py.tmpl
var starterTemplate string

// Data holds the template variables for a starter agent file.
type Data struct {
	Name        string // raw name as given on the command line
	DisplayName string // e.g., "OrderVerification"
	ClassName   string // e.g., "OrderVerificationAgent"
	FileName    string // e.g., "order_verification_agent.py"
	Category    string // optional category hint recorded in the metadata
	Description string
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	Path     string
	Warnings []string
}

// NewData derives the identifier forms a starter file needs from a raw
// name. Kebab, snake, space and camel case inputs all normalize to the
// same result; a redundant trailing "agent" is absorbed rather than
// doubled.
func NewData(name, category string) (*Data, error) {
	words := splitWords(name)
	if len(words) == 0 {
		return nil, fmt.Errorf("agent name %q has no usable characters", name)
	}
	if r := rune(words[0][0]); unicode.IsDigit(r) {
		return nil, fmt.Errorf("agent name %q must start with a letter", name)
	}

	snake := strings.ToLower(strings.Join(words, "_"))
	snake = strings.TrimSuffix(snake, "_agent")

	var pascal strings.Builder
	for _, w := range words {
		pascal.WriteString(strings.ToUpper(w[:1]))
		pascal.WriteString(strings.ToLower(w[1:]))
	}
	display := strings.TrimSuffix(pascal.String(), "Agent")
	if display == "" {
		display = "Agent"
	}

	d := &Data{
		Name:        name,
		DisplayName: display,
		ClassName:   display + "Agent",
		FileName:    snake + "_agent.py",
		Category:    category,
	}
	d.Description = fmt.Sprintf("Describe what %s does.", display)
	return d, nil
}

// splitWords breaks a raw name on separators and camel case humps.
func splitWords(name string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	prevLower := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			cur.WriteRune(r)
			prevLower = true
		case r >= 'A' && r <= 'Z':
			if prevLower {
				flush()
			}
			cur.WriteRune(r)
			prevLower = false
		default:
			flush()
			prevLower = false
		}
	}
	flush()
	return words
}

// Generate writes the starter file into dir. It refuses to overwrite an
// existing file, and re-extracts its own output so a template regression
// surfaces as a warning instead of a silently broken starter.
func Generate(data *Data, dir string) (*Result, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, data.FileName)
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%s already exists; refusing to overwrite", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}

	tmpl, err := template.New("agent.py").Parse(starterTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing starter template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing starter template: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	result := &Result{Path: path}
	if data.Category != "" {
		if _, ok := classify.Default().Category(data.Category); !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("category %q is not in the default taxonomy", data.Category))
		}
	}
	if d := extract.Source(data.FileName, buf.Bytes()); d.Completeness != extract.CompletenessFull {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("generated file extracts as %s; edit the metadata block", d.Completeness))
	}
	return result, nil
}
