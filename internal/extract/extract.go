package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	classHeaderRe = regexp.MustCompile(`(?m)^class[ \t]+([A-Za-z_][A-Za-z0-9_]*)`)

	// Assignment patterns for the conventional attribute names. Module-level
	// assignments sit at column zero; class-level ones are indented.
	moduleNameRe = regexp.MustCompile(`(?m)^(?:AGENT_NAME|NAME)[ \t]*=`)
	classNameRe  = regexp.MustCompile(`(?m)^[ \t]+(?:AGENT_NAME|NAME)[ \t]*=`)
	moduleMetaRe = regexp.MustCompile(`(?m)^(?:AGENT_METADATA|METADATA)[ \t]*=`)
	classMetaRe  = regexp.MustCompile(`(?m)^[ \t]+(?:AGENT_METADATA|METADATA)[ \t]*=`)
)

// File reads the file at path and extracts its declaration. The path is
// recorded on the declaration as given; callers usually pass paths relative
// to the scan root.
func File(path string) (*Declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading agent source %s: %w", path, err)
	}
	return Source(path, data), nil
}

// Source recovers a declaration from one file's raw text without executing
// it. It never fails: on any parse difficulty it returns the best-effort
// partial result, with Completeness reflecting how much was recovered. A
// file with nothing recoverable still yields a declaration whose ID derives
// from the filename.
func Source(path string, src []byte) *Declaration {
	text := string(src)
	d := &Declaration{
		SourcePath: filepath.ToSlash(path),
		raw:        text,
	}

	d.ModuleDoc = moduleDocstring(text)

	blocks := indexClasses(text)
	primary := primaryClass(text, blocks)

	nameStart, metaStart := -1, -1
	if primary != nil {
		d.ClassName = primary.name
		d.ClassDoc = docstringAt(text, primary.bodyStart, primary.end)

		body := text[primary.bodyStart:primary.end]
		if v := assignValue(body, classNameRe); v >= 0 {
			nameStart = primary.bodyStart + v
		}
		if v := assignValue(body, classMetaRe); v >= 0 {
			metaStart = primary.bodyStart + v
		}
	}
	if nameStart < 0 {
		nameStart = assignValue(text, moduleNameRe)
	}
	if metaStart < 0 {
		metaStart = assignValue(text, moduleMetaRe)
	}

	var displayName string
	nameOK := false
	if nameStart >= 0 {
		v, _, ok := parseLiteral(text, nameStart)
		if v.kind == litString && strings.TrimSpace(v.str) != "" {
			displayName = strings.TrimSpace(v.str)
			nameOK = ok
		}
	}

	var meta *litMap
	metaClean := false
	if metaStart >= 0 {
		v, _, ok := parseLiteral(text, metaStart)
		if v.kind == litDict {
			meta = v.dict
			metaClean = ok
		}
	}

	if meta != nil {
		if displayName == "" {
			displayName = strings.TrimSpace(meta.stringVal("name"))
		}
		d.Description = strings.TrimSpace(meta.stringVal("description"))
		d.Parameters = paramSchema(meta)
	}
	if d.Description == "" {
		d.Description = firstLine(d.ClassDoc)
	}
	if d.Description == "" {
		d.Description = firstLine(d.ModuleDoc)
	}

	d.ID = displayName
	if d.ID == "" {
		d.ID = Stem(path)
	}

	// A clean name means either a well-formed name assignment or a name
	// supplied by the metadata mapping alone.
	nameClean := nameOK || (nameStart < 0 && displayName != "")
	switch {
	case displayName != "" && nameClean && meta != nil && metaClean:
		d.Completeness = CompletenessFull
	case displayName == "" && meta == nil && d.ModuleDoc == "" && d.ClassDoc == "" && len(blocks) == 0:
		d.Completeness = CompletenessNone
	default:
		d.Completeness = CompletenessPartial
	}

	return d
}

// Stem derives a fallback identifier from a source filename: the base name
// without its extension. It never returns an empty string.
func Stem(path string) string {
	base := filepath.Base(filepath.ToSlash(path))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == "/" {
		return "agent"
	}
	return stem
}

// classBlock is one top-level class and its body span within the file text.
type classBlock struct {
	name      string
	bodyStart int // just past the header's colon
	end       int // exclusive end of the indented body
}

// indexClasses finds every top-level class header and its body span. The
// body runs to the first column-zero line that is neither blank nor a
// comment, so a following class or module-level statement terminates it.
func indexClasses(src string) []classBlock {
	matches := classHeaderRe.FindAllStringSubmatchIndex(src, -1)
	blocks := make([]classBlock, 0, len(matches))
	for _, m := range matches {
		bodyStart := headerBodyStart(src, m[3])
		blocks = append(blocks, classBlock{
			name:      src[m[2]:m[3]],
			bodyStart: bodyStart,
			end:       blockEnd(src, bodyStart),
		})
	}
	return blocks
}

// primaryClass picks the class most likely to be the plugin declaration:
// the first one whose body assigns both a display name and a metadata
// mapping, falling back to the first class found.
func primaryClass(src string, blocks []classBlock) *classBlock {
	for i := range blocks {
		b := &blocks[i]
		body := src[b.bodyStart:b.end]
		if assignValue(body, classNameRe) >= 0 && assignValue(body, classMetaRe) >= 0 {
			return b
		}
	}
	if len(blocks) > 0 {
		return &blocks[0]
	}
	return nil
}

// headerBodyStart returns the index just past the class header's colon,
// tolerating a parenthesized base list that spans lines. A malformed header
// without a colon ends at its line break.
func headerBodyStart(src string, i int) int {
	j := i
	for j < len(src) {
		switch src[j] {
		case '(':
			e, ok := balancedSpan(src, j)
			if !ok {
				return e
			}
			j = e
		case ':':
			return j + 1
		case '\n':
			return j + 1
		case '#':
			for j < len(src) && src[j] != '\n' {
				j++
			}
		default:
			j++
		}
	}
	return j
}

// blockEnd returns the exclusive end of the indented block starting at i:
// the start of the first column-zero line that is neither blank nor a
// comment. Strings and bracketed literals are skipped so that docstring
// continuation lines and dedented closing brackets cannot cut a body short.
func blockEnd(src string, i int) int {
	j := logicalLineEnd(src, i)
	for j < len(src) {
		switch src[j] {
		case ' ', '\t', '\n', '\r', '#':
			j = logicalLineEnd(src, j)
		default:
			return j
		}
	}
	return len(src)
}

// logicalLineEnd returns the index just past the end of the logical line
// starting at i. String literals, bracketed regions, comments, and
// backslash continuations may carry the line across physical line breaks.
func logicalLineEnd(src string, i int) int {
	j := i
	for j < len(src) {
		c := src[j]
		switch {
		case c == '\n':
			return j + 1
		case isQuote(c):
			e, _ := stringSpan(src, j)
			if e <= j {
				e = j + 1
			}
			j = e
		case c == '{' || c == '[' || c == '(':
			e, ok := balancedSpan(src, j)
			if !ok {
				return e
			}
			j = e
		case c == '#':
			for j < len(src) && src[j] != '\n' {
				j++
			}
		case c == '\\' && j+1 < len(src) && (src[j+1] == '\n' || src[j+1] == '\r'):
			j += 2
		default:
			j++
		}
	}
	return j
}

// assignValue finds the first assignment matched by re within region and
// returns the index where the value expression begins, or -1. Comparison
// operators are not assignments.
func assignValue(region string, re *regexp.Regexp) int {
	for _, loc := range re.FindAllStringIndex(region, -1) {
		v := loc[1]
		if v < len(region) && region[v] == '=' {
			continue
		}
		return v
	}
	return -1
}

// moduleDocstring returns the file's leading documentation block: the first
// statement when it is a bare string literal. Comments and blank lines
// before it are ignored.
func moduleDocstring(src string) string {
	i := skipSpace(src, 0)
	if i >= len(src) {
		return ""
	}
	qi := stringStart(src, i)
	if qi < 0 {
		return ""
	}
	doc, _, _ := stringValue(src, qi)
	return strings.TrimSpace(doc)
}

// docstringAt returns the docstring opening an indented block, if the
// block's first statement is a bare string literal.
func docstringAt(src string, start, end int) string {
	i := skipSpace(src, start)
	if i >= end {
		return ""
	}
	qi := stringStart(src, i)
	if qi < 0 || qi >= end {
		return ""
	}
	doc, _, _ := stringValue(src, qi)
	return strings.TrimSpace(doc)
}

// paramSchema extracts the ordered parameter schema from a metadata
// mapping. A parameter whose spec is a bare string is treated as a
// description with no declared type.
func paramSchema(meta *litMap) ParamSchema {
	pv, ok := meta.get("parameters")
	if !ok || pv.kind != litDict {
		return nil
	}
	schema := make(ParamSchema, 0, len(pv.dict.keys))
	for _, name := range pv.dict.keys {
		entry := ParamEntry{Name: name}
		spec, _ := pv.dict.get(name)
		switch spec.kind {
		case litDict:
			entry.Spec = ParamSpec{
				Type:        strings.TrimSpace(spec.dict.stringVal("type")),
				Description: strings.TrimSpace(spec.dict.stringVal("description")),
			}
		case litString:
			entry.Spec = ParamSpec{Description: strings.TrimSpace(spec.str)}
		}
		schema = append(schema, entry)
	}
	return schema
}

// firstLine returns the first non-empty line of s, trimmed.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}
