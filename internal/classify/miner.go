package classify

import (
	"strings"

	"github.com/agentdex-labs/agentdex/internal/extract"
)

// Mine scans d's documentation for use-case lead-in phrases and its wider
// text for vocabulary terms, appending the results to d.UseCases and
// d.Tags. Absence of any match leaves both untouched.
func (t *Taxonomy) Mine(d *extract.Declaration) {
	d.UseCases = append(d.UseCases, t.MineUseCases(d.DocText())...)
	d.Tags = append(d.Tags, t.MineTags(d.TagText())...)
}

// MineUseCases extracts the delimiter-separated phrase lists that follow
// any configured lead-in phrase ("Perfect for:", "Use cases:", ...) in doc,
// preserving first-seen order and dropping duplicates.
func (t *Taxonomy) MineUseCases(doc string) []string {
	if doc == "" || len(t.Phrases) == 0 {
		return nil
	}

	var cases []string
	seen := make(map[string]struct{})
	for _, line := range strings.Split(doc, "\n") {
		for _, phrase := range t.Phrases {
			idx := indexFold(line, phrase)
			if idx < 0 {
				continue
			}
			for _, part := range splitPhraseList(line[idx+len(phrase):]) {
				key := strings.ToLower(part)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				cases = append(cases, part)
			}
		}
	}
	return cases
}

// MineTags returns every vocabulary term found in text by case-insensitive
// substring search, lowercased, in vocabulary order.
func (t *Taxonomy) MineTags(text string) []string {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)
	var tags []string
	for _, term := range t.Vocabulary {
		lt := strings.ToLower(strings.TrimSpace(term))
		if lt == "" {
			continue
		}
		if strings.Contains(lower, lt) {
			tags = append(tags, lt)
		}
	}
	return tags
}

// splitPhraseList breaks "restaurants, cafes and food trucks." into its
// trimmed parts.
func splitPhraseList(s string) []string {
	rough := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})

	var parts []string
	for _, r := range rough {
		for _, p := range strings.Split(r, " and ") {
			p = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(p), "."))
			if p != "" {
				parts = append(parts, p)
			}
		}
	}
	return parts
}

// indexFold is a case-insensitive strings.Index for ASCII needles.
func indexFold(s, sub string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(sub))
}
