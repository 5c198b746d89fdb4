package classify

import (
	"strings"

	"github.com/agentdex-labs/agentdex/internal/extract"
)

// Classify assigns d's primary category by keyword scoring and records
// every non-winning category with a nonzero score as a secondary tag.
//
// A category's score is the number of its distinct keywords found in the
// declaration's combined text (identifier, description, parameter names,
// docstrings, raw source). The strictly highest score wins; ties are
// resolved by taxonomy order. When every score is zero the declaration
// falls back to the terminal category.
func (t *Taxonomy) Classify(d *extract.Declaration) {
	text := strings.ToLower(d.SearchText())

	scores := make([]int, len(t.Categories))
	best := -1
	bestScore := 0
	for i, c := range t.Categories {
		scores[i] = keywordScore(text, c.Keywords)
		if scores[i] > bestScore {
			bestScore = scores[i]
			best = i
		}
	}

	if best < 0 {
		d.Category = Fallback
		return
	}

	d.Category = t.Categories[best].Name
	for i, c := range t.Categories {
		if i != best && scores[i] > 0 {
			d.Tags = append(d.Tags, strings.ToLower(c.Name))
		}
	}
}

// keywordScore counts how many distinct keywords occur in text with a word
// boundary on both sides. text must already be lowercased.
func keywordScore(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if ContainsWord(text, strings.ToLower(kw)) {
			n++
		}
	}
	return n
}

// ContainsWord reports whether word occurs in text bounded on both sides.
// Letters and digits are word characters; underscores count as boundaries,
// so "order" is found inside "customer_order_id" but not inside "orders".
// The comparison is case-sensitive; callers lower both arguments when they
// want folding.
func ContainsWord(text, word string) bool {
	if word == "" {
		return false
	}
	for start := 0; ; {
		idx := strings.Index(text[start:], word)
		if idx < 0 {
			return false
		}
		idx += start
		boundedLeft := idx == 0 || !isWordChar(text[idx-1])
		end := idx + len(word)
		boundedRight := end >= len(text) || !isWordChar(text[end])
		if boundedLeft && boundedRight {
			return true
		}
		start = idx + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
