package extract

import "strings"

// The functions in this file implement a tolerant scanner for Python-style
// literals: strings (single, double, triple-quoted, with escapes), dicts,
// lists, and bare scalar tokens. Nothing here evaluates code; the scanner
// walks raw text and degrades to partial results on malformed input instead
// of failing.

type litKind int

const (
	litString litKind = iota
	litDict
	litList
	litScalar
)

// litValue is one parsed literal value.
type litValue struct {
	kind litKind
	str  string // decoded text for litString, raw token for litScalar
	dict *litMap
	list []litValue
}

// litMap is an insertion-ordered string-keyed mapping.
type litMap struct {
	keys []string
	vals map[string]litValue
}

func newLitDict() *litMap {
	return &litMap{vals: make(map[string]litValue)}
}

func (d *litMap) set(key string, v litValue) {
	if _, exists := d.vals[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.vals[key] = v
}

func (d *litMap) get(key string) (litValue, bool) {
	v, ok := d.vals[key]
	return v, ok
}

// stringVal returns the decoded string for key, or "" if the key is absent
// or holds a non-string value.
func (d *litMap) stringVal(key string) string {
	v, ok := d.vals[key]
	if !ok || v.kind != litString {
		return ""
	}
	return v.str
}

// isQuote reports whether c opens a string literal.
func isQuote(c byte) bool {
	return c == '\'' || c == '"'
}

// stringStart checks for a string literal at i, tolerating up to two prefix
// letters (r, b, f, u in either case). It returns the index of the opening
// quote, or -1 if no string starts here.
func stringStart(src string, i int) int {
	j := i
	for j < len(src) && j < i+2 && isPrefixLetter(src[j]) {
		j++
	}
	if j < len(src) && isQuote(src[j]) {
		return j
	}
	if isQuote(src[i]) {
		return i
	}
	return -1
}

func isPrefixLetter(c byte) bool {
	switch c {
	case 'r', 'R', 'b', 'B', 'f', 'F', 'u', 'U':
		return true
	}
	return false
}

// stringSpan returns the index just past the string literal whose opening
// quote is at i. ok is false when the literal is unterminated, in which case
// end is len(src).
func stringSpan(src string, i int) (end int, ok bool) {
	q := src[i]
	// Triple-quoted string.
	if strings.HasPrefix(src[i:], strings.Repeat(string(q), 3)) {
		closer := strings.Repeat(string(q), 3)
		j := i + 3
		for j < len(src) {
			if src[j] == '\\' {
				j += 2
				continue
			}
			if strings.HasPrefix(src[j:], closer) {
				return j + 3, true
			}
			j++
		}
		return len(src), false
	}
	// Single-quoted string: ends at the matching quote or at end of line.
	j := i + 1
	for j < len(src) {
		switch src[j] {
		case '\\':
			j += 2
			continue
		case q:
			return j + 1, true
		case '\n':
			// Unterminated on this line; treat the newline as the end.
			return j, false
		}
		j++
	}
	return len(src), false
}

// stringValue decodes the string literal whose opening quote is at i.
func stringValue(src string, i int) (val string, end int, ok bool) {
	q := src[i]
	end, ok = stringSpan(src, i)
	body := ""
	if strings.HasPrefix(src[i:], strings.Repeat(string(q), 3)) {
		start := i + 3
		stop := end
		if ok {
			stop = end - 3
		}
		if stop < start {
			stop = start
		}
		body = src[start:stop]
	} else {
		start := i + 1
		stop := end
		if ok {
			stop = end - 1
		}
		if stop < start {
			stop = start
		}
		body = src[start:stop]
	}
	return decodeEscapes(body), end, ok
}

// decodeEscapes resolves the common backslash escapes. Unknown escapes are
// kept verbatim, matching Python's lenient behavior.
func decodeEscapes(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		case '\'':
			b.WriteByte('\'')
		case '"':
			b.WriteByte('"')
		case '\n':
			// Line continuation inside a string: swallow the newline.
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// skipSpace advances past whitespace, comments, and line continuations.
func skipSpace(src string, i int) int {
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '#':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '\\' && i+1 < len(src) && (src[i+1] == '\n' || src[i+1] == '\r'):
			i += 2
		default:
			return i
		}
	}
	return i
}

// matchBracket returns the closer for an opening bracket.
func matchBracket(open byte) byte {
	switch open {
	case '{':
		return '}'
	case '[':
		return ']'
	case '(':
		return ')'
	}
	return 0
}

// balancedSpan returns the index just past the bracketed region opening at i,
// skipping strings and comments. ok is false when the region never closes.
func balancedSpan(src string, i int) (end int, ok bool) {
	var stack []byte
	j := i
	for j < len(src) {
		c := src[j]
		switch c {
		case '{', '[', '(':
			stack = append(stack, matchBracket(c))
			j++
		case '}', ']', ')':
			if len(stack) == 0 {
				return j, false
			}
			want := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if c != want {
				return j, false
			}
			j++
			if len(stack) == 0 {
				return j, true
			}
		case '\'', '"':
			e, _ := stringSpan(src, j)
			if e <= j {
				e = j + 1
			}
			j = e
		case '#':
			for j < len(src) && src[j] != '\n' {
				j++
			}
		default:
			j++
		}
	}
	return len(src), false
}

// scalarSpan consumes a bare token (number, True, None, identifier, call
// expression) starting at i, balancing any nested brackets, until a
// top-level delimiter.
func scalarSpan(src string, i int) int {
	j := i
	for j < len(src) {
		c := src[j]
		switch c {
		case ',', '}', ']', ')', '\n', '#':
			return j
		case '{', '[', '(':
			e, ok := balancedSpan(src, j)
			if !ok {
				return e
			}
			j = e
		case '\'', '"':
			e, _ := stringSpan(src, j)
			if e <= j {
				e = j + 1
			}
			j = e
		default:
			j++
		}
	}
	return j
}

// parseLiteral parses one literal value at i. ok is false when the value was
// cut short by malformed input; whatever was recovered is still returned.
func parseLiteral(src string, i int) (litValue, int, bool) {
	i = skipSpace(src, i)
	if i >= len(src) {
		return litValue{kind: litScalar}, i, false
	}

	if qi := stringStart(src, i); qi >= 0 {
		val, end, ok := stringValue(src, qi)
		// Adjacent string literals concatenate, as in Python.
		for ok {
			next := skipSpace(src, end)
			nq := -1
			if next < len(src) {
				nq = stringStart(src, next)
			}
			if nq < 0 {
				break
			}
			more, e2, ok2 := stringValue(src, nq)
			val += more
			end = e2
			if !ok2 {
				ok = false
			}
		}
		return litValue{kind: litString, str: val}, end, ok
	}

	switch src[i] {
	case '{':
		return parseDictLit(src, i)
	case '[', '(':
		return parseListLit(src, i)
	}

	end := scalarSpan(src, i)
	tok := strings.TrimSpace(src[i:end])
	return litValue{kind: litScalar, str: tok}, end, tok != ""
}

// parseDictLit parses a dict literal at i, preserving key order. Malformed
// input yields the entries recovered so far with ok=false.
func parseDictLit(src string, i int) (litValue, int, bool) {
	d := newLitDict()
	v := litValue{kind: litDict, dict: d}

	j := i + 1 // past '{'
	for {
		j = skipSpace(src, j)
		if j >= len(src) {
			return v, j, false
		}
		if src[j] == '}' {
			return v, j + 1, true
		}

		// Key: a string literal or a bare token up to ':'.
		var key string
		if qi := stringStart(src, j); qi >= 0 {
			k, end, ok := stringValue(src, qi)
			if !ok {
				return v, end, false
			}
			key = k
			j = end
		} else {
			colon := strings.IndexByte(src[j:], ':')
			if colon < 0 {
				return v, len(src), false
			}
			key = strings.TrimSpace(src[j : j+colon])
			j += colon
		}

		j = skipSpace(src, j)
		if j >= len(src) || src[j] != ':' {
			return v, j, false
		}
		j++ // past ':'

		val, end, ok := parseLiteral(src, j)
		if key != "" {
			d.set(key, val)
		}
		j = end
		if !ok {
			return v, j, false
		}

		j = skipSpace(src, j)
		if j < len(src) && src[j] == ',' {
			j++
			continue
		}
		if j < len(src) && src[j] == '}' {
			return v, j + 1, true
		}
		if j >= len(src) {
			return v, j, false
		}
		// Unexpected token; stop with what we have.
		return v, j, false
	}
}

// parseListLit parses a list or tuple literal at i.
func parseListLit(src string, i int) (litValue, int, bool) {
	closer := matchBracket(src[i])
	v := litValue{kind: litList}

	j := i + 1
	for {
		j = skipSpace(src, j)
		if j >= len(src) {
			return v, j, false
		}
		if src[j] == closer {
			return v, j + 1, true
		}

		elem, end, ok := parseLiteral(src, j)
		v.list = append(v.list, elem)
		j = end
		if !ok {
			return v, j, false
		}

		j = skipSpace(src, j)
		if j < len(src) && src[j] == ',' {
			j++
			continue
		}
		if j < len(src) && src[j] == closer {
			return v, j + 1, true
		}
		if j >= len(src) {
			return v, j, false
		}
		return v, j, false
	}
}
