package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/agentdex-labs/agentdex/internal/logging"
)

// DefaultPatterns marks which filenames are treated as agent plugin sources.
var DefaultPatterns = []string{"*_agent.py"}

// Options configure a scan.
type Options struct {
	// Patterns are doublestar filename patterns. Patterns containing a
	// path separator match the root-relative path; bare patterns match
	// the base name. DefaultPatterns is used when empty.
	Patterns []string

	// Exclude lists root-relative paths to skip, such as a previously
	// generated manifest living inside the scan root.
	Exclude []string
}

// Scan walks root depth-first in lexical order and returns the root-relative
// slashed paths of candidate agent sources. Hidden directories and
// __pycache__ are skipped. A missing root is not an error: it yields an
// empty list with a warning so downstream stages still produce an empty
// catalog. A root that exists but cannot be read aborts with an error.
func Scan(root string, opts Options) ([]string, error) {
	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Warn().Str("root", root).Msg("scan root does not exist")
			return nil, nil
		}
		return nil, fmt.Errorf("reading scan root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	excluded := make(map[string]struct{}, len(opts.Exclude))
	for _, e := range opts.Exclude {
		excluded[filepath.ToSlash(e)] = struct{}{}
	}

	var found []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("reading scan root %s: %w", root, err)
			}
			logging.Debug().Str("path", path).Err(err).Msg("skipping unreadable entry")
			return nil
		}

		rel, rerr := filepath.Rel(root, path)
		if rerr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") || d.Name() == "__pycache__" {
				return fs.SkipDir
			}
			return nil
		}

		if _, skip := excluded[rel]; skip {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if matchAny(patterns, rel, d.Name()) {
			found = append(found, rel)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	logging.Debug().Int("files", len(found)).Str("root", root).Msg("scan complete")
	return found, nil
}

// matchAny reports whether rel or base matches any pattern.
func matchAny(patterns []string, rel, base string) bool {
	for _, p := range patterns {
		target := base
		if strings.Contains(p, "/") {
			target = rel
		}
		ok, err := doublestar.Match(p, target)
		if err != nil {
			logging.Warn().Str("pattern", p).Err(err).Msg("ignoring invalid file pattern")
			continue
		}
		if ok {
			return true
		}
	}
	return false
}
