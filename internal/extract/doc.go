// Package extract recovers agent declarations from plugin source files by
// pure text analysis. Candidate files are never executed or imported, since
// they may depend on packages that are unavailable or side-effecting; the
// extractor instead pattern-matches literal assignments and walks nested
// bracket structures, degrading to a partial declaration on malformed input
// rather than failing the run.
package extract
