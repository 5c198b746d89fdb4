// Package scaffold generates starter agent source files from an embedded
// template. It powers the "agentdex scaffold" command, producing a file the
// extractor recognizes in full: declared name, metadata block with a
// description and parameters, and docstrings following the catalog
// conventions.
package scaffold
