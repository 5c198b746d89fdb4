// Package classify assigns categories, tags, and use-cases to extracted
// agent declarations. Classification is keyword scoring against an ordered
// taxonomy; tag and use-case mining are vocabulary and lead-in-phrase scans
// over documentation text. The default taxonomy is embedded in the binary
// and can be replaced by a YAML file at runtime.
package classify
