// Package manifest defines the durable catalog artifact and everything
// that touches it: the manifest types, an atomic writer that replaces the
// artifact wholesale, a reader, JSON Schema validation with an embedded
// schema, cross-field integrity checks, and the semver compatibility rule
// for consumers.
package manifest
