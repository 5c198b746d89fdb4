// Package catalog aggregates extracted declarations into the final
// manifest. The Builder is the explicit per-run accumulator: it owns
// identifier deduplication, classification and mining, advisory dependency
// cross references, preset synthesis, and statistics. Generate wires the
// whole pipeline together for one scan root.
package catalog
