// Package cli defines the Cobra command tree for the agentdex CLI. Each file
// in this package registers one top-level command (generate, list, search,
// validate, scaffold, doctor, config, version) with the root command.
// Command implementations delegate to internal packages for the pipeline
// work and only handle flag parsing, I/O formatting, and exit status.
package cli
