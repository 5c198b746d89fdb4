// Package config manages user-level settings stored at ~/.agentdex/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the default scan root, output path, and candidate filename patterns.
package config
