package manifest

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a previously generated manifest back into memory. Parameter
// order within each agent's schema survives the round trip.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	return &m, nil
}
