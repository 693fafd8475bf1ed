// Package taxonomy loads the static document-to-industry-codes mapping
// that backs the industry taxonomy.
package taxonomy

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aika-cloud/answerdex/internal/domain/industry"
)

// file is the on-disk shape of the taxonomy data.
type file struct {
	Documents map[string]string `yaml:"documents"`
}

// Load reads a YAML mapping of document IDs to comma-separated industry
// codes and builds the immutable taxonomy. Loaded once at startup.
func Load(path string) (*industry.Taxonomy, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read taxonomy %s: %w", path, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse taxonomy %s: %w", path, err)
	}
	if len(f.Documents) == 0 {
		return nil, fmt.Errorf("taxonomy %s has no documents", path)
	}

	return industry.NewTaxonomy(f.Documents), nil
}
