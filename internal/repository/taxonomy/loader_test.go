package taxonomy

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTaxonomy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeTaxonomy(t, `
documents:
  EU_2025_1710_VSME: "0"
  EU_2023_956_CBAM: "C, G"
  EU_2018_813_EMASLandwirtschaft: "A"
`)

	tax, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tax.Len() != 3 {
		t.Fatalf("expected 3 documents, got %d", tax.Len())
	}

	codes := tax.CodesFor("EU_2023_956_CBAM")
	if !codes.Has("C") || !codes.Has("G") {
		t.Errorf("CBAM codes = %v, want C and G", codes.Sorted())
	}
	if !tax.DocumentRelevant("EU_2025_1710_VSME", "Q") {
		t.Error("general document should be relevant to any sector")
	}
	if tax.DocumentRelevant("EU_2018_813_EMASLandwirtschaft", "C") {
		t.Error("agriculture document should not be relevant to manufacturing")
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	if _, err := Load(writeTaxonomy(t, "documents: {}")); err == nil {
		t.Error("expected error for empty mapping")
	}

	if _, err := Load(writeTaxonomy(t, "not: [valid")); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
