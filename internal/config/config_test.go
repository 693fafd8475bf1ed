package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:       HTTPConfig{Port: 8080},
		Database:   DatabaseConfig{Addrs: []string{"localhost:6379"}},
		Completion: CompletionConfig{APIKey: "test-key"},
		Embedding:  EmbeddingConfig{APIKey: "test-key"},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MissingProviderKeys(t *testing.T) {
	cfg := validConfig()
	cfg.Completion.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing completion api key")
	}

	cfg = validConfig()
	cfg.Embedding.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing embedding api key")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Completion.SynthesisModel != "gpt-4o" {
		t.Errorf("expected SynthesisModel=gpt-4o, got %q", cfg.Completion.SynthesisModel)
	}
	if cfg.Completion.ExpansionModel != "gpt-4o" {
		t.Errorf("expected ExpansionModel to follow synthesis model, got %q", cfg.Completion.ExpansionModel)
	}
	if cfg.Completion.ClassifierModel != "gpt-4o" {
		t.Errorf("expected ClassifierModel to follow synthesis model, got %q", cfg.Completion.ClassifierModel)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("expected default embedding model, got %q", cfg.Embedding.Model)
	}
	if cfg.Embedding.Dimensions != 1536 {
		t.Errorf("expected Dimensions=1536, got %d", cfg.Embedding.Dimensions)
	}
	if cfg.Retrieval.TopK != 3 {
		t.Errorf("expected TopK=3, got %d", cfg.Retrieval.TopK)
	}
	if cfg.Retrieval.Expansions != 4 {
		t.Errorf("expected Expansions=4, got %d", cfg.Retrieval.Expansions)
	}
	if cfg.Retrieval.MaxConcurrent != 5 {
		t.Errorf("expected MaxConcurrent=5, got %d", cfg.Retrieval.MaxConcurrent)
	}
	if cfg.Storage.KeyPrefix != "answerdex:" {
		t.Errorf("expected KeyPrefix='answerdex:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Taxonomy.Path != filepath.Join("config", "taxonomy.yaml") {
		t.Errorf("expected default taxonomy path, got %q", cfg.Taxonomy.Path)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 120, ShutdownSec: 5},
		Database: DatabaseConfig{ReadinessTimeout: 15},
		Completion: CompletionConfig{
			SynthesisModel: "gpt-4o-mini",
			ExpansionModel: "gpt-3.5-turbo",
		},
		Retrieval: RetrievalConfig{TopK: 10, Expansions: 2, MaxConcurrent: 8},
		Storage:   StorageConfig{KeyPrefix: "custom:"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 120 {
		t.Errorf("expected WriteTimeoutSec=120, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Completion.ExpansionModel != "gpt-3.5-turbo" {
		t.Errorf("expected ExpansionModel='gpt-3.5-turbo', got %q", cfg.Completion.ExpansionModel)
	}
	if cfg.Retrieval.TopK != 10 {
		t.Errorf("expected TopK=10, got %d", cfg.Retrieval.TopK)
	}
	if cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Storage.KeyPrefix)
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("ANSWERDEX_TEST_KEY", "secret")
	defer os.Unsetenv("ANSWERDEX_TEST_KEY")

	in := []byte("api_key: ${ANSWERDEX_TEST_KEY}\nbase_url: ${ANSWERDEX_TEST_URL:-https://api.openai.com/v1}\n")
	out := string(expandEnvVars(in))

	want := "api_key: secret\nbase_url: https://api.openai.com/v1\n"
	if out != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", out, want)
	}
}
