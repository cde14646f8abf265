package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_WriteAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	cfg := &Config{
		Stores: []Store{
			{Alias: "local", URL: "http://localhost:8080"},
			{Alias: "staging", URL: "https://staging.example.com"},
		},
	}
	if err := cfg.WriteToFile(path); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if len(loaded.Stores) != 2 {
		t.Fatalf("expected 2 stores, got %d", len(loaded.Stores))
	}
	if loaded.Stores[0].Alias != "local" || loaded.Stores[0].URL != "http://localhost:8080" {
		t.Errorf("unexpected first store: %+v", loaded.Stores[0])
	}
}

func TestConfig_LoadMissingFile(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestConfig_LoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}

func TestConfig_GetStoreByAlias(t *testing.T) {
	cfg := &Config{Stores: []Store{
		{Alias: "local", URL: "http://localhost:8080"},
		{Alias: "prod", URL: "https://shop.example.com"},
	}}

	store, err := cfg.GetStoreByAlias("prod")
	if err != nil {
		t.Fatalf("expected to find store: %v", err)
	}
	if store.URL != "https://shop.example.com" {
		t.Errorf("expected prod URL, got %q", store.URL)
	}

	if _, err := cfg.GetStoreByAlias("missing"); err == nil {
		t.Error("expected an error for an unknown alias")
	}
}

func TestConfig_GetDefaultStore(t *testing.T) {
	empty := &Config{}
	if _, err := empty.GetDefaultStore(); err == nil {
		t.Error("expected an error with no stores configured")
	}

	cfg := &Config{Stores: []Store{{Alias: "only", URL: "http://localhost:8080"}}}
	store, err := cfg.GetDefaultStore()
	if err != nil {
		t.Fatalf("expected default store: %v", err)
	}
	if store.Alias != "only" {
		t.Errorf("expected alias 'only', got %q", store.Alias)
	}
}
