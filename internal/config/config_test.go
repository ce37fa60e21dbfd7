package config

import "testing"

func TestLoad(t *testing.T) {
	t.Setenv("FIOBANK_TOKEN", "test-token")
	t.Setenv("FIOBANK_BASE_URL", "http://localhost:9000/v1/rest/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.FioToken != "test-token" {
		t.Errorf("FioToken = %q, want %q", cfg.FioToken, "test-token")
	}
	if cfg.FioBaseURL != "http://localhost:9000/v1/rest/" {
		t.Errorf("FioBaseURL = %q, want the override", cfg.FioBaseURL)
	}
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("FIOBANK_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() with no FIOBANK_TOKEN should fail")
	}
}
