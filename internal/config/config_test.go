package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("model = %s", cfg.OpenAI.Model)
	}
	if cfg.DataLab.BaseURL != "https://openapi.naver.com" {
		t.Errorf("datalab base url = %s", cfg.DataLab.BaseURL)
	}
	if cfg.Watch.Cron == "" {
		t.Error("watch cron default missing")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: 9000
openai:
  api_key: file-key
watch:
  keywords: ["캠핑용품", "등산화"]
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OPENAI_API_KEY", "env-key")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000 from file", cfg.Server.Port)
	}
	if cfg.OpenAI.APIKey != "env-key" {
		t.Errorf("api key = %s, want env override", cfg.OpenAI.APIKey)
	}
	if len(cfg.Watch.Keywords) != 2 {
		t.Errorf("watch keywords = %v", cfg.Watch.Keywords)
	}
}

func TestValidate_BadPort(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative port")
	}
	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for out-of-range port")
	}
}
