package common

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.Server.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.Server.HTTPAddr)
	}
	if cfg.Extract.LineTolerance != 5.0 {
		t.Errorf("LineTolerance = %v, want 5.0", cfg.Extract.LineTolerance)
	}
	if cfg.LLM.Model != "gemini-2.0-flash" {
		t.Errorf("Model = %q", cfg.LLM.Model)
	}
	if cfg.LLM.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v", cfg.LLM.Timeout)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("LINE_TOLERANCE", "7.5")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MAX_ATTEMPTS", "5")

	cfg := LoadConfig()
	if cfg.Server.HTTPAddr != ":9999" {
		t.Errorf("HTTPAddr = %q", cfg.Server.HTTPAddr)
	}
	if cfg.Extract.LineTolerance != 7.5 {
		t.Errorf("LineTolerance = %v", cfg.Extract.LineTolerance)
	}
	if !cfg.LLM.AIEnabled() {
		t.Error("AIEnabled() = false with key set")
	}
	if cfg.LLM.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d", cfg.LLM.MaxAttempts)
	}
}

func TestValidate(t *testing.T) {
	cfg := LoadConfig()
	cfg.Database.DSN = "postgres://localhost/vob"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v for complete config", err)
	}

	cfg.Database.DSN = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted empty DB_URL")
	}
}

func TestAIEnabled(t *testing.T) {
	if (LLMConfig{}).AIEnabled() {
		t.Error("AIEnabled() = true without API key")
	}
	if !(LLMConfig{APIKey: "k"}).AIEnabled() {
		t.Error("AIEnabled() = false with API key")
	}
}
