package suite

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadTrimsInputFiles(t *testing.T) {
	tmp := t.TempDir()
	tokenPath := filepath.Join(tmp, "token.txt")
	setPath := filepath.Join(tmp, "flashcardset_id.txt")
	if err := os.WriteFile(tokenPath, []byte("  tok-123\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(setPath, []byte("set-9\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tokenPath, setPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Token != "tok-123" {
		t.Fatalf("token not trimmed: %q", cfg.Token)
	}
	if cfg.SetID != "set-9" {
		t.Fatalf("set id not trimmed: %q", cfg.SetID)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("unexpected base url %q", cfg.BaseURL)
	}
}

func TestLoadPropagatesReadErrors(t *testing.T) {
	tmp := t.TempDir()
	if _, err := Load(filepath.Join(tmp, "missing.txt"), filepath.Join(tmp, "also-missing.txt")); err == nil {
		t.Fatal("expected error for missing token file")
	}
}

func TestConfigValidate(t *testing.T) {
	ok := Config{BaseURL: "http://x", Token: "t", SetID: "s"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	for name, cfg := range map[string]Config{
		"no base url": {Token: "t", SetID: "s"},
		"no token":    {BaseURL: "http://x", SetID: "s"},
		"no set id":   {BaseURL: "http://x", Token: "t"},
	} {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestPollDefaults(t *testing.T) {
	var cfg Config
	if got := cfg.pollAttempts(); got != DefaultPollAttempts {
		t.Fatalf("attempts default: %d", got)
	}
	if got := cfg.pollInterval(); got != DefaultPollInterval {
		t.Fatalf("interval default: %s", got)
	}
	if got := cfg.pollBackoff(); got != 1 {
		t.Fatalf("backoff default: %f", got)
	}
	cfg = Config{PollAttempts: 3, PollInterval: 10 * time.Millisecond, PollBackoff: 2}
	if cfg.pollAttempts() != 3 || cfg.pollInterval() != 10*time.Millisecond || cfg.pollBackoff() != 2 {
		t.Fatalf("explicit values not honored: %+v", cfg)
	}
}
