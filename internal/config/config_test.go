package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tokdrift/internal/account"
)

func mustCred(user, sid, tok string) account.Credential {
	return account.Credential{Username: user, SessionID: sid, MSToken: tok, UserAgent: "UA"}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Warming.Enabled {
		t.Error("warming should be disabled by default")
	}
	if cfg.Warming.Humanization.PauseProbability != 0.3 {
		t.Errorf("expected pauseProbability=0.3, got %v", cfg.Warming.Humanization.PauseProbability)
	}
	if cfg.Warming.Humanization.WatchPctMin != 0.3 || cfg.Warming.Humanization.WatchPctMax != 0.9 {
		t.Errorf("unexpected watch window [%v,%v)",
			cfg.Warming.Humanization.WatchPctMin, cfg.Warming.Humanization.WatchPctMax)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"accounts": [
			{"username": "alice", "sessionId": "s1", "userAgent": "UA"}
		],
		"warming": {
			"enabled": true,
			"activities": {"scroll": {"enabled": true, "minScrolls": 2, "maxScrolls": 2}}
		}
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Accounts) != 1 || cfg.Accounts[0].Username != "alice" {
		t.Errorf("accounts not loaded: %+v", cfg.Accounts)
	}
	if !cfg.Warming.Enabled || !cfg.Warming.Activities.Scroll.Enabled {
		t.Error("warming scroll should be enabled")
	}
	if cfg.Warming.Activities.Scroll.MinScrolls != 2 {
		t.Errorf("expected minScrolls=2, got %d", cfg.Warming.Activities.Scroll.MinScrolls)
	}
	// Untouched fields keep defaults.
	if cfg.Warming.Activities.Scroll.SpeedMin != 500 {
		t.Errorf("expected default speedMin=500, got %d", cfg.Warming.Activities.Scroll.SpeedMin)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "warming:\n  enabled: true\npacing:\n  betweenPhasesMin: 1\n  betweenPhasesMax: 2\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Warming.Enabled {
		t.Error("warming should be enabled")
	}
	if cfg.Pacing.BetweenPhasesMin != 1 || cfg.Pacing.BetweenPhasesMax != 2 {
		t.Errorf("pacing not loaded: %+v", cfg.Pacing)
	}
}

func TestLoadFailures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
		var cfgErr *Error
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected *Error, got %v", err)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		os.WriteFile(path, []byte("{not json"), 0644)
		if _, err := Load(path); err == nil {
			t.Fatal("expected error for malformed json")
		}
	})

	t.Run("inverted range", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		os.WriteFile(path, []byte(`{"pacing": {"betweenPhasesMin": 10, "betweenPhasesMax": 1}}`), 0644)
		if _, err := Load(path); err == nil {
			t.Fatal("expected error for inverted range")
		}
	})

	t.Run("commenting enabled without comments", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		os.WriteFile(path, []byte(`{"massActions": {"commenting": {"enabled": true, "videoId": "1"}}}`), 0644)
		if _, err := Load(path); err == nil {
			t.Fatal("expected error for empty comment list")
		}
	})
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TOKDRIFT_MS_TOKEN", "env-token")
	t.Setenv("TOKDRIFT_ARCHIVE", "/tmp/runs.db")

	cfg := DefaultConfig()
	cfg.Accounts = append(cfg.Accounts,
		mustCred("alice", "s1", "own-token"),
		mustCred("bob", "s2", ""),
	)

	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}
	if cfg.Accounts[0].MSToken != "own-token" {
		t.Error("existing token must not be overridden")
	}
	if cfg.Accounts[1].MSToken != "env-token" {
		t.Error("missing token should be filled from env")
	}
	if cfg.Archive.Path != "/tmp/runs.db" {
		t.Errorf("archive path not overridden: %s", cfg.Archive.Path)
	}
}
