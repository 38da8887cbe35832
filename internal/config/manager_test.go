package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewManager_CreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}

	cfg := m.Get()
	def := DefaultConfig()
	if cfg != *def {
		t.Fatalf("config = %+v, want defaults %+v", cfg, *def)
	}
}

func TestManager_UpdatePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	err = m.Update(func(c *Config) error {
		c.Stats.RecentSignupDays = 30
		c.Analytics.OverviewCacheSeconds = 120
		return nil
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	// A fresh manager reading the same file sees the change.
	reloaded, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager() reload error = %v", err)
	}
	cfg := reloaded.Get()
	if cfg.Stats.RecentSignupDays != 30 {
		t.Fatalf("RecentSignupDays = %d, want 30", cfg.Stats.RecentSignupDays)
	}
	if cfg.Analytics.OverviewCacheSeconds != 120 {
		t.Fatalf("OverviewCacheSeconds = %d, want 120", cfg.Analytics.OverviewCacheSeconds)
	}
}

func TestManager_UpdateErrorDiscardsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	wantErr := os.ErrInvalid
	err = m.Update(func(c *Config) error {
		c.Stats.RecentSignupDays = 99
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("Update() error = %v, want %v", err, wantErr)
	}
	if got := m.Get().Stats.RecentSignupDays; got != DefaultConfig().Stats.RecentSignupDays {
		t.Fatalf("RecentSignupDays = %d, change must be discarded", got)
	}
}

func TestManager_NormalizesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "server:\n  name: Custom Name\nstats:\n  recent_signup_days: 14\n"
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	cfg := m.Get()
	if cfg.Server.Name != "Custom Name" {
		t.Fatalf("Server.Name = %q", cfg.Server.Name)
	}
	if cfg.Stats.RecentSignupDays != 14 {
		t.Fatalf("RecentSignupDays = %d, want 14", cfg.Stats.RecentSignupDays)
	}
	// Missing keys fall back to defaults.
	if cfg.Auth.TokenTTLMinutes != DefaultConfig().Auth.TokenTTLMinutes {
		t.Fatalf("TokenTTLMinutes = %d, want default", cfg.Auth.TokenTTLMinutes)
	}
	if cfg.Analytics.DefaultTrendDays != DefaultConfig().Analytics.DefaultTrendDays {
		t.Fatalf("DefaultTrendDays = %d, want default", cfg.Analytics.DefaultTrendDays)
	}
}

func TestManager_RejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{{not yaml"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := NewManager(path); err == nil {
		t.Fatalf("expected error for invalid yaml")
	}
}
