package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Screen.Width != 1088 || cfg.Screen.Height != 612 {
		t.Errorf("expected default 1088x612 window, got %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Render.MaintenanceSec != 30 {
		t.Errorf("expected 30s maintenance default, got %v", cfg.Render.MaintenanceSec)
	}
	if cfg.Feed.URL == "" {
		t.Error("expected a default feed url")
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("feed:\n  url: \"ws://example:9000/ws\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading overlay: %v", err)
	}

	if cfg.Feed.URL != "ws://example:9000/ws" {
		t.Errorf("expected overlaid feed url, got %q", cfg.Feed.URL)
	}
	// Untouched sections keep their defaults.
	if cfg.Screen.TargetFPS != 60 {
		t.Errorf("expected default target_fps 60, got %d", cfg.Screen.TargetFPS)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}
