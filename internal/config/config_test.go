package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_NoConfigFilesUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Report.Product != DefaultProduct {
		t.Errorf("expected default product, got %q", cfg.Report.Product)
	}
	if cfg.Report.WorkType != "all" {
		t.Errorf("expected default work type 'all', got %q", cfg.Report.WorkType)
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	globalDir := filepath.Join(homeDir, ".config", "tasktrack")
	if err := os.MkdirAll(globalDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	globalToml := "[report]\nproduct = \"GlobalTracker\"\nwork-type = \"remote\"\n"
	if err := os.WriteFile(filepath.Join(globalDir, "config.toml"), []byte(globalToml), 0o644); err != nil {
		t.Fatalf("write global config: %v", err)
	}

	projectDir := t.TempDir()
	projectToml := "[report]\nproduct = \"TeamTracker\"\n"
	if err := os.WriteFile(filepath.Join(projectDir, "tasktrack.toml"), []byte(projectToml), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	cfg, err := Load(projectDir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Report.Product != "TeamTracker" {
		t.Errorf("expected project product to win, got %q", cfg.Report.Product)
	}
	if cfg.Report.WorkType != "remote" {
		t.Errorf("expected global work type to survive, got %q", cfg.Report.WorkType)
	}
}

func TestDataDir_EnvOverride(t *testing.T) {
	t.Setenv(EnvDataDir, "/tmp/tt-test-data")

	cfg := &Config{}
	dir, err := cfg.DataDir()
	if err != nil {
		t.Fatalf("data dir: %v", err)
	}
	if dir != "/tmp/tt-test-data" {
		t.Errorf("expected env override, got %q", dir)
	}
}

func TestDataDir_ConfigValue(t *testing.T) {
	t.Setenv(EnvDataDir, "")

	cfg := &Config{Storage: Storage{Dir: "/var/lib/tasktrack"}}
	dir, err := cfg.DataDir()
	if err != nil {
		t.Fatalf("data dir: %v", err)
	}
	if dir != "/var/lib/tasktrack" {
		t.Errorf("expected configured dir, got %q", dir)
	}
}
