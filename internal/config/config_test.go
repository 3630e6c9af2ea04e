package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "outline2c.yaml")
	content := "output: out.c\ndebug: true\nmax_arena_bytes: 4096\ninclude_dirs:\n  - /usr/include\n  - ./vendor\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) error: %v", path, err)
	}
	if cfg.Output != "out.c" {
		t.Errorf("Output = %q, want %q", cfg.Output, "out.c")
	}
	if !cfg.Debug {
		t.Errorf("Debug = false, want true")
	}
	if cfg.MaxArenaBytes != 4096 {
		t.Errorf("MaxArenaBytes = %d, want 4096", cfg.MaxArenaBytes)
	}
	want := []string{"/usr/include", "./vendor"}
	if len(cfg.IncludeDirs) != len(want) {
		t.Fatalf("IncludeDirs = %v, want %v", cfg.IncludeDirs, want)
	}
	for i, dir := range want {
		if cfg.IncludeDirs[i] != dir {
			t.Errorf("IncludeDirs[%d] = %q, want %q", i, cfg.IncludeDirs[i], dir)
		}
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load("/nonexistent/path/outline2c.yaml"); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}

func TestLoadInvalidYAMLErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("output: [unterminated"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected a parse error for malformed YAML")
	}
}

// TestMergeExplicitWinsOverDefaults exercises "explicit flags win": a
// zero-valued field of the receiver picks up the default, a non-zero one
// doesn't.
func TestMergeExplicitWinsOverDefaults(t *testing.T) {
	explicit := Config{Output: "explicit.c"}
	defaults := &Config{Output: "default.c", Debug: true, IncludeDirs: []string{"/inc"}, MaxArenaBytes: 2048}

	merged := explicit.Merge(defaults)
	if merged.Output != "explicit.c" {
		t.Errorf("Output = %q, want explicit value preserved", merged.Output)
	}
	if !merged.Debug {
		t.Errorf("Debug = false, want default true to fill in the zero value")
	}
	if len(merged.IncludeDirs) != 1 || merged.IncludeDirs[0] != "/inc" {
		t.Errorf("IncludeDirs = %v, want default filled in", merged.IncludeDirs)
	}
	if merged.MaxArenaBytes != 2048 {
		t.Errorf("MaxArenaBytes = %d, want default 2048 filled in", merged.MaxArenaBytes)
	}
}

func TestMergeExplicitMaxArenaBytesNotOverridden(t *testing.T) {
	explicit := Config{MaxArenaBytes: 128}
	defaults := &Config{MaxArenaBytes: 99999}
	merged := explicit.Merge(defaults)
	if merged.MaxArenaBytes != 128 {
		t.Errorf("MaxArenaBytes = %d, want explicit 128 preserved", merged.MaxArenaBytes)
	}
}

func TestMergeNilDefaultsIsNoop(t *testing.T) {
	explicit := Config{Output: "explicit.c"}
	merged := explicit.Merge(nil)
	if merged != explicit {
		t.Errorf("Merge(nil) = %+v, want unchanged %+v", merged, explicit)
	}
}
