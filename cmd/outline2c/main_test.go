package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
	return path
}

func TestRunDefaultOutputFromOlSuffix(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "widget.c.ol", `\ol cars = outline { sedan; coupe; };`+"\n"+`\ol for c in cars {c,}`)

	code := run([]string{in})
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}

	out := in[:len(in)-len(".ol")]
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading derived output %s: %v", out, err)
	}
	if string(got) != "sedan,coupe," {
		t.Errorf("output = %q, want %q", string(got), "sedan,coupe,")
	}
}

func TestRunMissingOlSuffixWithoutOutputFlagFails(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "widget.txt", "plain text")

	code := run([]string{in})
	if code == 0 {
		t.Fatalf("run() = 0, want nonzero when input lacks .ol suffix and no -o given")
	}
}

func TestRunExplicitOutputFlag(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "widget.txt", "plain text")
	out := filepath.Join(dir, "widget.out")

	code := run([]string{"-o", out, in})
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading %s: %v", out, err)
	}
	if string(got) != "plain text" {
		t.Errorf("output = %q, want %q", string(got), "plain text")
	}
}

func TestRunSmushedOutputFlag(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "widget.txt", "hello")
	out := filepath.Join(dir, "smushed.out")

	code := run([]string{"-o" + out, in})
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading %s: %v", out, err)
	}
	if string(got) != "hello" {
		t.Errorf("output = %q, want %q", string(got), "hello")
	}
}

func TestRunConfigFileSuppliesOutputDefault(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "widget.txt", "from config")
	out := filepath.Join(dir, "configured.out")
	cfgPath := writeTemp(t, dir, "outline2c.yaml", "output: "+out+"\n")

	code := run([]string{"-config", cfgPath, in})
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading %s: %v", out, err)
	}
	if string(got) != "from config" {
		t.Errorf("output = %q, want %q", string(got), "from config")
	}
}

func TestRunExplicitFlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "widget.txt", "explicit wins")
	configuredOut := filepath.Join(dir, "from-config.out")
	explicitOut := filepath.Join(dir, "from-flag.out")
	cfgPath := writeTemp(t, dir, "outline2c.yaml", "output: "+configuredOut+"\n")

	code := run([]string{"-config", cfgPath, "-o", explicitOut, in})
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	if _, err := os.Stat(configuredOut); err == nil {
		t.Errorf("config output %s should not have been written", configuredOut)
	}
	got, err := os.ReadFile(explicitOut)
	if err != nil {
		t.Fatalf("reading %s: %v", explicitOut, err)
	}
	if string(got) != "explicit wins" {
		t.Errorf("output = %q, want %q", string(got), "explicit wins")
	}
}

func TestRunDebugFlagDoesNotBreakGeneration(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "widget.txt", "debugged")
	out := filepath.Join(dir, "debug.out")

	code := run([]string{"-d", "-o", out, in})
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading %s: %v", out, err)
	}
	if string(got) != "debugged" {
		t.Errorf("output = %q, want %q", string(got), "debugged")
	}
}

func TestRunNoArgsFails(t *testing.T) {
	if code := run(nil); code == 0 {
		t.Fatalf("run(nil) = 0, want nonzero")
	}
}

func TestRunParseErrorReturnsNonzero(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "bad.ol", `\ol nosuch`)

	if code := run([]string{in}); code == 0 {
		t.Fatalf("run() = 0, want nonzero for an unbound variable reference")
	}
}

// TestRunMaxArenaBytesTriggersOOM exercises spec.md §7's "OOM | arena
// growth fails | fatal" path end to end through the CLI: a cap smaller
// than the input file forces parser.ParseTop's source-interning
// allocation to fail.
func TestRunMaxArenaBytesTriggersOOM(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "widget.txt", "this source is longer than one byte")
	out := filepath.Join(dir, "widget.out")

	code := run([]string{"-max-arena-bytes", "1", "-o", out, in})
	if code == 0 {
		t.Fatalf("run() = 0, want nonzero once the arena cap is exceeded")
	}
	if _, err := os.Stat(out); err == nil {
		t.Errorf("output file %s should not have been written on OOM", out)
	}
}

func TestRunMaxArenaBytesSufficientSucceeds(t *testing.T) {
	dir := t.TempDir()
	content := "fits"
	in := writeTemp(t, dir, "widget.txt", content)
	out := filepath.Join(dir, "widget.out")

	code := run([]string{"-max-arena-bytes", "4096", "-o", out, in})
	if code != 0 {
		t.Fatalf("run() = %d, want 0 with an ample arena cap", code)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading %s: %v", out, err)
	}
	if string(got) != content {
		t.Errorf("output = %q, want %q", string(got), content)
	}
}

func TestRunConfigSuppliesMaxArenaBytes(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "widget.txt", "this source is longer than one byte")
	cfgPath := writeTemp(t, dir, "outline2c.yaml", "max_arena_bytes: 1\n")
	out := filepath.Join(dir, "widget.out")

	code := run([]string{"-config", cfgPath, "-o", out, in})
	if code == 0 {
		t.Fatalf("run() = 0, want nonzero once the config-supplied arena cap is exceeded")
	}
}
