package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kayz/questgen/internal/logger"
	"github.com/kayz/questgen/internal/security"
)

const testBatch = `version: 1
category: mining
category_display: Miniera
count: 2
quests:
  - tasks:
      - name: stone
        kind: blockbreak
        fields: {amount: 64, block: STONE}
    reward_lore: ["1x Diamante"]
`

type fixture struct {
	dir     string
	batch   string
	config  string
	outDir  string
	history string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:     dir,
		batch:   filepath.Join(dir, "batch.yaml"),
		config:  filepath.Join(dir, ".questgen.yaml"),
		outDir:  filepath.Join(dir, "quests"),
		history: filepath.Join(dir, "history.db"),
	}
	if err := os.WriteFile(f.batch, []byte(testBatch), 0644); err != nil {
		t.Fatalf("write batch: %v", err)
	}
	cfg := "output_dir: " + f.outDir + "\nhistory:\n  enabled: true\n  path: " + f.history + "\n  store_content: true\n"
	if err := os.WriteFile(f.config, []byte(cfg), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return f
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGenerateWritesFilesAndHistory(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "generate", "-f", f.batch, "--config", f.config, "--log", "error")
	if err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}

	first := filepath.Join(f.outDir, "mining", "mining1.yml")
	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read generated file: %v", err)
	}
	if !strings.Contains(string(data), "    type: blockbreak\n") || !strings.Contains(string(data), "&8- &71x Diamante") {
		t.Fatalf("unexpected generated file:\n%s", data)
	}
	second, err := os.ReadFile(filepath.Join(f.outDir, "mining", "mining2.yml"))
	if err != nil {
		t.Fatalf("read second file: %v", err)
	}
	if !strings.Contains(string(second), "  requires:\n    - mining1\n") {
		t.Fatalf("second quest must require the first:\n%s", second)
	}
	if !strings.Contains(out, "wrote "+first) {
		t.Fatalf("expected written path in output: %s", out)
	}

	hist, err := run(t, "history", "--config", f.config, "--log", "error")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(hist, "mining") || !strings.Contains(hist, "ok") {
		t.Fatalf("expected recorded run, got:\n%s", hist)
	}
}

func TestGenerateOutFlagOverridesConfig(t *testing.T) {
	f := newFixture(t)
	other := filepath.Join(f.dir, "elsewhere")

	if out, err := run(t, "generate", "-f", f.batch, "--out", other, "--no-history", "--config", f.config, "--log", "error"); err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}
	if _, err := os.Stat(filepath.Join(other, "mining", "mining1.yml")); err != nil {
		t.Fatalf("expected file under --out dir: %v", err)
	}
	if _, err := os.Stat(f.history); !os.IsNotExist(err) {
		t.Fatalf("--no-history must not create the history database")
	}
}

func TestGenerateDryRunPrintsOnly(t *testing.T) {
	f := newFixture(t)
	out, err := run(t, "generate", "-f", f.batch, "--dry-run", "--config", f.config, "--log", "error")
	if err != nil {
		t.Fatalf("generate --dry-run: %v", err)
	}
	if !strings.Contains(out, "# mining/mining1.yml\ntasks:\n") || !strings.Contains(out, "# mining/mining2.yml\n") {
		t.Fatalf("unexpected dry-run output:\n%s", out)
	}
	if _, err := os.Stat(f.outDir); !os.IsNotExist(err) {
		t.Fatalf("dry run must not write files")
	}
}

func TestGenerateRequiresFile(t *testing.T) {
	if _, err := run(t, "generate", "--log", "error"); err == nil {
		t.Fatalf("expected error without --file")
	}
}

func TestValidate(t *testing.T) {
	f := newFixture(t)
	out, err := run(t, "validate", "-f", f.batch, "--config", f.config, "--log", "error")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "ok: 2 quests in category mining") || !strings.Contains(out, "mining1 (&eMiniera I, 1 tasks)") {
		t.Fatalf("unexpected validate output:\n%s", out)
	}

	bad := filepath.Join(f.dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("category: x\ncategory_display: X\ncount: 1\nquests:\n  - tasks:\n      - {name: a, kind: nope, fields: {amount: 1}}\n"), 0644); err != nil {
		t.Fatalf("write bad batch: %v", err)
	}
	if _, err := run(t, "validate", "-f", bad, "--config", f.config, "--log", "error"); err == nil || !strings.Contains(err.Error(), "nope") {
		t.Fatalf("expected unknown kind error, got %v", err)
	}
}

func TestKinds(t *testing.T) {
	out, err := run(t, "kinds", "--log", "error")
	if err != nil {
		t.Fatalf("kinds: %v", err)
	}
	if !strings.Contains(out, "blockbreak") || !strings.Contains(out, "interact") {
		t.Fatalf("unexpected kinds output:\n%s", out)
	}

	out, err = run(t, "kinds", "mobkilling", "--log", "error")
	if err != nil {
		t.Fatalf("kinds mobkilling: %v", err)
	}
	if !strings.Contains(out, "hostile") || !strings.Contains(out, "exclusive: mob / mobs") {
		t.Fatalf("unexpected kind output:\n%s", out)
	}

	if _, err := run(t, "kinds", "nope", "--log", "error"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "questgen "+Version) {
		t.Fatalf("unexpected version output: %s", out)
	}
}

func TestBatchWatcherDetectsChanges(t *testing.T) {
	f := newFixture(t)
	w := &batchWatcher{path: f.batch}
	runs := 0
	regenerate := func() error { runs++; return nil }

	if err := w.tick(regenerate); err != nil || runs != 1 {
		t.Fatalf("first tick must regenerate: runs=%d err=%v", runs, err)
	}
	if err := w.tick(regenerate); err != nil || runs != 1 {
		t.Fatalf("unchanged file must be skipped: runs=%d err=%v", runs, err)
	}
	if err := os.WriteFile(f.batch, []byte(testBatch+"\n"), 0644); err != nil {
		t.Fatalf("rewrite batch: %v", err)
	}
	if err := w.tick(regenerate); err != nil || runs != 2 {
		t.Fatalf("modified file must be detected: runs=%d err=%v", runs, err)
	}

	w.always = true
	if err := w.tick(regenerate); err != nil || runs != 3 {
		t.Fatalf("always mode must regenerate: runs=%d err=%v", runs, err)
	}
}

func TestBatchWatcherRetriesAfterFailure(t *testing.T) {
	f := newFixture(t)
	w := &batchWatcher{path: f.batch}
	failure := errors.New("disk full")

	if err := w.tick(func() error { return failure }); !errors.Is(err, failure) {
		t.Fatalf("expected the generation error, got %v", err)
	}
	runs := 0
	if err := w.tick(func() error { runs++; return nil }); err != nil {
		t.Fatalf("second tick: %v", err)
	}
	if runs != 1 {
		t.Fatalf("a failed run must be retried on the next tick, runs=%d", runs)
	}
	if err := w.tick(func() error { runs++; return nil }); err != nil || runs != 1 {
		t.Fatalf("after a successful run the unchanged file must be skipped: runs=%d err=%v", runs, err)
	}
}

func TestGenerateOutputDirAlwaysAllowed(t *testing.T) {
	f := newFixture(t)
	other := filepath.Join(f.dir, "other")
	cfg := "output_dir: " + f.outDir + "\nsecurity:\n  allowed_paths:\n    - " + other + "\n"
	if err := os.WriteFile(f.config, []byte(cfg), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if out, err := run(t, "generate", "-f", f.batch, "--no-history", "--config", f.config, "--log", "error"); err != nil {
		t.Fatalf("configured output dir must be writable: %v\n%s", err, out)
	}
	if _, err := os.Stat(filepath.Join(f.outDir, "mining", "mining1.yml")); err != nil {
		t.Fatalf("expected file under output_dir: %v", err)
	}

	if out, err := run(t, "generate", "-f", f.batch, "--out", other, "--no-history", "--config", f.config, "--log", "error"); err != nil {
		t.Fatalf("allowed --out must be writable: %v\n%s", err, out)
	}

	_, err := run(t, "generate", "-f", f.batch, "--out", filepath.Join(f.dir, "forbidden"), "--no-history", "--config", f.config, "--log", "error")
	if !errors.Is(err, security.ErrOutsideRoot) {
		t.Fatalf("expected ErrOutsideRoot for --out outside allowed roots, got %v", err)
	}
}

func TestDebugEnvKeepsDebugLevel(t *testing.T) {
	f := newFixture(t)
	prev := logger.GetLevel()
	t.Cleanup(func() { logger.SetLevel(prev) })
	t.Setenv("QUESTGEN_DEBUG", "1")

	if _, err := run(t, "version", "--config", f.config); err != nil {
		t.Fatalf("version: %v", err)
	}
	if got := logger.GetLevel(); got != logger.DebugLevel {
		t.Fatalf("QUESTGEN_DEBUG=1 must keep debug level, got %s", got)
	}

	if _, err := run(t, "version", "--config", f.config, "--log", "warn"); err != nil {
		t.Fatalf("version: %v", err)
	}
	if got := logger.GetLevel(); got != logger.WarnLevel {
		t.Fatalf("--log must win over QUESTGEN_DEBUG, got %s", got)
	}
}
