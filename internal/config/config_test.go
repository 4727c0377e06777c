package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnashcore/avm1/internal/swfver"
)

func TestDefaultMatchesReferencePlayerDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Version() != swfver.V7 {
		t.Errorf("Default().Version() = %v, want V7", cfg.Version())
	}
	if cfg.InitialTarget != "/" {
		t.Errorf("Default().InitialTarget = %q, want \"/\"", cfg.InitialTarget)
	}
}

func TestLoadOverridesOnlyNamedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vm.yaml")
	if err := os.WriteFile(path, []byte("swf_version: 5\nloop_limit: 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Version() != swfver.V5 {
		t.Errorf("SWFVersion = %v, want V5", cfg.Version())
	}
	if cfg.LoopLimit != 100 {
		t.Errorf("LoopLimit = %d, want 100", cfg.LoopLimit)
	}
	if cfg.InitialTarget != "/" {
		t.Errorf("InitialTarget = %q, want default \"/\" (not overridden)", cfg.InitialTarget)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := Load("/nonexistent/path/vm.yaml"); err == nil {
		t.Error("Load of a missing file should return an error")
	}
}
