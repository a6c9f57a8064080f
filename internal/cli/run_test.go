package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func mustSet(t *testing.T, cmd *cobra.Command, name, value string) {
	t.Helper()
	if err := cmd.Flags().Set(name, value); err != nil {
		t.Fatalf("setting --%s: %v", name, err)
	}
}

func TestBuildConfig_Defaults(t *testing.T) {
	cmd := newRunCommand()

	cfg, err := buildConfig(cmd)
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}

	if cfg.Iterations != 10 {
		t.Errorf("Iterations = %d, want default 10", cfg.Iterations)
	}
	if cfg.SSEAlgorithm != "AES256" {
		t.Errorf("SSEAlgorithm = %q, want default AES256", cfg.SSEAlgorithm)
	}
	if !cfg.Downloads {
		t.Error("Downloads = false, want default true")
	}
}

func TestBuildConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	content := "bucket: file-bucket\niterations: 7\nbaseDelay: 50ms\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cmd := newRunCommand()
	mustSet(t, cmd, "config", path)
	mustSet(t, cmd, "iterations", "21")

	cfg, err := buildConfig(cmd)
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}

	if cfg.Bucket != "file-bucket" {
		t.Errorf("Bucket = %q, want file value", cfg.Bucket)
	}
	if cfg.Iterations != 21 {
		t.Errorf("Iterations = %d, want flag value 21", cfg.Iterations)
	}
	if time.Duration(cfg.BaseDelay) != 50*time.Millisecond {
		t.Errorf("BaseDelay = %v, want file value 50ms", cfg.BaseDelay)
	}
}

func TestBuildConfig_FlagOnly(t *testing.T) {
	cmd := newRunCommand()
	mustSet(t, cmd, "bucket", "flag-bucket")
	mustSet(t, cmd, "downloads", "false")

	cfg, err := buildConfig(cmd)
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}

	if cfg.Bucket != "flag-bucket" {
		t.Errorf("Bucket = %q, want flag-bucket", cfg.Bucket)
	}
	if cfg.Downloads {
		t.Error("Downloads = true, want false from flag")
	}
}
