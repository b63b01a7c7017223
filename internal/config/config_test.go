package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Web.Addr != "127.0.0.1:8484" {
		t.Fatalf("default web.addr wrong: %q", cfg.Web.Addr)
	}
	if cfg.Remote.Timeout != 10 {
		t.Fatalf("default remote.timeout wrong: %d", cfg.Remote.Timeout)
	}
	if cfg.DataDir != "" || cfg.Remote.BaseURL != "" {
		t.Fatalf("expected empty defaults; got %+v", cfg)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
data_dir: /tmp/reminders
file: /tmp/reminders.json
remote:
  base_url: http://example.test:8484
  invite_code: s3cret
  timeout: 3
web:
  addr: 0.0.0.0:9000
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataDir != "/tmp/reminders" || cfg.File != "/tmp/reminders.json" {
		t.Fatalf("file settings not loaded: %+v", cfg)
	}
	if cfg.Remote.BaseURL != "http://example.test:8484" || cfg.Remote.InviteCode != "s3cret" || cfg.Remote.Timeout != 3 {
		t.Fatalf("remote settings not loaded: %+v", cfg.Remote)
	}
	if cfg.Web.Addr != "0.0.0.0:9000" {
		t.Fatalf("web settings not loaded: %+v", cfg.Web)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("remote:\n  base_url: http://from-file\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("REMIND_REMOTE_BASE_URL", "http://from-env")
	t.Setenv("REMIND_DATA_DIR", "/env/dir")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Remote.BaseURL != "http://from-env" {
		t.Fatalf("env should override file: %q", cfg.Remote.BaseURL)
	}
	if cfg.DataDir != "/env/dir" {
		t.Fatalf("REMIND_DATA_DIR should map to data_dir: %q", cfg.DataDir)
	}
}

func TestLoad_UnknownEnvVarsIgnored(t *testing.T) {
	t.Setenv("REMIND_BOGUS_KEY", "whatever")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load with unknown env var: %v", err)
	}
	if cfg.Web.Addr != "127.0.0.1:8484" {
		t.Fatalf("defaults disturbed: %+v", cfg)
	}
}
