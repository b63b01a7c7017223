// Package config loads layered configuration: built-in defaults, then an
// optional YAML file, then REMIND_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	DataDir string       `koanf:"data_dir"` // store directory; empty = discovered default
	File    string       `koanf:"file"`     // optional JSON file to mirror saves into
	Remote  RemoteConfig `koanf:"remote"`
	Web     WebConfig    `koanf:"web"`
}

type RemoteConfig struct {
	BaseURL    string `koanf:"base_url"`
	InviteCode string `koanf:"invite_code"`
	Timeout    int    `koanf:"timeout"` // seconds
}

type WebConfig struct {
	Addr       string `koanf:"addr"`
	InviteCode string `koanf:"invite_code"`
}

// DefaultPath is ~/.remind/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".remind", "config.yaml")
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"data_dir":           "",
		"file":               "",
		"remote.base_url":    "",
		"remote.invite_code": "",
		"remote.timeout":     10,
		"web.addr":           "127.0.0.1:8484",
		"web.invite_code":    "",
	}
}

// Load reads configuration from path (DefaultPath when empty). A missing
// file is fine; env vars still apply. REMIND_REMOTE_BASE_URL maps to
// remote.base_url, and so on.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, err
	}

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, err
			}
		}
	}

	// Known env vars map onto config keys explicitly; underscores are
	// ambiguous between nesting and key names, so no generic rewrite.
	envKeys := map[string]string{
		"REMIND_DATA_DIR":           "data_dir",
		"REMIND_FILE":               "file",
		"REMIND_REMOTE_BASE_URL":    "remote.base_url",
		"REMIND_REMOTE_INVITE_CODE": "remote.invite_code",
		"REMIND_REMOTE_TIMEOUT":     "remote.timeout",
		"REMIND_WEB_ADDR":           "web.addr",
		"REMIND_WEB_INVITE_CODE":    "web.invite_code",
	}
	if err := k.Load(env.Provider("REMIND_", ".", func(s string) string {
		if key, ok := envKeys[strings.ToUpper(strings.TrimSpace(s))]; ok {
			return key
		}
		return "" // unknown REMIND_* vars are ignored
	}), nil); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
