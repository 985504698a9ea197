package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blocky.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[world]
seed = 42
width = 512

[sim]
tick_rate = "20ms"

[sim.reach]
up = 6

[storage]
backend = "postgres"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.World.Seed != 42 || cfg.World.Width != 512 {
		t.Errorf("world = %+v", cfg.World)
	}
	if cfg.World.Height != 80 || cfg.World.CaveThreshold != 0.3 {
		t.Errorf("unset world fields lost their defaults: %+v", cfg.World)
	}
	if cfg.Sim.TickRate != 20*time.Millisecond {
		t.Errorf("tick rate = %v", cfg.Sim.TickRate)
	}
	if cfg.Sim.Reach.Up != 6 || cfg.Sim.Reach.Horizontal != 3 {
		t.Errorf("reach = %+v", cfg.Sim.Reach)
	}
	if cfg.Storage.Backend != "postgres" || cfg.Storage.SaveDir != "saves" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[world\n", "parse config"},
		{"backend", "[storage]\nbackend = \"s3\"\n", "unknown storage backend"},
		{"octaves", "[world]\noctaves = 0\n", "octaves"},
		{"size", "[world]\nheight = 4\n", "too small"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() error = %v, want not-exist", err)
	}
}
