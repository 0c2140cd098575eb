package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg BreakoutConfig
	if err := yaml.Unmarshal(defaultBreakoutYAML, &cfg); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}

	if cfg != DefaultBreakoutConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultBreakoutConfig())
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultBreakoutConfig().Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BreakoutConfig)
		want   string
	}{
		{"zero playfield width", func(c *BreakoutConfig) { c.Playfield.Width = 0 }, "playfield"},
		{"negative paddle speed", func(c *BreakoutConfig) { c.Paddle.Speed = -1 }, "paddle speed"},
		{"paddle wider than field", func(c *BreakoutConfig) { c.Paddle.Width = 900 }, "exceeds playfield"},
		{"zero ball radius", func(c *BreakoutConfig) { c.Ball.Radius = 0 }, "radius"},
		{"zero ball speed", func(c *BreakoutConfig) { c.Ball.Speed = 0 }, "ball speed"},
		{"no lives", func(c *BreakoutConfig) { c.Gameplay.Lives = 0 }, "lives"},
		{"empty grid", func(c *BreakoutConfig) { c.Bricks.Rows = 0 }, "grid"},
		{"grid off the right edge", func(c *BreakoutConfig) { c.Bricks.Rows = 12 }, "does not fit"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultBreakoutConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Validate() error %q should mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadBreakoutCustomYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "ball:\n  speed: 6\ngameplay:\n  lives: 7\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBreakout(path)
	if err != nil {
		t.Fatalf("LoadBreakout() failed: %v", err)
	}
	if cfg.Ball.Speed != 6 || cfg.Gameplay.Lives != 7 {
		t.Errorf("custom values not applied: speed=%v lives=%d", cfg.Ball.Speed, cfg.Gameplay.Lives)
	}

	// Keys absent from the file keep their defaults
	if cfg.Ball.Radius != 10 || cfg.Bricks.Rows != 9 {
		t.Errorf("defaults lost: radius=%v rows=%d", cfg.Ball.Radius, cfg.Bricks.Rows)
	}
}

func TestLoadBreakoutCustomTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	data := "[paddle]\nspeed = 12.0\n\n[bricks]\nx_offset = 50.0\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBreakout(path)
	if err != nil {
		t.Fatalf("LoadBreakout() failed: %v", err)
	}
	if cfg.Paddle.Speed != 12 || cfg.Bricks.XOffset != 50 {
		t.Errorf("toml values not applied: paddle speed=%v x_offset=%v", cfg.Paddle.Speed, cfg.Bricks.XOffset)
	}
}

func TestLoadBreakoutMissingCustomFile(t *testing.T) {
	_, err := LoadBreakout(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("LoadBreakout() should fail for a missing custom file")
	}
}

func TestLoadAppliesPresetAndValidates(t *testing.T) {
	cfg, err := Load("", DifficultyHard)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Gameplay.Lives != 2 || cfg.Ball.Speed != 5 {
		t.Errorf("hard preset not applied: lives=%d speed=%v", cfg.Gameplay.Lives, cfg.Ball.Speed)
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("playfield:\n  width: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, ""); err == nil {
		t.Error("Load() should reject a zero-width playfield")
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard"} {
		if _, err := ParsePreset(s); err != nil {
			t.Errorf("ParsePreset(%q) failed: %v", s, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset should reject unknown presets")
	}
}

func TestApplyBreakoutPresetNormalKeepsValues(t *testing.T) {
	cfg := DefaultBreakoutConfig()
	ApplyBreakoutPreset(&cfg, DifficultyNormal)
	if cfg != DefaultBreakoutConfig() {
		t.Error("normal preset should not change the config")
	}
}
