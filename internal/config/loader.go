package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadBreakout loads the brick breaker configuration.
// Search order: customPath -> ~/.brickbreaker/configs/breakout.yaml -> ./configs/breakout.yaml -> embedded default.
// Files are decoded on top of the defaults, so a partial file overrides only the keys it sets.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg := DefaultBreakoutConfig()
		if err := decodeFile(customPath, &cfg); err != nil {
			return DefaultBreakoutConfig(), err
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("breakout.yaml"); userCfgPath != "" {
		cfg := DefaultBreakoutConfig()
		if err := decodeFile(userCfgPath, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	cfg := DefaultBreakoutConfig()
	if err := decodeFile(filepath.Join("configs", "breakout.yaml"), &cfg); err == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg = DefaultBreakoutConfig()
	if err := yaml.Unmarshal(defaultBreakoutYAML, &cfg); err != nil {
		return DefaultBreakoutConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Load resolves the config for a session: it loads the file, applies the
// preset and validates the result.
func Load(customPath string, preset DifficultyPreset) (BreakoutConfig, error) {
	cfg, err := LoadBreakout(customPath)
	if err != nil {
		return cfg, err
	}
	ApplyBreakoutPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// decodeFile reads a YAML or TOML file into cfg, chosen by extension.
func decodeFile(path string, cfg *BreakoutConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		return nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".brickbreaker", "configs", filename)
}
