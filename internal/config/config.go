// Package config provides YAML/TOML game configuration loading and
// difficulty presets for the brick breaker.
package config

import (
	"errors"
	"fmt"
)

// BreakoutConfig contains all tuning for the brick breaker engine.
// Distances are playfield units, speeds are units per tick.
type BreakoutConfig struct {
	Playfield PlayfieldConfig `yaml:"playfield" toml:"playfield"`
	Paddle    PaddleConfig    `yaml:"paddle" toml:"paddle"`
	Ball      BallConfig      `yaml:"ball" toml:"ball"`
	Bricks    BricksConfig    `yaml:"bricks" toml:"bricks"`
	Gameplay  GameplayConfig  `yaml:"gameplay" toml:"gameplay"`
}

// PlayfieldConfig defines the simulation area.
type PlayfieldConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// PaddleConfig defines the player's paddle.
type PaddleConfig struct {
	Width        float64 `yaml:"width" toml:"width"`
	Height       float64 `yaml:"height" toml:"height"`
	Speed        float64 `yaml:"speed" toml:"speed"`
	BottomOffset float64 `yaml:"bottom_offset" toml:"bottom_offset"` // Distance from playfield bottom to paddle top
}

// BallConfig defines the ball.
type BallConfig struct {
	Radius         float64 `yaml:"radius" toml:"radius"`
	Speed          float64 `yaml:"speed" toml:"speed"`
	SpeedIncrement float64 `yaml:"speed_increment" toml:"speed_increment"` // Added on every level up
}

// BricksConfig defines the brick grid layout.
// Rows is the outer grid index and advances along x; Cols advances along y.
type BricksConfig struct {
	Rows     int     `yaml:"rows" toml:"rows"`
	Cols     int     `yaml:"cols" toml:"cols"`
	Width    float64 `yaml:"width" toml:"width"`
	Height   float64 `yaml:"height" toml:"height"`
	HSpacing float64 `yaml:"h_spacing" toml:"h_spacing"`
	VSpacing float64 `yaml:"v_spacing" toml:"v_spacing"`
	XOffset  float64 `yaml:"x_offset" toml:"x_offset"`
	YOffset  float64 `yaml:"y_offset" toml:"y_offset"`
}

// GameplayConfig defines scoring and lives.
type GameplayConfig struct {
	Lives int `yaml:"lives" toml:"lives"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value to a preset.
// The empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyBreakoutPreset modifies the config based on a difficulty preset.
// Normal keeps the loaded values.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Ball.Speed = 3
		cfg.Paddle.Width = 110
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Ball.Speed = 5
		cfg.Paddle.Width = 60
	}
}

// Validate reports setup errors that would make the simulation meaningless.
func (c BreakoutConfig) Validate() error {
	var errs []error

	if c.Playfield.Width <= 0 || c.Playfield.Height <= 0 {
		errs = append(errs, fmt.Errorf("playfield must have positive size, got %vx%v", c.Playfield.Width, c.Playfield.Height))
	}
	if c.Paddle.Width <= 0 || c.Paddle.Height <= 0 {
		errs = append(errs, fmt.Errorf("paddle must have positive size, got %vx%v", c.Paddle.Width, c.Paddle.Height))
	}
	if c.Paddle.Width > c.Playfield.Width {
		errs = append(errs, fmt.Errorf("paddle width %v exceeds playfield width %v", c.Paddle.Width, c.Playfield.Width))
	}
	if c.Paddle.Speed < 0 {
		errs = append(errs, fmt.Errorf("paddle speed must not be negative, got %v", c.Paddle.Speed))
	}
	if c.Paddle.BottomOffset < c.Paddle.Height || c.Paddle.BottomOffset > c.Playfield.Height {
		errs = append(errs, fmt.Errorf("paddle bottom offset %v must be within [%v, %v]", c.Paddle.BottomOffset, c.Paddle.Height, c.Playfield.Height))
	}
	if c.Ball.Radius <= 0 {
		errs = append(errs, fmt.Errorf("ball radius must be positive, got %v", c.Ball.Radius))
	}
	if c.Ball.Speed <= 0 {
		errs = append(errs, fmt.Errorf("ball speed must be positive, got %v", c.Ball.Speed))
	}
	if c.Ball.SpeedIncrement < 0 {
		errs = append(errs, fmt.Errorf("ball speed increment must not be negative, got %v", c.Ball.SpeedIncrement))
	}
	if c.Gameplay.Lives <= 0 {
		errs = append(errs, fmt.Errorf("lives must be positive, got %d", c.Gameplay.Lives))
	}

	b := c.Bricks
	if b.Rows <= 0 || b.Cols <= 0 {
		errs = append(errs, fmt.Errorf("brick grid must have positive size, got %dx%d", b.Rows, b.Cols))
	}
	if b.Width <= 0 || b.Height <= 0 {
		errs = append(errs, fmt.Errorf("bricks must have positive size, got %vx%v", b.Width, b.Height))
	}
	if b.Rows > 0 && b.Cols > 0 {
		right := float64(b.Rows-1)*(b.Width+b.HSpacing) + b.XOffset + b.Width
		bottom := float64(b.Cols-1)*(b.Height+b.VSpacing) + b.YOffset + b.Height
		if b.XOffset < 0 || b.YOffset < 0 || right > c.Playfield.Width || bottom > c.Playfield.Height {
			errs = append(errs, fmt.Errorf("brick grid (%v..%v, %v..%v) does not fit the playfield", b.XOffset, right, b.YOffset, bottom))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid breakout config: %w", errors.Join(errs...))
	}
	return nil
}
