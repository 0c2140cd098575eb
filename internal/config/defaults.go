package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the classic 800x600 layout.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Playfield: PlayfieldConfig{
			Width:  800,
			Height: 600,
		},
		Paddle: PaddleConfig{
			Width:        80,
			Height:       10,
			Speed:        8,
			BottomOffset: 20,
		},
		Ball: BallConfig{
			Radius:         10,
			Speed:          4,
			SpeedIncrement: 0.5,
		},
		Bricks: BricksConfig{
			Rows:     9,
			Cols:     5,
			Width:    70,
			Height:   20,
			HSpacing: 10,
			VSpacing: 10,
			XOffset:  45,
			YOffset:  60,
		},
		Gameplay: GameplayConfig{
			Lives: 3,
		},
	}
}
