package render

import (
	"fmt"

	"github.com/vovakirdan/brickbreaker/internal/games/breakout"
)

func hudLine(snap breakout.Snapshot) string {
	return fmt.Sprintf("Score: %d   Lives: %d   Level: %d", snap.Score, snap.Lives, snap.Level)
}
