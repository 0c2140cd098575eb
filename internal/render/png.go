package render

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/vovakirdan/brickbreaker/internal/games/breakout"
)

// Palette for raster output.
var (
	BackgroundColor = color.RGBA{250, 250, 255, 255}
	PaddleColor     = color.RGBA{134, 168, 231, 255} // #86a8e7
	BallColor       = color.RGBA{52, 52, 87, 255}    // #343457
	BrickColor      = color.RGBA{134, 168, 231, 255}
	HUDColor        = color.RGBA{52, 52, 87, 255}
)

// PNG rasterises snapshots at a fixed pixel size.
type PNG struct {
	Width, Height int
}

// NewPNG returns a rasteriser. Non-positive sizes fall back to 800x600.
func NewPNG(width, height int) *PNG {
	if width <= 0 || height <= 0 {
		width, height = 800, 600
	}
	return &PNG{Width: width, Height: height}
}

// Image draws snap into a new image.
func (p *PNG) Image(snap breakout.Snapshot) image.Image {
	dc := gg.NewContext(p.Width, p.Height)

	dc.SetColor(BackgroundColor)
	dc.DrawRectangle(0, 0, float64(p.Width), float64(p.Height))
	dc.Fill()

	// Everything below is in playfield units
	dc.Push()
	dc.Scale(float64(p.Width)/snap.Width, float64(p.Height)/snap.Height)

	dc.SetColor(BrickColor)
	for _, b := range snap.Bricks {
		if !b.Visible {
			continue
		}
		dc.DrawRectangle(b.X, b.Y, b.Width, b.Height)
		dc.Fill()
	}

	dc.SetColor(PaddleColor)
	dc.DrawRectangle(snap.Paddle.X, snap.Paddle.Y, snap.Paddle.Width, snap.Paddle.Height)
	dc.Fill()

	dc.SetColor(BallColor)
	dc.DrawCircle(snap.Ball.X, snap.Ball.Y, snap.Ball.Radius)
	dc.Fill()

	dc.Pop()

	dc.SetColor(HUDColor)
	dc.DrawString(hudLine(snap), 8, 16)

	return dc.Image()
}

// Encode writes snap as a PNG to w.
func (p *PNG) Encode(w io.Writer, snap breakout.Snapshot) error {
	dc := gg.NewContextForImage(p.Image(snap))
	return dc.EncodePNG(w)
}

// SavePNG writes snap to a PNG file.
func (p *PNG) SavePNG(path string, snap breakout.Snapshot) error {
	return gg.SavePNG(path, p.Image(snap))
}
