// Package overlay draws detection boxes and labels onto a copy of an image.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"PoultryScan/internal/entity"
)

const DefaultBoxWidth = 3

var (
	Red   = color.RGBA{R: 255, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

type IRenderer interface {
	Render(src image.Image, detections []entity.Detection) (*image.RGBA, error)
}

type Renderer struct {
	BoxColor  color.RGBA
	TextColor color.RGBA
	BoxWidth  int
}

func New() *Renderer {
	return &Renderer{
		BoxColor:  Red,
		TextColor: White,
		BoxWidth:  DefaultBoxWidth,
	}
}

// Label formats the caption drawn above a box, e.g. "cocci (87.34%)".
func Label(d entity.Detection) string {
	return fmt.Sprintf("%s (%.2f%%)", d.Class, d.Confidence*100)
}

// boxRect converts float coordinates to an inclusive pixel box offset by the
// image origin. Inverted corners are swapped; nothing is clamped.
func boxRect(origin image.Point, d entity.Detection) (x0, y0, x1, y1 int) {
	x0 = origin.X + int(math.Floor(d.X1()))
	y0 = origin.Y + int(math.Floor(d.Y1()))
	x1 = origin.X + int(math.Floor(d.X2()))
	y1 = origin.Y + int(math.Floor(d.Y2()))
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return x0, y0, x1, y1
}
