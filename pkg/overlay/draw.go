//go:build !gocv
// +build !gocv

package overlay

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"PoultryScan/internal/entity"
)

var labelFace font.Face = basicfont.Face7x13

// Render copies src and draws every detection on the copy in input order.
func (r *Renderer) Render(src image.Image, detections []entity.Detection) (*image.RGBA, error) {
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)

	for _, d := range detections {
		x0, y0, x1, y1 := boxRect(bounds.Min, d)
		r.drawOutline(dst, x0, y0, x1, y1)
		r.drawLabel(dst, x0, y0, Label(d))
	}

	return dst, nil
}

// drawOutline strokes the inclusive box [x0,x1]x[y0,y1] with BoxWidth pixels
// growing inward from the edges.
func (r *Renderer) drawOutline(dst *image.RGBA, x0, y0, x1, y1 int) {
	w := r.BoxWidth
	if w < 1 {
		w = 1
	}

	fillRect(dst, image.Rect(x0, y0, x1+1, y0+w), r.BoxColor)
	fillRect(dst, image.Rect(x0, y1-w+1, x1+1, y1+1), r.BoxColor)
	fillRect(dst, image.Rect(x0, y0, x0+w, y1+1), r.BoxColor)
	fillRect(dst, image.Rect(x1-w+1, y0, x1+1, y1+1), r.BoxColor)
}

func (r *Renderer) drawLabel(dst *image.RGBA, x, y int, label string) {
	metrics := labelFace.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()
	width := font.MeasureString(labelFace, label).Ceil()

	fillRect(dst, image.Rect(x, y, x+width, y+height), r.BoxColor)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(r.TextColor),
		Face: labelFace,
		Dot:  fixed.P(x, y+ascent),
	}
	d.DrawString(label)
}

// fillRect paints rect clipped to the canvas; fully out-of-frame rects are a no-op.
func fillRect(dst *image.RGBA, rect image.Rectangle, c color.Color) {
	rect = rect.Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(dst, rect, image.NewUniform(c), image.Point{}, draw.Src)
}
