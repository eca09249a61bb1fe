//go:build gocv
// +build gocv

package overlay

import (
	"errors"
	"image"
	"image/draw"

	"gocv.io/x/gocv"

	"PoultryScan/internal/entity"
)

const (
	labelFont      = gocv.FontHersheySimplex
	labelFontScale = 0.4
	labelThickness = 1
)

// Render copies src into an OpenCV matrix and draws every detection in input order.
func (r *Renderer) Render(src image.Image, detections []entity.Detection) (*image.RGBA, error) {
	mat, err := gocv.ImageToMatRGB(src)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, errors.New("empty image")
	}

	origin := src.Bounds().Min
	for _, d := range detections {
		x0, y0, x1, y1 := boxRect(image.Point{}, d)
		gocv.Rectangle(&mat, image.Rect(x0, y0, x1, y1), r.BoxColor, r.BoxWidth)

		label := Label(d)
		size := gocv.GetTextSize(label, labelFont, labelFontScale, labelThickness)
		gocv.Rectangle(&mat, image.Rect(x0, y0, x0+size.X, y0+size.Y+2*labelThickness), r.BoxColor, -1)
		gocv.PutText(&mat, label, image.Pt(x0, y0+size.Y), labelFont, labelFontScale, r.TextColor, labelThickness)
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	dst := image.NewRGBA(b.Add(origin.Sub(b.Min)))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)

	return dst, nil
}
