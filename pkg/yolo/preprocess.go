package yolo

import (
	"image"
	"math"

	"github.com/nfnt/resize"
)

const padValue = float32(114) / 255

// letterbox records how an image was fitted into the square model input.
type letterbox struct {
	scale float64
	padX  int
	padY  int
}

// toImage maps a point in model input space back to original image pixels.
func (l letterbox) toImage(x, y float64) (float64, float64) {
	return (x - float64(l.padX)) / l.scale, (y - float64(l.padY)) / l.scale
}

// prepareInput letterboxes img into a size x size canvas and lays it out as a
// CHW RGB float32 tensor scaled to [0,1].
func prepareInput(img image.Image, size int) ([]float32, letterbox) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	scale := math.Min(float64(size)/float64(w), float64(size)/float64(h))
	nw := maxInt(1, int(math.Round(float64(w)*scale)))
	nh := maxInt(1, int(math.Round(float64(h)*scale)))
	lb := letterbox{
		scale: scale,
		padX:  (size - nw) / 2,
		padY:  (size - nh) / 2,
	}

	stride := size * size
	input := make([]float32, 3*stride)
	for i := range input {
		input[i] = padValue
	}

	resized := resize.Resize(uint(nw), uint(nh), img, resize.Bilinear)
	rb := resized.Bounds()

	for y := 0; y < nh; y++ {
		row := (y + lb.padY) * size
		for x := 0; x < nw; x++ {
			r, g, b, _ := resized.At(rb.Min.X+x, rb.Min.Y+y).RGBA()
			idx := row + x + lb.padX
			input[idx] = float32(r>>8) / 255.0
			input[idx+stride] = float32(g>>8) / 255.0
			input[idx+2*stride] = float32(b>>8) / 255.0
		}
	}

	return input, lb
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
