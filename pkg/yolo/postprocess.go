package yolo

import (
	"fmt"
	"math"
	"sort"

	"PoultryScan/internal/entity"
)

var strides = []int{8, 16, 32}

// anchorCount is the number of prediction columns a YOLOv8-style head emits
// for a square input of the given size.
func anchorCount(size int) int {
	n := 0
	for _, s := range strides {
		n += (size / s) * (size / s)
	}
	return n
}

type decodeParams struct {
	numClasses    int
	anchors       int
	confidence    float64
	iouThreshold  float64
	maxDetections int
	imgWidth      int
	imgHeight     int
	letterbox     letterbox
}

// processOutput turns a [1, 4+nc, anchors] tensor into detections in original
// image pixels, sorted by confidence.
func processOutput(output []float32, p decodeParams) ([]entity.RawDetection, error) {
	expected := (4 + p.numClasses) * p.anchors
	if len(output) != expected {
		return nil, fmt.Errorf("invalid output size: got %d, expected %d", len(output), expected)
	}

	n := p.anchors
	boxes := make([]entity.RawDetection, 0, 64)

	for i := 0; i < n; i++ {
		classID, prob := 0, float32(math.Inf(-1))
		for j := 0; j < p.numClasses; j++ {
			if curr := output[n*(j+4)+i]; curr > prob {
				prob = curr
				classID = j
			}
		}
		if float64(prob) <= p.confidence {
			continue
		}

		xc := float64(output[i])
		yc := float64(output[n+i])
		w := float64(output[2*n+i])
		h := float64(output[3*n+i])

		x1, y1 := p.letterbox.toImage(xc-w/2, yc-h/2)
		x2, y2 := p.letterbox.toImage(xc+w/2, yc+h/2)

		boxes = append(boxes, entity.RawDetection{
			X1:         clamp(x1, 0, float64(p.imgWidth)),
			Y1:         clamp(y1, 0, float64(p.imgHeight)),
			X2:         clamp(x2, 0, float64(p.imgWidth)),
			Y2:         clamp(y2, 0, float64(p.imgHeight)),
			Confidence: float64(prob),
			ClassIndex: classID,
		})
	}

	return nonMaxSuppression(boxes, p.iouThreshold, p.maxDetections), nil
}

// nonMaxSuppression keeps the highest scoring box of every overlapping group of
// the same class.
func nonMaxSuppression(boxes []entity.RawDetection, iouThreshold float64, limit int) []entity.RawDetection {
	sort.SliceStable(boxes, func(i, j int) bool {
		return boxes[i].Confidence > boxes[j].Confidence
	})

	detections := make([]entity.RawDetection, 0, len(boxes))
	suppressed := make([]bool, len(boxes))
	for i := 0; i < len(boxes); i++ {
		if suppressed[i] {
			continue
		}
		detections = append(detections, boxes[i])
		if limit > 0 && len(detections) == limit {
			break
		}
		for j := i + 1; j < len(boxes); j++ {
			if suppressed[j] || boxes[j].ClassIndex != boxes[i].ClassIndex {
				continue
			}
			if calculateIoU(boxes[i], boxes[j]) > iouThreshold {
				suppressed[j] = true
			}
		}
	}

	return detections
}

func calculateIoU(a, b entity.RawDetection) float64 {
	x1 := math.Max(a.X1, b.X1)
	y1 := math.Max(a.Y1, b.Y1)
	x2 := math.Min(a.X2, b.X2)
	y2 := math.Min(a.Y2, b.Y2)

	intersection := math.Max(0, x2-x1) * math.Max(0, y2-y1)
	union := (a.X2-a.X1)*(a.Y2-a.Y1) + (b.X2-b.X1)*(b.Y2-b.Y1) - intersection
	if union <= 0 {
		return 0
	}

	return intersection / union
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
