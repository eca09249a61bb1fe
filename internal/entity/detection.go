package entity

type ClassName string

const (
	ClassCocci   ClassName = "cocci"
	ClassHealthy ClassName = "healthy"
	ClassSalmo   ClassName = "salmo"
)

// TrainedClassCount is the size of the label set the detector was trained on.
const TrainedClassCount = 3

// RawDetection is a single box as produced by the model, in original image pixels.
type RawDetection struct {
	X1         float64
	Y1         float64
	X2         float64
	Y2         float64
	Confidence float64
	ClassIndex int
}

type Detection struct {
	Class       ClassName  `json:"class"`
	Confidence  float64    `json:"confidence"`
	Coordinates [4]float64 `json:"coordinates"`
}

// ClassNameOf maps a model class index to its label. Every index other than 0
// and 1 falls through to salmo.
func ClassNameOf(index int) ClassName {
	switch index {
	case 0:
		return ClassCocci
	case 1:
		return ClassHealthy
	default:
		return ClassSalmo
	}
}

// IsKnownClass reports whether index belongs to the trained label set.
func IsKnownClass(index int) bool {
	return index >= 0 && index < TrainedClassCount
}

func NewDetection(raw RawDetection) Detection {
	return Detection{
		Class:       ClassNameOf(raw.ClassIndex),
		Confidence:  raw.Confidence,
		Coordinates: [4]float64{raw.X1, raw.Y1, raw.X2, raw.Y2},
	}
}

func (d Detection) X1() float64 { return d.Coordinates[0] }
func (d Detection) Y1() float64 { return d.Coordinates[1] }
func (d Detection) X2() float64 { return d.Coordinates[2] }
func (d Detection) Y2() float64 { return d.Coordinates[3] }
