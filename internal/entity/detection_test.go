package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassNameOf(t *testing.T) {
	assert.Equal(t, ClassCocci, ClassNameOf(0))
	assert.Equal(t, ClassHealthy, ClassNameOf(1))
	assert.Equal(t, ClassSalmo, ClassNameOf(2))

	// indices outside {0,1} all collapse into salmo
	for _, idx := range []int{3, 7, 80, -1} {
		assert.Equal(t, ClassSalmo, ClassNameOf(idx), "index %d", idx)
	}
}

func TestIsKnownClass(t *testing.T) {
	assert.True(t, IsKnownClass(0))
	assert.True(t, IsKnownClass(2))
	assert.False(t, IsKnownClass(3))
	assert.False(t, IsKnownClass(-1))
}

func TestNewDetection_JSON(t *testing.T) {
	d := NewDetection(RawDetection{X1: 10, Y1: 10, X2: 50, Y2: 50, Confidence: 0.8734, ClassIndex: 0})

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"class":"cocci","confidence":0.8734,"coordinates":[10.0,10.0,50.0,50.0]}`, string(raw))
}

func TestDetection_Accessors(t *testing.T) {
	d := NewDetection(RawDetection{X1: 1, Y1: 2, X2: 3, Y2: 4})
	assert.Equal(t, 1.0, d.X1())
	assert.Equal(t, 2.0, d.Y1())
	assert.Equal(t, 3.0, d.X2())
	assert.Equal(t, 4.0, d.Y2())
}
