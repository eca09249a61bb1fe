package utils

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestNewULIDFromTimestamp(t *testing.T) {
	u := New()
	now := time.Now()

	id, err := u.NewULIDFromTimestamp(now)
	require.NoError(t, err)
	require.Len(t, id, 26)

	parsed, err := ulid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(now), parsed.Time())
}

func TestDecodeImage(t *testing.T) {
	u := New()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidImage(12, 8, color.White)))

	img, format, err := u.DecodeImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 12, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}

func TestDecodeImage_Invalid(t *testing.T) {
	u := New()

	_, _, err := u.DecodeImage(nil)
	require.ErrorIs(t, err, ErrEmptyImage)

	_, _, err = u.DecodeImage([]byte("definitely not an image"))
	require.Error(t, err)
}

// pngHeader returns a PNG whose header declares w x h gray pixels but which
// carries no image data.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 0 // grayscale

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestDecodeImage_RejectsOversizedHeader(t *testing.T) {
	u := New()

	img, format, err := u.DecodeImage(pngHeader(20000, 20000))
	require.ErrorIs(t, err, ErrImageTooLarge)
	assert.Nil(t, img)
	assert.Equal(t, "png", format)
}

func TestDecodeImage_PixelLimitOption(t *testing.T) {
	u := New(WithMaxImagePixels(12 * 8))

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidImage(12, 8, color.White)))
	_, _, err := u.DecodeImage(buf.Bytes())
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, png.Encode(&buf, solidImage(12, 9, color.White)))
	_, _, err = u.DecodeImage(buf.Bytes())
	require.ErrorIs(t, err, ErrImageTooLarge)
}

func TestEncodeJPEGBase64(t *testing.T) {
	u := New()

	encoded, err := u.EncodeJPEGBase64(solidImage(40, 30, color.RGBA{R: 200, G: 10, B: 10, A: 255}))
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 30), img.Bounds())
}
