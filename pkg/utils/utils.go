package utils

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"time"

	"github.com/oklog/ulid/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// JPEGQuality is the fixed quality used for annotated images.
const JPEGQuality = 75

// DefaultMaxImagePixels caps width*height of an upload before its pixels are
// allocated.
const DefaultMaxImagePixels = 178956970

var (
	ErrEmptyImage    = errors.New("empty image data")
	ErrImageTooLarge = errors.New("image dimensions exceed the pixel limit")
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ReadFile(file *multipart.FileHeader) ([]byte, error)
	DecodeImage(data []byte) (image.Image, string, error)
	EncodeJPEGBase64(img image.Image) (string, error)
}

type utils struct {
	jpegQuality    int
	maxImagePixels int
}

type Option func(*utils)

func WithMaxImagePixels(n int) Option {
	return func(u *utils) {
		if n > 0 {
			u.maxImagePixels = n
		}
	}
}

func New(options ...Option) IUtils {
	u := &utils{
		jpegQuality:    JPEGQuality,
		maxImagePixels: DefaultMaxImagePixels,
	}
	for _, option := range options {
		option(u)
	}
	return u
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) ReadFile(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(src)
}

func (u *utils) DecodeImage(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyImage
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(u.maxImagePixels) {
		return nil, format, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	return image.Decode(bytes.NewReader(data))
}

func (u *utils) EncodeJPEGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: u.jpegQuality}); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
