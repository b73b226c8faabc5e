// Package texture loads images for GPU upload. Fetching and decoding run off
// the render thread; the renderer polls a Handle and uploads once it is done.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// ErrUnknownFormat is returned for bytes that are not a recognised image.
var ErrUnknownFormat = errors.New("unknown image format")

// Sniffed extensions the decoder has registered codecs for.
var decodable = map[string]bool{
	"png": true,
	"jpg": true,
	"gif": true,
	"bmp": true,
}

// Decode sniffs data, decodes it and returns it as a zero-origin RGBA image.
func Decode(data []byte) (*image.RGBA, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("sniffing image: %w", err)
	}
	if kind == filetype.Unknown {
		return nil, ErrUnknownFormat
	}
	if !decodable[kind.Extension] {
		return nil, fmt.Errorf("unsupported image type %s", kind.MIME.Value)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", kind.Extension, err)
	}
	return ToRGBA(img), nil
}

// ToRGBA converts any image.Image to a zero-origin *image.RGBA.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
