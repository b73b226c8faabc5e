package texture

import (
	"image"
	"image/color"
)

// Checker colours of the default ground texture.
var (
	CheckerDark  = color.RGBA{0x88, 0x88, 0x88, 0xff}
	CheckerLight = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
)

// Checker returns a cells x cells image with one pixel per cell, alternating
// a and b. Drawn with nearest filtering and repeat wrap it tiles as a
// checkerboard.
func Checker(cells int, a, b color.RGBA) *image.RGBA {
	cells = max(cells, 1)
	img := image.NewRGBA(image.Rect(0, 0, cells, cells))
	for y := 0; y < cells; y++ {
		for x := 0; x < cells; x++ {
			c := a
			if (x+y)%2 == 1 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
