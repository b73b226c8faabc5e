package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/draw"
)

// ScreenshotCapture writes frames or single views to PNG files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// SetOutputDir sets the output directory for screenshots.
func (sc *ScreenshotCapture) SetOutputDir(dir string) {
	sc.outputDir = dir
}

// PixelsToImage converts bottom-up RGBA rows read back from the GL
// framebuffer into a top-down image.
func PixelsToImage(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// CropRegion cuts one view out of a full-surface image. x, y, w, h are in
// device pixels with a bottom-up Y axis, as passed to the scissor.
func CropRegion(img image.Image, x, y, w, h int) *image.RGBA {
	b := img.Bounds()
	top := b.Dy() - (y + h)
	src := image.Rect(x, top, x+w, top+h).Add(b.Min).Intersect(b)

	out := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	draw.Copy(out, image.Point{}, img, src, draw.Src, nil)
	return out
}

// CaptureFromPixels saves a full framebuffer readback.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	img, err := PixelsToImage(pixels, width, height)
	if err != nil {
		return "", err
	}
	return sc.save(img, "")
}

// CaptureView saves one view's region of a framebuffer readback.
func (sc *ScreenshotCapture) CaptureView(view string, pixels []byte, width, height, x, y, w, h int) (string, error) {
	img, err := PixelsToImage(pixels, width, height)
	if err != nil {
		return "", err
	}
	return sc.save(CropRegion(img, x, y, w, h), view)
}

// GenerateFilename generates a screenshot filename without saving.
func (sc *ScreenshotCapture) GenerateFilename(view string) string {
	name := sc.prefix
	if view != "" {
		name += "_" + view
	}
	filename := fmt.Sprintf("%s_%s.png", name, sc.now().Format("2006-01-02_15-04-05"))
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}

func (sc *ScreenshotCapture) save(img image.Image, view string) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename(view)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}
