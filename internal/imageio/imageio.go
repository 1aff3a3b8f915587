// Package imageio reads label matrices and intensity images from PNG and
// TIFF files.
//
// Grey pixels are read at their stored bit depth, so a 16-bit label file
// can hold identifiers up to 65535. Colour files are rejected for labels
// and read as one plane per channel for images.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"

	"github.com/banshee-data/cellmeasure/internal/labels"
)

// ErrUnsupportedFormat is returned for files that are neither PNG nor TIFF.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ErrNotGrey is returned when a label file has colour pixels.
var ErrNotGrey = errors.New("label file must be greyscale")

// Decode reads the PNG or TIFF file at path, chosen by extension.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var img image.Image
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		img, err = png.Decode(f)
	case ".tif", ".tiff":
		img, err = tiff.Decode(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// ReadLabels reads a greyscale label file. Each pixel value is an object
// identifier and 0 is background.
func ReadLabels(path string) (*labels.Labels, error) {
	img, err := Decode(path)
	if err != nil {
		return nil, err
	}
	l, err := ToLabels(img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// ToLabels converts a greyscale image to a label matrix of shape
// (rows, cols).
func ToLabels(img image.Image) (*labels.Labels, error) {
	b := img.Bounds()
	out := labels.New[int32](b.Dy(), b.Dx())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var v int32
			switch c := img.At(x, y).(type) {
			case color.Gray:
				v = int32(c.Y)
			case color.Gray16:
				v = int32(c.Y)
			default:
				r, g, bl, _ := c.RGBA()
				if r != g || g != bl {
					return nil, fmt.Errorf("%w: pixel (%d, %d)", ErrNotGrey, x, y)
				}
				v = int32(r >> 8)
			}
			out.Set(v, y-b.Min.Y, x-b.Min.X)
		}
	}
	return out, nil
}

// ReadImage reads an intensity image. Greyscale files give shape
// (rows, cols); colour files give (rows, cols, 3). Values keep the file's
// scale (0-255 or 0-65535).
func ReadImage(path string) (*labels.Image, error) {
	img, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return ToImage(img), nil
}

// ToImage converts img to an intensity array.
func ToImage(img image.Image) *labels.Image {
	b := img.Bounds()
	rows, cols := b.Dy(), b.Dx()
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		out := labels.New[float64](rows, cols)
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				out.Set(greyValue(img.At(b.Min.X+x, b.Min.Y+y)), y, x)
			}
		}
		return out
	}

	out := labels.New[float64](rows, cols, 3)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out.Set(float64(r>>8), y, x, 0)
			out.Set(float64(g>>8), y, x, 1)
			out.Set(float64(bl>>8), y, x, 2)
		}
	}
	return out
}

func greyValue(c color.Color) float64 {
	switch g := c.(type) {
	case color.Gray:
		return float64(g.Y)
	case color.Gray16:
		return float64(g.Y)
	}
	y, _, _, _ := color.GrayModel.Convert(c).RGBA()
	return float64(y >> 8)
}
