package pixicon

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/esimov/pixicon/imop"
	"golang.org/x/image/bmp"
)

// Format is the raster encoding of an exported icon.
type Format string

// Supported export formats.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
)

// ErrUnsupportedFormat is returned for unknown export formats.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// FormatFromFilename picks the export format from the file extension.
// Files without extension are exported as PNG.
func FormatFromFilename(name string) (Format, error) {
	if filepath.Ext(name) == "" {
		return PNG, nil
	}
	f, err := imaging.FormatFromFilename(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(name))
	}
	return ParseFormat(f.String())
}

// ParseFormat converts a format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// Ext returns the file extension of the format.
func (f Format) Ext() string {
	if f == JPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// Encode serializes the image to the writer with the requested format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG, "":
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case BMP:
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// EncodeFile writes the image into a file, the format being deduced from its extension.
func EncodeFile(path string, img image.Image) error {
	format, err := FormatFromFilename(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// DataURL encodes the image as a base64 PNG data URL.
func DataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Resample scales the icon to the requested width keeping its aspect ratio.
// Nearest neighbor sampling keeps the cell edges crisp.
func Resample(img image.Image, width int) *image.NRGBA {
	if width <= 0 || width == img.Bounds().Dx() {
		return cloneNRGBA(img)
	}
	return imaging.Resize(img, width, 0, imaging.NearestNeighbor)
}

// Frame surrounds the icon with a uniform border one cell thick, drawn outside
// of the icon bounds. The returned image is larger than the source by two cells
// on both axes.
func Frame(img image.Image, cellSize int, col color.NRGBA) *image.NRGBA {
	b := img.Bounds()
	framed := image.NewNRGBA(image.Rect(0, 0, b.Dx()+2*cellSize, b.Dy()+2*cellSize))
	draw.Draw(framed, framed.Bounds(), &image.Uniform{C: col}, image.Point{}, draw.Src)

	op := imop.InitOp()
	op.Set(imop.SrcOver)
	op.Draw(framed, img, image.Pt(cellSize, cellSize), nil)

	return framed
}

// Tint lays a flat color over the icon using the blend mode.
// Unknown blend modes leave the icon untouched.
func Tint(img image.Image, col color.NRGBA, mode string) *image.NRGBA {
	dst := cloneNRGBA(img)
	blend := imop.NewBlend()
	if !blend.Set(mode) {
		return dst
	}
	op := imop.InitOp()
	op.Set(imop.SrcAtop)
	op.Draw(dst, image.NewUniform(col), image.Point{}, blend)

	return dst
}
