package pixicon

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/esimov/pixicon/utils"
)

// DefaultBorderWidth is the pixel thickness of the section borders.
const DefaultBorderWidth = 1

// Rasterizer draws the colored cells and the section decorations into a pixel buffer.
type Rasterizer struct {
	Config      Config
	Palettes    Palettes
	BorderWidth int
}

// NewRasterizer returns a rasterizer for the configuration and resolved palettes.
func NewRasterizer(cfg Config, palettes Palettes) *Rasterizer {
	return &Rasterizer{
		Config:      cfg,
		Palettes:    palettes,
		BorderWidth: DefaultBorderWidth,
	}
}

// Rasterize allocates a new pixel buffer of Columns*CellSize by Rows*CellSize and draws the icon into it.
func (r *Rasterizer) Rasterize(cells []*Cell) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, r.Config.Width(), r.Config.Height()))
	r.Draw(dst, cells)
	return dst
}

// Draw paints the section backgrounds, the section borders and every cell
// together with its mirrored counterpart. A missing or empty target is silently ignored.
func (r *Rasterizer) Draw(dst draw.Image, cells []*Cell) {
	if !drawable(dst) || r.Config.CellSize <= 0 {
		return
	}
	cs := r.Config.CellSize
	width := r.Config.Width()

	for s := 0; s < r.Config.Sections; s++ {
		sec := r.section(s)
		if sec == nil {
			continue
		}
		start, end := r.Config.SectionBounds(s)
		rect := image.Rect(0, start*cs, width, end*cs)

		fill(dst, rect, sec.BackgroundColor())
		r.drawBorder(dst, s, rect, sec.BorderColor())
	}

	for _, c := range cells {
		mx := r.Config.MirrorX(c.DX)
		fill(dst, image.Rect(c.DX*cs, c.DY*cs, (c.DX+1)*cs, (c.DY+1)*cs), c.Color)
		fill(dst, image.Rect(mx*cs, c.DY*cs, (mx+1)*cs, (c.DY+1)*cs), c.Color)
	}
}

// drawBorder frames a section. Left and right edges are always drawn.
// The first and the last section only draw their outer edge, flush with the
// icon bounds, while the interior sections draw both the top and the bottom
// edge, which double as the border of their neighbors.
func (r *Rasterizer) drawBorder(dst draw.Image, section int, rect image.Rectangle, col color.NRGBA) {
	bw := utils.Clamp(r.BorderWidth, 0, r.Config.CellSize)
	if bw == 0 {
		return
	}
	top := image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+bw)
	bottom := image.Rect(rect.Min.X, rect.Max.Y-bw, rect.Max.X, rect.Max.Y)

	switch section {
	case 0:
		fill(dst, top, col)
	case r.Config.Sections - 1:
		fill(dst, bottom, col)
	default:
		fill(dst, top, col)
		fill(dst, bottom, col)
	}
	fill(dst, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+bw, rect.Max.Y), col)
	fill(dst, image.Rect(rect.Max.X-bw, rect.Min.Y, rect.Max.X, rect.Max.Y), col)
}

// section returns the palette section, falling back to the default one when missing.
func (r *Rasterizer) section(s int) *PaletteSection {
	if sec := r.Palettes.Section(s); sec != nil {
		return sec
	}
	def := DefaultPalettes()
	return def.Section(s)
}

// drawable reports whether dst can be painted on. Nil pointers of the
// standard image types wrapped in the interface are rejected as well.
func drawable(dst draw.Image) bool {
	switch img := dst.(type) {
	case nil:
		return false
	case *image.NRGBA:
		if img == nil {
			return false
		}
	case *image.RGBA:
		if img == nil {
			return false
		}
	case *image.NRGBA64:
		if img == nil {
			return false
		}
	case *image.RGBA64:
		if img == nil {
			return false
		}
	case *image.Paletted:
		if img == nil {
			return false
		}
	case *image.Gray:
		if img == nil {
			return false
		}
	}
	return !dst.Bounds().Empty()
}

func fill(dst draw.Image, rect image.Rectangle, col color.Color) {
	draw.Draw(dst, rect, &image.Uniform{C: col}, image.Point{}, draw.Src)
}
