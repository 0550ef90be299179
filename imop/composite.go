// Package imop implements the Porter-Duff composition operations
// used for mixing a graphic element with its backdrop.
// The image/draw core package implements only the source-over-destination
// and the source operators; this package covers the rest of them
// together with a handful of separable blend modes.
//
// It is used to mount a rendered icon onto its outer frame
// and to lay an optional tint over a rendered icon.
package imop

import (
	"image"
	"image/color"

	"github.com/esimov/pixicon/utils"
)

const (
	Copy    = "copy"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

// Composite holds the currently active composition operator.
type Composite struct {
	current string
	ops     []string
}

// InitOp returns a Composite with the copy operator selected.
func InitOp() *Composite {
	return &Composite{
		current: Copy,
		ops: []string{
			Copy,
			SrcOver,
			DstOver,
			SrcIn,
			DstIn,
			SrcOut,
			DstOut,
			SrcAtop,
			DstAtop,
			Xor,
		},
	}
}

// Set selects the composition operator. Unknown operators are ignored.
func (op *Composite) Set(cop string) {
	if utils.Contains(op.ops, cop) {
		op.current = cop
	}
}

// Get returns the active composition operator.
func (op *Composite) Get() string {
	return op.current
}

// Draw composes src over the dst backdrop with the top left corner of src placed at pt.
// When blend is not nil the blended color replaces the source color before composition.
// Pixels of src falling outside of dst are discarded.
func (op *Composite) Draw(dst *image.NRGBA, src image.Image, pt image.Point, blend *Blend) {
	sb := src.Bounds()
	area := sb.Sub(sb.Min).Add(pt).Intersect(dst.Bounds())

	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			s := normalize(src.At(x-pt.X+sb.Min.X, y-pt.Y+sb.Min.Y))
			b := normalize(dst.NRGBAAt(x, y))

			if blend != nil && blend.OpType != "" {
				s.r = (1-b.a)*s.r + b.a*blend.apply(s.r, b.r)
				s.g = (1-b.a)*s.g + b.a*blend.apply(s.g, b.g)
				s.b = (1-b.a)*s.b + b.a*blend.apply(s.b, b.b)
			}
			dst.SetNRGBA(x, y, op.compose(s, b).toNRGBA())
		}
	}
}

// rgba is a non-premultiplied color with channels normalized to [0, 1].
type rgba struct {
	r, g, b, a float64
}

func normalize(c color.Color) rgba {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return rgba{
		r: float64(n.R) / 255,
		g: float64(n.G) / 255,
		b: float64(n.B) / 255,
		a: float64(n.A) / 255,
	}
}

func (c rgba) toNRGBA() color.NRGBA {
	conv := func(v float64) uint8 {
		return uint8(utils.Clamp(v, 0, 1)*255 + 0.5)
	}
	return color.NRGBA{R: conv(c.r), G: conv(c.g), B: conv(c.b), A: conv(c.a)}
}

// compose applies the Porter-Duff operator on the source (s) and backdrop (b) colors.
// Fs and Fb are the fractions of the source and backdrop contributing to the result.
func (op *Composite) compose(s, b rgba) rgba {
	var fs, fb float64
	switch op.current {
	case Copy:
		return s
	case SrcOver:
		fs, fb = 1, 1-s.a
	case DstOver:
		fs, fb = 1-b.a, 1
	case SrcIn:
		fs, fb = b.a, 0
	case DstIn:
		fs, fb = 0, s.a
	case SrcOut:
		fs, fb = 1-b.a, 0
	case DstOut:
		fs, fb = 0, 1-s.a
	case SrcAtop:
		fs, fb = b.a, 1-s.a
	case DstAtop:
		fs, fb = 1-b.a, s.a
	case Xor:
		fs, fb = 1-b.a, 1-s.a
	}

	a := s.a*fs + b.a*fb
	if a == 0 {
		return rgba{}
	}
	return rgba{
		r: (s.a*fs*s.r + b.a*fb*b.r) / a,
		g: (s.a*fs*s.g + b.a*fb*b.g) / a,
		b: (s.a*fs*s.b + b.a*fb*b.b) / a,
		a: a,
	}
}
