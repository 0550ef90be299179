package imop

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlend_Basic(t *testing.T) {
	assert := assert.New(t)

	b := NewBlend()
	assert.Empty(b.Get())

	assert.True(b.Set(Darken))
	assert.Equal(Darken, b.Get())

	assert.False(b.Set("unsupported_blend_mode"))
	assert.Equal(Darken, b.Get())
}

func TestBlend_Modes(t *testing.T) {
	assert := assert.New(t)

	gray := color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.NRGBA{A: 255}

	testCases := []struct {
		mode     string
		src      color.NRGBA
		expected color.NRGBA
	}{
		{mode: Multiply, src: white, expected: gray},
		{mode: Multiply, src: black, expected: black},
		{mode: Screen, src: black, expected: gray},
		{mode: Screen, src: white, expected: white},
		{mode: Darken, src: white, expected: gray},
		{mode: Darken, src: black, expected: black},
		{mode: Lighten, src: black, expected: gray},
		{mode: Lighten, src: white, expected: white},
	}

	for _, tc := range testCases {
		dst := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		dst.SetNRGBA(0, 0, gray)

		b := NewBlend()
		b.Set(tc.mode)
		op := InitOp()
		op.Set(SrcOver)
		op.Draw(dst, image.NewUniform(tc.src), image.Point{}, b)

		assert.Equal(tc.expected, dst.NRGBAAt(0, 0), tc.mode)
	}
}
