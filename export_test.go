package pixicon

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func renderSample(t *testing.T) *image.NRGBA {
	t.Helper()
	icon, err := (&Processor{Seed: "export", CellSize: 2}).Generate()
	require.NoError(t, err)
	return icon.Render()
}

func TestExport_FormatFromFilename(t *testing.T) {
	assert := assert.New(t)

	testCases := []struct {
		name   string
		format Format
	}{
		{name: "icon.png", format: PNG},
		{name: "icon.PNG", format: PNG},
		{name: "icon.jpg", format: JPEG},
		{name: "icon.jpeg", format: JPEG},
		{name: "icon.bmp", format: BMP},
		{name: "icon", format: PNG},
	}
	for _, tc := range testCases {
		f, err := FormatFromFilename(tc.name)
		assert.NoError(err, tc.name)
		assert.Equal(tc.format, f, tc.name)
	}

	_, err := FormatFromFilename("icon.txt")
	assert.ErrorIs(err, ErrUnsupportedFormat)
	_, err = FormatFromFilename("icon.gif")
	assert.ErrorIs(err, ErrUnsupportedFormat)
	_, err = ParseFormat("webp")
	assert.ErrorIs(err, ErrUnsupportedFormat)

	assert.Equal(".jpg", JPEG.Ext())
	assert.Equal(".png", PNG.Ext())
	assert.Equal(".bmp", BMP.Ext())
}

func TestExport_EncodeRoundTrip(t *testing.T) {
	src := renderSample(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, src, PNG))
	dec, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), dec.Bounds())
	for y := 0; y < src.Bounds().Dy(); y++ {
		for x := 0; x < src.Bounds().Dx(); x++ {
			assert.Equal(t, src.NRGBAAt(x, y), color.NRGBAModel.Convert(dec.At(x, y)))
		}
	}

	buf.Reset()
	require.NoError(t, Encode(&buf, src, BMP))
	dec, err = bmp.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), dec.Bounds())

	buf.Reset()
	require.NoError(t, Encode(&buf, src, JPEG))
	assert.NotZero(t, buf.Len())

	assert.ErrorIs(t, Encode(&buf, src, Format("tiff")), ErrUnsupportedFormat)
}

func TestExport_EncodeFile(t *testing.T) {
	src := renderSample(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "icon.png")
	require.NoError(t, EncodeFile(path, src))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	assert.NoError(t, err)

	assert.Error(t, EncodeFile(filepath.Join(dir, "icon.txt"), src))
	_, err = os.Stat(filepath.Join(dir, "icon.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestExport_DataURL(t *testing.T) {
	src := renderSample(t)

	url, err := DataURL(src)
	require.NoError(t, err)

	const prefix = "data:image/png;base64,"
	require.True(t, strings.HasPrefix(url, prefix))

	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, prefix))
	require.NoError(t, err)
	dec, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), dec.Bounds())
}

func TestExport_Frame(t *testing.T) {
	assert := assert.New(t)

	src := renderSample(t)
	cs := 2
	frameCol := parseColor(FrameColor)
	framed := Frame(src, cs, frameCol)

	assert.Equal(src.Bounds().Dx()+2*cs, framed.Bounds().Dx())
	assert.Equal(src.Bounds().Dy()+2*cs, framed.Bounds().Dy())
	assert.Equal(frameCol, framed.NRGBAAt(0, 0))
	assert.Equal(frameCol, framed.NRGBAAt(framed.Bounds().Dx()-1, framed.Bounds().Dy()-1))
	assert.Equal(frameCol, framed.NRGBAAt(cs-1, framed.Bounds().Dy()/2))

	for y := 0; y < src.Bounds().Dy(); y++ {
		for x := 0; x < src.Bounds().Dx(); x++ {
			if src.NRGBAAt(x, y) != framed.NRGBAAt(x+cs, y+cs) {
				t.Fatalf("pixel (%d,%d) was not copied into the frame", x, y)
			}
		}
	}
}

func TestExport_Resample(t *testing.T) {
	src := renderSample(t)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()

	res := Resample(src, 2*w)
	assert.Equal(t, 2*w, res.Bounds().Dx())
	assert.Equal(t, 2*h, res.Bounds().Dy())
	assert.Equal(t, src.NRGBAAt(0, 0), res.NRGBAAt(1, 1))

	same := Resample(src, 0)
	assert.Equal(t, src.Pix, same.Pix)
	same.Pix[0] = ^same.Pix[0]
	assert.NotEqual(t, src.Pix[0], same.Pix[0])
}

func TestExport_Tint(t *testing.T) {
	assert := assert.New(t)
	src := renderSample(t)

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black := color.NRGBA{A: 0xff}

	assert.Equal(src.Pix, Tint(src, white, "multiply").Pix)
	assert.Equal(src.Pix, Tint(src, black, "unknown").Pix)

	dark := Tint(src, black, "multiply")
	assert.Equal(black, dark.NRGBAAt(3, 3))

	light := Tint(src, white, "screen")
	assert.Equal(white, light.NRGBAAt(3, 3))

	// The source is never modified.
	assert.NotEqual(black, src.NRGBAAt(3, 3))
}
