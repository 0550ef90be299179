package pixicon

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seed = "john@example.com"

func TestProcessor_ShouldBeDeterministic(t *testing.T) {
	assert := assert.New(t)

	for _, highRes := range []bool{false, true} {
		p := &Processor{Seed: seed, HighRes: highRes, CellSize: 4}

		a, err := p.Generate()
		require.NoError(t, err)
		b, err := p.Generate()
		require.NoError(t, err)

		assert.Equal(a.Meta(), b.Meta())
		assert.Equal(a.Positions(), b.Positions())
		assert.Equal(a.Colors(), b.Colors())
		assert.Equal(a.Render().Pix, b.Render().Pix)

		var bufA, bufB bytes.Buffer
		require.NoError(t, p.Encode(&bufA, a))
		require.NoError(t, p.Encode(&bufB, b))
		assert.Equal(bufA.Bytes(), bufB.Bytes())
	}
}

func TestProcessor_PaletteShouldNotAffectGeometry(t *testing.T) {
	assert := assert.New(t)

	base, err := (&Processor{Seed: seed}).Generate()
	require.NoError(t, err)
	require.NotEmpty(t, base.Cells)

	muted := MutedPalettes()
	blocked := BlockedPalettes()
	custom := &Palettes{Section1: &PaletteSection{Colors: []string{"#000000"}}}

	for name, pal := range map[string]*Palettes{"muted": &muted, "blocked": &blocked} {
		icon, err := (&Processor{Seed: seed, Palettes: pal}).Generate()
		require.NoError(t, err)

		assert.Equal(base.Meta(), icon.Meta(), name)
		assert.Equal(base.Positions(), icon.Positions(), name)
		assert.NotEqual(base.Colors(), icon.Colors(), name)
	}

	for _, status := range []string{StatusPlanned, StatusOpen, StatusInProgress, StatusReview, StatusBlocked} {
		icon, err := (&Processor{Seed: seed, Status: status}).Generate()
		require.NoError(t, err)
		assert.Equal(base.Meta(), icon.Meta(), status)
		assert.Equal(base.Positions(), icon.Positions(), status)
	}

	icon, err := (&Processor{Seed: seed, Palettes: custom}).Generate()
	require.NoError(t, err)
	assert.Equal(base.Meta(), icon.Meta())
	assert.Equal(base.Positions(), icon.Positions())
}

func TestProcessor_EndToEnd(t *testing.T) {
	assert := assert.New(t)

	def := DefaultPalettes()
	first, err := (&Processor{Seed: seed, Palettes: &def}).Generate()
	require.NoError(t, err)
	second, err := (&Processor{Seed: seed, Palettes: &def}).Generate()
	require.NoError(t, err)

	assert.Equal(first.Meta(), second.Meta())
	assert.Equal(first.Positions(), second.Positions())
	assert.Equal(first.Colors(), second.Colors())
	assert.Equal(12, first.Config.Columns)
	assert.Equal(32, first.Config.Rows)

	for _, pal := range []Palettes{MutedPalettes(), BlockedPalettes()} {
		pal := pal
		icon, err := (&Processor{Seed: seed, Palettes: &pal}).Generate()
		require.NoError(t, err)

		assert.Equal(first.Meta(), icon.Meta())
		assert.Equal(first.Positions(), icon.Positions())

		differs := false
		for i := range first.Cells {
			if first.Cells[i].Color != icon.Cells[i].Color {
				differs = true
				break
			}
		}
		assert.True(differs)
	}
}

func TestProcessor_ShouldColorEveryCell(t *testing.T) {
	icon, err := (&Processor{Seed: seed}).Generate()
	require.NoError(t, err)

	for _, c := range icon.Cells {
		assert.Equal(t, uint8(0xff), c.Color.A, "cell %v left uncolored", c.Pos())
		assert.GreaterOrEqual(t, c.Group, 0)
	}
}

func TestProcessor_ResolutionScaling(t *testing.T) {
	for _, cs := range []int{2, 5, 8} {
		std, err := (&Processor{Seed: seed, CellSize: cs}).Generate()
		require.NoError(t, err)
		hi, err := (&Processor{Seed: seed, CellSize: cs, HighRes: true}).Generate()
		require.NoError(t, err)

		a, b := std.Render().Bounds(), hi.Render().Bounds()
		assert.Equal(t, 2*a.Dx(), b.Dx())
		assert.Equal(t, 2*a.Dy(), b.Dy())
		assert.Equal(t, std.Config.Sections, hi.Config.Sections)
	}
}

func TestProcessor_DefaultCellSize(t *testing.T) {
	icon, err := (&Processor{Seed: seed}).Generate()
	require.NoError(t, err)
	assert.Equal(t, DefaultCellSize, icon.Config.CellSize)
}

func TestProcessor_UnseededRuns(t *testing.T) {
	p := &Processor{}

	icon, err := p.Generate()
	require.NoError(t, err)
	assert.Empty(t, icon.Seed)
	assert.NotEmpty(t, icon.SessionSeed)

	// An unseeded icon can be reproduced from its session seed.
	same, err := p.GenerateFor(icon.SessionSeed)
	require.NoError(t, err)
	assert.Equal(t, icon.Positions(), same.Positions())
	assert.Equal(t, icon.Colors(), same.Colors())

	// A regenerated icon can be reproduced from its session seed.
	re, err := p.Regenerate()
	require.NoError(t, err)
	require.NotEmpty(t, re.SessionSeed)

	again, err := p.GenerateFor(re.SessionSeed)
	require.NoError(t, err)
	assert.Equal(t, re.Positions(), again.Positions())
	assert.Equal(t, re.Colors(), again.Colors())
}

func TestProcessor_RegenerateShouldKeepPinnedSeed(t *testing.T) {
	p := &Processor{Seed: seed}
	a, err := p.Generate()
	require.NoError(t, err)
	b, err := p.Regenerate()
	require.NoError(t, err)

	assert.Equal(t, a.Positions(), b.Positions())
	assert.Empty(t, b.SessionSeed)
}

func TestProcessor_Process(t *testing.T) {
	var buf bytes.Buffer
	p := &Processor{Seed: seed, CellSize: 2, Framed: true}
	require.NoError(t, p.Process(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, (12+2)*2, img.Bounds().Dx())
	assert.Equal(t, (32+2)*2, img.Bounds().Dy())
}

func TestProcessor_ExportShouldNotify(t *testing.T) {
	p := &Processor{Seed: seed, Size: 96}
	icon, err := p.Generate()
	require.NoError(t, err)

	var (
		buf bytes.Buffer
		url string
	)
	require.NoError(t, p.Export(&buf, icon, func(u string) { url = u }))
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 96, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())
}

func TestProcessor_InvalidTint(t *testing.T) {
	p := &Processor{Seed: seed, Tint: "nope", BlendMode: "multiply"}
	icon, err := p.Generate()
	require.NoError(t, err)
	_, err = p.Image(icon)
	assert.Error(t, err)
}

func BenchmarkProcessor_Generate(b *testing.B) {
	p := &Processor{Seed: seed, HighRes: true, CellSize: 8}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		icon, err := p.Generate()
		if err != nil {
			b.Fatal(err)
		}
		icon.Render()
	}
}
