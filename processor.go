package pixicon

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/esimov/pixicon/utils"
)

// Processor options. The zero value renders an unseeded, standard resolution
// icon with the default palettes.
type Processor struct {
	// Seed drives every random draw of a run. An empty seed is no seed at all.
	Seed string
	// Status selects the palettes through GenPalette when Palettes is nil.
	Status string
	// Palettes overrides the palettes. Missing sections fall back to the defaults.
	Palettes *Palettes
	// Tint is an optional hex color laid over the icon with BlendMode.
	Tint      string
	BlendMode string
	Format    Format
	CellSize  int
	// Size resamples the exported image to the given width when positive.
	Size    int
	HighRes bool
	Framed  bool
	Spinner *utils.Spinner
}

// Icon is the outcome of a generation run.
type Icon struct {
	// Seed is empty for unseeded runs, in which case SessionSeed identifies the run.
	Seed        string
	SessionSeed string
	Config      Config
	Palettes    Palettes
	Cells       []*Cell
	Groups      []*Group
}

// Config returns the grid configuration of the processor.
func (p *Processor) Config() Config {
	cs := p.CellSize
	if cs <= 0 {
		cs = DefaultCellSize
	}
	return NewConfig(p.HighRes, cs)
}

// ActivePalettes returns the resolved palettes used for coloring: the explicit
// override when present, otherwise the palettes of the status label.
func (p *Processor) ActivePalettes() Palettes {
	if p.Palettes != nil {
		return ResolvePalettes(p.Palettes)
	}
	pal := GenPalette(p.Status)
	return ResolvePalettes(&pal)
}

// Generate runs the whole pipeline for the processor seed. Runs with the same
// seed and configuration produce the same geometry; the palettes only affect colors.
func (p *Processor) Generate() (*Icon, error) {
	return p.GenerateFor(p.Seed)
}

// Regenerate issues a fresh generation run. With a pinned seed the pinned icon
// is reproduced, otherwise a new pattern is drawn under a new session seed.
func (p *Processor) Regenerate() (*Icon, error) {
	return p.GenerateFor(p.Seed)
}

// GenerateFor runs the pipeline for the provided seed using the processor options.
// An empty seed draws a new session seed and seeds the run with it, so the
// pattern can be reproduced later with GenerateFor(icon.SessionSeed).
// It does not mutate the processor, so it can be called concurrently.
func (p *Processor) GenerateFor(seed string) (*Icon, error) {
	if seed == "" {
		session := NewSessionSeed()
		return p.run("", session, SequenceFor(session))
	}
	return p.run(seed, "", SequenceFor(seed))
}

func (p *Processor) run(seed, session string, next Sequence) (*Icon, error) {
	cfg := p.Config()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	icon := &Icon{
		Seed:        seed,
		SessionSeed: session,
		Config:      cfg,
		Palettes:    p.ActivePalettes(),
	}
	icon.Cells = GenerateGrid(cfg, next)
	icon.Groups = FloodFill(icon.Cells)
	AssignColors(icon.Groups, icon.Palettes)

	return icon, nil
}

// Render rasterizes the icon into a new pixel buffer.
func (i *Icon) Render() *image.NRGBA {
	return NewRasterizer(i.Config, i.Palettes).Rasterize(i.Cells)
}

// Meta returns the palette independent group identities in discovery order.
func (i *Icon) Meta() []GroupMeta {
	return Meta(i.Groups)
}

// Positions returns the logical positions of the on cells in generation order.
func (i *Icon) Positions() []Point {
	pts := make([]Point, 0, len(i.Cells))
	for _, c := range i.Cells {
		pts = append(pts, c.Pos())
	}
	return pts
}

// Colors returns the assigned cell colors in generation order.
func (i *Icon) Colors() []color.NRGBA {
	cols := make([]color.NRGBA, 0, len(i.Cells))
	for _, c := range i.Cells {
		cols = append(cols, c.Color)
	}
	return cols
}

// Image renders the icon and applies the optional tint, frame and resampling.
func (p *Processor) Image(icon *Icon) (image.Image, error) {
	var img image.Image = icon.Render()

	if p.Tint != "" {
		col, err := utils.HexToNRGBA(p.Tint)
		if err != nil {
			return nil, err
		}
		img = Tint(img, col, p.BlendMode)
	}
	if p.Framed {
		img = Frame(img, icon.Config.CellSize, parseColor(FrameColor))
	}
	if p.Size > 0 {
		img = Resample(img, p.Size)
	}
	return img, nil
}

// Process generates the icon for the processor seed and encodes it into the writer.
func (p *Processor) Process(w io.Writer) error {
	icon, err := p.Generate()
	if err != nil {
		return err
	}
	return p.Encode(w, icon)
}

// Encode encodes the final icon image into the writer.
func (p *Processor) Encode(w io.Writer, icon *Icon) error {
	img, err := p.Image(icon)
	if err != nil {
		return err
	}
	if err := Encode(w, img, p.Format); err != nil {
		return fmt.Errorf("could not encode the icon: %w", err)
	}
	return nil
}

// Export encodes the icon into the writer, then notifies onReady with the
// PNG data URL of the same image. The notification is skipped on error.
func (p *Processor) Export(w io.Writer, icon *Icon, onReady func(dataURL string)) error {
	img, err := p.Image(icon)
	if err != nil {
		return err
	}
	if w != nil {
		if err := Encode(w, img, p.Format); err != nil {
			return fmt.Errorf("could not encode the icon: %w", err)
		}
	}
	if onReady == nil {
		return nil
	}
	url, err := DataURL(img)
	if err != nil {
		return err
	}
	onReady(url)

	return nil
}
