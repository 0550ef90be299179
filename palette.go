package pixicon

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/esimov/pixicon/utils"
	"gopkg.in/yaml.v3"
)

const (
	// NumSections is the number of horizontal bands an icon is split into.
	NumSections = 5
	// NumColors is the length every section fill color list is normalized to.
	NumColors = 5
	// FallbackColor pads section color lists which are too short
	// and replaces colors which cannot be parsed.
	FallbackColor = "#808080"
	// FrameColor is the neutral color of the outer border.
	FrameColor = "#2d2d2d"
)

// PaletteSection holds the colors of a single section.
type PaletteSection struct {
	Colors     []string `json:"colors" yaml:"colors"`
	Background string   `json:"background" yaml:"background"`
	Border     string   `json:"border" yaml:"border"`
}

// Palettes maps the five palette sections top to bottom onto the icon bands.
// A nil section is replaced with the default one on resolution.
type Palettes struct {
	Section0 *PaletteSection `json:"section0,omitempty" yaml:"section0,omitempty"`
	Section1 *PaletteSection `json:"section1,omitempty" yaml:"section1,omitempty"`
	Section2 *PaletteSection `json:"section2,omitempty" yaml:"section2,omitempty"`
	Section3 *PaletteSection `json:"section3,omitempty" yaml:"section3,omitempty"`
	Section4 *PaletteSection `json:"section4,omitempty" yaml:"section4,omitempty"`
}

var defaultTable = [NumSections]PaletteSection{
	{Background: "#1b2a4a", Border: "#0f1a33", Colors: []string{"#4cc9f0", "#4895ef", "#4361ee", "#3f37c9", "#7209b7"}},
	{Background: "#14342b", Border: "#0b231c", Colors: []string{"#2ec4b6", "#3ddc97", "#80ed99", "#57cc99", "#38a3a5"}},
	{Background: "#3d2c0f", Border: "#2a1e08", Colors: []string{"#ffd166", "#f8961e", "#f9c74f", "#f3722c", "#ee9b00"}},
	{Background: "#3a1430", Border: "#280c21", Colors: []string{"#f72585", "#ff5d8f", "#ff87ab", "#b5179e", "#e0aaff"}},
	{Background: "#3b1518", Border: "#290d10", Colors: []string{"#ef476f", "#ff6b6b", "#e63946", "#ff9f1c", "#d62828"}},
}

var mutedTable = [NumSections]PaletteSection{
	{Background: "#2b2f36", Border: "#1f2228", Colors: []string{"#8a99ad", "#7d8ca3", "#6f7d96", "#65708a", "#7a6f8a"}},
	{Background: "#2a302e", Border: "#1e2321", Colors: []string{"#8aa39f", "#8fb3a2", "#a3b8a8", "#90a899", "#7f9b9c"}},
	{Background: "#33302a", Border: "#25221d", Colors: []string{"#b8ad94", "#ad9c86", "#b5aa8c", "#a8917f", "#a89a7d"}},
	{Background: "#322a30", Border: "#241e22", Colors: []string{"#a8879a", "#b099a3", "#b8a3aa", "#9c8096", "#ab9fb5"}},
	{Background: "#332b2c", Border: "#251f20", Colors: []string{"#a8868d", "#b08f8f", "#a37d80", "#b39e86", "#9c7777"}},
}

var blockedTable = [NumSections]PaletteSection{
	{Background: "#2b0a0a", Border: "#1a0505", Colors: []string{"#ff4d4d", "#e60000", "#ff8080", "#b30000", "#ff1a1a"}},
	{Background: "#330d0d", Border: "#1f0606", Colors: []string{"#ff6666", "#cc0000", "#ff9999", "#990000", "#ff3333"}},
	{Background: "#3d1010", Border: "#260808", Colors: []string{"#f25c54", "#d62828", "#f4978e", "#9d0208", "#e5383b"}},
	{Background: "#471313", Border: "#2d0a0a", Colors: []string{"#e63946", "#c1121f", "#ff758f", "#780000", "#ef233c"}},
	{Background: "#521616", Border: "#330c0c", Colors: []string{"#ff5a5f", "#a4161a", "#ffb3b3", "#660708", "#d00000"}},
}

// DefaultPalettes returns the vivid palette table.
func DefaultPalettes() Palettes { return fromTable(defaultTable) }

// MutedPalettes returns the desaturated palette table.
func MutedPalettes() Palettes { return fromTable(mutedTable) }

// BlockedPalettes returns the red-toned palette used for blocked items.
func BlockedPalettes() Palettes { return fromTable(blockedTable) }

func fromTable(table [NumSections]PaletteSection) Palettes {
	var p Palettes
	for i := range table {
		p.SetSection(i, table[i].Clone())
	}
	return p
}

// Section returns the i-th section or nil if it is missing or out of range.
func (p *Palettes) Section(i int) *PaletteSection {
	switch i {
	case 0:
		return p.Section0
	case 1:
		return p.Section1
	case 2:
		return p.Section2
	case 3:
		return p.Section3
	case 4:
		return p.Section4
	}
	return nil
}

// SetSection replaces the i-th section. Out of range indices are ignored.
func (p *Palettes) SetSection(i int, s *PaletteSection) {
	switch i {
	case 0:
		p.Section0 = s
	case 1:
		p.Section1 = s
	case 2:
		p.Section2 = s
	case 3:
		p.Section3 = s
	case 4:
		p.Section4 = s
	}
}

// Clone returns a deep copy of the palettes.
func (p Palettes) Clone() Palettes {
	var c Palettes
	for i := 0; i < NumSections; i++ {
		c.SetSection(i, p.Section(i).Clone())
	}
	return c
}

// Clone returns a deep copy of the section. Cloning a nil section returns nil.
func (s *PaletteSection) Clone() *PaletteSection {
	if s == nil {
		return nil
	}
	c := *s
	c.Colors = append([]string(nil), s.Colors...)
	return &c
}

// Normalize returns a copy of the section with exactly NumColors fill colors,
// truncating longer lists and padding shorter ones with FallbackColor.
func (s *PaletteSection) Normalize() *PaletteSection {
	n := s.Clone()
	if len(n.Colors) > NumColors {
		n.Colors = n.Colors[:NumColors]
	}
	for len(n.Colors) < NumColors {
		n.Colors = append(n.Colors, FallbackColor)
	}
	return n
}

// FillColor returns the i-th fill color, wrapping around the color list.
func (s *PaletteSection) FillColor(i int) color.NRGBA {
	if len(s.Colors) == 0 {
		return parseColor(FallbackColor)
	}
	return parseColor(s.Colors[utils.Abs(i)%len(s.Colors)])
}

// BackgroundColor returns the parsed section background color.
func (s *PaletteSection) BackgroundColor() color.NRGBA {
	return parseColor(s.Background)
}

// BorderColor returns the parsed section border color.
func (s *PaletteSection) BorderColor() color.NRGBA {
	return parseColor(s.Border)
}

// parseColor never fails: anything that is not a valid hex color becomes FallbackColor.
func parseColor(hex string) color.NRGBA {
	c, err := utils.HexToNRGBA(hex)
	if err != nil {
		c, _ = utils.HexToNRGBA(FallbackColor)
	}
	return c
}

// ResolvePalettes merges the override with the default palette table section by section.
// Missing sections are taken from the defaults wholesale, and every section is
// normalized to exactly NumColors fill colors. A nil override resolves to the defaults.
func ResolvePalettes(override *Palettes) Palettes {
	def := DefaultPalettes()
	if override == nil {
		return def
	}
	var res Palettes
	for i := 0; i < NumSections; i++ {
		res.SetSection(i, resolveSection(override.Section(i), def.Section(i)))
	}
	return res
}

// resolveSection picks the override when present and fills in its blank fields from the fallback.
func resolveSection(override, fallback *PaletteSection) *PaletteSection {
	if override == nil {
		return fallback.Normalize()
	}
	s := override.Normalize()
	if s.Background == "" {
		s.Background = fallback.Background
	}
	if s.Border == "" {
		s.Border = fallback.Border
	}
	return s
}

// LoadPalettes decodes a YAML or JSON palette override.
func LoadPalettes(r io.Reader) (*Palettes, error) {
	var p Palettes
	if err := yaml.NewDecoder(r).Decode(&p); err != nil {
		if err == io.EOF {
			return &p, nil
		}
		return nil, fmt.Errorf("could not decode the palette file: %w", err)
	}
	return &p, nil
}

// LoadPalettesFile loads a palette override from a local file or a remote URL.
func LoadPalettesFile(src string) (*Palettes, error) {
	if utils.IsValidUrl(src) {
		f, err := utils.DownloadFile(src, "palette")
		if err != nil {
			return nil, err
		}
		defer os.Remove(f.Name())
		defer f.Close()

		return LoadPalettes(f)
	}

	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("could not open the palette file: %w", err)
	}
	defer f.Close()

	return LoadPalettes(f)
}
