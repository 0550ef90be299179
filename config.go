package pixicon

import (
	"errors"
	"fmt"
)

// Grid dimensions of the standard resolution tier.
// The high resolution tier doubles both of them.
const (
	StandardColumns = 12
	StandardRows    = 32
	DefaultCellSize = 4
)

// ErrInvalidConfig is returned when the grid configuration cannot produce an icon.
var ErrInvalidConfig = errors.New("invalid icon configuration")

// Config holds the grid geometry and the on-screen size of a logical cell.
type Config struct {
	Columns  int
	Rows     int
	Sections int
	CellSize int
	HighRes  bool
}

// NewConfig returns the configuration of the requested resolution tier.
func NewConfig(highRes bool, cellSize int) Config {
	c := Config{
		Columns:  StandardColumns,
		Rows:     StandardRows,
		Sections: NumSections,
		CellSize: cellSize,
		HighRes:  highRes,
	}
	if highRes {
		c.Columns *= 2
		c.Rows *= 2
	}
	return c
}

// Validate checks that the configuration describes a drawable grid.
func (c Config) Validate() error {
	switch {
	case c.Columns < 2 || c.Columns%2 != 0:
		return fmt.Errorf("%w: columns must be an even number greater than zero, got %d", ErrInvalidConfig, c.Columns)
	case c.Sections != NumSections:
		return fmt.Errorf("%w: expected %d sections, got %d", ErrInvalidConfig, NumSections, c.Sections)
	case c.Rows < c.Sections:
		return fmt.Errorf("%w: %d rows cannot hold %d sections", ErrInvalidConfig, c.Rows, c.Sections)
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell size must be positive, got %d", ErrInvalidConfig, c.CellSize)
	}
	return nil
}

// Width returns the pixel width of the icon.
func (c Config) Width() int { return c.Columns * c.CellSize }

// Height returns the pixel height of the icon.
func (c Config) Height() int { return c.Rows * c.CellSize }

// SectionBounds returns the [start, end) row range of a section.
// Boundaries are floored so that every row belongs to exactly one section.
func (c Config) SectionBounds(section int) (start, end int) {
	start = section * c.Rows / c.Sections
	end = (section + 1) * c.Rows / c.Sections
	return start, end
}

// SectionOf returns the section a row belongs to.
func (c Config) SectionOf(row int) int {
	for s := 0; s < c.Sections; s++ {
		if _, end := c.SectionBounds(s); row < end {
			return s
		}
	}
	return c.Sections - 1
}

// MirrorX returns the column mirrored across the vertical axis of the grid.
func (c Config) MirrorX(x int) int {
	return c.Columns - 1 - x
}
