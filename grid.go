package pixicon

import "image/color"

// Cell is an "on" cell of the half-width bitmap.
// DX and DY are the logical grid coordinates, X and Y duplicate them for the flood fill.
// Color stays transparent and Group stays -1 until the cell is grouped and colored.
type Cell struct {
	DX, DY  int
	X, Y    int
	Color   color.NRGBA
	Visited bool
	Section int
	Group   int
}

// Point is a logical grid coordinate.
type Point struct {
	X int
	Y int
}

// Pos returns the logical position of the cell.
func (c *Cell) Pos() Point { return Point{X: c.DX, Y: c.DY} }

// GenerateGrid builds the sparse half-width bitmap of an icon.
// For every row a single value is drawn from the sequence and its binary
// expansion gives the on/off state of the first Columns/2 columns.
// The other half is obtained by mirroring on rasterization.
// Cells are returned in generation order, which the grouping relies on.
func GenerateGrid(cfg Config, next Sequence) []*Cell {
	var cells []*Cell
	half := cfg.Columns / 2

	for s := 0; s < cfg.Sections; s++ {
		start, end := cfg.SectionBounds(s)
		for y := start; y < end; y++ {
			v := next()
			for x := 0; x < half; x++ {
				v *= 2
				if v >= 1 {
					v--
					cells = append(cells, &Cell{
						DX:      x,
						DY:      y,
						X:       x,
						Y:       y,
						Section: s,
						Group:   -1,
					})
				}
			}
		}
	}
	return cells
}
