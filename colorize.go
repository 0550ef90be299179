package pixicon

// AssignColors paints every cell of a group with the fill color selected by
// the group identity: colors[index mod len(colors)] of the group section.
// No randomness is involved, so the geometry never depends on the palette.
func AssignColors(groups []*Group, palettes Palettes) {
	for _, g := range groups {
		sec := palettes.Section(g.Section)
		if sec == nil {
			def := DefaultPalettes()
			sec = def.Section(g.Section)
		}
		if sec == nil {
			continue
		}
		col := sec.Normalize().FillColor(g.Index)
		for _, c := range g.Cells {
			c.Color = col
		}
	}
}
