package pixicon

// Group is a maximal 4-connected set of on cells of the same section.
// Index counts the groups found before it in the same section.
type Group struct {
	Section int
	Index   int
	Cells   []*Cell
}

// GroupMeta is the palette independent identity of a group.
type GroupMeta struct {
	Section int
	Index   int
	Size    int
}

// neighbors holds the up, right, down and left offsets.
var neighbors = [4]Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// FloodFill partitions the cells into groups of 4-connected cells which never
// cross a section boundary. Cells are visited in the order they were generated
// and groups are numbered per section in discovery order, so running it over
// the same cell set always yields the same labels.
func FloodFill(cells []*Cell) []*Group {
	index := make(map[Point]*Cell, len(cells))
	for _, c := range cells {
		c.Visited = false
		c.Group = -1
		index[Point{X: c.X, Y: c.Y}] = c
	}

	var (
		groups   []*Group
		counters = make(map[int]int)
	)
	for _, c := range cells {
		if c.Visited {
			continue
		}
		g := &Group{Section: c.Section, Index: counters[c.Section]}
		counters[c.Section]++

		c.Visited = true
		stack := []*Cell{c}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			cur.Group = g.Index
			g.Cells = append(g.Cells, cur)

			for _, d := range neighbors {
				n, ok := index[Point{X: cur.X + d.X, Y: cur.Y + d.Y}]
				if !ok || n.Visited || n.Section != cur.Section {
					continue
				}
				n.Visited = true
				stack = append(stack, n)
			}
		}
		groups = append(groups, g)
	}
	return groups
}

// Meta returns the group identities in discovery order.
func Meta(groups []*Group) []GroupMeta {
	meta := make([]GroupMeta, 0, len(groups))
	for _, g := range groups {
		meta = append(meta, GroupMeta{Section: g.Section, Index: g.Index, Size: len(g.Cells)})
	}
	return meta
}
