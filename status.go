package pixicon

// Semantic status labels recognized by GenPalette.
const (
	StatusBlocked    = "blocked"
	StatusPlanned    = "planned"
	StatusOpen       = "open"
	StatusInProgress = "in-progress"
	StatusReview     = "review"
)

// mutedSections holds, for every lifecycle status, how many sections
// counted from the top are drawn with the muted palette.
var mutedSections = map[string]int{
	StatusPlanned:    4,
	StatusOpen:       3,
	StatusInProgress: 2,
	StatusReview:     1,
}

// GenPalette maps a status label to a full palette. Later lifecycle stages
// light up more sections, while a blocked status overrides everything with
// the blocked palette. Labels are matched case sensitively and unknown
// labels resolve to the default palette.
func GenPalette(status string) Palettes {
	if status == StatusBlocked {
		return BlockedPalettes()
	}

	def, muted := DefaultPalettes(), MutedPalettes()
	n := mutedSections[status]

	var p Palettes
	for i := 0; i < NumSections; i++ {
		if i < n {
			p.SetSection(i, muted.Section(i))
		} else {
			p.SetSection(i, def.Section(i))
		}
	}
	return p
}
