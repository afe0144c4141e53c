package app

import (
	"tableflip.dev/leadsheet/pkg/harmony"
	"tableflip.dev/leadsheet/pkg/leadsheet"
)

// ReportSection summarizes one section of a sheet.
type ReportSection struct {
	Name          string                `json:"name"`
	TimeSignature harmony.TimeSignature `json:"timeSignature"`
	FromBar       int                   `json:"fromBar"`
	ToBar         int                   `json:"toBar"`
	Chords        int                   `json:"chords"`
	EmptyBars     []int                 `json:"emptyBars,omitempty"`
}

// ReportResult summarizes a sheet section by section.
type ReportResult struct {
	Size     int             `json:"size"`
	Sections []ReportSection `json:"sections"`
	Chords   int             `json:"chords"`
	// Beats is the total number of natural beats of the sheet.
	Beats float64 `json:"beats"`
}

// Report summarizes ls.
func Report(ls *leadsheet.LeadSheet) ReportResult {
	result := ReportResult{Size: ls.Size()}
	for _, sec := range ls.Sections() {
		from, to, err := ls.SectionRange(sec)
		if err != nil {
			continue
		}
		rs := ReportSection{
			Name:          sec.Name(),
			TimeSignature: sec.TimeSignature(),
			FromBar:       from,
			ToBar:         to,
		}
		used := make(map[int]bool)
		for _, cs := range leadsheet.ItemsOf[*leadsheet.ChordSymbol](ls, from, to) {
			rs.Chords++
			used[cs.Position().Bar] = true
		}
		for bar := from; bar <= to; bar++ {
			if !used[bar] {
				rs.EmptyBars = append(rs.EmptyBars, bar)
			}
		}
		result.Chords += rs.Chords
		result.Beats += float64(to-from+1) * sec.TimeSignature().NaturalBeatCount()
		result.Sections = append(result.Sections, rs)
	}
	return result
}
