package printers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/leadsheet/pkg/leadsheet"
)

const (
	// BarsPerRow is the number of bars printed on one grid row.
	BarsPerRow = 4
	cellWidth  = len(" Dm7 G7 C6 ") // an example bar
)

// Sheet prints ls as a bar grid, one block per section.
func (pp *PrettyPrint) Sheet(ls *leadsheet.LeadSheet) {
	for _, sec := range ls.Sections() {
		from, to, err := ls.SectionRange(sec)
		if err != nil {
			continue
		}
		pp.section(ls, sec, from, to)
	}
}

func (pp *PrettyPrint) section(ls *leadsheet.LeadSheet, sec *leadsheet.Section, from, to int) {
	h := color.New(color.Bold)
	f := color.New(color.Faint)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	if pp.ShowID {
		_, _ = y.Fprint(pp.out(), shortID(sec.ID())+"  ")
	}
	_, _ = h.Fprintf(pp.out(), "%s ", sec.Name())
	_, _ = f.Fprintf(pp.out(), "%s, bars %d-%d\n", sec.TimeSignature(), from, to)

	cells := make([][]string, to-from+1)
	for _, cs := range leadsheet.ItemsOf[*leadsheet.ChordSymbol](ls, from, to) {
		label := cs.Data().Symbol
		if beat := cs.Position().Beat; beat != 0 {
			label += "@" + strconv.FormatFloat(beat, 'f', -1, 64)
		}
		cells[cs.Position().Bar-from] = append(cells[cs.Position().Bar-from], label)
	}

	for i, chords := range cells {
		if i%BarsPerRow == 0 {
			if pp.ShowID {
				_, _ = fmt.Fprint(pp.out(), spacing)
			}
			_, _ = f.Fprintf(pp.out(), "%3d ", from+i)
			_, _ = fmt.Fprint(pp.out(), "|")
		}
		_, _ = fmt.Fprint(pp.out(), Cell(strings.Join(chords, " "))+"|")
		if i%BarsPerRow == BarsPerRow-1 || i == len(cells)-1 {
			_, _ = fmt.Fprintln(pp.out(), "")
		}
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Cell fits text into one grid cell, truncating it with an ellipsis.
func Cell(text string) string {
	text = truncate.StringWithTail(text, uint(cellWidth-2), "…")
	return padding.String(" "+text, uint(cellWidth))
}
