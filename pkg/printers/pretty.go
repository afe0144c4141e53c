package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/leadsheet/pkg/app"
	"tableflip.dev/leadsheet/pkg/leadsheet"
	"tableflip.dev/leadsheet/pkg/store"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", len("6f1c2e0a  "))
)

const wrapWidth = 80

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)

	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = c.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Sheets lists stored sheets.
func (pp *PrettyPrint) Sheets(metas []store.Meta) {
	if len(metas) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{bold.Sprint("Sheet"), bold.Sprint("Bars"), bold.Sprint("Sections"), bold.Sprint("Chords")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("Digest")}, header...)
	}
	tbl.AddRow(header...)
	for _, m := range metas {
		row := []interface{}{m.Name, m.Size, m.Sections, m.Chords}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(shortID(m.Digest))}, row...)
		}
		tbl.AddRow(row...)
	}
	tbl.RightAlign(len(tbl.Rows[0].Cells) - 3)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Items lists every item of ls in store order.
func (pp *PrettyPrint) Items(ls *leadsheet.LeadSheet) {
	t := color.New()
	s := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = " "
	for _, it := range ls.Items() {
		var row []interface{}
		if pp.ShowID {
			row = append(row, y.Sprint(shortID(it.ID())))
		}
		switch v := it.(type) {
		case *leadsheet.Section:
			row = append(row, s.Sprint(v.Position()), s.Sprint("§"), s.Sprintf("%s %s", v.Name(), v.TimeSignature()))
		case *leadsheet.ChordSymbol:
			row = append(row, t.Sprint(v.Position()), t.Sprint("•"), t.Sprint(v.Data()))
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Report prints a per section summary.
func (pp *PrettyPrint) Report(r app.ReportResult) {
	bold := color.New(color.Bold)
	f := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = wrapWidth / 2
	tbl.Wrap = true
	tbl.AddRow(bold.Sprint("Section"), bold.Sprint("Time"), bold.Sprint("Bars"), bold.Sprint("Chords"), bold.Sprint("Empty"))
	for _, s := range r.Sections {
		empty := make([]string, 0, len(s.EmptyBars))
		for _, bar := range s.EmptyBars {
			empty = append(empty, fmt.Sprint(bar))
		}
		tbl.AddRow(s.Name, s.TimeSignature, fmt.Sprintf("%d-%d", s.FromBar, s.ToBar), s.Chords, strings.Join(empty, " "))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = f.Fprintf(pp.out(), "%d bars, %d chords, %v beats\n", r.Size, r.Chords, r.Beats)
}

// Changes prints one line per change description.
func (pp *PrettyPrint) Changes(changes ...string) {
	f := color.New(color.Faint)
	for _, c := range changes {
		for i, line := range strings.Split(wordwrap.String(c, wrapWidth-4), "\n") {
			lead := "  - "
			if i > 0 {
				lead = "    "
			}
			_, _ = f.Fprintf(pp.out(), "%s%s\n", lead, line)
		}
	}
}

// WatchEvent prints one line for a store change.
func (pp *PrettyPrint) WatchEvent(ev store.Event) {
	y := color.New(color.FgHiYellow)
	switch ev.Type {
	case store.EventSheetsInvalidated:
		_, _ = y.Fprintln(pp.out(), ev.Type)
	default:
		_, _ = y.Fprintf(pp.out(), "%s ", ev.Type)
		_, _ = fmt.Fprintln(pp.out(), ev.Sheet)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
