// Package chart reads and writes lead sheets as plain text charts:
//
//	section "A" 4/4
//	| Dm7 G7 | Cmaj7 | Cmaj7@2 |
//	section "Bridge" 3/4
//	| Em7 | - |
//
// Bars are delimited by "|" and "-" marks a bar without chords. Chords in a
// bar are spread evenly over its natural beats unless written with an
// explicit "@beat". Symbols that do not start with A-G, or that hold one of
// `|@"`, are written quoted: | "N.C." | "%" |.
package chart

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"tableflip.dev/leadsheet/pkg/harmony"
	"tableflip.dev/leadsheet/pkg/leadsheet"
)

// BarsPerRow is the number of bars Format writes on one line.
const BarsPerRow = 4

type chartNode struct {
	Sections []*sectionNode `Newline* @@*`
}

type sectionNode struct {
	Pos       lexer.Position
	Name      string     `"section" @String`
	Signature string     `@Signature Newline+`
	Rows      []*rowNode `@@*`
}

type rowNode struct {
	Bars []*barNode `"|" @@* Newline+`
}

type barNode struct {
	Pos    lexer.Position
	Chords []*chordNode `( @@+ | "-" )? "|"`
}

type chordNode struct {
	Pos    lexer.Position
	Symbol string   `( @Chord | @String )`
	Beat   *float64 `( "@" @Number )?`
}

var chartLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Signature", Pattern: `\d+/\d+`},
	{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
	{Name: "Keyword", Pattern: `[a-z]+`},
	// chord symbols may contain '#', e.g. F#m7b5
	{Name: "Chord", Pattern: `[A-G][^\s|@"]*`},
	{Name: "Punct", Pattern: `[|@-]`},
	{Name: "Newline", Pattern: `\n`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
})

// bareChord matches the symbols the Chord token reads unquoted.
var bareChord = regexp.MustCompile(`^[A-G][^\s|@"]*$`)

var chartParser = participle.MustBuild[chartNode](
	participle.Lexer(chartLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
)

// Parse reads a chart and builds a lead sheet from it. The sheet has as
// many bars as the chart lists.
func Parse(filename string, r io.Reader) (*leadsheet.LeadSheet, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("chart: read %s: %w", filename, err)
	}
	return ParseString(filename, string(raw))
}

// ParseString is Parse for an in-memory chart.
func ParseString(filename, text string) (*leadsheet.LeadSheet, error) {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	node, err := chartParser.ParseString(filename, text)
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	return build(node)
}

type parsedSection struct {
	node *sectionNode
	ts   harmony.TimeSignature
	bar  int
	bars []*barNode
}

func build(node *chartNode) (*leadsheet.LeadSheet, error) {
	if len(node.Sections) == 0 {
		return nil, fmt.Errorf("chart: no sections")
	}
	var sections []parsedSection
	size := 0
	for _, sn := range node.Sections {
		ts, err := harmony.ParseTimeSignature(sn.Signature)
		if err != nil {
			return nil, fmt.Errorf("chart: %s: %w", sn.Pos, err)
		}
		ps := parsedSection{node: sn, ts: ts, bar: size}
		for _, row := range sn.Rows {
			ps.bars = append(ps.bars, row.Bars...)
		}
		if len(ps.bars) == 0 {
			return nil, fmt.Errorf("chart: %s: section %q has no bars", sn.Pos, sn.Name)
		}
		size += len(ps.bars)
		sections = append(sections, ps)
	}

	ls, err := leadsheet.New(leadsheet.NewSection(sections[0].node.Name, sections[0].ts, 0), size)
	if err != nil {
		return nil, fmt.Errorf("chart: %s: %w", sections[0].node.Pos, err)
	}
	for _, ps := range sections[1:] {
		if err := ls.AddSection(leadsheet.NewSection(ps.node.Name, ps.ts, ps.bar)); err != nil {
			return nil, fmt.Errorf("chart: %s: %w", ps.node.Pos, err)
		}
	}
	for _, ps := range sections {
		beats := ps.ts.NaturalBeatCount()
		for i, bn := range ps.bars {
			for j, cn := range bn.Chords {
				chord, err := harmony.ParseChord(cn.Symbol)
				if err != nil {
					return nil, fmt.Errorf("chart: %s: %w", cn.Pos, err)
				}
				beat := spread(j, len(bn.Chords), beats)
				if cn.Beat != nil {
					if *cn.Beat >= beats {
						return nil, fmt.Errorf("chart: %s: beat %v outside a %s bar", cn.Pos, *cn.Beat, ps.ts)
					}
					beat = *cn.Beat
				}
				pos := harmony.Position{Bar: ps.bar + i, Beat: beat}
				if err := ls.AddItem(leadsheet.NewChordSymbol(chord, pos)); err != nil {
					return nil, fmt.Errorf("chart: %s: %w", cn.Pos, err)
				}
			}
		}
	}
	return ls, nil
}

// spread is the beat of the i-th of n chords spread evenly over beats.
func spread(i, n int, beats float64) float64 {
	return math.Round(float64(i)*beats/float64(n)*1000) / 1000
}

func chordToken(symbol string) string {
	if bareChord.MatchString(symbol) {
		return symbol
	}
	return strconv.Quote(symbol)
}

// Format writes ls as a chart that Parse reads back into the same layout.
func Format(w io.Writer, ls *leadsheet.LeadSheet) error {
	var b strings.Builder
	for _, sec := range ls.Sections() {
		from, to, err := ls.SectionRange(sec)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "section %s %s\n", strconv.Quote(sec.Name()), sec.TimeSignature())

		bars := make([][]*leadsheet.ChordSymbol, to-from+1)
		for _, cs := range leadsheet.ItemsOf[*leadsheet.ChordSymbol](ls, from, to) {
			bars[cs.Position().Bar-from] = append(bars[cs.Position().Bar-from], cs)
		}
		beats := sec.TimeSignature().NaturalBeatCount()
		for i, chords := range bars {
			if i%BarsPerRow == 0 {
				b.WriteString("|")
			}
			if len(chords) == 0 {
				b.WriteString(" -")
			}
			for j, cs := range chords {
				b.WriteString(" ")
				b.WriteString(chordToken(cs.Data().Symbol))
				if beat := cs.Position().Beat; beat != spread(j, len(chords), beats) {
					b.WriteString("@")
					b.WriteString(strconv.FormatFloat(beat, 'f', -1, 64))
				}
			}
			b.WriteString(" |")
			if i%BarsPerRow == BarsPerRow-1 || i == len(bars)-1 {
				b.WriteString("\n")
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
