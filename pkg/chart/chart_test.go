package chart

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"tableflip.dev/leadsheet/pkg/harmony"
	"tableflip.dev/leadsheet/pkg/leadsheet"
)

const autumn = `// verse
section "A" 4/4
| Dm7 G7 | Cmaj7 | Cmaj7@2 |

section "Bridge" 3/4
| Em7 | A7 |
`

func layout(ls *leadsheet.LeadSheet) string {
	var parts []string
	for _, it := range ls.Items() {
		switch v := it.(type) {
		case *leadsheet.Section:
			parts = append(parts, v.Name()+"("+v.TimeSignature().String()+")"+v.Position().String())
		case *leadsheet.ChordSymbol:
			parts = append(parts, v.Data().Symbol+v.Position().String())
		}
	}
	return strings.Join(parts, " ")
}

func TestParse(t *testing.T) {
	ls, err := ParseString("autumn.chart", autumn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ls.Size() != 5 {
		t.Fatalf("expected 5 bars, got %d", ls.Size())
	}
	want := "A(4/4)[0:0] Dm7[0:0] G7[0:2] Cmaj7[1:0] Cmaj7[2:2] Bridge(3/4)[3:0] Em7[3:0] A7[4:0]"
	if got := layout(ls); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestParseSpread(t *testing.T) {
	ls, err := ParseString("", "section \"A\" 4/4\n| C F G | - | F#m7b5 Bb/D@3 |\n| D |")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "A(4/4)[0:0] C[0:0] F[0:1.333] G[0:2.667] F#m7b5[2:0] Bb/D[2:3] D[3:0]"
	if got := layout(ls); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormat(t *testing.T) {
	ls, err := leadsheet.NewEmpty("Intro", harmony.SixEight, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, cs := range []*leadsheet.ChordSymbol{
		leadsheet.NewChordSymbol(harmony.MustChord("C"), harmony.Position{Bar: 0}),
		leadsheet.NewChordSymbol(harmony.MustChord("G"), harmony.Position{Bar: 0, Beat: 1.5}),
		leadsheet.NewChordSymbol(harmony.MustChord("Am"), harmony.Position{Bar: 2, Beat: 1}),
		leadsheet.NewChordSymbol(harmony.MustChord("F"), harmony.Position{Bar: 4}),
	} {
		if err := ls.AddItem(cs); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := ls.AddSection(leadsheet.NewSection("Out \"ro\"", harmony.FourFour, 5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := Format(&buf, ls); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `section "Intro" 6/8
| C G | - | Am@1 | - |
| F |
section "Out \"ro\"" 4/4
| - |
`
	if buf.String() != want {
		t.Fatalf("expected\n%s\ngot\n%s", want, buf.String())
	}

	back, err := Parse("roundtrip", &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if layout(back) != layout(ls) || back.Size() != ls.Size() {
		t.Fatalf("expected %q, got %q", layout(ls), layout(back))
	}
}

func TestFormatRoundTrip(t *testing.T) {
	ls, err := ParseString("autumn.chart", autumn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf bytes.Buffer
	if err := Format(&buf, ls); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := ParseString("again", buf.String())
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, buf.String())
	}
	if layout(back) != layout(ls) {
		t.Fatalf("expected %q, got %q", layout(ls), layout(back))
	}
}

func TestFormatRoundTripQuotesSymbols(t *testing.T) {
	symbols := []string{"N.C.", "C@2", "Am|7", "%", `C"7`, "c", "C//", "F#m7b5"}
	for _, symbol := range symbols {
		t.Run(symbol, func(t *testing.T) {
			ls, err := leadsheet.NewEmpty("A", harmony.FourFour, 2)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			pos := harmony.Position{Bar: 0, Beat: 1}
			if err := ls.AddItem(leadsheet.NewChordSymbol(harmony.MustChord(symbol), pos)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var buf bytes.Buffer
			if err := Format(&buf, ls); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			back, err := ParseString("again", buf.String())
			if err != nil {
				t.Fatalf("unexpected error: %v\n%s", err, buf.String())
			}
			chords := back.ChordSymbols()
			if len(chords) != 1 {
				t.Fatalf("expected 1 chord symbol, got %d\n%s", len(chords), buf.String())
			}
			if got := chords[0].Data().Symbol; got != symbol {
				t.Fatalf("expected %q, got %q", symbol, got)
			}
			if !chords[0].Position().Equal(pos) {
				t.Fatalf("expected %s, got %s", pos, chords[0].Position())
			}
		})
	}
}

func TestParseQuotedChord(t *testing.T) {
	ls, err := ParseString("", "section \"A\" 4/4\n| \"N.C.\" | C \"%\"@2 |")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := layout(ls), "A(4/4)[0:0] N.C.[0:0] C[1:0] %[1:2]"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"empty":               "",
		"no section":          "| C |",
		"bad signature":       "section \"A\" 4/3\n| C |",
		"no bars":             "section \"A\" 4/4\nsection \"B\" 3/4\n| C |",
		"beat out of range":   "section \"A\" 3/4\n| C@3 |",
		"duplicate section":   "section \"A\" 4/4\n| C |\nsection \"A\" 3/4\n| D |",
		"empty section name":  "section \"\" 4/4\n| C |",
		"unterminated bar":    "section \"A\" 4/4\n| C",
		"lowercase chord":     "section \"A\" 4/4\n| c |",
		"empty quoted chord":  "section \"A\" 4/4\n| \"\" |",
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseString(name, text); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestParseBuildErrorsArePreconditions(t *testing.T) {
	_, err := ParseString("", "section \"A\" 4/4\n| C |\nsection \"A\" 3/4\n| D |")
	if !errors.Is(err, leadsheet.ErrPrecondition) {
		t.Fatalf("expected ErrPrecondition, got %v", err)
	}
}
