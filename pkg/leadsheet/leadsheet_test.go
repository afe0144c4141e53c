package leadsheet

import (
	"errors"
	"testing"

	"tableflip.dev/leadsheet/pkg/harmony"
)

func newSheet(t *testing.T, size int) *LeadSheet {
	t.Helper()
	ls, err := NewEmpty("A", harmony.FourFour, size)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return ls
}

func addChord(t *testing.T, ls *LeadSheet, symbol string, bar int, beat float64) *ChordSymbol {
	t.Helper()
	cs := chordAt(symbol, bar, beat)
	if err := ls.AddItem(cs); err != nil {
		t.Fatalf("AddItem(%s): unexpected error: %v", symbol, err)
	}
	return cs
}

func addSection(t *testing.T, ls *LeadSheet, name string, ts harmony.TimeSignature, bar int) *Section {
	t.Helper()
	s := NewSection(name, ts, bar)
	if err := ls.AddSection(s); err != nil {
		t.Fatalf("AddSection(%s): unexpected error: %v", name, err)
	}
	return s
}

// fixture is an 8 bar sheet: A (4/4) at 0 with C at [0:0] and Dm7 at
// [1:2], B (3/4) at 4 with G7 at [5:1].
type fixture struct {
	ls       *LeadSheet
	a, b     *Section
	c, dm, g *ChordSymbol
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ls := newSheet(t, 8)
	f := &fixture{ls: ls, a: ls.Sections()[0]}
	f.c = addChord(t, ls, "C", 0, 0)
	f.dm = addChord(t, ls, "Dm7", 1, 2)
	f.b = addSection(t, ls, "B", harmony.ThreeFour, 4)
	f.g = addChord(t, ls, "G7", 5, 1)
	return f
}

// checkInvariants fails when any document invariant is broken.
func checkInvariants(t *testing.T, ls *LeadSheet) {
	t.Helper()
	items := ls.Items()
	if len(items) == 0 {
		t.Fatalf("expected at least the initial section")
	}
	if s, ok := items[0].(*Section); !ok || s.Bar() != 0 {
		t.Fatalf("expected a section at bar 0 first, got %v", items[0])
	}
	names := map[string]bool{}
	bars := map[int]bool{}
	for i, it := range items {
		if it.Container() != ls {
			t.Fatalf("%v: expected the sheet as container", it)
		}
		pos := it.Position()
		if pos.Bar < 0 || pos.Bar >= ls.Size() {
			t.Fatalf("%v: bar out of [0, %d)", it, ls.Size())
		}
		if i > 0 && sortsBefore(it, items[i-1]) {
			t.Fatalf("%v sorted after %v\n%s", it, items[i-1], ls)
		}
		switch v := it.(type) {
		case *Section:
			if pos.Beat != 0 {
				t.Fatalf("%v: expected beat 0", v)
			}
			if names[v.Name()] {
				t.Fatalf("duplicate section name %q", v.Name())
			}
			if bars[pos.Bar] {
				t.Fatalf("two sections at bar %d", pos.Bar)
			}
			names[v.Name()] = true
			bars[pos.Bar] = true
		case *ChordSymbol:
			ts := ls.Section(pos.Bar).TimeSignature()
			if pos.Beat >= ts.NaturalBeatCount() {
				t.Fatalf("%v: beat not below %v in %s", v, ts.NaturalBeatCount(), ts)
			}
		}
	}
}

func TestNew(t *testing.T) {
	attached := NewSection("X", harmony.FourFour, 0)
	if _, err := New(attached, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		initial *Section
		size    int
	}{
		{name: "nil section", initial: nil, size: 4},
		{name: "not at bar 0", initial: NewSection("A", harmony.FourFour, 1), size: 4},
		{name: "empty name", initial: NewSection(" ", harmony.FourFour, 0), size: 4},
		{name: "bad time signature", initial: NewSection("A", harmony.TimeSignature{Upper: 4, Lower: 3}, 0), size: 4},
		{name: "zero size", initial: NewSection("A", harmony.FourFour, 0), size: 0},
		{name: "attached section", initial: attached, size: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.initial, tt.size)
			if !errors.Is(err, ErrPrecondition) {
				t.Fatalf("expected ErrPrecondition, got %v", err)
			}
		})
	}
}

func TestNewEmpty(t *testing.T) {
	ls := newSheet(t, 16)
	if ls.Size() != 16 {
		t.Fatalf("expected size 16, got %d", ls.Size())
	}
	items := ls.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	s := items[0].(*Section)
	if s.Name() != "A" || s.TimeSignature() != harmony.FourFour || s.Container() != ls {
		t.Fatalf("unexpected initial section %v", s)
	}
	checkInvariants(t, ls)
}

func TestSectionsSortBeforeChordsAtSamePosition(t *testing.T) {
	ls := newSheet(t, 4)
	c := addChord(t, ls, "C", 2, 0)
	s := addSection(t, ls, "B", harmony.FourFour, 2)

	if ls.Index(s) != 2 || ls.Index(c) != 3 {
		t.Fatalf("expected section before chord, got\n%s", ls)
	}
	checkInvariants(t, ls)
}

func TestQueries(t *testing.T) {
	f := newFixture(t)
	ls := f.ls

	if got := ls.Section(0); got != f.a {
		t.Fatalf("Section(0): expected A, got %v", got)
	}
	if got := ls.Section(3); got != f.a {
		t.Fatalf("Section(3): expected A, got %v", got)
	}
	if got := ls.Section(7); got != f.b {
		t.Fatalf("Section(7): expected B, got %v", got)
	}
	if got := ls.Section(8); got != nil {
		t.Fatalf("Section(8): expected nil, got %v", got)
	}

	from, to, err := ls.SectionRange(f.a)
	if err != nil || from != 0 || to != 3 {
		t.Fatalf("SectionRange(A): expected [0, 3], got [%d, %d] %v", from, to, err)
	}
	from, to, err = ls.SectionRange(f.b)
	if err != nil || from != 4 || to != 7 {
		t.Fatalf("SectionRange(B): expected [4, 7], got [%d, %d] %v", from, to, err)
	}
	if _, _, err := ls.SectionRange(NewSection("X", harmony.FourFour, 1)); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected ErrPrecondition for a foreign section, got %v", err)
	}

	if got := ls.SectionItems(f.a); len(got) != 2 || got[0] != Item(f.c) || got[1] != Item(f.dm) {
		t.Fatalf("SectionItems(A): unexpected %v", got)
	}
	if got := ls.SectionItems(f.b); len(got) != 1 || got[0] != Item(f.g) {
		t.Fatalf("SectionItems(B): unexpected %v", got)
	}

	if got := ls.ItemsInRange(1, 4); len(got) != 2 || got[0] != Item(f.dm) || got[1] != Item(f.b) {
		t.Fatalf("ItemsInRange(1, 4): unexpected %v", got)
	}
	if got := ls.ItemsInRange(6, 7); len(got) != 0 {
		t.Fatalf("ItemsInRange(6, 7): expected none, got %v", got)
	}
	if got := ls.ItemsInRange(3, 1); len(got) != 0 {
		t.Fatalf("ItemsInRange(3, 1): expected none, got %v", got)
	}

	if got := ls.SectionByName("B"); got != f.b {
		t.Fatalf("SectionByName(B): got %v", got)
	}
	if got := ls.SectionByName("Z"); got != nil {
		t.Fatalf("SectionByName(Z): expected nil, got %v", got)
	}
	if got := ls.ItemByID(f.g.ID()); got != Item(f.g) {
		t.Fatalf("ItemByID: got %v", got)
	}
	if got := ItemsOf[*ChordSymbol](ls, 0, 7); len(got) != 3 {
		t.Fatalf("ItemsOf: expected 3 chord symbols, got %d", len(got))
	}
	if got := ls.Sections(); len(got) != 2 {
		t.Fatalf("Sections: expected 2, got %d", len(got))
	}
	if !ls.Contains(f.dm) || ls.Contains(chordAt("X", 0, 0)) || ls.Contains(nil) {
		t.Fatalf("Contains: unexpected result")
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	f := newFixture(t)
	items := f.ls.Items()
	items[0] = nil
	if f.ls.Items()[0] == nil {
		t.Fatalf("expected Items to return an independent copy")
	}
}
