package leadsheet

import (
	"testing"

	"tableflip.dev/leadsheet/pkg/harmony"
)

func chordAt(symbol string, bar int, beat float64) *ChordSymbol {
	return NewChordSymbol(harmony.MustChord(symbol), harmony.Position{Bar: bar, Beat: beat})
}

func TestItemArrayInsertOrdered(t *testing.T) {
	var a itemArray
	c1 := chordAt("C", 2, 0)
	c2 := chordAt("D", 1, 1)
	c3 := chordAt("E", 2, 0)
	s := NewSection("B", harmony.FourFour, 2)
	c4 := chordAt("F", 0, 3)

	for _, it := range []Item{c1, c2, c3, s, c4} {
		a.insertOrdered(it)
	}

	want := []Item{c4, c2, s, c1, c3}
	if a.len() != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), a.len())
	}
	for i, it := range want {
		if a.at(i) != it {
			t.Fatalf("index %d: expected %v, got %v", i, it, a.at(i))
		}
	}
}

func TestItemArrayRemoveByIdentity(t *testing.T) {
	var a itemArray
	c1 := chordAt("C", 0, 0)
	c2 := chordAt("C", 0, 0)
	a.insertOrdered(c1)
	a.insertOrdered(c2)

	if got := a.remove(c2); got != 1 {
		t.Fatalf("expected removal at index 1, got %d", got)
	}
	if a.at(0) != Item(c1) {
		t.Fatalf("expected the other equal chord to stay")
	}
	if got := a.remove(c2); got != -1 {
		t.Fatalf("expected -1 removing a missing item, got %d", got)
	}
}

func TestItemArrayIndexOfItemAtOrAfterBar(t *testing.T) {
	var a itemArray
	for _, it := range []Item{chordAt("C", 0, 0), chordAt("D", 2, 1), chordAt("E", 4, 0)} {
		a.insertOrdered(it)
	}
	tests := []struct {
		bar  int
		want int
	}{
		{bar: 0, want: 0},
		{bar: 1, want: 1},
		{bar: 2, want: 1},
		{bar: 3, want: 2},
		{bar: 5, want: -1},
	}
	for _, tt := range tests {
		if got := a.indexOfItemAtOrAfterBar(tt.bar); got != tt.want {
			t.Fatalf("bar %d: expected %d, got %d", tt.bar, tt.want, got)
		}
	}
}

func TestItemArraySliceIsIndependent(t *testing.T) {
	var a itemArray
	a.insertOrdered(chordAt("C", 0, 0))
	a.insertOrdered(chordAt("D", 1, 0))

	out := a.all()
	out[0] = nil
	if a.at(0) == nil {
		t.Fatalf("expected the copy not to alias the store")
	}
}

func TestItemArrayInsertAt(t *testing.T) {
	var a itemArray
	c1 := chordAt("C", 0, 0)
	c2 := chordAt("D", 0, 0)
	c3 := chordAt("E", 0, 0)
	a.insertOrdered(c1)
	a.insertOrdered(c2)
	a.insertAt(c3, 1)

	want := []Item{c1, c3, c2}
	for i, it := range want {
		if a.at(i) != it {
			t.Fatalf("index %d: expected %v, got %v", i, it, a.at(i))
		}
	}
}
