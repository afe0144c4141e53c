package commands

import (
	"errors"
	"testing"

	"tableflip.dev/leadsheet/pkg/leadsheet"
	"tableflip.dev/leadsheet/pkg/store"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := New()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestEditingCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LEADSHEET_CONFIG_PATH", dir)
	t.Setenv("LEADSHEET_PATH", dir)

	steps := [][]string{
		{"new", "Autumn", "--size", "8"},
		{"chord", "add", "Dm7", "1:2", "-s", "Autumn"},
		{"chord", "add", "G7", "5", "-s", "Autumn"},
		{"section", "add", "B", "4", "--time", "3/4", "-s", "Autumn"},
		{"chord", "change", "1:2", "Dm9", "-s", "Autumn"},
		{"section", "rename", "B", "Bridge", "-s", "Autumn"},
		{"insert-bars", "0", "2", "-s", "Autumn"},
		{"size", "12", "-s", "Autumn"},
	}
	for _, args := range steps {
		if err := execute(t, args...); err != nil {
			t.Fatalf("%v: unexpected error: %v", args, err)
		}
	}

	p, err := store.Load(store.StaticConfig{Path: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap, err := p.Load("Autumn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ls, err := leadsheet.Restore(*snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ls.Size() != 12 {
		t.Fatalf("expected 12 bars, got %d", ls.Size())
	}
	bridge := ls.SectionByName("Bridge")
	if bridge == nil || bridge.Bar() != 6 {
		t.Fatalf("expected Bridge at bar 6, got %v", bridge)
	}
	chords := ls.ChordSymbols()
	if len(chords) != 2 {
		t.Fatalf("expected 2 chord symbols, got %d", len(chords))
	}
	if got := chords[0].Data().Symbol; got != "Dm9" {
		t.Fatalf("expected Dm9, got %s", got)
	}
	if got := chords[0].Position().String(); got != "[3:2]" {
		t.Fatalf("expected Dm9 at [3:2], got %s", got)
	}
	if got := chords[1].Position().Bar; got != 7 {
		t.Fatalf("expected G7 in bar 7, got %d", got)
	}
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LEADSHEET_CONFIG_PATH", dir)
	t.Setenv("LEADSHEET_PATH", dir)

	if err := execute(t, "new", "Autumn", "--size", "4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := map[string][]string{
		"missing sheet flag": {"chord", "add", "C", "0"},
		"unknown sheet":      {"chord", "add", "C", "0", "-s", "Nope"},
		"bad position":       {"chord", "add", "C", "x:y", "-s", "Autumn"},
		"bar out of range":   {"chord", "add", "C", "9", "-s", "Autumn"},
		"bad bar":            {"insert-bars", "two", "-s", "Autumn"},
		"bad time":           {"section", "add", "B", "2", "--time", "4/3", "-s", "Autumn"},
		"unknown section":    {"section", "remove", "Z", "-s", "Autumn"},
		"existing sheet":     {"new", "Autumn"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			if err := execute(t, args...); err == nil {
				t.Fatalf("expected an error for %v", args)
			}
		})
	}

	p, err := store.Load(store.StaticConfig{Path: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Load("Nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected a failed edit to create nothing, got %v", err)
	}
}
