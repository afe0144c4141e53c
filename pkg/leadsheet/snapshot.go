package leadsheet

import (
	"fmt"

	"tableflip.dev/leadsheet/pkg/harmony"
)

// Item kinds used in snapshots.
const (
	KindSection = "section"
	KindChord   = "chord"
)

// ItemRecord is the persisted form of one item.
type ItemRecord struct {
	ID       string           `json:"id"`
	Kind     string           `json:"kind"`
	Position harmony.Position `json:"position"`
	Section  *SectionData     `json:"section,omitempty"`
	Chord    *harmony.Chord   `json:"chord,omitempty"`
}

// Snapshot is the flat persisted form of a lead sheet: its size and its
// items in order. The first item must be a section at bar 0.
type Snapshot struct {
	Size  int          `json:"size"`
	Items []ItemRecord `json:"items"`
}

// Snapshot captures the current state. The result shares nothing with the
// sheet.
func (ls *LeadSheet) Snapshot() Snapshot {
	snap := Snapshot{Size: ls.size, Items: make([]ItemRecord, 0, ls.items.len())}
	for _, it := range ls.items.items {
		rec := ItemRecord{ID: it.ID(), Position: it.Position()}
		switch v := it.(type) {
		case *Section:
			data := v.data
			rec.Kind = KindSection
			rec.Section = &data
		case *ChordSymbol:
			chord := v.data
			rec.Kind = KindChord
			rec.Chord = &chord
		}
		snap.Items = append(snap.Items, rec)
	}
	return snap
}

// Restore rebuilds a lead sheet by replaying AddSection and AddItem in
// snapshot order, so every invariant is checked again.
func Restore(snap Snapshot) (*LeadSheet, error) {
	if len(snap.Items) == 0 {
		return nil, preconditionf("Restore", "snapshot has no items")
	}
	first := snap.Items[0]
	if first.Kind != KindSection || first.Section == nil || first.Position.Bar != 0 {
		return nil, preconditionf("Restore", "first item must be a section at bar 0")
	}
	ls, err := New(newSectionWithID(recordID(first), *first.Section, 0), snap.Size)
	if err != nil {
		return nil, err
	}
	for i, rec := range snap.Items[1:] {
		if err := ls.restoreItem(rec); err != nil {
			return nil, fmt.Errorf("leadsheet: restore item %d: %w", i+1, err)
		}
	}
	return ls, nil
}

func (ls *LeadSheet) restoreItem(rec ItemRecord) error {
	switch rec.Kind {
	case KindSection:
		if rec.Section == nil {
			return preconditionf("Restore", "section record without data")
		}
		return ls.AddSection(newSectionWithID(recordID(rec), *rec.Section, rec.Position.Bar))
	case KindChord:
		if rec.Chord == nil {
			return preconditionf("Restore", "chord record without data")
		}
		return ls.AddItem(newChordSymbolWithID(recordID(rec), *rec.Chord, rec.Position))
	default:
		return preconditionf("Restore", "unknown item kind %q", rec.Kind)
	}
}

func recordID(rec ItemRecord) string {
	if rec.ID != "" {
		return rec.ID
	}
	return newID()
}
