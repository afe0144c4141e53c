package app

import (
	"context"
	"fmt"
	"strings"

	"tableflip.dev/leadsheet/pkg/harmony"
	"tableflip.dev/leadsheet/pkg/leadsheet"
)

// AddChord adds a chord symbol at pos (clamped to the bar's time signature).
func (s *Service) AddChord(ctx context.Context, name, symbol string, pos harmony.Position) (*Result, error) {
	chord, err := harmony.ParseChord(symbol)
	if err != nil {
		return nil, err
	}
	return s.Apply(ctx, name, "add_chord", func(ls *leadsheet.LeadSheet) (string, error) {
		cs := leadsheet.NewChordSymbol(chord, pos)
		return cs.ID(), ls.AddItem(cs)
	})
}

// MoveChord moves the chord symbol ref points to.
func (s *Service) MoveChord(ctx context.Context, name, ref string, pos harmony.Position) (*Result, error) {
	return s.Apply(ctx, name, "move_chord", func(ls *leadsheet.LeadSheet) (string, error) {
		cs, err := FindChord(ls, ref)
		if err != nil {
			return "", err
		}
		return cs.ID(), ls.MoveItem(cs, pos)
	})
}

// ChangeChord replaces the chord of the chord symbol ref points to.
func (s *Service) ChangeChord(ctx context.Context, name, ref, symbol string) (*Result, error) {
	chord, err := harmony.ParseChord(symbol)
	if err != nil {
		return nil, err
	}
	return s.Apply(ctx, name, "change_chord", func(ls *leadsheet.LeadSheet) (string, error) {
		cs, err := FindChord(ls, ref)
		if err != nil {
			return "", err
		}
		return cs.ID(), ls.ChangeItem(cs, chord)
	})
}

// RemoveChord removes the chord symbol ref points to.
func (s *Service) RemoveChord(ctx context.Context, name, ref string) (*Result, error) {
	return s.Apply(ctx, name, "remove_chord", func(ls *leadsheet.LeadSheet) (string, error) {
		cs, err := FindChord(ls, ref)
		if err != nil {
			return "", err
		}
		return cs.ID(), ls.RemoveItem(cs)
	})
}

// AddSection starts a new section at bar.
func (s *Service) AddSection(ctx context.Context, name, section string, ts harmony.TimeSignature, bar int) (*Result, error) {
	return s.Apply(ctx, name, "add_section", func(ls *leadsheet.LeadSheet) (string, error) {
		sec := leadsheet.NewSection(section, ts, bar)
		return sec.ID(), ls.AddSection(sec)
	})
}

// MoveSection moves the section ref points to.
func (s *Service) MoveSection(ctx context.Context, name, ref string, bar int) (*Result, error) {
	return s.Apply(ctx, name, "move_section", func(ls *leadsheet.LeadSheet) (string, error) {
		sec, err := FindSection(ls, ref)
		if err != nil {
			return "", err
		}
		return sec.ID(), ls.MoveSection(sec, bar)
	})
}

// RemoveSection removes the section ref points to.
func (s *Service) RemoveSection(ctx context.Context, name, ref string) (*Result, error) {
	return s.Apply(ctx, name, "remove_section", func(ls *leadsheet.LeadSheet) (string, error) {
		sec, err := FindSection(ls, ref)
		if err != nil {
			return "", err
		}
		return sec.ID(), ls.RemoveSection(sec)
	})
}

// RenameSection renames the section ref points to.
func (s *Service) RenameSection(ctx context.Context, name, ref, newName string) (*Result, error) {
	return s.Apply(ctx, name, "rename_section", func(ls *leadsheet.LeadSheet) (string, error) {
		sec, err := FindSection(ls, ref)
		if err != nil {
			return "", err
		}
		return sec.ID(), ls.SetSectionName(sec, newName)
	})
}

// SetTimeSignature changes the time signature of the section ref points to.
func (s *Service) SetTimeSignature(ctx context.Context, name, ref string, ts harmony.TimeSignature) (*Result, error) {
	return s.Apply(ctx, name, "set_time_signature", func(ls *leadsheet.LeadSheet) (string, error) {
		sec, err := FindSection(ls, ref)
		if err != nil {
			return "", err
		}
		return sec.ID(), ls.SetSectionTimeSignature(sec, ts)
	})
}

func (s *Service) SetSize(ctx context.Context, name string, size int) (*Result, error) {
	return s.Apply(ctx, name, "set_size", func(ls *leadsheet.LeadSheet) (string, error) {
		return "", ls.SetSize(size)
	})
}

func (s *Service) InsertBars(ctx context.Context, name string, bar, count int) (*Result, error) {
	return s.Apply(ctx, name, "insert_bars", func(ls *leadsheet.LeadSheet) (string, error) {
		return "", ls.InsertBars(bar, count)
	})
}

func (s *Service) DeleteBars(ctx context.Context, name string, from, to int) (*Result, error) {
	return s.Apply(ctx, name, "delete_bars", func(ls *leadsheet.LeadSheet) (string, error) {
		return "", ls.DeleteBars(from, to)
	})
}

// FindChord resolves ref to a chord symbol. ref is an item id, a unique id
// prefix, or a "bar:beat" position holding exactly one chord symbol.
func FindChord(ls *leadsheet.LeadSheet, ref string) (*leadsheet.ChordSymbol, error) {
	ref = strings.TrimSpace(ref)
	if strings.Contains(ref, ":") {
		pos, err := harmony.ParsePosition(ref)
		if err != nil {
			return nil, err
		}
		var found []*leadsheet.ChordSymbol
		for _, cs := range leadsheet.ItemsOf[*leadsheet.ChordSymbol](ls, pos.Bar, pos.Bar) {
			if cs.Position().Equal(pos) {
				found = append(found, cs)
			}
		}
		return single(found, ref)
	}
	return single(byIDPrefix[*leadsheet.ChordSymbol](ls.ChordSymbols(), ref), ref)
}

// FindSection resolves ref to a section by name, id or unique id prefix.
func FindSection(ls *leadsheet.LeadSheet, ref string) (*leadsheet.Section, error) {
	ref = strings.TrimSpace(ref)
	if sec := ls.SectionByName(ref); sec != nil {
		return sec, nil
	}
	return single(byIDPrefix[*leadsheet.Section](ls.Sections(), ref), ref)
}

func byIDPrefix[T leadsheet.Item](items []T, ref string) []T {
	var found []T
	if ref == "" {
		return found
	}
	for _, it := range items {
		if it.ID() == ref {
			return []T{it}
		}
		if strings.HasPrefix(it.ID(), ref) {
			found = append(found, it)
		}
	}
	return found
}

func single[T any](found []T, ref string) (T, error) {
	var zero T
	switch len(found) {
	case 0:
		return zero, fmt.Errorf("%w: %q", ErrItemNotFound, ref)
	case 1:
		return found[0], nil
	default:
		return zero, fmt.Errorf("%w: %q matches %d items", ErrAmbiguousItem, ref, len(found))
	}
}
