package leadsheet

import (
	"fmt"

	"github.com/google/uuid"

	"tableflip.dev/leadsheet/pkg/harmony"
)

// Item is a positioned element of a lead sheet: a *Section or a
// *ChordSymbol. Items are compared by identity, never by value.
type Item interface {
	// ID is a stable identity, kept across persistence.
	ID() string
	Position() harmony.Position
	// IsBarSingle is true for items a bar may host only once and that sort
	// first at their position (sections).
	IsBarSingle() bool
	// Container is the lead sheet the item belongs to, nil when detached.
	Container() *LeadSheet

	base() *itemBase
}

type itemBase struct {
	id        string
	pos       harmony.Position
	container *LeadSheet
}

func (b *itemBase) ID() string                 { return b.id }
func (b *itemBase) Position() harmony.Position { return b.pos }
func (b *itemBase) Container() *LeadSheet      { return b.container }
func (b *itemBase) base() *itemBase            { return b }

// SectionData is the payload of a section.
type SectionData struct {
	Name          string                `json:"name"`
	TimeSignature harmony.TimeSignature `json:"timeSignature"`
}

func (d SectionData) String() string {
	return fmt.Sprintf("%s (%s)", d.Name, d.TimeSignature)
}

// Section starts a named span of bars with a fixed time signature. A
// section always sits at beat 0 of its bar.
type Section struct {
	itemBase
	data SectionData
}

// NewSection creates a detached section at bar.
func NewSection(name string, ts harmony.TimeSignature, bar int) *Section {
	return newSectionWithID(newID(), SectionData{Name: name, TimeSignature: ts}, bar)
}

func newSectionWithID(id string, data SectionData, bar int) *Section {
	return &Section{
		itemBase: itemBase{id: id, pos: harmony.Position{Bar: bar}},
		data:     data,
	}
}

func (s *Section) IsBarSingle() bool { return true }

// Data returns the section payload.
func (s *Section) Data() SectionData { return s.data }

func (s *Section) Name() string { return s.data.Name }

func (s *Section) TimeSignature() harmony.TimeSignature { return s.data.TimeSignature }

// Bar is the first bar of the section.
func (s *Section) Bar() int { return s.pos.Bar }

func (s *Section) String() string {
	return fmt.Sprintf("Section %s %s", s.data, s.pos)
}

// ChordSymbol is a chord at a bar/beat position.
type ChordSymbol struct {
	itemBase
	data harmony.Chord
}

// NewChordSymbol creates a detached chord symbol at pos.
func NewChordSymbol(chord harmony.Chord, pos harmony.Position) *ChordSymbol {
	return newChordSymbolWithID(newID(), chord, pos)
}

func newChordSymbolWithID(id string, chord harmony.Chord, pos harmony.Position) *ChordSymbol {
	return &ChordSymbol{
		itemBase: itemBase{id: id, pos: pos},
		data:     chord,
	}
}

func (c *ChordSymbol) IsBarSingle() bool { return false }

// Data returns the chord payload.
func (c *ChordSymbol) Data() harmony.Chord { return c.data }

func (c *ChordSymbol) String() string {
	return fmt.Sprintf("%s %s", c.data, c.pos)
}

func newID() string {
	return uuid.NewString()
}
