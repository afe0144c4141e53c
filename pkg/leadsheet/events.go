package leadsheet

import (
	"fmt"

	"tableflip.dev/leadsheet/pkg/harmony"
)

// Event describes one change of a lead sheet. Events carry enough before
// and after data for a dependent view to update incrementally.
type Event interface {
	Source() *LeadSheet
	fmt.Stringer
}

type eventBase struct {
	sheet *LeadSheet
}

func (e eventBase) Source() *LeadSheet { return e.sheet }

// ItemAdded reports items inserted in the sheet.
type ItemAdded struct {
	eventBase
	Items []Item
}

func (e ItemAdded) String() string { return fmt.Sprintf("added %v", e.Items) }

// ItemRemoved reports items removed from the sheet.
type ItemRemoved struct {
	eventBase
	Items []Item
}

func (e ItemRemoved) String() string { return fmt.Sprintf("removed %v", e.Items) }

// ItemMoved reports a chord symbol position change.
type ItemMoved struct {
	eventBase
	Item   Item
	OldPos harmony.Position
	NewPos harmony.Position
}

func (e ItemMoved) String() string {
	return fmt.Sprintf("moved %s %s -> %s", itemLabel(e.Item), e.OldPos, e.NewPos)
}

// ItemChanged reports a payload change. OldData and NewData hold a
// harmony.Chord for chord symbols and a SectionData for sections.
type ItemChanged struct {
	eventBase
	Item    Item
	OldData any
	NewData any
}

func (e ItemChanged) String() string {
	return fmt.Sprintf("changed %v -> %v", e.OldData, e.NewData)
}

// ItemsBarShifted reports items whose bar moved by Shift (negative when
// bars were deleted before them).
type ItemsBarShifted struct {
	eventBase
	Items []Item
	Shift int
}

func (e ItemsBarShifted) String() string {
	return fmt.Sprintf("shifted %d items by %+d bars", len(e.Items), e.Shift)
}

// SectionMoved reports a section moved to another bar.
type SectionMoved struct {
	eventBase
	Section *Section
	OldBar  int
	NewBar  int
}

func (e SectionMoved) String() string {
	return fmt.Sprintf("moved section %q bar %d -> %d", e.Section.Name(), e.OldBar, e.NewBar)
}

// SizeChanged reports a new bar count.
type SizeChanged struct {
	eventBase
	OldSize int
	NewSize int
}

func (e SizeChanged) String() string {
	return fmt.Sprintf("size %d -> %d", e.OldSize, e.NewSize)
}

// ActionStarted opens the bracket around all events produced by one public
// mutator call. Action is the mutator name.
type ActionStarted struct {
	eventBase
	Action string
}

func (e ActionStarted) String() string { return fmt.Sprintf("start %s", e.Action) }

// ActionCompleted closes the bracket opened by ActionStarted.
type ActionCompleted struct {
	eventBase
	Action string
}

func (e ActionCompleted) String() string { return fmt.Sprintf("end %s", e.Action) }

// Listener observes a lead sheet in two phases.
//
// Authorize is called for vetoable changes before any state change; a non
// nil error refuses the change (return a *VetoError to control the reason).
// Changed is called after the change is applied and cannot refuse it.
// Neither callback may mutate the sheet.
type Listener interface {
	Authorize(ev Event) error
	Changed(ev Event)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are no-ops.
type ListenerFuncs struct {
	AuthorizeFunc func(Event) error
	ChangedFunc   func(Event)
}

func (l *ListenerFuncs) Authorize(ev Event) error {
	if l.AuthorizeFunc == nil {
		return nil
	}
	return l.AuthorizeFunc(ev)
}

func (l *ListenerFuncs) Changed(ev Event) {
	if l.ChangedFunc != nil {
		l.ChangedFunc(ev)
	}
}

func itemLabel(it Item) string {
	switch v := it.(type) {
	case *Section:
		return fmt.Sprintf("section %q", v.Name())
	case *ChordSymbol:
		return v.Data().Symbol
	default:
		return it.ID()
	}
}
