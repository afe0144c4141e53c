// Package leadsheet implements the lead sheet document: a bar-indexed,
// position-ordered collection of sections and chord symbols.
//
// Every mutator validates its arguments, asks registered listeners to
// authorize vetoable changes, applies the change, hands one undoable Edit per
// elementary change to edit listeners and finally notifies listeners. All
// events produced by one public call are bracketed by ActionStarted and
// ActionCompleted.
//
// A LeadSheet is not safe for concurrent use. Listener callbacks run
// synchronously inside the mutator and must not mutate the sheet.
package leadsheet

import (
	"fmt"
	"strings"

	"tableflip.dev/leadsheet/pkg/harmony"
)

// LeadSheet is the document. The first item is always a section at bar 0.
type LeadSheet struct {
	items         itemArray
	size          int
	listeners     []Listener
	editListeners []EditListener
	mutating      bool
}

// New creates a lead sheet of size bars starting with the initial section,
// which must be detached and at bar 0.
func New(initial *Section, size int) (*LeadSheet, error) {
	const op = "New"
	if initial == nil {
		return nil, preconditionf(op, "nil initial section")
	}
	if initial.container != nil {
		return nil, preconditionf(op, "initial section %q already belongs to a lead sheet", initial.Name())
	}
	if initial.Bar() != 0 {
		return nil, preconditionf(op, "initial section must be at bar 0, got %d", initial.Bar())
	}
	if err := validateSectionData(initial.data); err != nil {
		return nil, preconditionf(op, "%v", err)
	}
	if size < 1 {
		return nil, preconditionf(op, "size must be >= 1, got %d", size)
	}
	ls := &LeadSheet{size: size}
	initial.pos = harmony.Position{}
	initial.container = ls
	ls.items.insertOrdered(initial)
	return ls, nil
}

// NewEmpty creates a lead sheet whose only item is an initial section.
func NewEmpty(name string, ts harmony.TimeSignature, size int) (*LeadSheet, error) {
	return New(NewSection(name, ts, 0), size)
}

// AddListener registers l. Registering the same listener twice is a no-op.
func (ls *LeadSheet) AddListener(l Listener) {
	for _, cur := range ls.listeners {
		if cur == l {
			return
		}
	}
	ls.listeners = append(ls.listeners, l)
}

func (ls *LeadSheet) RemoveListener(l Listener) {
	for i, cur := range ls.listeners {
		if cur == l {
			ls.listeners = append(ls.listeners[:i:i], ls.listeners[i+1:]...)
			return
		}
	}
}

// AddEditListener registers l to receive one Edit per elementary change.
func (ls *LeadSheet) AddEditListener(l EditListener) {
	for _, cur := range ls.editListeners {
		if cur == l {
			return
		}
	}
	ls.editListeners = append(ls.editListeners, l)
}

func (ls *LeadSheet) RemoveEditListener(l EditListener) {
	for i, cur := range ls.editListeners {
		if cur == l {
			ls.editListeners = append(ls.editListeners[:i:i], ls.editListeners[i+1:]...)
			return
		}
	}
}

// Size is the number of bars.
func (ls *LeadSheet) Size() int { return ls.size }

// Items returns a copy of all items in order.
func (ls *LeadSheet) Items() []Item {
	return ls.items.all()
}

// ItemsInRange returns a copy of the items whose bar is in [fromBar, toBar].
func (ls *LeadSheet) ItemsInRange(fromBar, toBar int) []Item {
	from := ls.items.indexOfItemAtOrAfterBar(fromBar)
	if from < 0 || toBar < fromBar {
		return []Item{}
	}
	to := ls.items.indexOfItemAtOrAfterBar(toBar + 1)
	if to < 0 {
		to = ls.items.len()
	}
	return ls.items.slice(from, to)
}

// ItemsOf returns the items of type T whose bar is in [fromBar, toBar].
func ItemsOf[T Item](ls *LeadSheet, fromBar, toBar int) []T {
	out := []T{}
	for _, it := range ls.ItemsInRange(fromBar, toBar) {
		if v, ok := it.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// Sections returns all sections in bar order.
func (ls *LeadSheet) Sections() []*Section {
	return ItemsOf[*Section](ls, 0, ls.size-1)
}

// ChordSymbols returns all chord symbols in position order.
func (ls *LeadSheet) ChordSymbols() []*ChordSymbol {
	return ItemsOf[*ChordSymbol](ls, 0, ls.size-1)
}

// SectionItems returns the items between s and the next section, s
// excluded.
func (ls *LeadSheet) SectionItems(s *Section) []Item {
	from, to, err := ls.SectionRange(s)
	if err != nil {
		return []Item{}
	}
	items := ls.ItemsInRange(from, to)
	if len(items) > 0 && items[0] == Item(s) {
		items = items[1:]
	}
	return items
}

// Section returns the section governing bar, nil if bar is out of range.
func (ls *LeadSheet) Section(bar int) *Section {
	if bar < 0 || bar >= ls.size {
		return nil
	}
	var found *Section
	for _, it := range ls.items.items {
		if it.Position().Bar > bar {
			break
		}
		if s, ok := it.(*Section); ok {
			found = s
		}
	}
	return found
}

// SectionByName returns the section named name, or nil.
func (ls *LeadSheet) SectionByName(name string) *Section {
	for _, it := range ls.items.items {
		if s, ok := it.(*Section); ok && s.Name() == name {
			return s
		}
	}
	return nil
}

// SectionRange returns the first and last bar of s. The last bar is the bar
// before the next section, or the last bar of the sheet.
func (ls *LeadSheet) SectionRange(s *Section) (from, to int, err error) {
	if s == nil || !ls.items.contains(s) {
		return 0, 0, preconditionf("SectionRange", "section not in this lead sheet")
	}
	to = ls.size - 1
	if next := ls.nextSection(s); next != nil {
		to = next.Bar() - 1
	}
	return s.Bar(), to, nil
}

// Contains reports whether it belongs to the sheet.
func (ls *LeadSheet) Contains(it Item) bool {
	return it != nil && ls.items.contains(it)
}

// Index returns the position of it in Items(), or -1.
func (ls *LeadSheet) Index(it Item) int {
	return ls.items.indexOf(it)
}

// ItemByID returns the item with the given identity, or nil.
func (ls *LeadSheet) ItemByID(id string) Item {
	for _, it := range ls.items.items {
		if it.ID() == id {
			return it
		}
	}
	return nil
}

func (ls *LeadSheet) nextSection(s *Section) *Section {
	i := ls.items.indexOf(s)
	for j := i + 1; i >= 0 && j < ls.items.len(); j++ {
		if next, ok := ls.items.at(j).(*Section); ok {
			return next
		}
	}
	return nil
}

func (ls *LeadSheet) sectionAt(bar int) *Section {
	s := ls.Section(bar)
	if s != nil && s.Bar() == bar {
		return s
	}
	return nil
}

func (ls *LeadSheet) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "LeadSheet size=%d", ls.size)
	for _, it := range ls.items.items {
		fmt.Fprintf(&b, "\n  %v", it)
	}
	return b.String()
}

func validateSectionData(d SectionData) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("empty section name")
	}
	return d.TimeSignature.Validate()
}
