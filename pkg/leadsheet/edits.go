package leadsheet

import (
	"fmt"

	"tableflip.dev/leadsheet/pkg/harmony"
)

// Edit is an undoable elementary change. Undo and Redo re-apply the
// recorded before/after state and fire the matching change event; they do
// not ask listeners for authorization.
type Edit interface {
	Name() string
	Undo() error
	Redo() error
}

// EditListener receives the edits produced by a lead sheet.
type EditListener interface {
	UndoableEditHappened(e Edit)
}

// EditListenerFunc adapts a function to EditListener.
type EditListenerFunc func(Edit)

func (f EditListenerFunc) UndoableEditHappened(e Edit) { f(e) }

// primitive is an Edit the sheet knows how to apply in either direction.
type primitive interface {
	Edit
	apply(undo bool) Event
}

// replay applies p outside of a mutator call, i.e. from Undo or Redo.
func (ls *LeadSheet) replay(p primitive, undo bool) error {
	if err := ls.enter(); err != nil {
		return err
	}
	defer ls.leave()
	ls.fireChanged(p.apply(undo))
	return nil
}

// insertEdit adds items at recorded positions.
type insertEdit struct {
	sheet     *LeadSheet
	items     []Item
	positions []harmony.Position
}

func (e *insertEdit) Name() string { return fmt.Sprintf("add %s", labels(e.items)) }
func (e *insertEdit) Undo() error  { return e.sheet.replay(e, true) }
func (e *insertEdit) Redo() error  { return e.sheet.replay(e, false) }

func (e *insertEdit) apply(undo bool) Event {
	if undo {
		return e.sheet.detach(e.items)
	}
	return e.sheet.attach(e.items, e.positions)
}

// removeEdit removes items; undo puts them back at their former indexes.
type removeEdit struct {
	sheet     *LeadSheet
	items     []Item
	positions []harmony.Position
	indexes   []int
}

// newRemoveEdit records items, which must be given in store order.
func newRemoveEdit(ls *LeadSheet, items ...Item) *removeEdit {
	indexes := make([]int, len(items))
	for i, it := range items {
		indexes[i] = ls.items.indexOf(it)
	}
	return &removeEdit{sheet: ls, items: items, positions: positionsOf(items), indexes: indexes}
}

func (e *removeEdit) Name() string { return fmt.Sprintf("remove %s", labels(e.items)) }
func (e *removeEdit) Undo() error  { return e.sheet.replay(e, true) }
func (e *removeEdit) Redo() error  { return e.sheet.replay(e, false) }

func (e *removeEdit) apply(undo bool) Event {
	if undo {
		return e.sheet.reattach(e.items, e.positions, e.indexes)
	}
	return e.sheet.detach(e.items)
}

// moveEdit changes the position of a chord symbol. index is where the item
// was before the move, so undo restores the exact former order.
type moveEdit struct {
	sheet    *LeadSheet
	item     Item
	from, to harmony.Position
	index    int
}

func newMoveEdit(ls *LeadSheet, it Item, to harmony.Position) *moveEdit {
	return &moveEdit{sheet: ls, item: it, from: it.Position(), to: to, index: ls.items.indexOf(it)}
}

func (e *moveEdit) Name() string { return fmt.Sprintf("move %s", itemLabel(e.item)) }
func (e *moveEdit) Undo() error  { return e.sheet.replay(e, true) }
func (e *moveEdit) Redo() error  { return e.sheet.replay(e, false) }

func (e *moveEdit) apply(undo bool) Event {
	if undo {
		e.sheet.repositionAt(e.item, e.from, e.index)
		return ItemMoved{eventBase: eventBase{e.sheet}, Item: e.item, OldPos: e.to, NewPos: e.from}
	}
	e.sheet.reposition(e.item, e.to)
	return ItemMoved{eventBase: eventBase{e.sheet}, Item: e.item, OldPos: e.from, NewPos: e.to}
}

// sectionMoveEdit moves a section to another bar.
type sectionMoveEdit struct {
	sheet    *LeadSheet
	section  *Section
	from, to int
	index    int
}

func newSectionMoveEdit(ls *LeadSheet, s *Section, to int) *sectionMoveEdit {
	return &sectionMoveEdit{sheet: ls, section: s, from: s.Bar(), to: to, index: ls.items.indexOf(s)}
}

func (e *sectionMoveEdit) Name() string { return fmt.Sprintf("move section %q", e.section.Name()) }
func (e *sectionMoveEdit) Undo() error  { return e.sheet.replay(e, true) }
func (e *sectionMoveEdit) Redo() error  { return e.sheet.replay(e, false) }

func (e *sectionMoveEdit) apply(undo bool) Event {
	if undo {
		e.sheet.repositionAt(e.section, harmony.Position{Bar: e.from}, e.index)
		return SectionMoved{eventBase: eventBase{e.sheet}, Section: e.section, OldBar: e.to, NewBar: e.from}
	}
	e.sheet.reposition(e.section, harmony.Position{Bar: e.to})
	return SectionMoved{eventBase: eventBase{e.sheet}, Section: e.section, OldBar: e.from, NewBar: e.to}
}

// changeEdit replaces an item payload: a harmony.Chord for chord symbols,
// a SectionData for sections.
type changeEdit struct {
	sheet    *LeadSheet
	item     Item
	from, to any
}

func (e *changeEdit) Name() string { return fmt.Sprintf("change %s", itemLabel(e.item)) }
func (e *changeEdit) Undo() error  { return e.sheet.replay(e, true) }
func (e *changeEdit) Redo() error  { return e.sheet.replay(e, false) }

func (e *changeEdit) apply(undo bool) Event {
	from, to := e.from, e.to
	if undo {
		from, to = to, from
	}
	switch v := e.item.(type) {
	case *ChordSymbol:
		v.data = to.(harmony.Chord)
	case *Section:
		v.data = to.(SectionData)
	default:
		assert(false, "change of unknown item type %T", e.item)
	}
	return ItemChanged{eventBase: eventBase{e.sheet}, Item: e.item, OldData: from, NewData: to}
}

// shiftEdit moves a tail of items by a number of bars. The shifted items
// stay contiguous and ordered, so the store is not re-sorted.
type shiftEdit struct {
	sheet *LeadSheet
	items []Item
	shift int
}

func (e *shiftEdit) Name() string { return fmt.Sprintf("shift bars %+d", e.shift) }
func (e *shiftEdit) Undo() error  { return e.sheet.replay(e, true) }
func (e *shiftEdit) Redo() error  { return e.sheet.replay(e, false) }

func (e *shiftEdit) apply(undo bool) Event {
	shift := e.shift
	if undo {
		shift = -shift
	}
	for _, it := range e.items {
		b := it.base()
		b.pos.Bar += shift
		assert(b.pos.Bar >= 0, "shift moved %s before bar 0", itemLabel(it))
	}
	items := make([]Item, len(e.items))
	copy(items, e.items)
	return ItemsBarShifted{eventBase: eventBase{e.sheet}, Items: items, Shift: shift}
}

// sizeEdit changes the bar count.
type sizeEdit struct {
	sheet    *LeadSheet
	from, to int
}

func (e *sizeEdit) Name() string { return fmt.Sprintf("resize %d -> %d", e.from, e.to) }
func (e *sizeEdit) Undo() error  { return e.sheet.replay(e, true) }
func (e *sizeEdit) Redo() error  { return e.sheet.replay(e, false) }

func (e *sizeEdit) apply(undo bool) Event {
	from, to := e.from, e.to
	if undo {
		from, to = to, from
	}
	e.sheet.size = to
	return SizeChanged{eventBase: eventBase{e.sheet}, OldSize: from, NewSize: to}
}

// attach inserts items at positions and makes the sheet their container.
func (ls *LeadSheet) attach(items []Item, positions []harmony.Position) Event {
	for i, it := range items {
		b := it.base()
		assert(b.container == nil || b.container == ls, "%s belongs to another lead sheet", itemLabel(it))
		assert(!ls.items.contains(it), "%s inserted twice", itemLabel(it))
		b.pos = positions[i]
		b.container = ls
		ls.items.insertOrdered(it)
	}
	return ItemAdded{eventBase: eventBase{ls}, Items: cloneItems(items)}
}

// reattach puts back removed items at their former indexes, given in
// ascending order.
func (ls *LeadSheet) reattach(items []Item, positions []harmony.Position, indexes []int) Event {
	for i, it := range items {
		b := it.base()
		assert(b.container == nil, "%s already attached", itemLabel(it))
		b.pos = positions[i]
		b.container = ls
		ls.items.insertAt(it, indexes[i])
	}
	return ItemAdded{eventBase: eventBase{ls}, Items: cloneItems(items)}
}

// detach removes items and clears their container.
func (ls *LeadSheet) detach(items []Item) Event {
	for _, it := range items {
		assert(ls.items.remove(it) >= 0, "%s not in lead sheet", itemLabel(it))
		it.base().container = nil
	}
	return ItemRemoved{eventBase: eventBase{ls}, Items: cloneItems(items)}
}

// reposition moves it to pos and restores ordering.
func (ls *LeadSheet) reposition(it Item, pos harmony.Position) {
	assert(ls.items.remove(it) >= 0, "%s not in lead sheet", itemLabel(it))
	it.base().pos = pos
	ls.items.insertOrdered(it)
}

// repositionAt moves it to pos and puts it at index i.
func (ls *LeadSheet) repositionAt(it Item, pos harmony.Position, i int) {
	assert(ls.items.remove(it) >= 0, "%s not in lead sheet", itemLabel(it))
	it.base().pos = pos
	ls.items.insertAt(it, i)
}

func positionsOf(items []Item) []harmony.Position {
	out := make([]harmony.Position, len(items))
	for i, it := range items {
		out[i] = it.Position()
	}
	return out
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

func labels(items []Item) string {
	if len(items) == 1 {
		return itemLabel(items[0])
	}
	return fmt.Sprintf("%d items", len(items))
}
