package leadsheet

import (
	"errors"
	"fmt"

	"tableflip.dev/leadsheet/pkg/harmony"
)

// AddItem inserts a detached chord symbol. Its position is clamped to the
// time signature governing its bar. AddItem is not vetoable.
func (ls *LeadSheet) AddItem(it Item) error {
	const op = "AddItem"
	if err := ls.enter(); err != nil {
		return err
	}
	defer ls.leave()

	cs, err := ls.checkDetachedChord(op, it)
	if err != nil {
		return err
	}
	pos := cs.Position()
	if err := pos.Validate(); err != nil {
		return preconditionf(op, "%v", err)
	}
	if pos.Bar >= ls.size {
		return preconditionf(op, "bar %d out of range [0, %d)", pos.Bar, ls.size)
	}
	pos = pos.ClampTo(ls.Section(pos.Bar).TimeSignature())

	ls.actionStarted(op)
	defer ls.actionCompleted(op)
	ls.perform(&insertEdit{sheet: ls, items: []Item{cs}, positions: []harmony.Position{pos}})
	return nil
}

// AddSection inserts a detached section at its bar (beat 0). Chord symbols
// of the new section's span are rescaled to its time signature. Vetoable.
func (ls *LeadSheet) AddSection(s *Section) error {
	const op = "AddSection"
	if err := ls.enter(); err != nil {
		return err
	}
	defer ls.leave()

	if s == nil {
		return preconditionf(op, "nil section")
	}
	if s.container != nil {
		return preconditionf(op, "section %q already belongs to a lead sheet", s.Name())
	}
	if err := validateSectionData(s.data); err != nil {
		return preconditionf(op, "%v", err)
	}
	bar := s.Bar()
	switch {
	case bar < 0 || bar >= ls.size:
		return preconditionf(op, "bar %d out of range [0, %d)", bar, ls.size)
	case bar == 0:
		return preconditionf(op, "bar 0 is reserved for the initial section")
	case ls.SectionByName(s.Name()) != nil:
		return preconditionf(op, "a section named %q already exists", s.Name())
	case ls.sectionAt(bar) != nil:
		return preconditionf(op, "bar %d already has section %q", bar, ls.sectionAt(bar).Name())
	}
	if err := ls.authorize(ItemAdded{eventBase: eventBase{ls}, Items: []Item{s}}); err != nil {
		return err
	}

	ls.actionStarted(op)
	defer ls.actionCompleted(op)
	before := ls.governingSignatures()
	ls.performRescaling(&insertEdit{
		sheet:     ls,
		items:     []Item{s},
		positions: []harmony.Position{{Bar: bar}},
	}, before)
	return nil
}

// RemoveSection removes a section other than the initial one. Its chord
// symbols are rescaled to the section now governing them. Vetoable.
func (ls *LeadSheet) RemoveSection(s *Section) error {
	const op = "RemoveSection"
	if err := ls.enter(); err != nil {
		return err
	}
	defer ls.leave()

	if err := ls.checkSection(op, s); err != nil {
		return err
	}
	if s.Bar() == 0 {
		return preconditionf(op, "the initial section can not be removed")
	}
	if err := ls.authorize(ItemRemoved{eventBase: eventBase{ls}, Items: []Item{s}}); err != nil {
		return err
	}

	ls.actionStarted(op)
	defer ls.actionCompleted(op)
	ls.performRescaling(newRemoveEdit(ls, s), ls.governingSignatures())
	return nil
}

// MoveSection moves a section other than the initial one to newBar, which
// must be free of sections and in [1, Size()). Chord symbols whose governing
// section changes are rescaled. Moving to the current bar is a no-op.
// Vetoable.
func (ls *LeadSheet) MoveSection(s *Section, newBar int) error {
	const op = "MoveSection"
	if err := ls.enter(); err != nil {
		return err
	}
	defer ls.leave()

	if err := ls.checkSection(op, s); err != nil {
		return err
	}
	oldBar := s.Bar()
	switch {
	case oldBar == 0:
		return preconditionf(op, "the initial section can not be moved")
	case newBar < 1 || newBar >= ls.size:
		return preconditionf(op, "bar %d out of range [1, %d)", newBar, ls.size)
	case newBar == oldBar:
		return nil
	case ls.sectionAt(newBar) != nil:
		return preconditionf(op, "bar %d already has section %q", newBar, ls.sectionAt(newBar).Name())
	}
	if err := ls.authorize(SectionMoved{eventBase: eventBase{ls}, Section: s, OldBar: oldBar, NewBar: newBar}); err != nil {
		return err
	}

	ls.actionStarted(op)
	defer ls.actionCompleted(op)
	ls.performRescaling(newSectionMoveEdit(ls, s, newBar), ls.governingSignatures())
	return nil
}

// SetSectionName renames a section. Names are unique. Vetoable.
func (ls *LeadSheet) SetSectionName(s *Section, name string) error {
	const op = "SetSectionName"
	if err := ls.enter(); err != nil {
		return err
	}
	defer ls.leave()

	if err := ls.checkSection(op, s); err != nil {
		return err
	}
	data := s.data
	data.Name = name
	if err := validateSectionData(data); err != nil {
		return preconditionf(op, "%v", err)
	}
	if data == s.data {
		return nil
	}
	if other := ls.SectionByName(name); other != nil {
		return preconditionf(op, "a section named %q already exists", name)
	}
	ev := ItemChanged{eventBase: eventBase{ls}, Item: s, OldData: s.data, NewData: data}
	if err := ls.authorize(ev); err != nil {
		return err
	}

	ls.actionStarted(op)
	defer ls.actionCompleted(op)
	ls.perform(&changeEdit{sheet: ls, item: s, from: s.data, to: data})
	return nil
}

// SetSectionTimeSignature changes the time signature of a section and
// rescales its chord symbols. Vetoable.
func (ls *LeadSheet) SetSectionTimeSignature(s *Section, ts harmony.TimeSignature) error {
	const op = "SetSectionTimeSignature"
	if err := ls.enter(); err != nil {
		return err
	}
	defer ls.leave()

	if err := ls.checkSection(op, s); err != nil {
		return err
	}
	data := s.data
	data.TimeSignature = ts
	if err := validateSectionData(data); err != nil {
		return preconditionf(op, "%v", err)
	}
	if data == s.data {
		return nil
	}
	ev := ItemChanged{eventBase: eventBase{ls}, Item: s, OldData: s.data, NewData: data}
	if err := ls.authorize(ev); err != nil {
		return err
	}

	ls.actionStarted(op)
	defer ls.actionCompleted(op)
	ls.performRescaling(&changeEdit{sheet: ls, item: s, from: s.data, to: data}, ls.governingSignatures())
	return nil
}

// RemoveItem removes a chord symbol. Vetoable.
func (ls *LeadSheet) RemoveItem(it Item) error {
	const op = "RemoveItem"
	if err := ls.enter(); err != nil {
		return err
	}
	defer ls.leave()

	cs, err := ls.checkAttachedChord(op, it)
	if err != nil {
		return err
	}
	if err := ls.authorize(ItemRemoved{eventBase: eventBase{ls}, Items: []Item{cs}}); err != nil {
		return err
	}

	ls.actionStarted(op)
	defer ls.actionCompleted(op)
	ls.perform(newRemoveEdit(ls, cs))
	return nil
}

// MoveItem moves a chord symbol to pos, clamped to the time signature of
// the destination bar. Moving to the current (clamped) position is a no-op.
// Vetoable. The moves made while rescaling a section are not.
func (ls *LeadSheet) MoveItem(it Item, pos harmony.Position) error {
	const op = "MoveItem"
	if err := ls.enter(); err != nil {
		return err
	}
	defer ls.leave()

	cs, err := ls.checkAttachedChord(op, it)
	if err != nil {
		return err
	}
	if err := pos.Validate(); err != nil {
		return preconditionf(op, "%v", err)
	}
	if pos.Bar >= ls.size {
		return preconditionf(op, "bar %d out of range [0, %d)", pos.Bar, ls.size)
	}
	pos = pos.ClampTo(ls.Section(pos.Bar).TimeSignature())
	if pos.Equal(cs.Position()) {
		return nil
	}
	if err := ls.authorize(ItemMoved{eventBase: eventBase{ls}, Item: cs, OldPos: cs.Position(), NewPos: pos}); err != nil {
		return err
	}

	ls.actionStarted(op)
	defer ls.actionCompleted(op)
	ls.moveItem(cs, pos)
	return nil
}

// ChangeItem replaces the chord of a chord symbol. Setting an equal chord
// is a no-op. Vetoable.
func (ls *LeadSheet) ChangeItem(it Item, chord harmony.Chord) error {
	const op = "ChangeItem"
	if err := ls.enter(); err != nil {
		return err
	}
	defer ls.leave()

	cs, err := ls.checkAttachedChord(op, it)
	if err != nil {
		return err
	}
	if chord.Symbol == "" {
		return preconditionf(op, "empty chord symbol")
	}
	if chord == cs.data {
		return nil
	}
	ev := ItemChanged{eventBase: eventBase{ls}, Item: cs, OldData: cs.data, NewData: chord}
	if err := ls.authorize(ev); err != nil {
		return err
	}

	ls.actionStarted(op)
	defer ls.actionCompleted(op)
	ls.perform(&changeEdit{sheet: ls, item: cs, from: cs.data, to: chord})
	return nil
}

// SetSize changes the number of bars. Shrinking first removes, as one
// batch and without individual authorization, every item beyond the new
// last bar. Vetoable.
func (ls *LeadSheet) SetSize(size int) error {
	const op = "SetSize"
	if err := ls.enter(); err != nil {
		return err
	}
	defer ls.leave()

	if size < 1 {
		return preconditionf(op, "size must be >= 1, got %d", size)
	}
	if size == ls.size {
		return nil
	}
	if err := ls.authorize(SizeChanged{eventBase: eventBase{ls}, OldSize: ls.size, NewSize: size}); err != nil {
		return err
	}

	ls.actionStarted(op)
	defer ls.actionCompleted(op)
	ls.resize(size)
	return nil
}

// InsertBars inserts count empty bars before bar (bar == Size() appends).
// Items at or after bar shift forward. When bar is 0 a new initial section
// with the time signature of the former one is created. Vetoable through
// the size change.
func (ls *LeadSheet) InsertBars(bar, count int) error {
	const op = "InsertBars"
	if err := ls.enter(); err != nil {
		return err
	}
	defer ls.leave()

	if bar < 0 || bar > ls.size {
		return preconditionf(op, "bar %d out of range [0, %d]", bar, ls.size)
	}
	if count < 1 {
		return preconditionf(op, "count must be >= 1, got %d", count)
	}
	newSize := ls.size + count
	if err := ls.authorize(SizeChanged{eventBase: eventBase{ls}, OldSize: ls.size, NewSize: newSize}); err != nil {
		return err
	}

	ls.actionStarted(op)
	defer ls.actionCompleted(op)
	initial := ls.sectionAt(0)
	ls.perform(&sizeEdit{sheet: ls, from: ls.size, to: newSize})
	if i := ls.items.indexOfItemAtOrAfterBar(bar); i >= 0 {
		ls.perform(&shiftEdit{sheet: ls, items: ls.items.slice(i, ls.items.len()), shift: count})
	}
	if bar == 0 {
		s := NewSection(ls.uniqueSectionName(initial.Name()), initial.TimeSignature(), 0)
		ls.perform(&insertEdit{sheet: ls, items: []Item{s}, positions: []harmony.Position{{}}})
	}
	return nil
}

// DeleteBars deletes bars [from, to]. Items inside the range are removed.
// When no section starts right after the range, the section governing the
// bars after it is kept and moved there if it started inside the range, so
// trailing chord symbols keep their time signature. Trailing items then
// shift back and the size shrinks. The whole sheet can not be deleted.
// Vetoable through the size change.
func (ls *LeadSheet) DeleteBars(from, to int) error {
	const op = "DeleteBars"
	if err := ls.enter(); err != nil {
		return err
	}
	defer ls.leave()

	switch {
	case from < 0 || to >= ls.size || from > to:
		return preconditionf(op, "invalid bar range [%d, %d] for size %d", from, to, ls.size)
	case from == 0 && to == ls.size-1:
		return preconditionf(op, "can not delete every bar")
	}
	span := to - from + 1
	newSize := ls.size - span
	if err := ls.authorize(SizeChanged{eventBase: eventBase{ls}, OldSize: ls.size, NewSize: newSize}); err != nil {
		return err
	}

	ls.actionStarted(op)
	defer ls.actionCompleted(op)
	before := ls.governingSignatures()

	var keep *Section
	if to+1 < ls.size && ls.sectionAt(to+1) == nil {
		if gov := ls.Section(to + 1); gov.Bar() >= from {
			keep = gov
		}
	}
	doomed := []Item{}
	for _, it := range ls.ItemsInRange(from, to) {
		if it != Item(keep) {
			doomed = append(doomed, it)
		}
	}
	if len(doomed) > 0 {
		ls.perform(newRemoveEdit(ls, doomed...))
	}
	if keep != nil {
		ls.perform(newSectionMoveEdit(ls, keep, to+1))
	}
	if i := ls.items.indexOfItemAtOrAfterBar(to + 1); i >= 0 {
		ls.perform(&shiftEdit{sheet: ls, items: ls.items.slice(i, ls.items.len()), shift: -span})
	}
	ls.perform(&sizeEdit{sheet: ls, from: ls.size, to: newSize})
	ls.rescale(before)

	assert(ls.sectionAt(0) != nil, "no initial section after deleting bars [%d, %d]", from, to)
	return nil
}

// resize removes the items beyond size, then sets the size.
func (ls *LeadSheet) resize(size int) {
	if size < ls.size {
		if i := ls.items.indexOfItemAtOrAfterBar(size); i >= 0 {
			ls.perform(newRemoveEdit(ls, ls.items.slice(i, ls.items.len())...))
		}
	}
	ls.perform(&sizeEdit{sheet: ls, from: ls.size, to: size})
}

// moveItem moves cs to pos clamped to the destination time signature,
// unless it is already there.
func (ls *LeadSheet) moveItem(cs *ChordSymbol, pos harmony.Position) {
	pos = pos.ClampTo(ls.Section(pos.Bar).TimeSignature())
	if pos.Equal(cs.Position()) {
		return
	}
	ls.perform(newMoveEdit(ls, cs, pos))
}

// governingSignatures records the time signature governing each chord
// symbol.
func (ls *LeadSheet) governingSignatures() map[Item]harmony.TimeSignature {
	sigs := make(map[Item]harmony.TimeSignature, ls.items.len())
	var ts harmony.TimeSignature
	for _, it := range ls.items.items {
		if s, ok := it.(*Section); ok {
			ts = s.TimeSignature()
			continue
		}
		sigs[it] = ts
	}
	return sigs
}

// rescale converts every chord symbol whose governing time signature
// differs from the one recorded in before. Each conversion is an ordinary
// move with its own edit and event.
func (ls *LeadSheet) rescale(before map[Item]harmony.TimeSignature) {
	for _, it := range ls.items.all() {
		cs, ok := it.(*ChordSymbol)
		if !ok {
			continue
		}
		old, ok := before[it]
		if !ok {
			continue
		}
		now := ls.Section(cs.Position().Bar).TimeSignature()
		if now == old {
			continue
		}
		ls.moveItem(cs, cs.Position().Convert(old, now))
	}
}

// perform applies p, hands it to edit listeners, then notifies listeners.
func (ls *LeadSheet) perform(p primitive) {
	ev := p.apply(false)
	ls.fireEdit(p)
	ls.fireChanged(ev)
}

// performRescaling performs a structural change, then rescales the chord
// symbols it affects. Edits are logged in the order they are applied, so
// undoing them in reverse restores the exact former state.
func (ls *LeadSheet) performRescaling(p primitive, before map[Item]harmony.TimeSignature) {
	ls.perform(p)
	ls.rescale(before)
}

func (ls *LeadSheet) enter() error {
	if ls.mutating {
		return ErrReentrantMutation
	}
	ls.mutating = true
	return nil
}

func (ls *LeadSheet) leave() {
	ls.mutating = false
}

// authorize asks every listener to accept ev and stops at the first veto.
func (ls *LeadSheet) authorize(ev Event) error {
	for _, l := range cloneListeners(ls.listeners) {
		err := l.Authorize(ev)
		if err == nil {
			continue
		}
		var veto *VetoError
		if errors.As(err, &veto) {
			if veto.Event == nil {
				veto.Event = ev
			}
			return veto
		}
		return &VetoError{Reason: err.Error(), Event: ev, Err: err}
	}
	return nil
}

func (ls *LeadSheet) fireChanged(ev Event) {
	for _, l := range cloneListeners(ls.listeners) {
		l.Changed(ev)
	}
}

func (ls *LeadSheet) fireEdit(e Edit) {
	for _, l := range append([]EditListener(nil), ls.editListeners...) {
		l.UndoableEditHappened(e)
	}
}

func (ls *LeadSheet) actionStarted(action string) {
	ls.fireChanged(ActionStarted{eventBase: eventBase{ls}, Action: action})
}

func (ls *LeadSheet) actionCompleted(action string) {
	ls.fireChanged(ActionCompleted{eventBase: eventBase{ls}, Action: action})
}

func (ls *LeadSheet) checkSection(op string, s *Section) error {
	if s == nil {
		return preconditionf(op, "nil section")
	}
	if !ls.items.contains(s) {
		return preconditionf(op, "section %q not in this lead sheet", s.Name())
	}
	return nil
}

func (ls *LeadSheet) checkDetachedChord(op string, it Item) (*ChordSymbol, error) {
	if it == nil {
		return nil, preconditionf(op, "nil item")
	}
	cs, ok := it.(*ChordSymbol)
	if !ok {
		if _, isSection := it.(*Section); isSection {
			return nil, preconditionf(op, "sections must be added with AddSection")
		}
		return nil, preconditionf(op, "unsupported item type %T", it)
	}
	if cs == nil {
		return nil, preconditionf(op, "nil chord symbol")
	}
	if cs.container != nil {
		return nil, preconditionf(op, "%s already belongs to a lead sheet", cs)
	}
	return cs, nil
}

func (ls *LeadSheet) checkAttachedChord(op string, it Item) (*ChordSymbol, error) {
	if it == nil {
		return nil, preconditionf(op, "nil item")
	}
	cs, ok := it.(*ChordSymbol)
	if !ok {
		if _, isSection := it.(*Section); isSection {
			return nil, preconditionf(op, "operation not allowed on sections")
		}
		return nil, preconditionf(op, "unsupported item type %T", it)
	}
	if cs == nil || !ls.items.contains(cs) {
		return nil, preconditionf(op, "chord symbol not in this lead sheet")
	}
	return cs, nil
}

// uniqueSectionName returns base-1, base-2, ... whichever is free first.
func (ls *LeadSheet) uniqueSectionName(base string) string {
	for n := 1; ; n++ {
		name := fmt.Sprintf("%s-%d", base, n)
		if ls.SectionByName(name) == nil {
			return name
		}
	}
}

func cloneListeners(ls []Listener) []Listener {
	return append([]Listener(nil), ls...)
}
