// Package undo keeps the undo/redo history of a lead sheet.
//
// A Manager collects the edits a sheet hands to its edit listeners and groups
// every edit produced between ActionStarted and ActionCompleted into one
// CompoundEdit, so one user action is undone in one step.
package undo

import (
	"errors"
	"fmt"

	"tableflip.dev/leadsheet/pkg/leadsheet"
)

var (
	// ErrNothingToUndo is returned by Undo when the history is empty.
	ErrNothingToUndo = errors.New("undo: nothing to undo")
	// ErrNothingToRedo is returned by Redo when there is nothing undone.
	ErrNothingToRedo = errors.New("undo: nothing to redo")
)

// DefaultLimit bounds the history when no limit is given.
const DefaultLimit = 100

// CompoundEdit is an ordered group of edits undone and redone as a whole.
type CompoundEdit struct {
	name  string
	edits []leadsheet.Edit
}

func (c *CompoundEdit) Name() string { return c.name }

// Edits returns a copy of the grouped edits in the order they happened.
func (c *CompoundEdit) Edits() []leadsheet.Edit {
	return append([]leadsheet.Edit(nil), c.edits...)
}

// Undo undoes the grouped edits in reverse order.
func (c *CompoundEdit) Undo() error {
	for i := len(c.edits) - 1; i >= 0; i-- {
		if err := c.edits[i].Undo(); err != nil {
			return fmt.Errorf("undo %s: %w", c.edits[i].Name(), err)
		}
	}
	return nil
}

// Redo redoes the grouped edits in order.
func (c *CompoundEdit) Redo() error {
	for _, e := range c.edits {
		if err := e.Redo(); err != nil {
			return fmt.Errorf("redo %s: %w", e.Name(), err)
		}
	}
	return nil
}

// Manager is a bounded undo/redo history. It is a leadsheet.Listener and a
// leadsheet.EditListener; use Attach to register it.
type Manager struct {
	limit   int
	undos   []*CompoundEdit
	redos   []*CompoundEdit
	pending *CompoundEdit
	depth   int
}

// NewManager returns a manager keeping at most limit actions (DefaultLimit
// when limit <= 0).
func NewManager(limit int) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager{limit: limit}
}

// Attach registers m on ls.
func (m *Manager) Attach(ls *leadsheet.LeadSheet) {
	ls.AddListener(m)
	ls.AddEditListener(m)
}

// Detach unregisters m from ls.
func (m *Manager) Detach(ls *leadsheet.LeadSheet) {
	ls.RemoveListener(m)
	ls.RemoveEditListener(m)
}

// Authorize never vetoes.
func (m *Manager) Authorize(leadsheet.Event) error { return nil }

// Changed tracks action brackets.
func (m *Manager) Changed(ev leadsheet.Event) {
	switch e := ev.(type) {
	case leadsheet.ActionStarted:
		if m.depth == 0 {
			m.pending = &CompoundEdit{name: e.Action}
		}
		m.depth++
	case leadsheet.ActionCompleted:
		if m.depth == 0 {
			return
		}
		m.depth--
		if m.depth == 0 {
			pending := m.pending
			m.pending = nil
			if pending != nil && len(pending.edits) > 0 {
				m.push(pending)
			}
		}
	}
}

// UndoableEditHappened records e in the current action, or as an action of
// its own outside of any bracket.
func (m *Manager) UndoableEditHappened(e leadsheet.Edit) {
	if m.pending != nil {
		m.pending.edits = append(m.pending.edits, e)
		return
	}
	m.push(&CompoundEdit{name: e.Name(), edits: []leadsheet.Edit{e}})
}

func (m *Manager) push(c *CompoundEdit) {
	m.undos = append(m.undos, c)
	if over := len(m.undos) - m.limit; over > 0 {
		m.undos = append([]*CompoundEdit(nil), m.undos[over:]...)
	}
	m.redos = nil
}

func (m *Manager) CanUndo() bool { return len(m.undos) > 0 }
func (m *Manager) CanRedo() bool { return len(m.redos) > 0 }

// UndoName is the name of the action Undo would revert, "" if none.
func (m *Manager) UndoName() string {
	if !m.CanUndo() {
		return ""
	}
	return m.undos[len(m.undos)-1].Name()
}

// RedoName is the name of the action Redo would replay, "" if none.
func (m *Manager) RedoName() string {
	if !m.CanRedo() {
		return ""
	}
	return m.redos[len(m.redos)-1].Name()
}

// Undo reverts the last action.
func (m *Manager) Undo() error {
	if !m.CanUndo() {
		return ErrNothingToUndo
	}
	last := m.undos[len(m.undos)-1]
	if err := last.Undo(); err != nil {
		return err
	}
	m.undos = m.undos[:len(m.undos)-1]
	m.redos = append(m.redos, last)
	return nil
}

// Redo replays the last undone action.
func (m *Manager) Redo() error {
	if !m.CanRedo() {
		return ErrNothingToRedo
	}
	last := m.redos[len(m.redos)-1]
	if err := last.Redo(); err != nil {
		return err
	}
	m.redos = m.redos[:len(m.redos)-1]
	m.undos = append(m.undos, last)
	return nil
}

// Clear drops the whole history.
func (m *Manager) Clear() {
	m.undos, m.redos, m.pending, m.depth = nil, nil, nil, 0
}
