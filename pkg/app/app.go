package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"tableflip.dev/leadsheet/pkg/harmony"
	"tableflip.dev/leadsheet/pkg/leadsheet"
	"tableflip.dev/leadsheet/pkg/leadsheet/undo"
	"tableflip.dev/leadsheet/pkg/logging"
	"tableflip.dev/leadsheet/pkg/store"
)

var (
	ErrNoPersistence = errors.New("app: no persistence configured")
	ErrSheetExists   = errors.New("app: sheet already exists")
	ErrItemNotFound  = errors.New("app: item not found")
	ErrAmbiguousItem = errors.New("app: item reference is ambiguous")
)

// Service provides high-level operations on stored lead sheets. It keeps
// one open session per sheet so undo history survives between calls of a
// long-lived process, and serializes every call with a mutex.
type Service struct {
	Persistence store.Persistence
	// UndoLimit bounds the history of each session, undo.DefaultLimit
	// when zero.
	UndoLimit int

	mu       sync.Mutex
	sessions map[string]*session
}

// Result is the outcome of an operation.
type Result struct {
	// Sheet is a detached copy of the sheet after the operation.
	Sheet *leadsheet.LeadSheet
	// ItemID identifies the item the operation created or touched.
	ItemID string
	// Changes describes each change event, in order.
	Changes []string
}

type session struct {
	name    string
	sheet   *leadsheet.LeadSheet
	history *undo.Manager
	changes []string
	// digest of the stored sheet this session last loaded or saved
	digest string
}

func (s *session) Authorize(leadsheet.Event) error { return nil }

func (s *session) Changed(ev leadsheet.Event) {
	switch ev.(type) {
	case leadsheet.ActionStarted, leadsheet.ActionCompleted:
		return
	}
	s.changes = append(s.changes, ev.String())
	logging.SheetEvent(s.name, ev.String())
}

// Sheets lists the stored sheets.
func (s *Service) Sheets(ctx context.Context) ([]store.Meta, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.List(ctx), nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Create stores a new sheet of size bars whose initial section is named
// section.
func (s *Service) Create(ctx context.Context, name, section string, ts harmony.TimeSignature, size int) (*Result, error) {
	ls, err := leadsheet.NewEmpty(section, ts, size)
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, name, ls, false)
}

// Import stores ls under name, replacing an existing sheet only when
// replace is set. The undo history of a replaced sheet is dropped.
func (s *Service) Import(ctx context.Context, name string, ls *leadsheet.LeadSheet, replace bool) (*Result, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("app: sheet name required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.Persistence.Load(name); err == nil && !replace {
		return nil, fmt.Errorf("%w: %q", ErrSheetExists, name)
	} else if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	snap := ls.Snapshot()
	if err := s.Persistence.Save(name, snap); err != nil {
		return nil, err
	}
	delete(s.sessions, name)
	logging.Info("sheet stored", "sheet", name, "size", snap.Size, "items", len(snap.Items))
	view, err := leadsheet.Restore(snap)
	if err != nil {
		return nil, err
	}
	return &Result{Sheet: view}, nil
}

// Open returns a detached copy of the named sheet.
func (s *Service) Open(ctx context.Context, name string) (*leadsheet.LeadSheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(name)
	if err != nil {
		return nil, err
	}
	return leadsheet.Restore(sess.sheet.Snapshot())
}

// Delete removes the named sheet and its session.
func (s *Service) Delete(ctx context.Context, name string) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, name)
	return s.Persistence.Delete(name)
}

// Apply runs op on the named sheet and stores the result. op is called with
// the service lock held and must only use the sheet it is given.
func (s *Service) Apply(ctx context.Context, name, action string, op func(ls *leadsheet.LeadSheet) (string, error)) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(name)
	if err != nil {
		return nil, err
	}
	sess.changes = nil
	id, err := op(sess.sheet)
	if err != nil {
		logging.SheetError(name, action, err)
		return nil, err
	}
	return s.commit(sess, id)
}

// Undo reverts the last action of the named sheet's session.
func (s *Service) Undo(ctx context.Context, name string) (*Result, error) {
	return s.replay(ctx, name, "undo", func(m *undo.Manager) error { return m.Undo() })
}

// Redo replays the last undone action of the named sheet's session.
func (s *Service) Redo(ctx context.Context, name string) (*Result, error) {
	return s.replay(ctx, name, "redo", func(m *undo.Manager) error { return m.Redo() })
}

func (s *Service) replay(ctx context.Context, name, action string, fn func(*undo.Manager) error) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(name)
	if err != nil {
		return nil, err
	}
	sess.changes = nil
	if err := fn(sess.history); err != nil {
		return nil, fmt.Errorf("app: %s %q: %w", action, name, err)
	}
	return s.commit(sess, "")
}

// History reports what Undo and Redo of the named sheet would do, "" when
// nothing.
func (s *Service) History(ctx context.Context, name string) (undoName, redoName string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(name)
	if err != nil {
		return "", "", err
	}
	return sess.history.UndoName(), sess.history.RedoName(), nil
}

func (s *Service) commit(sess *session, id string) (*Result, error) {
	snap := sess.sheet.Snapshot()
	digest, err := store.Digest(snap)
	if err == nil {
		err = s.Persistence.Save(sess.name, snap)
	}
	if err != nil {
		// the session is ahead of the store, the next call reloads it
		delete(s.sessions, sess.name)
		logging.SheetError(sess.name, "save", err)
		return nil, err
	}
	sess.digest = digest
	view, err := leadsheet.Restore(snap)
	if err != nil {
		return nil, err
	}
	return &Result{Sheet: view, ItemID: id, Changes: append([]string(nil), sess.changes...)}, nil
}

// session returns the open session of name, loading it from persistence.
// A session whose sheet was changed by someone else since its last load or
// save is replaced, dropping its undo history. The caller holds s.mu.
func (s *Service) session(name string) (*session, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	meta, err := s.Persistence.Stat(name)
	if err != nil {
		delete(s.sessions, name)
		return nil, err
	}
	if sess, ok := s.sessions[name]; ok {
		if sess.digest == meta.Digest {
			return sess, nil
		}
		logging.Info("sheet changed in the store, reloading", "sheet", name, "digest", meta.Digest)
		delete(s.sessions, name)
	}
	snap, err := s.Persistence.Load(name)
	if err != nil {
		return nil, err
	}
	ls, err := leadsheet.Restore(*snap)
	if err != nil {
		return nil, fmt.Errorf("app: restore %q: %w", name, err)
	}
	sess := &session{name: name, sheet: ls, history: undo.NewManager(s.UndoLimit), digest: meta.Digest}
	sess.history.Attach(ls)
	ls.AddListener(sess)
	if s.sessions == nil {
		s.sessions = make(map[string]*session)
	}
	s.sessions[name] = sess
	return sess, nil
}
