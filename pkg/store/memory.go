package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"tableflip.dev/leadsheet/pkg/leadsheet"
)

// NewMemory returns a Persistence that keeps sheets in memory only. Its
// Watch reports every Save and Delete.
func NewMemory() Persistence {
	return &memory{docs: make(map[string]*document)}
}

type memory struct {
	mu       sync.Mutex
	docs     map[string]*document
	watchers map[chan Event]struct{}
}

func (m *memory) List(ctx context.Context) []Meta {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]Meta, 0, len(m.docs))
	for _, doc := range m.docs {
		all = append(all, doc.meta())
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	return all
}

func (m *memory) Load(name string) (*leadsheet.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	snap := doc.Sheet
	return &snap, nil
}

func (m *memory) Stat(name string) (Meta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[strings.TrimSpace(name)]
	if !ok {
		return Meta{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return doc.meta(), nil
}

func (m *memory) Save(name string, snap leadsheet.Snapshot) error {
	if _, err := toKey(name); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	digest, err := Digest(snap)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.docs[name]; ok && old.Digest == digest {
		return nil
	}
	m.docs[name] = &document{Schema: CurrentSchema, Name: name, Digest: digest, Sheet: snap}
	m.notify(Event{Type: EventSheetChanged, Sheet: name})
	return nil
}

func (m *memory) Delete(name string) error {
	name = strings.TrimSpace(name)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(m.docs, name)
	m.notify(Event{Type: EventSheetChanged, Sheet: name})
	return nil
}

// Watch streams change events until ctx is cancelled. Events are dropped
// for watchers that do not keep up.
func (m *memory) Watch(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, 16)
	m.mu.Lock()
	if m.watchers == nil {
		m.watchers = make(map[chan Event]struct{})
	}
	m.watchers[ch] = struct{}{}
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.watchers, ch)
		m.mu.Unlock()
		close(ch)
	}()
	return ch, nil
}

// notify is called with m.mu held.
func (m *memory) notify(ev Event) {
	for ch := range m.watchers {
		select {
		case ch <- ev:
		default:
		}
	}
}
