package watch

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/leadsheet/pkg/harmony"
	"tableflip.dev/leadsheet/pkg/leadsheet"
	"tableflip.dev/leadsheet/pkg/store"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchWritesJSONWhenNotATerminal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := store.NewMemory()
	out := &syncBuffer{}
	done := make(chan error, 1)
	w := &Watch{Persistence: p, Out: out}
	go func() { done <- w.Do(ctx) }()

	ls, err := leadsheet.NewEmpty("A", harmony.FourFour, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), "\n") {
		if time.Now().After(deadline) {
			t.Fatal("expected an event")
		}
		// the watcher may subscribe after the first save
		_ = p.Delete("tune")
		if err := p.Save("tune", ls.Snapshot()); err != nil {
			t.Fatalf("save: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	line := strings.SplitN(out.String(), "\n", 2)[0]
	var ev map[string]string
	if err := json.Unmarshal([]byte(line), &ev); err != nil {
		t.Fatalf("unexpected line %q: %v", line, err)
	}
	if ev["type"] != "changed" || ev["sheet"] != "tune" {
		t.Fatalf("unexpected event %v", ev)
	}
}
