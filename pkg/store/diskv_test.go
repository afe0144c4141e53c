package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestSaveLoadDelete(t *testing.T) {
	p, err := Load(StaticConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	snap := testSnapshot(t, 8)

	if err := p.Save("Blue Bossa", snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := p.Load("Blue Bossa")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(snap, *got) {
		t.Fatalf("expected %+v, got %+v", snap, *got)
	}

	if err := p.Delete("Blue Bossa"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := p.Load("Blue Bossa"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := p.Delete("Blue Bossa"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := p.Save(" ", snap); err == nil {
		t.Fatalf("expected an error for an empty name")
	}
}

func TestList(t *testing.T) {
	p, err := Load(StaticConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	for _, name := range []string{"So What", "All The Things", "a-b/c"} {
		if err := p.Save(name, testSnapshot(t, 4)); err != nil {
			t.Fatalf("save %q: %v", name, err)
		}
	}

	metas := p.List(context.Background())
	if len(metas) != 3 {
		t.Fatalf("expected 3 sheets, got %d", len(metas))
	}
	names := []string{metas[0].Name, metas[1].Name, metas[2].Name}
	if want := []string{"All The Things", "So What", "a-b/c"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	m := metas[0]
	if m.Size != 4 || m.Sections != 1 || m.Chords != 1 || m.Digest == "" {
		t.Fatalf("unexpected meta %+v", m)
	}
}

func TestSaveSkipsUnchangedSnapshot(t *testing.T) {
	base := t.TempDir()
	p, err := Load(StaticConfig{Path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	snap := testSnapshot(t, 8)
	if err := p.Save("tune", snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	key, _ := toKey("tune")
	pk := keyToPathTransform(key)
	file := filepath.Join(append([]string{base}, append(pk.Path, pk.FileName)...)...)
	before, err := os.Stat(file)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	if err := p.Save("tune", snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	after, err := os.Stat(file)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Fatalf("expected an unchanged snapshot not to be rewritten")
	}

	snap.Size = 12
	if err := p.Save("tune", snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := p.Load("tune")
	if err != nil || got.Size != 12 {
		t.Fatalf("expected the changed snapshot, got %+v (%v)", got, err)
	}
}

func TestStatSeesOtherWriters(t *testing.T) {
	dir := t.TempDir()
	a, err := Load(StaticConfig{Path: dir})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	b, err := Load(StaticConfig{Path: dir})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	if _, err := a.Stat("tune"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	snap := testSnapshot(t, 8)
	if err := a.Save("tune", snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	want, _ := Digest(snap)
	meta, err := a.Stat("tune")
	if err != nil || meta.Digest != want || meta.Size != 8 || meta.Chords != 1 {
		t.Fatalf("unexpected meta %+v (%v)", meta, err)
	}

	snap.Size = 12
	if err := b.Save("tune", snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	meta, err = a.Stat("tune")
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if want, _ := Digest(snap); meta.Digest != want {
		t.Fatalf("expected the digest of the other write, got %+v", meta)
	}
	if got, err := a.Load("tune"); err != nil || got.Size != 12 {
		t.Fatalf("expected the other write, got %+v (%v)", got, err)
	}
}

func TestDigestIsStable(t *testing.T) {
	snap := testSnapshot(t, 8)
	a, err := Digest(snap)
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	b, _ := Digest(snap)
	if a != b || len(a) != 64 {
		t.Fatalf("expected a stable 32 byte hex digest, got %q and %q", a, b)
	}
	snap.Size++
	if c, _ := Digest(snap); c == a {
		t.Fatalf("expected a different digest for a different snapshot")
	}
}

func TestKeyRoundTrip(t *testing.T) {
	for _, name := range []string{"simple", "with-dash", "with/slash", "ünïcode"} {
		key, err := toKey(name)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", name, err)
		}
		pk := keyToPathTransform(key)
		if len(pk.Path) != 1 || pk.Path[0] != sheetPrefix {
			t.Fatalf("%q: unexpected path %v", name, pk.Path)
		}
		if got := pathToKeyTransform(pk); got != key {
			t.Fatalf("%q: expected key %q, got %q", name, key, got)
		}
		if got := fromName(pk.FileName); got != name {
			t.Fatalf("expected %q, got %q", name, got)
		}
	}
}
