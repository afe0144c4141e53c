package show

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/leadsheet/pkg/app"
	"tableflip.dev/leadsheet/pkg/harmony"
	"tableflip.dev/leadsheet/pkg/store"
)

func newService(t *testing.T) *app.Service {
	t.Helper()
	ctx := context.Background()
	svc := &app.Service{Persistence: store.NewMemory()}
	if _, err := svc.Create(ctx, "tune", "A", harmony.FourFour, 8); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.AddChord(ctx, "tune", "Dm7", harmony.Position{Bar: 1, Beat: 2}); err != nil {
		t.Fatalf("add chord: %v", err)
	}
	return svc
}

func TestShow(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	var buf bytes.Buffer
	s := &Show{Service: newService(t), Sheet: "tune", Items: true, Out: &buf}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"tune", "A 4/4, bars 0-7", "Dm7@2", "[1:2]", "8 bars, 1 chords"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("expected %q in\n%s", want, buf.String())
		}
	}
}

func TestShowJSON(t *testing.T) {
	var buf bytes.Buffer
	s := &Show{Service: newService(t), Sheet: "tune", JSON: true, Out: &buf}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got sheetJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unexpected output %q: %v", buf.String(), err)
	}
	if got.Name != "tune" || got.Sheet.Size != 8 || len(got.Sheet.Items) != 2 || got.Report.Chords != 1 {
		t.Fatalf("unexpected sheet %+v", got)
	}
}

func TestShowMissing(t *testing.T) {
	s := &Show{Service: newService(t), Sheet: "nope", Out: &bytes.Buffer{}}
	if err := s.Do(context.Background()); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected store.ErrNotFound, got %v", err)
	}
}
