package edit

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/leadsheet/pkg/app"
	"tableflip.dev/leadsheet/pkg/harmony"
	"tableflip.dev/leadsheet/pkg/store"
)

func newService(t *testing.T) *app.Service {
	t.Helper()
	svc := &app.Service{Persistence: store.NewMemory()}
	if _, err := svc.Create(context.Background(), "tune", "A", harmony.FourFour, 4); err != nil {
		t.Fatalf("create: %v", err)
	}
	return svc
}

func addC(ctx context.Context, svc *app.Service, sheet string) (*app.Result, error) {
	return svc.AddChord(ctx, sheet, "C", harmony.Position{Bar: 1})
}

func TestEditPretty(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	var buf bytes.Buffer
	e := &Edit{Service: newService(t), Sheet: "tune", Operation: addC, Out: &buf}
	if err := e.Do(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "  - added") || !strings.Contains(out, "| C") {
		t.Fatalf("unexpected output\n%s", out)
	}
}

func TestEditJSON(t *testing.T) {
	var buf bytes.Buffer
	e := &Edit{Service: newService(t), Sheet: "tune", Operation: addC, JSON: true, Out: &buf}
	if err := e.Do(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got resultJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unexpected output %q: %v", buf.String(), err)
	}
	if got.Sheet != "tune" || got.ItemID == "" || got.Size != 4 || len(got.Changes) != 1 {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestEditError(t *testing.T) {
	var buf bytes.Buffer
	e := &Edit{Service: newService(t), Sheet: "missing", Operation: addC, Out: &buf}
	if err := e.Do(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
	if err := (&Edit{}).Do(context.Background()); err == nil {
		t.Fatal("expected an error without an operation")
	}
}
