package list

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/leadsheet/pkg/harmony"
	"tableflip.dev/leadsheet/pkg/leadsheet"
	"tableflip.dev/leadsheet/pkg/store"
)

func TestList(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	p := store.NewMemory()
	for _, name := range []string{"Blue Bossa", "Autumn Leaves"} {
		ls, err := leadsheet.NewEmpty("A", harmony.FourFour, 16)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := p.Save(name, ls.Snapshot()); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := (&List{Persistence: p, Out: &buf}).Do(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "Lead sheets - 2 sheets") {
		t.Fatalf("unexpected title\n%s", out)
	}
	if strings.Index(out, "Autumn Leaves") > strings.Index(out, "Blue Bossa") {
		t.Fatalf("expected sheets sorted by name\n%s", out)
	}

	buf.Reset()
	if err := (&List{Persistence: p, JSON: true, Out: &buf}).Do(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var metas []store.Meta
	if err := json.Unmarshal(buf.Bytes(), &metas); err != nil || len(metas) != 2 || metas[0].Size != 16 {
		t.Fatalf("unexpected output %q (%v)", buf.String(), err)
	}
}
