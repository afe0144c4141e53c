package key

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/leadsheet/pkg/chart"
)

func TestKey(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	k := Key{Out: &out}
	if err := k.Do(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Chart notation") {
		t.Fatalf("expected a title, got %q", got)
	}
	for _, g := range chart.Legend() {
		if !strings.Contains(got, g.Meaning) {
			t.Fatalf("expected %q in the legend, got %q", g.Meaning, got)
		}
	}
}
