// Package key prints the chart notation legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/leadsheet/pkg/chart"
)

type Key struct {
	Out io.Writer
}

func (k *Key) Do(ctx context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	k.Key(out, chart.Legend())
	return nil
}

func (k *Key) Key(out io.Writer, glyphs []chart.Glyph) {
	bold := color.New(color.Bold).SprintFunc()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Symbol"), bold("Example"), bold("Meaning"))
	for _, g := range glyphs {
		tbl.AddRow(g.Symbol, g.Example, g.Meaning)
	}

	_, _ = color.New(color.Bold, color.Underline).Fprintln(out, "\nChart notation")
	_, _ = fmt.Fprintln(out, tbl)
}
