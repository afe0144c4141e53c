// Package transfer moves lead sheets in and out of the store as text
// charts.
package transfer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/leadsheet/pkg/app"
	"tableflip.dev/leadsheet/pkg/chart"
	"tableflip.dev/leadsheet/pkg/printers"
)

// Import reads a chart from File ("-" for In) and stores it as Sheet.
type Import struct {
	Service *app.Service
	Sheet   string
	File    string
	Replace bool
	In      io.Reader
	Out     io.Writer
}

func (i *Import) Do(ctx context.Context) error {
	in := i.In
	name := "stdin"
	if i.File != "" && i.File != "-" {
		f, err := os.Open(i.File)
		if err != nil {
			return err
		}
		defer f.Close()
		in, name = f, i.File
	}
	if in == nil {
		in = os.Stdin
	}
	ls, err := chart.Parse(name, in)
	if err != nil {
		return err
	}
	res, err := i.Service.Import(ctx, i.Sheet, ls, i.Replace)
	if err != nil {
		return err
	}

	out := i.Out
	if out == nil {
		out = color.Output
	}
	pp := printers.PrettyPrint{Out: out}
	pp.Title(i.Sheet)
	pp.Sheet(res.Sheet)
	return nil
}

// Export writes Sheet as a chart to File ("-" for Out).
type Export struct {
	Service *app.Service
	Sheet   string
	File    string
	Out     io.Writer
}

func (e *Export) Do(ctx context.Context) error {
	ls, err := e.Service.Open(ctx, e.Sheet)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := chart.Format(&buf, ls); err != nil {
		return err
	}
	if e.File != "" && e.File != "-" {
		if err := os.WriteFile(e.File, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("export %q: %w", e.Sheet, err)
		}
		return nil
	}
	out := e.Out
	if out == nil {
		out = os.Stdout
	}
	_, err = buf.WriteTo(out)
	return err
}
