// Package watch follows changes to the store.
package watch

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"tableflip.dev/leadsheet/pkg/printers"
	"tableflip.dev/leadsheet/pkg/store"
)

type Watch struct {
	Persistence store.Persistence
	// JSON forces one JSON object per event. Output that is not a
	// terminal is always JSON.
	JSON bool
	Out  io.Writer
}

func (w *Watch) Do(ctx context.Context) error {
	events, err := w.Persistence.Watch(ctx)
	if err != nil {
		return err
	}
	out := w.Out
	if out == nil {
		out = color.Output
	}
	asJSON := w.JSON || !isTerminal(out)
	enc := json.NewEncoder(out)
	pp := printers.PrettyPrint{Out: out}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if asJSON {
				if err := enc.Encode(ev); err != nil {
					return err
				}
				continue
			}
			pp.WatchEvent(ev)
		}
	}
}

func isTerminal(w io.Writer) bool {
	if w == color.Output {
		w = os.Stdout
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
