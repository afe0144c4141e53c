// Package list prints the stored lead sheets.
package list

import (
	"context"
	"encoding/json"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/leadsheet/pkg/printers"
	"tableflip.dev/leadsheet/pkg/store"
)

type List struct {
	Persistence store.Persistence
	ShowID      bool
	JSON        bool
	Out         io.Writer
}

func (l *List) Do(ctx context.Context) error {
	out := l.Out
	if out == nil {
		out = color.Output
	}
	metas := l.Persistence.List(ctx)
	if l.JSON {
		return json.NewEncoder(out).Encode(metas)
	}
	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: out}
	pp.TitleWithCount("Lead sheets", len(metas), "sheet")
	pp.Sheets(metas)
	return nil
}
