// Package show prints one lead sheet.
package show

import (
	"context"
	"encoding/json"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/leadsheet/pkg/app"
	"tableflip.dev/leadsheet/pkg/leadsheet"
	"tableflip.dev/leadsheet/pkg/printers"
)

type Show struct {
	Service *app.Service
	Sheet   string
	ShowID  bool
	// Items adds a listing of every item to the bar grid.
	Items bool
	JSON  bool
	Out   io.Writer
}

type sheetJSON struct {
	Name   string             `json:"name"`
	Sheet  leadsheet.Snapshot `json:"sheet"`
	Report app.ReportResult   `json:"report"`
}

func (s *Show) Do(ctx context.Context) error {
	out := s.Out
	if out == nil {
		out = color.Output
	}
	ls, err := s.Service.Open(ctx, s.Sheet)
	if err != nil {
		return err
	}
	report := app.Report(ls)
	if s.JSON {
		return json.NewEncoder(out).Encode(sheetJSON{Name: s.Sheet, Sheet: ls.Snapshot(), Report: report})
	}

	pp := printers.PrettyPrint{ShowID: s.ShowID, Out: out}
	pp.Title(s.Sheet)
	pp.NewLine()
	pp.Sheet(ls)
	if s.Items {
		pp.Items(ls)
	}
	pp.Report(report)
	return nil
}
