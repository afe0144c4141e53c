// Package edit applies one operation to a stored lead sheet and prints the
// outcome.
package edit

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/leadsheet/pkg/app"
	"tableflip.dev/leadsheet/pkg/printers"
)

// Operation runs against the service and reports what changed.
type Operation func(ctx context.Context, svc *app.Service, sheet string) (*app.Result, error)

type Edit struct {
	Service   *app.Service
	Sheet     string
	Operation Operation
	ShowID    bool
	JSON      bool
	Out       io.Writer
}

type resultJSON struct {
	Sheet   string   `json:"sheet"`
	ItemID  string   `json:"itemId,omitempty"`
	Size    int      `json:"size"`
	Changes []string `json:"changes"`
}

func (e *Edit) Do(ctx context.Context) error {
	if e.Operation == nil {
		return errors.New("edit: no operation")
	}
	out := e.Out
	if out == nil {
		out = color.Output
	}
	res, err := e.Operation(ctx, e.Service, e.Sheet)
	if err != nil {
		return err
	}
	if e.JSON {
		changes := res.Changes
		if changes == nil {
			changes = []string{}
		}
		return json.NewEncoder(out).Encode(resultJSON{Sheet: e.Sheet, ItemID: res.ItemID, Size: res.Sheet.Size(), Changes: changes})
	}

	pp := printers.PrettyPrint{ShowID: e.ShowID, Out: out}
	pp.Changes(res.Changes...)
	pp.NewLine()
	pp.Title(e.Sheet)
	pp.Sheet(res.Sheet)
	return nil
}
