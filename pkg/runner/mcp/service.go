// Package mcp provides the Model Context Protocol server integration for
// lead sheets.
package mcp

import (
	"bytes"
	"context"
	"errors"

	"tableflip.dev/leadsheet/pkg/app"
	"tableflip.dev/leadsheet/pkg/chart"
	"tableflip.dev/leadsheet/pkg/harmony"
	"tableflip.dev/leadsheet/pkg/leadsheet"
	"tableflip.dev/leadsheet/pkg/store"
)

// Service projects app.Service results into transport-friendly values.
type Service struct {
	App *app.Service
}

// SheetSummary describes a stored sheet.
type SheetSummary struct {
	Name     string `json:"name"`
	Size     int    `json:"size"`
	Sections int    `json:"sections"`
	Chords   int    `json:"chords"`
}

// ItemDTO is a transport-friendly projection of an item.
type ItemDTO struct {
	ID            string  `json:"id"`
	Kind          string  `json:"kind"`
	Bar           int     `json:"bar"`
	Beat          float64 `json:"beat"`
	Name          string  `json:"name,omitempty"`
	TimeSignature string  `json:"timeSignature,omitempty"`
	Chord         string  `json:"chord,omitempty"`
}

// SheetDTO is a transport-friendly projection of a sheet.
type SheetDTO struct {
	Name   string           `json:"name"`
	Size   int              `json:"size"`
	Items  []ItemDTO        `json:"items"`
	Chart  string           `json:"chart"`
	Report app.ReportResult `json:"report"`
	Undo   string           `json:"undo,omitempty"`
	Redo   string           `json:"redo,omitempty"`
}

// ResultDTO is the outcome of a mutating tool.
type ResultDTO struct {
	Sheet   SheetDTO `json:"sheet"`
	ItemID  string   `json:"itemId,omitempty"`
	Changes []string `json:"changes"`
}

// NewService builds a service over persistence with the given undo limit.
func NewService(p store.Persistence, undoLimit int) *Service {
	return &Service{App: &app.Service{Persistence: p, UndoLimit: undoLimit}}
}

// ListSheets returns summaries for every stored sheet.
func (s *Service) ListSheets(ctx context.Context) ([]SheetSummary, error) {
	metas, err := s.App.Sheets(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SheetSummary, 0, len(metas))
	for _, m := range metas {
		out = append(out, SheetSummary{Name: m.Name, Size: m.Size, Sections: m.Sections, Chords: m.Chords})
	}
	return out, nil
}

// Sheet returns the named sheet.
func (s *Service) Sheet(ctx context.Context, name string) (*SheetDTO, error) {
	ls, err := s.App.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.toDTO(ctx, name, ls)
}

// CreateSheet stores a new sheet.
func (s *Service) CreateSheet(ctx context.Context, name, section, signature string, size int) (*ResultDTO, error) {
	ts, err := parseSignature(signature)
	if err != nil {
		return nil, err
	}
	if section == "" {
		section = "A"
	}
	return s.result(ctx, name)(s.App.Create(ctx, name, section, ts, size))
}

// ImportChart stores the sheet a chart describes.
func (s *Service) ImportChart(ctx context.Context, name, text string, replace bool) (*ResultDTO, error) {
	ls, err := chart.ParseString(name, text)
	if err != nil {
		return nil, err
	}
	return s.result(ctx, name)(s.App.Import(ctx, name, ls, replace))
}

func (s *Service) AddChord(ctx context.Context, name, symbol, position string) (*ResultDTO, error) {
	pos, err := harmony.ParsePosition(position)
	if err != nil {
		return nil, err
	}
	return s.result(ctx, name)(s.App.AddChord(ctx, name, symbol, pos))
}

func (s *Service) MoveChord(ctx context.Context, name, ref, position string) (*ResultDTO, error) {
	pos, err := harmony.ParsePosition(position)
	if err != nil {
		return nil, err
	}
	return s.result(ctx, name)(s.App.MoveChord(ctx, name, ref, pos))
}

func (s *Service) ChangeChord(ctx context.Context, name, ref, symbol string) (*ResultDTO, error) {
	return s.result(ctx, name)(s.App.ChangeChord(ctx, name, ref, symbol))
}

func (s *Service) RemoveChord(ctx context.Context, name, ref string) (*ResultDTO, error) {
	return s.result(ctx, name)(s.App.RemoveChord(ctx, name, ref))
}

func (s *Service) AddSection(ctx context.Context, name, section, signature string, bar int) (*ResultDTO, error) {
	ts, err := parseSignature(signature)
	if err != nil {
		return nil, err
	}
	return s.result(ctx, name)(s.App.AddSection(ctx, name, section, ts, bar))
}

func (s *Service) MoveSection(ctx context.Context, name, ref string, bar int) (*ResultDTO, error) {
	return s.result(ctx, name)(s.App.MoveSection(ctx, name, ref, bar))
}

func (s *Service) RemoveSection(ctx context.Context, name, ref string) (*ResultDTO, error) {
	return s.result(ctx, name)(s.App.RemoveSection(ctx, name, ref))
}

func (s *Service) RenameSection(ctx context.Context, name, ref, newName string) (*ResultDTO, error) {
	return s.result(ctx, name)(s.App.RenameSection(ctx, name, ref, newName))
}

func (s *Service) SetTimeSignature(ctx context.Context, name, ref, signature string) (*ResultDTO, error) {
	ts, err := harmony.ParseTimeSignature(signature)
	if err != nil {
		return nil, err
	}
	return s.result(ctx, name)(s.App.SetTimeSignature(ctx, name, ref, ts))
}

func (s *Service) SetSize(ctx context.Context, name string, size int) (*ResultDTO, error) {
	return s.result(ctx, name)(s.App.SetSize(ctx, name, size))
}

func (s *Service) InsertBars(ctx context.Context, name string, bar, count int) (*ResultDTO, error) {
	return s.result(ctx, name)(s.App.InsertBars(ctx, name, bar, count))
}

func (s *Service) DeleteBars(ctx context.Context, name string, from, to int) (*ResultDTO, error) {
	return s.result(ctx, name)(s.App.DeleteBars(ctx, name, from, to))
}

func (s *Service) Undo(ctx context.Context, name string) (*ResultDTO, error) {
	return s.result(ctx, name)(s.App.Undo(ctx, name))
}

func (s *Service) Redo(ctx context.Context, name string) (*ResultDTO, error) {
	return s.result(ctx, name)(s.App.Redo(ctx, name))
}

func (s *Service) result(ctx context.Context, name string) func(*app.Result, error) (*ResultDTO, error) {
	return func(res *app.Result, err error) (*ResultDTO, error) {
		if err != nil {
			return nil, err
		}
		if res == nil || res.Sheet == nil {
			return nil, errors.New("mcp: empty result")
		}
		sheet, err := s.toDTO(ctx, name, res.Sheet)
		if err != nil {
			return nil, err
		}
		changes := res.Changes
		if changes == nil {
			changes = []string{}
		}
		return &ResultDTO{Sheet: *sheet, ItemID: res.ItemID, Changes: changes}, nil
	}
}

func (s *Service) toDTO(ctx context.Context, name string, ls *leadsheet.LeadSheet) (*SheetDTO, error) {
	var buf bytes.Buffer
	if err := chart.Format(&buf, ls); err != nil {
		return nil, err
	}
	dto := &SheetDTO{
		Name:   name,
		Size:   ls.Size(),
		Items:  toItems(ls),
		Chart:  buf.String(),
		Report: app.Report(ls),
	}
	undoName, redoName, err := s.App.History(ctx, name)
	if err != nil {
		return nil, err
	}
	dto.Undo, dto.Redo = undoName, redoName
	return dto, nil
}

func toItems(ls *leadsheet.LeadSheet) []ItemDTO {
	items := ls.Items()
	out := make([]ItemDTO, 0, len(items))
	for _, it := range items {
		dto := ItemDTO{ID: it.ID(), Bar: it.Position().Bar, Beat: it.Position().Beat}
		switch v := it.(type) {
		case *leadsheet.Section:
			dto.Kind = string(leadsheet.KindSection)
			dto.Name = v.Name()
			dto.TimeSignature = v.TimeSignature().String()
		case *leadsheet.ChordSymbol:
			dto.Kind = string(leadsheet.KindChord)
			dto.Chord = v.Data().Symbol
		}
		out = append(out, dto)
	}
	return out
}

func parseSignature(raw string) (harmony.TimeSignature, error) {
	if raw == "" {
		return harmony.FourFour, nil
	}
	return harmony.ParseTimeSignature(raw)
}
