package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerReadTools(srv, svc)
	registerChordTools(srv, svc)
	registerSectionTools(srv, svc)
	registerBarTools(srv, svc)
	registerHistoryTools(srv, svc)
}

// handle binds the tool arguments into T and reports failures as tool
// errors rather than protocol errors.
func handle[T any](fn func(ctx context.Context, args T) (any, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args T
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		out, err := fn(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(out)
	}
}

func sheetArg() mcp.ToolOption {
	return mcp.WithString("sheet",
		mcp.Required(),
		mcp.Description("Name of the lead sheet."),
	)
}

type sheetArgs struct {
	Sheet string `json:"sheet"`
}

type chordArgs struct {
	Sheet    string `json:"sheet"`
	Chord    string `json:"chord"`
	Symbol   string `json:"symbol"`
	Position string `json:"position"`
}

type sectionArgs struct {
	Sheet         string `json:"sheet"`
	Section       string `json:"section"`
	Name          string `json:"name"`
	TimeSignature string `json:"time_signature"`
	Bar           int    `json:"bar"`
}

type barArgs struct {
	Sheet string `json:"sheet"`
	Size  int    `json:"size"`
	Bar   int    `json:"bar"`
	Count int    `json:"count"`
	From  int    `json:"from"`
	To    int    `json:"to"`
}

type createArgs struct {
	Sheet         string `json:"sheet"`
	Section       string `json:"section"`
	TimeSignature string `json:"time_signature"`
	Size          int    `json:"size"`
	Chart         string `json:"chart"`
	Replace       bool   `json:"replace"`
}

func registerReadTools(srv *server.MCPServer, svc *Service) {
	srv.AddTool(mcp.NewTool(
		"list_sheets",
		mcp.WithDescription("List the stored lead sheets with bar, section and chord counts."),
	), handle(func(ctx context.Context, _ struct{}) (any, error) {
		sheets, err := svc.ListSheets(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"sheets": sheets, "count": len(sheets)}, nil
	}))

	srv.AddTool(mcp.NewTool(
		"show_sheet",
		mcp.WithDescription("Show a lead sheet: its items, a text chart and a per section report."),
		sheetArg(),
	), handle(func(ctx context.Context, args sheetArgs) (any, error) {
		return svc.Sheet(ctx, args.Sheet)
	}))

	srv.AddTool(mcp.NewTool(
		"create_sheet",
		mcp.WithDescription("Create a lead sheet, either empty or from a text chart."),
		sheetArg(),
		mcp.WithString("section",
			mcp.Description("Name of the initial section of an empty sheet, A when omitted."),
		),
		mcp.WithString("time_signature",
			mcp.Description("Time signature of the initial section such as 4/4 or 6/8, 4/4 when omitted."),
		),
		mcp.WithNumber("size",
			mcp.Description("Number of bars of an empty sheet."),
		),
		mcp.WithString("chart",
			mcp.Description(`Text chart to import instead, e.g. section "A" 4/4 followed by | Dm7 G7 | Cmaj7 |.`),
		),
		mcp.WithBoolean("replace",
			mcp.Description("Replace an existing sheet when importing a chart."),
		),
	), handle(func(ctx context.Context, args createArgs) (any, error) {
		if args.Chart != "" {
			return svc.ImportChart(ctx, args.Sheet, args.Chart, args.Replace)
		}
		return svc.CreateSheet(ctx, args.Sheet, args.Section, args.TimeSignature, args.Size)
	}))
}

func registerChordTools(srv *server.MCPServer, svc *Service) {
	chordRef := mcp.WithString("chord",
		mcp.Required(),
		mcp.Description(`Chord symbol id, unique id prefix, or "bar:beat" position.`),
	)

	srv.AddTool(mcp.NewTool(
		"add_chord",
		mcp.WithDescription("Add a chord symbol. Beats past the end of the bar are clamped to its last beat."),
		sheetArg(),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Chord symbol such as Dm7 or C/E.")),
		mcp.WithString("position", mcp.Required(), mcp.Description(`Position as "bar:beat", bars and beats count from 0.`)),
	), handle(func(ctx context.Context, args chordArgs) (any, error) {
		return svc.AddChord(ctx, args.Sheet, args.Symbol, args.Position)
	}))

	srv.AddTool(mcp.NewTool(
		"move_chord",
		mcp.WithDescription("Move a chord symbol to another position."),
		sheetArg(),
		chordRef,
		mcp.WithString("position", mcp.Required(), mcp.Description(`New position as "bar:beat".`)),
	), handle(func(ctx context.Context, args chordArgs) (any, error) {
		return svc.MoveChord(ctx, args.Sheet, args.Chord, args.Position)
	}))

	srv.AddTool(mcp.NewTool(
		"change_chord",
		mcp.WithDescription("Replace the chord of a chord symbol."),
		sheetArg(),
		chordRef,
		mcp.WithString("symbol", mcp.Required(), mcp.Description("New chord symbol.")),
	), handle(func(ctx context.Context, args chordArgs) (any, error) {
		return svc.ChangeChord(ctx, args.Sheet, args.Chord, args.Symbol)
	}))

	srv.AddTool(mcp.NewTool(
		"remove_chord",
		mcp.WithDescription("Remove a chord symbol."),
		sheetArg(),
		chordRef,
	), handle(func(ctx context.Context, args chordArgs) (any, error) {
		return svc.RemoveChord(ctx, args.Sheet, args.Chord)
	}))
}

func registerSectionTools(srv *server.MCPServer, svc *Service) {
	sectionRef := mcp.WithString("section",
		mcp.Required(),
		mcp.Description("Section name, id or unique id prefix."),
	)

	srv.AddTool(mcp.NewTool(
		"add_section",
		mcp.WithDescription("Start a new section at a bar. Chords in the affected bars are rescaled to the new time signature."),
		sheetArg(),
		mcp.WithString("name", mcp.Required(), mcp.Description("Unique section name.")),
		mcp.WithString("time_signature", mcp.Description("Time signature, 4/4 when omitted.")),
		mcp.WithNumber("bar", mcp.Required(), mcp.Description("Bar the section starts at.")),
	), handle(func(ctx context.Context, args sectionArgs) (any, error) {
		return svc.AddSection(ctx, args.Sheet, args.Name, args.TimeSignature, args.Bar)
	}))

	srv.AddTool(mcp.NewTool(
		"move_section",
		mcp.WithDescription("Move a section to another bar. The initial section cannot move."),
		sheetArg(),
		sectionRef,
		mcp.WithNumber("bar", mcp.Required(), mcp.Description("New start bar.")),
	), handle(func(ctx context.Context, args sectionArgs) (any, error) {
		return svc.MoveSection(ctx, args.Sheet, args.Section, args.Bar)
	}))

	srv.AddTool(mcp.NewTool(
		"remove_section",
		mcp.WithDescription("Remove a section; its bars join the previous section. The initial section cannot be removed."),
		sheetArg(),
		sectionRef,
	), handle(func(ctx context.Context, args sectionArgs) (any, error) {
		return svc.RemoveSection(ctx, args.Sheet, args.Section)
	}))

	srv.AddTool(mcp.NewTool(
		"rename_section",
		mcp.WithDescription("Rename a section."),
		sheetArg(),
		sectionRef,
		mcp.WithString("name", mcp.Required(), mcp.Description("New unique section name.")),
	), handle(func(ctx context.Context, args sectionArgs) (any, error) {
		return svc.RenameSection(ctx, args.Sheet, args.Section, args.Name)
	}))

	srv.AddTool(mcp.NewTool(
		"set_time_signature",
		mcp.WithDescription("Change the time signature of a section, rescaling its chords."),
		sheetArg(),
		sectionRef,
		mcp.WithString("time_signature", mcp.Required(), mcp.Description("New time signature.")),
	), handle(func(ctx context.Context, args sectionArgs) (any, error) {
		return svc.SetTimeSignature(ctx, args.Sheet, args.Section, args.TimeSignature)
	}))
}

func registerBarTools(srv *server.MCPServer, svc *Service) {
	srv.AddTool(mcp.NewTool(
		"set_size",
		mcp.WithDescription("Set the number of bars. Shrinking removes the items in the dropped bars."),
		sheetArg(),
		mcp.WithNumber("size", mcp.Required(), mcp.Description("New number of bars.")),
	), handle(func(ctx context.Context, args barArgs) (any, error) {
		return svc.SetSize(ctx, args.Sheet, args.Size)
	}))

	srv.AddTool(mcp.NewTool(
		"insert_bars",
		mcp.WithDescription("Insert empty bars before a bar, shifting later items right."),
		sheetArg(),
		mcp.WithNumber("bar", mcp.Required(), mcp.Description("Bar to insert before; the sheet size appends.")),
		mcp.WithNumber("count", mcp.Required(), mcp.Description("Number of bars to insert.")),
	), handle(func(ctx context.Context, args barArgs) (any, error) {
		return svc.InsertBars(ctx, args.Sheet, args.Bar, args.Count)
	}))

	srv.AddTool(mcp.NewTool(
		"delete_bars",
		mcp.WithDescription("Delete an inclusive range of bars with their items, shifting later items left."),
		sheetArg(),
		mcp.WithNumber("from", mcp.Required(), mcp.Description("First bar to delete.")),
		mcp.WithNumber("to", mcp.Required(), mcp.Description("Last bar to delete.")),
	), handle(func(ctx context.Context, args barArgs) (any, error) {
		return svc.DeleteBars(ctx, args.Sheet, args.From, args.To)
	}))
}

func registerHistoryTools(srv *server.MCPServer, svc *Service) {
	srv.AddTool(mcp.NewTool(
		"undo",
		mcp.WithDescription("Undo the last change made to a sheet in this server session."),
		sheetArg(),
	), handle(func(ctx context.Context, args sheetArgs) (any, error) {
		return svc.Undo(ctx, args.Sheet)
	}))

	srv.AddTool(mcp.NewTool(
		"redo",
		mcp.WithDescription("Redo the last undone change of a sheet."),
		sheetArg(),
	), handle(func(ctx context.Context, args sheetArgs) (any, error) {
		return svc.Redo(ctx, args.Sheet)
	}))
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
