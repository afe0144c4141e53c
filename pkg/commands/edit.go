package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/leadsheet/pkg/commands/options"
	"tableflip.dev/leadsheet/pkg/runner/edit"
)

// editCommand wires the flags every editing command shares and runs op
// against the selected sheet.
type editCommand struct {
	so *options.SheetOptions
	io *options.IDOptions
}

func newEditCommand(cmd *cobra.Command) *editCommand {
	e := &editCommand{so: &options.SheetOptions{}, io: &options.IDOptions{}}
	options.AddSheetArgs(cmd, e.so)
	options.AddShowIDArgs(cmd, e.io)
	_ = cmd.RegisterFlagCompletionFunc("sheet", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return sheetCompletions(cmd.Context(), toComplete), cobra.ShellCompDirectiveNoFileComp
	})
	return e
}

func (e *editCommand) run(cmd *cobra.Command, op edit.Operation) error {
	svc, err := service()
	if err != nil {
		return oo.HandleError(err)
	}
	r := edit.Edit{
		Service:   svc,
		Sheet:     e.so.Sheet,
		Operation: op,
		ShowID:    e.io.ShowID,
		JSON:      oo.JSON,
	}
	return oo.HandleError(r.Do(cmd.Context()))
}
