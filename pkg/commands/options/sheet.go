// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// SheetOptions selects the lead sheet a command works on.
type SheetOptions struct {
	Sheet string
}

// AddSheetArgs registers the required --sheet flag.
func AddSheetArgs(cmd *cobra.Command, o *SheetOptions) {
	cmd.Flags().StringVarP(&o.Sheet, "sheet", "s", "",
		"Specify the lead sheet.")
	_ = cmd.MarkFlagRequired("sheet")
}
