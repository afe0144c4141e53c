package options

import (
	"github.com/spf13/cobra"
)

// TransferOptions
type TransferOptions struct {
	File    string
	Replace bool
}

func AddImportArgs(cmd *cobra.Command, o *TransferOptions) {
	cmd.Flags().StringVarP(&o.File, "file", "f", "-",
		"Chart file to read, - for stdin.")
	cmd.Flags().BoolVar(&o.Replace, "replace", false,
		"Replace an existing sheet of the same name.")
}

func AddExportArgs(cmd *cobra.Command, o *TransferOptions) {
	cmd.Flags().StringVarP(&o.File, "file", "f", "-",
		"Chart file to write, - for stdout.")
}
