package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/leadsheet/pkg/commands/options"
	"tableflip.dev/leadsheet/pkg/runner/transfer"
)

func addImport(topLevel *cobra.Command) {
	to := &options.TransferOptions{}

	cmd := &cobra.Command{
		Use:   "import <sheet>",
		Short: "Store a lead sheet read from a text chart",
		Long: `A chart lists sections and their bars:

  section "A" 4/4
  | Dm7 G7 | Cmaj7 | - | Cmaj7@2 |

Chords in a bar are spread evenly unless given an explicit @beat, and -
marks an empty bar.`,
		Example: `
leadsheet import "Autumn Leaves" -f autumn.chart
cat autumn.chart | leadsheet import "Autumn Leaves" --replace
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service()
			if err != nil {
				return oo.HandleError(err)
			}
			i := transfer.Import{Service: svc, Sheet: args[0], File: to.File, Replace: to.Replace, In: cmd.InOrStdin()}
			return oo.HandleError(i.Do(cmd.Context()))
		},
	}

	options.AddImportArgs(cmd, to)
	topLevel.AddCommand(cmd)
}

func addExport(topLevel *cobra.Command) {
	to := &options.TransferOptions{}

	cmd := &cobra.Command{
		Use:               "export <sheet>",
		Short:             "Write a lead sheet as a text chart",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSheetArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service()
			if err != nil {
				return oo.HandleError(err)
			}
			e := transfer.Export{Service: svc, Sheet: args[0], File: to.File, Out: cmd.OutOrStdout()}
			return oo.HandleError(e.Do(cmd.Context()))
		},
	}

	options.AddExportArgs(cmd, to)
	topLevel.AddCommand(cmd)
}
