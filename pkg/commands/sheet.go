package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/leadsheet/pkg/commands/options"
	"tableflip.dev/leadsheet/pkg/runner/list"
	"tableflip.dev/leadsheet/pkg/runner/show"
)

func addNew(topLevel *cobra.Command) {
	to := &options.TimeSignatureOptions{}
	var (
		section string
		size    int
	)

	cmd := &cobra.Command{
		Use:   "new <sheet>",
		Short: "Create an empty lead sheet",
		Example: `
leadsheet new "Autumn Leaves" --size 32
leadsheet new Waltz --size 16 --time 3/4 --section Intro
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := to.GetTimeSignature()
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := service()
			if err != nil {
				return oo.HandleError(err)
			}
			if _, err := svc.Create(cmd.Context(), args[0], section, ts, size); err != nil {
				return oo.HandleError(err)
			}
			s := show.Show{Service: svc, Sheet: args[0], JSON: oo.JSON}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddTimeSignatureArgs(cmd, to)
	cmd.Flags().StringVar(&section, "section", "A", "Name of the initial section.")
	cmd.Flags().IntVar(&size, "size", 32, "Number of bars.")

	topLevel.AddCommand(cmd)
}

func addList(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the stored lead sheets",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := persistence()
			if err != nil {
				return oo.HandleError(err)
			}
			l := list.List{Persistence: p, ShowID: io.ShowID, JSON: oo.JSON}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var items bool

	cmd := &cobra.Command{
		Use:   "show <sheet>",
		Short: "Show a lead sheet as a bar grid",
		Example: `
leadsheet show "Autumn Leaves"
leadsheet show "Autumn Leaves" --items --show-id
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSheetArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service()
			if err != nil {
				return oo.HandleError(err)
			}
			s := show.Show{Service: svc, Sheet: args[0], ShowID: io.ShowID, Items: items, JSON: oo.JSON}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	cmd.Flags().BoolVarP(&items, "items", "i", false, "Also list every section and chord symbol.")
	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "rm <sheet>",
		Short:             "Delete a lead sheet",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSheetArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service()
			if err != nil {
				return oo.HandleError(err)
			}
			return oo.HandleError(svc.Delete(cmd.Context(), args[0]))
		},
	}

	topLevel.AddCommand(cmd)
}

func completeSheetArg(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return sheetCompletions(ctx, toComplete), cobra.ShellCompDirectiveNoFileComp
}
