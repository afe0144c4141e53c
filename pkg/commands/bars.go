package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/leadsheet/pkg/app"
)

func addBars(topLevel *cobra.Command) {
	addSize(topLevel)
	addInsertBars(topLevel)
	addDeleteBars(topLevel)
}

func addSize(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "size <bars>",
		Short: "Set the number of bars, dropping the items of removed bars",
		Args:  cobra.ExactArgs(1),
	}
	e := newEditCommand(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		size, err := intArg("bars", args[0])
		if err != nil {
			return oo.HandleError(err)
		}
		return e.run(cmd, func(ctx context.Context, svc *app.Service, sheet string) (*app.Result, error) {
			return svc.SetSize(ctx, sheet, size)
		})
	}
	topLevel.AddCommand(cmd)
}

func addInsertBars(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "insert-bars <bar> [count]",
		Short: "Insert empty bars before a bar",
		Example: `
leadsheet insert-bars 8 4 --sheet "Autumn Leaves"
`,
		Args: cobra.RangeArgs(1, 2),
	}
	e := newEditCommand(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		bar, err := intArg("bar", args[0])
		if err != nil {
			return oo.HandleError(err)
		}
		count := 1
		if len(args) > 1 {
			if count, err = intArg("count", args[1]); err != nil {
				return oo.HandleError(err)
			}
		}
		return e.run(cmd, func(ctx context.Context, svc *app.Service, sheet string) (*app.Result, error) {
			return svc.InsertBars(ctx, sheet, bar, count)
		})
	}
	topLevel.AddCommand(cmd)
}

func addDeleteBars(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "delete-bars <from> [to]",
		Short: "Delete an inclusive range of bars with their items",
		Args:  cobra.RangeArgs(1, 2),
	}
	e := newEditCommand(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		from, err := intArg("from", args[0])
		if err != nil {
			return oo.HandleError(err)
		}
		to := from
		if len(args) > 1 {
			if to, err = intArg("to", args[1]); err != nil {
				return oo.HandleError(err)
			}
		}
		return e.run(cmd, func(ctx context.Context, svc *app.Service, sheet string) (*app.Result, error) {
			return svc.DeleteBars(ctx, sheet, from, to)
		})
	}
	topLevel.AddCommand(cmd)
}
