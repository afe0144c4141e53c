package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/leadsheet/pkg/app"
	"tableflip.dev/leadsheet/pkg/commands/options"
)

func addChord(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "chord",
		Short: "Add, move, change or remove chord symbols",
		Long: `Chord symbols sit at a position "bar:beat"; bars and beats count from 0.
A chord symbol is referenced by its position, its id or a unique id prefix
(see --show-id).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addChordAdd(cmd)
	addChordMove(cmd)
	addChordChange(cmd)
	addChordRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addChordAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add <symbol> <bar[:beat]>",
		Short: "Add a chord symbol",
		Example: `
leadsheet chord add Dm7 1:2 --sheet "Autumn Leaves"
`,
		Args: cobra.ExactArgs(2),
	}
	e := newEditCommand(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		pos, err := options.GetPosition(args[1])
		if err != nil {
			return oo.HandleError(err)
		}
		return e.run(cmd, func(ctx context.Context, svc *app.Service, sheet string) (*app.Result, error) {
			return svc.AddChord(ctx, sheet, args[0], pos)
		})
	}
	topLevel.AddCommand(cmd)
}

func addChordMove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "move <chord> <bar[:beat]>",
		Short: "Move a chord symbol",
		Example: `
leadsheet chord move 1:2 3 --sheet "Autumn Leaves"
`,
		Args: cobra.ExactArgs(2),
	}
	e := newEditCommand(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		pos, err := options.GetPosition(args[1])
		if err != nil {
			return oo.HandleError(err)
		}
		return e.run(cmd, func(ctx context.Context, svc *app.Service, sheet string) (*app.Result, error) {
			return svc.MoveChord(ctx, sheet, args[0], pos)
		})
	}
	topLevel.AddCommand(cmd)
}

func addChordChange(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "change <chord> <symbol>",
		Short: "Replace the chord of a chord symbol",
		Example: `
leadsheet chord change 1:2 Dm9 --sheet "Autumn Leaves"
`,
		Args: cobra.ExactArgs(2),
	}
	e := newEditCommand(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return e.run(cmd, func(ctx context.Context, svc *app.Service, sheet string) (*app.Result, error) {
			return svc.ChangeChord(ctx, sheet, args[0], args[1])
		})
	}
	topLevel.AddCommand(cmd)
}

func addChordRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "remove <chord>",
		Aliases: []string{"rm"},
		Short:   "Remove a chord symbol",
		Args:    cobra.ExactArgs(1),
	}
	e := newEditCommand(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return e.run(cmd, func(ctx context.Context, svc *app.Service, sheet string) (*app.Result, error) {
			return svc.RemoveChord(ctx, sheet, args[0])
		})
	}
	topLevel.AddCommand(cmd)
}
