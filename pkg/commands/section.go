package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/leadsheet/pkg/app"
	"tableflip.dev/leadsheet/pkg/commands/options"
	"tableflip.dev/leadsheet/pkg/harmony"
)

func addSection(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "section",
		Short: "Add, move, remove, rename or retime sections",
		Long: `A section starts at a bar and lasts until the next section. Chord symbols
in bars whose time signature changes are rescaled proportionally. A section
is referenced by its name, its id or a unique id prefix.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addSectionAdd(cmd)
	addSectionMove(cmd)
	addSectionRemove(cmd)
	addSectionRename(cmd)
	addSectionTimeSignature(cmd)

	topLevel.AddCommand(cmd)
}

func addSectionAdd(topLevel *cobra.Command) {
	to := &options.TimeSignatureOptions{}
	cmd := &cobra.Command{
		Use:   "add <name> <bar>",
		Short: "Start a new section at a bar",
		Example: `
leadsheet section add Bridge 16 --time 3/4 --sheet "Autumn Leaves"
`,
		Args: cobra.ExactArgs(2),
	}
	e := newEditCommand(cmd)
	options.AddTimeSignatureArgs(cmd, to)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		bar, err := intArg("bar", args[1])
		if err != nil {
			return oo.HandleError(err)
		}
		ts, err := to.GetTimeSignature()
		if err != nil {
			return oo.HandleError(err)
		}
		return e.run(cmd, func(ctx context.Context, svc *app.Service, sheet string) (*app.Result, error) {
			return svc.AddSection(ctx, sheet, args[0], ts, bar)
		})
	}
	topLevel.AddCommand(cmd)
}

func addSectionMove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "move <section> <bar>",
		Short: "Move a section to another bar",
		Args:  cobra.ExactArgs(2),
	}
	e := newEditCommand(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		bar, err := intArg("bar", args[1])
		if err != nil {
			return oo.HandleError(err)
		}
		return e.run(cmd, func(ctx context.Context, svc *app.Service, sheet string) (*app.Result, error) {
			return svc.MoveSection(ctx, sheet, args[0], bar)
		})
	}
	topLevel.AddCommand(cmd)
}

func addSectionRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "remove <section>",
		Aliases: []string{"rm"},
		Short:   "Remove a section, its bars join the previous one",
		Args:    cobra.ExactArgs(1),
	}
	e := newEditCommand(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return e.run(cmd, func(ctx context.Context, svc *app.Service, sheet string) (*app.Result, error) {
			return svc.RemoveSection(ctx, sheet, args[0])
		})
	}
	topLevel.AddCommand(cmd)
}

func addSectionRename(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rename <section> <name>",
		Short: "Rename a section",
		Args:  cobra.ExactArgs(2),
	}
	e := newEditCommand(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return e.run(cmd, func(ctx context.Context, svc *app.Service, sheet string) (*app.Result, error) {
			return svc.RenameSection(ctx, sheet, args[0], args[1])
		})
	}
	topLevel.AddCommand(cmd)
}

func addSectionTimeSignature(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "timesig <section> <time signature>",
		Short: "Change the time signature of a section",
		Example: `
leadsheet section timesig Bridge 6/8 --sheet "Autumn Leaves"
`,
		Args: cobra.ExactArgs(2),
	}
	e := newEditCommand(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ts, err := harmony.ParseTimeSignature(args[1])
		if err != nil {
			return oo.HandleError(err)
		}
		return e.run(cmd, func(ctx context.Context, svc *app.Service, sheet string) (*app.Result, error) {
			return svc.SetTimeSignature(ctx, sheet, args[0], ts)
		})
	}
	topLevel.AddCommand(cmd)
}
