package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/leadsheet/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print a line whenever a stored lead sheet changes",
		Long: `Follow the store until interrupted. Output that is not a terminal, or
--json, gets one JSON object per change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := persistence()
			if err != nil {
				return oo.HandleError(err)
			}
			w := watch.Watch{Persistence: p, JSON: oo.JSON}
			return oo.HandleError(w.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
