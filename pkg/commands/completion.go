package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/leadsheet/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(leadsheet completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(leadsheet completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func sheetCompletions(ctx context.Context, toComplete string) []string {
	if ctx == nil {
		ctx = context.Background()
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil
	}
	var names []string
	for _, m := range p.List(ctx) {
		if strings.HasPrefix(m.Name, toComplete) {
			names = append(names, m.Name)
		}
	}
	return names
}
