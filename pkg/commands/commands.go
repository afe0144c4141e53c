package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/leadsheet/pkg/app"
	"tableflip.dev/leadsheet/pkg/commands/options"
	"tableflip.dev/leadsheet/pkg/logging"
	"tableflip.dev/leadsheet/pkg/store"
)

var (
	oo  = &options.OutputOptions{}
	lo  = &options.LogOptions{}
	cfg store.Config
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "leadsheet",
		Short: base.Wrap80("Lead sheets on the command line: sections, time signatures and chord symbols."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	options.AddLogArgs(cmd, lo)
	options.AddOutputArg(cmd, oo)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addNew(topLevel)
	addList(topLevel)
	addShow(topLevel)
	addRemove(topLevel)
	addChord(topLevel)
	addSection(topLevel)
	addBars(topLevel)
	addImport(topLevel)
	addExport(topLevel)
	addKey(topLevel)
	addWatch(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// setup loads the config and initializes logging; flags win over config.
func setup() error {
	c, err := store.LoadConfig()
	if err != nil {
		return err
	}
	cfg = c

	levelName := lo.Level
	if levelName == "" {
		levelName = c.LogLevel()
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}
	formatName := lo.Format
	if formatName == "" {
		formatName = c.LogFormat()
	}
	format, err := logging.ParseFormat(formatName)
	if err != nil {
		return err
	}
	logging.InitLogger(level, format, os.Stderr)
	return nil
}

func persistence() (store.Persistence, error) {
	return store.Load(cfg)
}

func service() (*app.Service, error) {
	p, err := persistence()
	if err != nil {
		return nil, err
	}
	svc := &app.Service{Persistence: p}
	if cfg != nil {
		svc.UndoLimit = cfg.UndoLimit()
	}
	return svc, nil
}

func intArg(name, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", name, raw)
	}
	return n, nil
}
