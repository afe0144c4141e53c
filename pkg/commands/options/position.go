package options

import (
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/leadsheet/pkg/harmony"
)

// TimeSignatureOptions
type TimeSignatureOptions struct {
	TimeSignature string
}

func AddTimeSignatureArgs(cmd *cobra.Command, o *TimeSignatureOptions) {
	cmd.Flags().StringVarP(&o.TimeSignature, "time", "t", "4/4",
		base.Wrap80(`Time signature of the section, example: --time=3/4 or --time=6/8.`))
}

func (o *TimeSignatureOptions) GetTimeSignature() (harmony.TimeSignature, error) {
	return harmony.ParseTimeSignature(o.TimeSignature)
}

// GetPosition reads "bar" or "bar:beat"; bars and beats count from 0.
func GetPosition(raw string) (harmony.Position, error) {
	return harmony.ParsePosition(raw)
}
