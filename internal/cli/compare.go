package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/flowtrace/flow"
)

func (a *app) compareCommand() *cobra.Command {
	var (
		input  inputFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run every engine on the same network and summarise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(output); err != nil {
				return err
			}
			doc, nw, err := input.load(cmd, a.cfg.DuplicatePolicy())
			if err != nil {
				return err
			}
			c, err := flow.Compare(nw, doc.Source, doc.Sink, flow.WithOptions(a.cfg.FlowOptions(a.log)))
			if err != nil {
				return err
			}
			if output == formatText {
				writeComparison(cmd.OutOrStdout(), c)
				return nil
			}
			return encode(cmd.OutOrStdout(), output, c)
		},
	}
	input.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", formatText, "output format: text, json or yaml")

	return cmd
}
