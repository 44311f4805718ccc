package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/flowtrace/network"
)

func (a *app) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [name]",
		Short: "List built-in networks, or print one as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				doc, err := network.Preset(args[0])
				if err != nil {
					return err
				}
				return doc.Encode(out)
			}
			for _, name := range network.PresetNames() {
				doc, _ := network.Preset(name)
				fmt.Fprintf(out, "%-14s %2d edges\n", name, len(doc.Edges))
			}
			return nil
		},
	}
}
