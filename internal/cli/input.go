package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/flowtrace/network"
)

var errInputChoice = errors.New("exactly one of --file or --preset is required")

// inputFlags selects the network a command runs on.
type inputFlags struct {
	file   string
	preset string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", `network document (YAML or JSON); "-" reads stdin`)
	cmd.Flags().StringVarP(&f.preset, "preset", "p", "", "built-in network name (see 'flowtrace presets')")
}

// load decodes the selected document and builds its network.
func (f *inputFlags) load(cmd *cobra.Command, policy network.DuplicatePolicy) (network.Document, *network.Network, error) {
	var (
		doc network.Document
		err error
	)
	switch {
	case (f.file == "") == (f.preset == ""):
		return doc, nil, errInputChoice
	case f.preset != "":
		doc, err = network.Preset(f.preset)
	case f.file == "-":
		doc, err = network.Decode(cmd.InOrStdin())
	default:
		doc, err = network.LoadFile(f.file)
	}
	if err != nil {
		return doc, nil, err
	}

	nw, err := doc.Build(network.WithDuplicatePolicy(policy))
	if err != nil {
		return doc, nil, fmt.Errorf("build network: %w", err)
	}

	return doc, nw, nil
}
