package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/flowtrace/flow"
)

type runFlags struct {
	input     inputFlags
	algorithm string
	maxSteps  int
	verbose   bool
	output    string
	step      int
}

func (a *app) runCommand() *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one engine and print its trace",
		Long: `Run one max-flow engine on a network and print the full trace, or with
--step the network state at a single record (-1 is the initial network).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, f)
		},
	}
	f.input.register(cmd)
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", "", "edmonds-karp, dinic or push-relabel (default from config)")
	cmd.Flags().IntVar(&f.maxSteps, "max-steps", 0, "abort once the trace exceeds this many records (default from config)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log every record at trace level")
	cmd.Flags().StringVarP(&f.output, "output", "o", formatText, "output format: text, json or yaml")
	cmd.Flags().IntVar(&f.step, "step", flow.NoSelection, "print only the view of this record")

	return cmd
}

func (a *app) run(cmd *cobra.Command, f *runFlags) error {
	if err := checkFormat(f.output); err != nil {
		return err
	}
	alg := a.cfg.Algorithm()
	if f.algorithm != "" {
		var err error
		if alg, err = flow.ParseAlgorithm(f.algorithm); err != nil {
			return err
		}
	}
	opts := a.cfg.FlowOptions(a.log)
	if cmd.Flags().Changed("max-steps") {
		opts.MaxSteps = f.maxSteps
	}
	if f.verbose {
		opts.Verbose = true
	}

	doc, nw, err := f.input.load(cmd, a.cfg.DuplicatePolicy())
	if err != nil {
		return err
	}
	tr, err := flow.Run(alg, nw, doc.Source, doc.Sink, flow.WithOptions(opts))
	if err != nil {
		return err
	}
	a.log.Debug().Str("trace_id", tr.ID).Int("steps", tr.Len()).Msg("trace computed")

	out := cmd.OutOrStdout()
	if cmd.Flags().Changed("step") {
		v, err := tr.At(f.step)
		if err != nil {
			return err
		}
		if f.output == formatText {
			writeView(out, v)
			return nil
		}
		return encode(out, f.output, v)
	}
	if f.output == formatText {
		writeTrace(out, tr)
		return nil
	}

	return encode(out, f.output, tr)
}
