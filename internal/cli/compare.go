package cli

import (
	"github.com/spf13/cobra"

	"github.com/me/cpusim/internal/batch"
	"github.com/me/cpusim/internal/render"
)

func newCompareCmd() *cobra.Command {
	opts := batch.DefaultOptions()
	var output string

	cmd := &cobra.Command{
		Use:   "compare <workload>",
		Short: "Simulate a workload under every algorithm and compare the metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			w, err := loadWorkload(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("quantum") && settings.Simulation.Quantum > 0 {
				opts.Quantum = settings.Simulation.Quantum
			}

			outcomes, err := batch.NewComparer(logger).Compare(cmd.Context(), w.Processes, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output == "json" {
				return writeJSON(out, outcomes)
			}
			render.Title(out, w.Name+" - comparison")
			render.Comparison(out, batch.Results(outcomes))
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Quantum, "quantum", "q", opts.Quantum, "Round-Robin time quantum")
	cmd.Flags().IntVar(&opts.Parallelism, "parallel", opts.Parallelism, "Maximum concurrent simulations (0 = unbounded)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table or json")

	return cmd
}
