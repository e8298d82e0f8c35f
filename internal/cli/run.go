package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/me/cpusim/internal/render"
	"github.com/me/cpusim/internal/scheduler"
	"github.com/me/cpusim/internal/tracing"
	"github.com/me/cpusim/internal/workload"
	"github.com/me/cpusim/pkg/model"
)

// simFlags are the algorithm selection flags shared by run and submit.
type simFlags struct {
	algorithm string
	modality  string
	quantum   int
}

func (f *simFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", "", "Scheduling algorithm: fcfs, sjf, rr, priority (default from config, fcfs)")
	cmd.Flags().StringVarP(&f.modality, "modality", "m", "", "preemptive or nonpreemptive, for sjf and priority")
	cmd.Flags().IntVarP(&f.quantum, "quantum", "q", 0, "Round-Robin time quantum (default from config, 2)")
}

// request fills unset flags from the config file defaults.
func (f *simFlags) request(name string, processes []model.Process) model.SimulationRequest {
	req := model.SimulationRequest{
		Name:      name,
		Algorithm: f.algorithm,
		Modality:  f.modality,
		Quantum:   f.quantum,
		Processes: processes,
	}
	if req.Algorithm == "" {
		req.Algorithm = settings.Simulation.Algorithm
	}
	if req.Modality == "" {
		req.Modality = settings.Simulation.Modality
	}
	if req.Quantum == 0 {
		req.Quantum = settings.Simulation.Quantum
	}
	return req
}

func loadWorkload(path string) (*workload.Workload, error) {
	w, err := workload.NewLoader(logger).LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load workload: %w", err)
	}
	return w, nil
}

func checkOutput(format string) error {
	switch format {
	case "table", "json":
		return nil
	}
	return fmt.Errorf("unknown output format %q (want table or json)", format)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRunCmd() *cobra.Command {
	var (
		flags  simFlags
		output string
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "run <workload>",
		Short: "Simulate a workload under one algorithm",
		Long: `Load a workload (CSV, YAML or JSON), simulate it tick by tick and print the
process timeline, Gantt bar, per-process table and metrics.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			w, err := loadWorkload(args[0])
			if err != nil {
				return err
			}
			cfg, err := flags.request(w.Name, w.Processes).Config()
			if err != nil {
				return err
			}

			_, span := tracing.Start(cmd.Context(), "cli.run",
				attribute.String("algorithm", cfg.Label()),
				attribute.Int("processes", len(w.Processes)),
			)
			res, err := scheduler.Run(w.Processes, cfg, logger)
			tracing.End(span, err)
			if err != nil {
				return err
			}
			logger.Info("simulation finished", "workload", w.Name, "algorithm", cfg.Label(), "duration", res.Duration)

			if save {
				if err := saveRun(cmd, w, res); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if output == "json" {
				return writeJSON(out, res)
			}
			render.Report(out, w.Name, res)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table or json")
	cmd.Flags().BoolVar(&save, "save", false, "Store the run in the local history database")

	return cmd
}

func saveRun(cmd *cobra.Command, w *workload.Workload, res *model.Result) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	run := &model.Run{
		ID:        "run_" + uuid.New().String(),
		Name:      w.Name,
		Config:    res.Config,
		Processes: w.Processes,
		Result:    res,
		CreatedAt: time.Now().UTC(),
	}
	if err := st.CreateRun(cmd.Context(), run); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Run saved: %s\n", run.ID)
	return nil
}
