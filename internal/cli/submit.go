package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/cpusim/internal/render"
	"github.com/me/cpusim/pkg/model"
)

func newSubmitCmd() *cobra.Command {
	var (
		flags  simFlags
		name   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "submit <workload>",
		Short: "Run a simulation on a cpusim server",
		Long:  "Load a workload locally, then have the server simulate and store it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := loadWorkload(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = w.Name
			}
			req := flags.request(name, w.Processes)

			path := "/api/v1/simulations"
			if dryRun {
				path += "?dry_run=true"
			}
			logger.Debug("submitting simulation", "server", flagServer, "processes", len(req.Processes))
			resp, err := client.Post(cmd.Context(), path, req)
			if err != nil {
				return fmt.Errorf("submit: %w", err)
			}

			out := cmd.OutOrStdout()
			if dryRun {
				var data struct {
					Config       model.SimulationConfig `json:"config"`
					ProcessCount int                    `json:"process_count"`
				}
				if err := json.Unmarshal(resp.Data, &data); err != nil {
					return fmt.Errorf("parse response: %w", err)
				}
				fmt.Fprintf(out, "Dry run: %d processes valid for %s\n", data.ProcessCount, data.Config.Label())
				return nil
			}

			var run model.Run
			if err := json.Unmarshal(resp.Data, &run); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}
			fmt.Fprintf(out, "Simulation stored: %s\n\n", run.ID)
			if run.Result != nil {
				render.Processes(out, run.Result)
				fmt.Fprintln(out)
				render.Metrics(out, run.Result)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "Run name (default: workload name)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate on the server without simulating")

	return cmd
}
