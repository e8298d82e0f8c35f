package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/cpusim/internal/render"
	"github.com/me/cpusim/pkg/model"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect runs saved with run --save",
	}
	cmd.AddCommand(newHistoryListCmd(), newHistoryShowCmd(), newHistoryDeleteCmd())
	return cmd
}

func newHistoryListCmd() *cobra.Command {
	opts := model.DefaultListOptions()
	var algorithm string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if algorithm != "" {
				alg, err := model.ParseAlgorithm(algorithm)
				if err != nil {
					return err
				}
				opts.Algorithm = string(alg)
			}
			opts.Clamp()

			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			runs, total, err := st.ListRuns(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs found.")
				return nil
			}
			render.History(out, runs)
			if opts.Offset+len(runs) < total {
				fmt.Fprintf(out, "\n(%d of %d shown)\n", len(runs), total)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", opts.Limit, "Maximum runs to show (max 100)")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "Skip this many runs")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "Only show runs of this algorithm")

	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <run_id>",
		Short: "Print the report of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := st.GetRun(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get run: %w", err)
			}
			if run == nil {
				return fmt.Errorf("run %s not found", args[0])
			}

			out := cmd.OutOrStdout()
			if output == "json" {
				return writeJSON(out, run)
			}
			if run.Result == nil {
				return fmt.Errorf("run %s has no result", run.ID)
			}
			render.Report(out, run.Name, run.Result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table or json")
	return cmd
}

func newHistoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run_id>",
		Short: "Delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			deleted, err := st.DeleteRun(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("delete run: %w", err)
			}
			if !deleted {
				return fmt.Errorf("run %s not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Run deleted: %s\n", args[0])
			return nil
		},
	}
}
