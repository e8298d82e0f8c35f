package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <run_id>",
		Short: "Print a run stored on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			path := "/api/v1/simulations/" + args[0]
			out := cmd.OutOrStdout()

			if output == "json" {
				resp, err := client.Get(cmd.Context(), path)
				if err != nil {
					return fmt.Errorf("get simulation: %w", err)
				}
				_, err = out.Write(append(resp.Data, '\n'))
				return err
			}

			report, err := client.GetText(cmd.Context(), path+"/report")
			if err != nil {
				return fmt.Errorf("get report: %w", err)
			}
			fmt.Fprint(out, report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table or json")
	return cmd
}
