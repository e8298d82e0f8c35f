package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/cpusim/pkg/model"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <workload>",
		Short: "Check a workload file without simulating it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			w, err := loadWorkload(args[0])
			if err != nil {
				details := model.ValidationDetails(err)
				if len(details) == 0 {
					return err
				}
				for _, d := range details {
					fmt.Fprintf(out, "  %s: %s\n", d.Field, d.Message)
				}
				return errors.New("workload is invalid")
			}

			fmt.Fprintf(out, "Workload: %s\n", w.Name)
			fmt.Fprintf(out, "  Processes:   %d\n", len(w.Processes))
			fmt.Fprintf(out, "  Total burst: %d\n", w.TotalBurst())
			fmt.Fprintln(out, "Workload is valid.")
			return nil
		},
	}
}
