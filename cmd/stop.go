package cmd

import (
	"github.com/spf13/cobra"
)

func newStopCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the database service (data is kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := opts.bootstrap(cmd)
			if err != nil {
				return err
			}
			defer application.Close()

			out := cmd.OutOrStdout()
			res, err := application.Services().NewOrchestrator(nil, stateChangePrinter(out)).Stop(cmd.Context())
			if err != nil {
				return err
			}
			printStop(out, res)
			return nil
		},
	}
}
