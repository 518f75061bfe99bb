package cmd

import (
	"github.com/spf13/cobra"
)

func newStartCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the database service and verify it",
		Long: `Checks the host prerequisites, starts the database service if it is not
already running, waits for its health check and then runs a single
connectivity query. A service that does not become healthy in time is
reported as a warning; the command still succeeds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := opts.bootstrap(cmd)
			if err != nil {
				return err
			}
			defer application.Close()

			out := cmd.OutOrStdout()
			orch := application.Services().NewOrchestrator(nil, stateChangePrinter(out))
			res, err := orch.Start(cmd.Context())
			if err != nil {
				return err
			}
			printStart(out, cmd.ErrOrStderr(), res)
			return nil
		},
	}
}
