package cmd

import (
	"github.com/spf13/cobra"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the service state and connection settings",
		Long: `Shows whether the database service is running, the connection settings in
use (the password only as set or not set) and, when the service is running,
the result of a single connectivity query. Problems are reported as
warnings; status always succeeds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := opts.bootstrap(cmd)
			if err != nil {
				return err
			}
			defer application.Close()

			res := application.Services().NewOrchestrator(nil, nil).Status(cmd.Context())
			printStatus(cmd.OutOrStdout(), cmd.ErrOrStderr(), res)
			return nil
		},
	}
}
