package cmd

import (
	"github.com/spf13/cobra"

	"hadesctl/internal/prompt"
)

func newRebuildCmd(opts *rootOptions) *cobra.Command {
	var confirm string

	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Remove and recreate the database service containers and images",
		Long: `Removes the service containers and images, pulls the image again and
recreates the service, then verifies it the same way start does. The data
volume is kept.

The rebuild only proceeds after the confirmation token is typed exactly
(default REBUILD). Any other answer aborts without changing anything.
Use --confirm to supply the token non-interactively.`,
		Example: `  hadesctl rebuild
  hadesctl rebuild --confirm REBUILD`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := opts.bootstrap(cmd)
			if err != nil {
				return err
			}
			defer application.Close()

			out := cmd.OutOrStdout()
			var prompter prompt.Prompter = prompt.NewInteractivePrompterWithIO(cmd.InOrStdin(), out)
			if cmd.Flags().Changed("confirm") {
				prompter = prompt.StaticPrompter{Answer: confirm, Writer: out}
			}

			res, err := application.Services().NewOrchestrator(prompter, stateChangePrinter(out)).Rebuild(cmd.Context())
			if err != nil {
				return err
			}
			printRebuild(out, cmd.ErrOrStderr(), res)
			return nil
		},
	}

	cmd.Flags().StringVar(&confirm, "confirm", "", "Confirmation token, for non-interactive use")
	return cmd
}
