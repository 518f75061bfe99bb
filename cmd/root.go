package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hadesctl/internal/app"
	"hadesctl/internal/orchestrator"
)

var version = "dev"

// SetVersion sets the version reported by `hadesctl version` and --version
func SetVersion(v string) {
	version = v
}

// usageError is printed together with the usage text.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// exitError ends the process with code after output has already been written.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// rootOptions holds the global flags and the application factory.
type rootOptions struct {
	configPath string
	envFile    string
	debug      bool
	logFile    string

	newApp func(cfg *app.Config, stderr io.Writer) (*app.Application, error)
}

func defaultNewApp(cfg *app.Config, stderr io.Writer) (*app.Application, error) {
	return app.NewApplication(cfg, app.Options{LogOutput: stderr})
}

// bootstrap loads configuration and wires services for one command.
func (o *rootOptions) bootstrap(cmd *cobra.Command) (*app.Application, error) {
	cfg := app.NewConfig(o.configPath, o.envFile, o.debug, o.logFile)
	newApp := o.newApp
	if newApp == nil {
		newApp = defaultNewApp
	}
	return newApp(cfg, cmd.ErrOrStderr())
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hadesctl",
		Short: "Manage the local development database",
		Long: `hadesctl starts, stops, inspects and rebuilds the local PostgreSQL service
defined in the project's compose file, checks the companion Python runtime,
and runs a small suite of environment checks against the result.`,
		Version: version,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &usageError{msg: "no command given"}
			}
			return &usageError{msg: fmt.Sprintf("unknown command %q", args[0])}
		},
		// Errors and usage are printed by run so the exit code mapping lives in one place.
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.SetVersionTemplate(`{{printf "hadesctl version %s\n" .Version}}`)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to a config file (default: ~/.config/hadesctl/config.yaml and .hadesctl/config.yaml)")
	flags.StringVar(&opts.envFile, "env-file", "", "Path to the credentials file (default: .env)")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.StringVar(&opts.logFile, "log-file", "", "Also write all log records to this rotated file")

	rootCmd.AddCommand(newStartCmd(opts))
	rootCmd.AddCommand(newStopCmd(opts))
	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newRebuildCmd(opts))
	rootCmd.AddCommand(newTestCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the CLI and exits with its status code.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, &rootOptions{}, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes args and maps the outcome to an exit code.
func run(ctx context.Context, opts *rootOptions, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(opts)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}

	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(stderr, "Error: %s\n\n", usageErr.msg)
		if cmd == nil {
			cmd = rootCmd
		}
		fmt.Fprint(stderr, cmd.UsageString())
		return 1
	}

	printError(stderr, err)
	var preErr *orchestrator.PreconditionError
	if errors.As(err, &preErr) {
		printFailedChecks(stderr, preErr)
	}
	return 1
}
