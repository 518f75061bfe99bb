package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hadesctl/internal/harness"
)

func newTestCmd(opts *rootOptions) *cobra.Command {
	var (
		output      string
		reportDir   string
		metricsFile string
		filter      string
	)

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run the environment test suite against the local service",
		Long: `Runs every registered test unit (names starting with test_) in name order
against the managed database service and the Python runtime. Units stop and
start the service themselves. Each result is printed as it completes,
followed by a summary.

The command exits 1 if any unit fails or no unit matches.`,
		Example: `  hadesctl test
  hadesctl test --run container
  hadesctl test --output json --report ./reports
  hadesctl test --output quiet --metrics-file /var/lib/node_exporter/hadesctl.prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			testConfig := harness.TestConfiguration{
				Filter:      filter,
				Output:      harness.OutputFormat(output),
				ReportPath:  reportDir,
				MetricsPath: metricsFile,
			}
			reporter, err := harness.NewReporter(testConfig.Output, cmd.OutOrStdout(), isTerminal(cmd.OutOrStdout()))
			if err != nil {
				return &usageError{msg: err.Error()}
			}

			application, err := opts.bootstrap(cmd)
			if err != nil {
				return err
			}
			defer application.Close()

			units := harness.DefaultRegistry().Discover(testConfig.Filter)
			runner := harness.NewTestRunner(application.Services().HarnessEnv(), reporter)
			summary := runner.Run(cmd.Context(), units)

			if testConfig.ReportPath != "" {
				path, err := harness.SaveReport(testConfig.ReportPath, *summary)
				if err != nil {
					return fmt.Errorf("failed to save test report: %w", err)
				}
				if testConfig.Output == harness.OutputText {
					fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", path)
				}
			}
			if testConfig.MetricsPath != "" {
				if err := harness.WriteMetrics(testConfig.MetricsPath, *summary); err != nil {
					return fmt.Errorf("failed to write test metrics: %w", err)
				}
			}

			if code := summary.ExitCode(); code != 0 {
				return &exitError{code: code}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(harness.OutputText), "Output format: text, quiet or json")
	cmd.Flags().StringVar(&reportDir, "report", "", "Directory to save a JSON report into")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write results in Prometheus text format to this file")
	cmd.Flags().StringVar(&filter, "run", "", "Only run units whose name contains this string")
	return cmd
}
