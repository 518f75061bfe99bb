package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"hadesctl/internal/color"
	"hadesctl/internal/orchestrator"
	"hadesctl/internal/services"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", color.Error.Render("Error:"), err)
}

func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintf(w, "%s %s\n", color.Warn.Render("Warning:"), msg)
	}
}

func printFailedChecks(w io.Writer, err *orchestrator.PreconditionError) {
	fmt.Fprintln(w, "\nFailed prerequisite checks:")
	for _, c := range err.Failed {
		fmt.Fprintf(w, "  %s %s\n", color.Mark(false), c.String())
	}
}

// stateChangePrinter narrates the transitions the orchestrator drives.
func stateChangePrinter(w io.Writer) services.StateChangeCallback {
	return func(service string, _, newState services.ServiceState) {
		switch newState {
		case services.StateStarting:
			fmt.Fprintf(w, "Starting %s...\n", service)
		case services.StateStopping:
			fmt.Fprintf(w, "Stopping %s...\n", service)
		case services.StateRebuilding:
			fmt.Fprintf(w, "Rebuilding %s...\n", service)
		}
	}
}

// printVerify reports the health wait and, if it ran, the connectivity check.
func printVerify(w io.Writer, v orchestrator.VerifyResult) {
	healthy := v.Health.Status == orchestrator.HealthOutcomeHealthy
	fmt.Fprintf(w, "%s %s\n", color.Mark(healthy), v.Health.Message)
	if v.Probe != nil {
		fmt.Fprintf(w, "%s %s\n", color.Mark(v.Probe.OK), v.Probe.Message)
	}
}

func printStart(out, errOut io.Writer, res orchestrator.StartResult) {
	if res.AlreadyRunning {
		fmt.Fprintf(out, "%s %s is already running\n", color.Mark(true), res.Service)
		printWarnings(errOut, res.Warnings)
		return
	}
	printVerify(out, res.Verify)
	printWarnings(errOut, res.Warnings)
}

func printStop(out io.Writer, res orchestrator.StopResult) {
	if res.AlreadyStopped {
		fmt.Fprintf(out, "%s %s is already stopped\n", color.Mark(true), res.Service)
		return
	}
	fmt.Fprintf(out, "%s %s stopped\n", color.Mark(true), res.Service)
}

func printRebuild(out, errOut io.Writer, res orchestrator.RebuildResult) {
	if res.Aborted {
		fmt.Fprintln(out, "Rebuild aborted. Nothing was changed.")
		printWarnings(errOut, res.Warnings)
		return
	}
	printVerify(out, res.Verify)
	printWarnings(errOut, res.Warnings)
}

// printStatus renders the snapshot as a two-column table. The password is
// only ever shown as set or not set.
func printStatus(out, errOut io.Writer, res orchestrator.StatusResult) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"PROPERTY", "VALUE"})

	conn := res.Connection.Redacted()
	t.AppendRow(table.Row{"Service", res.Service})
	t.AppendRow(table.Row{"State", stateCell(res.State)})
	if res.Health != "" {
		t.AppendRow(table.Row{"Health", string(res.Health)})
	}
	t.AppendSeparator()
	t.AppendRow(table.Row{"Host", conn.Host})
	t.AppendRow(table.Row{"Port", strconv.Itoa(conn.Port)})
	t.AppendRow(table.Row{"User", conn.User})
	t.AppendRow(table.Row{"Password", conn.Password})
	t.AppendRow(table.Row{"Database", conn.Database})
	if res.Probe != nil {
		t.AppendSeparator()
		t.AppendRow(table.Row{"Connectivity", color.Mark(res.Probe.OK) + " " + res.Probe.Message})
	}

	fmt.Fprintln(out, t.Render())
	printWarnings(errOut, res.Warnings)
}

func stateCell(state services.ServiceState) string {
	switch state {
	case services.StateRunning:
		return color.Success.Render(string(state))
	case services.StateUnknown:
		return color.Warn.Render(string(state))
	default:
		return color.Muted.Render(string(state))
	}
}
