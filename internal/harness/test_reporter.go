package harness

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"hadesctl/internal/color"
)

const bannerWidth = 70

var banner = strings.Repeat("=", bannerWidth)

// NewReporter returns the reporter for format, writing to w.
func NewReporter(format OutputFormat, w io.Writer, styled bool) (TestReporter, error) {
	switch format {
	case "", OutputText:
		return NewTestReporter(w, styled), nil
	case OutputQuiet:
		return NewQuietReporter(w), nil
	case OutputJSON:
		return NewJSONReporter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, quiet or json)", format)
	}
}

// testReporter prints the human-facing console format
type testReporter struct {
	w      io.Writer
	styled bool
}

// NewTestReporter creates the console reporter. styled enables terminal colors.
func NewTestReporter(w io.Writer, styled bool) TestReporter {
	return &testReporter{w: w, styled: styled}
}

func (r *testReporter) ReportStart(units []TestUnit) {
	fmt.Fprintln(r.w, banner)
	fmt.Fprintln(r.w, r.header("Running Test Suite"))
	fmt.Fprintln(r.w, banner)
	fmt.Fprintln(r.w)

	if len(units) == 0 {
		fmt.Fprintln(r.w, r.paint(color.Error, "ERROR: No test cases found"))
		return
	}

	fmt.Fprintf(r.w, "Found %d test case(s):\n", len(units))
	for _, u := range units {
		fmt.Fprintf(r.w, "  - %s\n", u.Name)
	}
	fmt.Fprintln(r.w)
}

func (r *testReporter) ReportUnitStart(unit TestUnit) {
	fmt.Fprintf(r.w, "Running: %s...\n", unit.Name)
}

func (r *testReporter) ReportUnitResult(result TestUnitResult) {
	tag := fmt.Sprintf("[%s]", result.Result)
	if result.Passed {
		tag = r.paint(color.Success, tag)
	} else {
		tag = r.paint(color.Error, tag)
	}
	fmt.Fprintf(r.w, "  %s %s\n", tag, result.Message)
	fmt.Fprintln(r.w)
}

func (r *testReporter) ReportSummary(summary TestRunSummary) {
	if summary.Total == 0 {
		return
	}

	fmt.Fprintln(r.w, banner)
	fmt.Fprintln(r.w, r.header("Test Summary"))
	fmt.Fprintln(r.w, banner)

	for _, res := range summary.Results {
		fmt.Fprintf(r.w, "  %s %s: %s\n", r.mark(res.Passed), res.Name, res.Message)
	}

	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "Total: %d | Passed: %d | Failed: %d\n", summary.Total, summary.Passed, summary.Failed)
	fmt.Fprintln(r.w, banner)
}

func (r *testReporter) header(s string) string {
	if r.styled {
		return color.Header.Render(s)
	}
	return s
}

func (r *testReporter) paint(style lipgloss.Style, s string) string {
	if r.styled {
		return style.Render(s)
	}
	return s
}

func (r *testReporter) mark(ok bool) string {
	if r.styled {
		return color.Mark(ok)
	}
	if ok {
		return "✓"
	}
	return "✗"
}

// NewQuietReporter creates a reporter that only outputs failures and a one-line verdict
func NewQuietReporter(w io.Writer) TestReporter {
	return &quietReporter{w: w}
}

// quietReporter implements minimal output for CI/CD integration
type quietReporter struct {
	w io.Writer
}

func (r *quietReporter) ReportStart(units []TestUnit) {
	if len(units) == 0 {
		fmt.Fprintln(r.w, "ERROR: No test cases found")
	}
}

func (r *quietReporter) ReportUnitStart(TestUnit) {}

func (r *quietReporter) ReportUnitResult(TestUnitResult) {}

func (r *quietReporter) ReportSummary(summary TestRunSummary) {
	if summary.Total == 0 {
		return
	}
	if summary.Failed == 0 {
		fmt.Fprintf(r.w, "✓ All %d tests passed\n", summary.Passed)
		return
	}

	width := 0
	for _, res := range summary.Results {
		if !res.Passed {
			width = max(width, runewidth.StringWidth(res.Name))
		}
	}
	for _, res := range summary.Results {
		if !res.Passed {
			fmt.Fprintf(r.w, "✗ %s  %s\n", runewidth.FillRight(res.Name, width), res.Message)
		}
	}
	fmt.Fprintf(r.w, "%d/%d tests failed\n", summary.Failed, summary.Total)
}

// NewJSONReporter creates a reporter that writes the summary as JSON
func NewJSONReporter(w io.Writer) TestReporter {
	return &jsonReporter{w: w}
}

// jsonReporter implements JSON output for machine consumption
type jsonReporter struct {
	w io.Writer
}

func (r *jsonReporter) ReportStart([]TestUnit) {}

func (r *jsonReporter) ReportUnitStart(TestUnit) {}

func (r *jsonReporter) ReportUnitResult(TestUnitResult) {}

func (r *jsonReporter) ReportSummary(summary TestRunSummary) {
	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		fmt.Fprintf(r.w, `{"error": "Failed to marshal results: %v"}`+"\n", err)
		return
	}
	fmt.Fprintln(r.w, string(jsonData))
}
