package harness

import (
	"context"
	"time"

	"hadesctl/internal/config"
	"hadesctl/internal/probe"
	"hadesctl/internal/services"
	"hadesctl/internal/toolchain"
)

// UnitPrefix marks a registered unit as discoverable.
const UnitPrefix = "test_"

// TestResult is the verdict of a single unit
type TestResult string

const (
	ResultPassed TestResult = "PASS"
	ResultFailed TestResult = "FAIL"
)

// OutputFormat selects a reporter
type OutputFormat string

const (
	OutputText  OutputFormat = "text"
	OutputQuiet OutputFormat = "quiet"
	OutputJSON  OutputFormat = "json"
)

// UnitFunc performs one check and returns its verdict. Units may panic; the
// runner converts that into a failed result.
type UnitFunc func(ctx context.Context, env *Env) (passed bool, message string)

// TestUnit is a named, registered check
type TestUnit struct {
	Name        string
	Description string
	Run         UnitFunc
}

// Prober runs a connectivity check.
type Prober interface {
	Probe(ctx context.Context, conn config.ConnectionConfig) probe.Result
}

// RuntimeDetector reports the installed language runtime.
type RuntimeDetector interface {
	Detect(ctx context.Context) (toolchain.Runtime, error)
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Env is what units get to work with. All live state is behind Controller.
type Env struct {
	Controller services.Controller
	Prober     Prober
	Connection config.ConnectionConfig
	Runtime    RuntimeDetector
	// RuntimeName and RuntimeVersion describe what test_python_version expects.
	RuntimeName    string
	RuntimeVersion string
	Sleep          SleepFunc
}

// TestConfiguration holds settings for a harness run
type TestConfiguration struct {
	// Filter keeps only units whose name contains it
	Filter string `json:"filter,omitempty"`
	// Output selects the reporter
	Output OutputFormat `json:"output"`
	// ReportPath is a directory for the JSON report file
	ReportPath string `json:"report_path,omitempty"`
	// MetricsPath is a Prometheus textfile to write
	MetricsPath string `json:"metrics_path,omitempty"`
}

// TestUnitResult is produced once per unit execution and not modified afterwards
type TestUnitResult struct {
	Name      string        `json:"name"`
	Result    TestResult    `json:"result"`
	Passed    bool          `json:"passed"`
	Message   string        `json:"message"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
}

// TestRunSummary collects results in completion order
type TestRunSummary struct {
	RunID     string           `json:"run_id"`
	StartTime time.Time        `json:"start_time"`
	EndTime   time.Time        `json:"end_time"`
	Duration  time.Duration    `json:"duration"`
	Total     int              `json:"total"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Results   []TestUnitResult `json:"results"`
}

func (s *TestRunSummary) add(r TestUnitResult) {
	s.Results = append(s.Results, r)
	s.Total++
	if r.Passed {
		s.Passed++
	} else {
		s.Failed++
	}
}

// ExitCode is 0 only when at least one unit ran and none failed.
func (s *TestRunSummary) ExitCode() int {
	if s.Total == 0 || s.Failed > 0 {
		return 1
	}
	return 0
}

// TestRunner executes discovered units
type TestRunner interface {
	Run(ctx context.Context, units []TestUnit) *TestRunSummary
}

// TestReporter is notified as the run progresses
type TestReporter interface {
	// ReportStart is called with the discovered units before any runs
	ReportStart(units []TestUnit)
	// ReportUnitStart is called before a unit runs
	ReportUnitStart(unit TestUnit)
	// ReportUnitResult is called as soon as a unit completes
	ReportUnitResult(result TestUnitResult)
	// ReportSummary is called once at the end
	ReportSummary(summary TestRunSummary)
}
