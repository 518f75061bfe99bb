package harness

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hadesctl/pkg/logging"
)

// testRunner implements the TestRunner interface
type testRunner struct {
	env      *Env
	reporter TestReporter
	now      func() time.Time
}

// NewTestRunner creates a new test runner
func NewTestRunner(env *Env, reporter TestReporter) TestRunner {
	if env.Sleep == nil {
		env.Sleep = SleepContext
	}
	return &testRunner{
		env:      env,
		reporter: reporter,
		now:      time.Now,
	}
}

// Run executes units sequentially in the given order. A failing or panicking
// unit never prevents the next one from running.
func (r *testRunner) Run(ctx context.Context, units []TestUnit) *TestRunSummary {
	summary := &TestRunSummary{
		RunID:     uuid.NewString(),
		StartTime: r.now(),
		Results:   make([]TestUnitResult, 0, len(units)),
	}

	r.reporter.ReportStart(units)

	for _, unit := range units {
		r.reporter.ReportUnitStart(unit)
		result := r.runUnit(ctx, unit)
		summary.add(result)
		r.reporter.ReportUnitResult(result)
	}

	summary.EndTime = r.now()
	summary.Duration = summary.EndTime.Sub(summary.StartTime)

	r.reporter.ReportSummary(*summary)
	return summary
}

func (r *testRunner) runUnit(ctx context.Context, unit TestUnit) (result TestUnitResult) {
	start := r.now()
	result = TestUnitResult{Name: unit.Name, StartTime: start}

	defer func() {
		if p := recover(); p != nil {
			logging.Error("Harness", fmt.Errorf("%v", p), "Unit %s panicked", unit.Name)
			result.Passed = false
			result.Message = fmt.Sprintf("Test execution error: %v", p)
		}
		result.Result = ResultFailed
		if result.Passed {
			result.Result = ResultPassed
		}
		result.Duration = r.now().Sub(start)
	}()

	logging.Debug("Harness", "Running %s", unit.Name)
	result.Passed, result.Message = unit.Run(ctx, r.env)
	return result
}

// SleepContext waits for d or until ctx is done.
func SleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
