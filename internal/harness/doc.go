// Package harness provides the acceptance test harness for the managed
// database environment.
//
// ## Architecture Components
//
// ### Registry (registry.go)
// - Holds the named test units assembled at startup
// - Discovery keeps units whose names start with "test_" and sorts them by name
//
// ### Test Runner (test_runner.go)
// - Executes each unit in isolation, in discovery order
// - Recovers panics and turns them into failed results
// - Never stops early because a unit failed
//
// ### Reporters (test_reporter.go)
// - Console output with banner, per-unit PASS/FAIL lines and a summary block
// - Quiet output for CI that only lists failures
// - JSON output for machine consumption
// - Optional JSON report file and Prometheus textfile metrics
//
// ## Built-in Units
//
//   - test_container_down: the service can be stopped
//   - test_container_up: the service can be started
//   - test_database_connection: the database accepts a connection
//   - test_python_version: the runtime reports the expected version
//
// Units share the managed service, so each one brings it into the state it
// needs first rather than relying on what a sibling left behind.
//
// ## Usage
//
//	hadesctl test                     # Run all units
//	hadesctl test --run container     # Units whose name contains "container"
//	hadesctl test --output json       # JSON summary on stdout
//	hadesctl test --report ./reports  # Also write a JSON report file
package harness
