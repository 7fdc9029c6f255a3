package framework

import (
	"fmt"
	"strings"
)

// Results is the aggregated outcome of a scenario run, in execution order.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

// TestResult is the recorded outcome of one scenario.
type TestResult struct {
	TestID   TestID
	Errors   []error
	Warnings []string
	Skipped  bool
}

// OK returns true if no scenario failed.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// TestID identifies a scenario as a path of names, outermost first.
type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// PrintResults writes a human-readable summary of the run to standard
// output.
func PrintResults(results Results) {
	fmt.Printf("Scenarios: %d run, %d failed\n", len(results.Tests), len(results.Failures))
	if len(results.Failures) > 0 {
		fmt.Println("Failed scenarios:")
		for _, f := range results.Failures {
			fmt.Printf("  %s\n", f.TestID)
			for _, err := range f.Errors {
				for _, line := range strings.Split(err.Error(), "\n") {
					fmt.Printf("    %s\n", line)
				}
			}
		}
	}
}
