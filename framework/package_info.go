// Package framework contains the low-level scenario-runner infrastructure
// that is independent of what is being tested.
//
// The general model is:
//
// 1. There is a notion of a scenario context which is similar to Go's
// *testing.T, allowing pieces of test logic to be associated with a scenario
// identifier and to accumulate success/failure results. A fault inside one
// scenario is recovered at the scenario boundary and never aborts the rest
// of the run.
//
// 2. Scenario output is collected through a capturing debug logger and a
// pluggable TestLogger, so a console front end can decide what to show.
//
// 3. Regex-based filters select which scenarios of the fixed sequence to
// run.
//
// The domain-specific code that knows what is being tested lives in the
// apitests package, which layers its own test API on top of the scenario
// context.
package framework
