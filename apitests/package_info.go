// Package apitests contains the contract scenarios for the code-review
// service, along with the domain-specific test API they are written
// against.
//
// The suite is a single fixed sequence: authentication scenarios first,
// then review creation, then the scenarios that look up what was created.
// State that flows between scenarios (the bearer token, the first review's
// id, the generated test identity, and the probe counters) lives in a
// Session that is created once per run and passed to every scenario
// explicitly.
//
// Scenario functions receive a *T, which works like testing.T for the
// assert and require packages, and adds probe execution, session access,
// and precondition declarations on top of the framework package's scenario
// context.
package apitests
