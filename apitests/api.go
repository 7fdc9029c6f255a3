package apitests

import (
	"context"

	"github.com/codemind-ai/review-contract-tests/client"
	"github.com/codemind-ai/review-contract-tests/framework"

	"golang.org/x/time/rate"
)

const maxErrorBodyLen = 300

// T represents a scenario or sub-scenario in the contract suite.
//
// It implements the same basic functionality as Go's testing.T, but in an
// environment that is outside of the Go test runner, with extra features
// such as debug logging that are provided by the lower-level framework
// package.
//
// It also provides functionality specific to exercising the code-review
// API: issuing probes, reading and updating the run's Session, and
// declaring preconditions on state produced by earlier scenarios.
//
// To make assertions, you can use the assert and require packages, passing
// the *T as if it were a *testing.T.
type T struct {
	context *framework.Context
	env     *environment
}

type environment struct {
	service *client.ReviewServiceClient
	session *Session
	limiter *rate.Limiter
}

// pace blocks briefly between scenarios as a courtesy to a live remote
// service. It is not correctness-critical.
func (e *environment) pace() {
	if e.limiter != nil {
		_ = e.limiter.Wait(context.Background())
	}
}

// Errorf is called by assertions to log a scenario failure. It does not
// cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a scenario should fail and
// immediately exit. The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Warnf records a non-fatal contract observation, such as a degraded
// analysis response.
func (t *T) Warnf(format string, args ...interface{}) {
	t.context.Warnf(format, args...)
}

// Debug logs some debug output for the scenario. The output is passed to
// the test logger when the scenario ends.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

func (t *T) DebugLogger() framework.Logger {
	return t.context.DebugLogger()
}

// Session returns the run's shared session state.
func (t *T) Session() *Session {
	return t.env.session
}

// Run runs a sub-scenario, pacing first. The specified function receives a
// new T sharing the same session and service client.
func (t *T) Run(name string, action func(*T)) {
	t.env.pace()
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

// ProbeOpts describes one probe from a scenario's point of view. UseAuth
// attaches the session's bearer token when one is held; when none is held
// the request is still sent without credentials, which lets scenarios
// verify that the service rejects unauthenticated access.
type ProbeOpts struct {
	Method         string
	Path           string
	ExpectedStatus int
	Body           interface{}
	File           *client.FileUpload
	UseAuth        bool
}

// Probe issues one HTTP probe and applies the status-code check. A status
// mismatch or transport failure marks the scenario failed; the result is
// returned either way so the caller can decide whether deeper body checks
// still make sense.
func (t *T) Probe(opts ProbeOpts) client.ProbeResult {
	probe := client.Probe{
		Method:         opts.Method,
		Path:           opts.Path,
		ExpectedStatus: opts.ExpectedStatus,
		JSONBody:       opts.Body,
		File:           opts.File,
	}
	if opts.UseAuth {
		probe.BearerToken = t.env.session.AuthToken().StringValue()
		t.Debug("using auth: %t", t.env.session.AuthToken().IsDefined())
	}

	t.env.session.BeginProbe()
	result := t.env.service.Execute(probe, t.DebugLogger())
	t.env.session.FinishProbe(result.Succeeded)

	if result.Err != nil {
		t.Errorf("%s %s: transport failure: %s", opts.Method, opts.Path, result.Err)
	} else if !result.Succeeded {
		t.Errorf("%s %s: expected status %d, got %d (body: %s)",
			opts.Method, opts.Path, opts.ExpectedStatus, result.StatusCode, truncated(result.Text))
	}
	return result
}

// RequireAuthToken skips the scenario when no earlier auth scenario
// produced a token. This makes the sequential dependency explicit: if the
// auth scenarios were reordered or filtered out, the dependent scenario is
// reported as skipped with a reason instead of silently passing.
func (t *T) RequireAuthToken() {
	if !t.env.session.AuthToken().IsDefined() {
		t.context.SkipWithReason("no auth token was captured by an earlier scenario")
	}
}

// RequireReviewID skips the scenario when no earlier scenario captured a
// review id, and returns the id otherwise.
func (t *T) RequireReviewID() string {
	id := t.env.session.ReviewID()
	if !id.IsDefined() {
		t.context.SkipWithReason("no review id was captured by an earlier scenario")
	}
	return id.StringValue()
}

func truncated(s string) string {
	if len(s) > maxErrorBodyLen {
		return s[:maxErrorBodyLen] + "..."
	}
	return s
}
