package apitests

import (
	"fmt"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Session holds the mutable state that later scenarios inherit from earlier
// ones: the bearer token, the id of the first created review, the generated
// test identity, and the running probe counters. One Session is created per
// run and passed explicitly to every scenario; nothing persists across runs.
//
// The suite is strictly sequential, so Session does no locking.
type Session struct {
	testUserEmail string
	authToken     ldvalue.OptionalString
	reviewID      ldvalue.OptionalString
	testsRun      int
	testsPassed   int
}

// NewSession generates the test identity for this run. The email is
// time-seeded so that signup succeeds against a service with existing data,
// while the duplicate-signup scenario can reuse the same address within the
// run.
func NewSession() *Session {
	return &Session{
		testUserEmail: fmt.Sprintf("test_%d@codemind.ai", time.Now().UnixNano()),
	}
}

func (s *Session) TestUserEmail() string {
	return s.testUserEmail
}

func (s *Session) AuthToken() ldvalue.OptionalString {
	return s.authToken
}

// SetAuthToken records a bearer token obtained from a verified auth
// response. Empty tokens are ignored so a malformed response can never
// clobber working credentials.
func (s *Session) SetAuthToken(token string) {
	if token != "" {
		s.authToken = ldvalue.NewOptionalString(token)
	}
}

// ClearAuthToken removes the token so a scenario can verify that the
// service rejects unauthenticated access. It returns the previous value for
// RestoreAuthToken.
func (s *Session) ClearAuthToken() ldvalue.OptionalString {
	prev := s.authToken
	s.authToken = ldvalue.OptionalString{}
	return prev
}

func (s *Session) RestoreAuthToken(token ldvalue.OptionalString) {
	s.authToken = token
}

func (s *Session) ReviewID() ldvalue.OptionalString {
	return s.reviewID
}

// CaptureReviewID records the id of a verified review creation. The first
// captured id wins; later creations and failed scenarios never overwrite it,
// so lookup scenarios always refer to the same resource.
func (s *Session) CaptureReviewID(id string) {
	if id != "" && !s.reviewID.IsDefined() {
		s.reviewID = ldvalue.NewOptionalString(id)
	}
}

// BeginProbe counts a probe as run before the request goes out.
func (s *Session) BeginProbe() {
	s.testsRun++
}

// FinishProbe counts the probe as passed if its status check succeeded.
func (s *Session) FinishProbe(passed bool) {
	if passed && s.testsPassed < s.testsRun {
		s.testsPassed++
	}
}

// Totals returns how many probes ran and how many passed.
func (s *Session) Totals() (run, passed int) {
	return s.testsRun, s.testsPassed
}

func (s *Session) AllProbesPassed() bool {
	return s.testsPassed == s.testsRun
}
