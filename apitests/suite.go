package apitests

import (
	"github.com/codemind-ai/review-contract-tests/client"
	"github.com/codemind-ai/review-contract-tests/framework"

	"golang.org/x/time/rate"
)

// RunTestSuite executes the full scenario sequence against the service.
//
// The order is fixed and significant: the auth scenarios run before
// anything that depends on a bearer token, and the review-creation
// scenario runs before the lookups that depend on its id. Scenarios whose
// preconditions were not met (for example, because an earlier scenario
// failed or was filtered out) skip with an explicit reason.
//
// The limiter paces execution between scenarios; pass a rate.Inf limiter
// (or nil) to disable pacing.
func RunTestSuite(
	service *client.ReviewServiceClient,
	session *Session,
	limiter *rate.Limiter,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := &T{
			context: c,
			env: &environment{
				service: service,
				session: session,
				limiter: limiter,
			},
		}

		t.Run("liveness", DoLivenessTests)
		t.Run("auth", DoAuthTests)
		t.Run("review", DoReviewTests)
		t.Run("upload", DoUploadTests)
		t.Run("stats", DoStatsTests)
		t.Run("history", DoHistoryTests)
	})
}
