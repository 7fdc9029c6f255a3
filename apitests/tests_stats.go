package apitests

import (
	"net/http"

	"github.com/codemind-ai/review-contract-tests/servicedef"
)

func DoStatsTests(t *T) {
	t.Run("user statistics", func(t *T) {
		t.RequireAuthToken()
		result := t.Probe(ProbeOpts{
			Method:         http.MethodGet,
			Path:           "auth/stats",
			ExpectedStatus: http.StatusOK,
			UseAuth:        true,
		})
		if !result.Succeeded {
			return
		}
		if !checkObjectShape(t, result, servicedef.StatsFields) {
			return
		}
		t.Debug("total reviews: %s, average score: %s, %d languages used",
			result.Body.GetByKey("total_reviews").JSONString(),
			result.Body.GetByKey("average_score").JSONString(),
			result.Body.GetByKey("languages_used").Count())
	})
}
