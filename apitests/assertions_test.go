package apitests

import (
	"testing"

	"github.com/codemind-ai/review-contract-tests/client"
	"github.com/codemind-ai/review-contract-tests/framework"
	"github.com/codemind-ai/review-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// runScenario executes fn as a single scenario so assertion helpers can be
// exercised against a real scenario context.
func runScenario(session *Session, fn func(*T)) framework.Results {
	if session == nil {
		session = NewSession()
	}
	env := &environment{session: session}
	return framework.Run(nil, nil, func(c *framework.Context) {
		c.Run("scenario", func(c *framework.Context) {
			fn(&T{context: c, env: env})
		})
	})
}

func parsedResult(text string) client.ProbeResult {
	return client.ProbeResult{
		StatusCode: 200,
		Body:       ldvalue.Parse([]byte(text)),
		Text:       text,
		Succeeded:  true,
	}
}

func TestIsFallbackSummary(t *testing.T) {
	assert.True(t, isFallbackSummary("Analysis temporarily unavailable, please retry"))
	assert.True(t, isFallbackSummary("the backend hit a TIMEOUT while processing"))
	assert.False(t, isFallbackSummary("The code has a hardcoded credential on line 1"))
	assert.False(t, isFallbackSummary(""))
}

func TestMissingFields(t *testing.T) {
	body := ldvalue.Parse([]byte(`{"id":"u1","email":"a@b.c"}`))
	assert.Equal(t, []string{"name", "created_at"}, missingFields(body, servicedef.UserFields))
	assert.Nil(t, missingFields(body, []string{"id", "email"}))
}

func TestCheckObjectShapeFailsOnMissingFields(t *testing.T) {
	results := runScenario(nil, func(t *T) {
		ok := checkObjectShape(t, parsedResult(`{"id":"u1"}`), servicedef.UserFields)
		assert.False(t, ok)
	})
	assert.False(t, results.OK())
}

func TestCheckObjectShapeFailsOnNonObject(t *testing.T) {
	results := runScenario(nil, func(t *T) {
		ok := checkObjectShape(t, parsedResult(`[1,2,3]`), []string{"id"})
		assert.False(t, ok)
	})
	assert.False(t, results.OK())
}

func TestCheckAccessTokenRejectsEmptyToken(t *testing.T) {
	results := runScenario(nil, func(t *T) {
		_, ok := checkAccessToken(t, parsedResult(`{"access_token":""}`))
		assert.False(t, ok)
	})
	assert.False(t, results.OK())
}

func TestCheckAccessTokenReturnsToken(t *testing.T) {
	var token string
	results := runScenario(nil, func(t *T) {
		var ok bool
		token, ok = checkAccessToken(t, parsedResult(`{"access_token":"tok-9"}`))
		assert.True(t, ok)
	})
	assert.True(t, results.OK())
	assert.Equal(t, "tok-9", token)
}

func TestCheckReviewShapeAcceptsCompleteReview(t *testing.T) {
	body := `{
		"id": "rev-1",
		"overall_score": 72.5,
		"quality_score": 70,
		"security_score": 55,
		"performance_score": 68,
		"issues": [],
		"summary": "fine",
		"recommendations": []
	}`
	var id string
	results := runScenario(nil, func(t *T) {
		var ok bool
		id, ok = checkReviewShape(t, parsedResult(body))
		assert.True(t, ok)
	})
	assert.True(t, results.OK())
	assert.Equal(t, "rev-1", id)
}

func TestCheckReviewShapeRejectsNonNumericScore(t *testing.T) {
	body := `{
		"id": "rev-1",
		"overall_score": "good",
		"quality_score": 70,
		"security_score": 55,
		"performance_score": 68,
		"issues": [],
		"summary": "fine",
		"recommendations": []
	}`
	results := runScenario(nil, func(t *T) {
		_, ok := checkReviewShape(t, parsedResult(body))
		assert.False(t, ok)
	})
	assert.False(t, results.OK())
}

func TestCheckHistoryFindsCapturedReview(t *testing.T) {
	session := NewSession()
	session.CaptureReviewID("rev-2")

	var found, ok bool
	results := runScenario(session, func(t *T) {
		found, ok = checkHistory(t, parsedResult(`[{"id":"rev-1"},{"id":"rev-2"}]`))
	})
	assert.True(t, results.OK())
	assert.True(t, ok)
	assert.True(t, found)
}

func TestCheckHistoryRejectsNonSequence(t *testing.T) {
	results := runScenario(nil, func(t *T) {
		_, ok := checkHistory(t, parsedResult(`{"items":[]}`))
		assert.False(t, ok)
	})
	assert.False(t, results.OK())
}

func TestWarnIfFallbackWarnsWithoutFailing(t *testing.T) {
	results := runScenario(nil, func(t *T) {
		warnIfFallback(t, parsedResult(`{"summary":"AI analysis temporarily unavailable"}`))
	})
	require.True(t, results.OK())
	require.Len(t, results.Tests, 1)
	assert.NotEmpty(t, results.Tests[0].Warnings)
}
