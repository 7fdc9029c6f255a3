package apitests

import (
	"net/http"

	"github.com/codemind-ai/review-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
)

// sampleCode contains a hardcoded credential and a busy loop, so any
// functioning analysis should find something to say about it.
const sampleCode = `var password = "admin123";
function getData() {
    for (var i = 0; i < 10000; i++) {
        console.log(i);
    }
}`

// complexSampleCode piles on enough security, performance, and quality
// issues to make the analysis slow, which is how the fallback path gets
// exercised against a live service.
const complexSampleCode = `const apiKey = "secret123";
function process(data) {
    for (let i = 0; i < 100000; i++) {
        console.log(data[i]);
    }
}

// Security issues
eval("console.log('dangerous')");
document.write("<script>alert('xss')</script>");

// Performance issues
let result = "";
for (let i = 0; i < 10000; i++) {
    result += i.toString();
}

// Quality issues
var x = 1;
var y = 2;
if (x == y) {
    console.log("equal");
}`

func DoReviewTests(t *T) {
	t.Run("submit code", func(t *T) {
		t.RequireAuthToken()
		result := t.Probe(ProbeOpts{
			Method:         http.MethodPost,
			Path:           "review",
			ExpectedStatus: http.StatusOK,
			Body: servicedef.ReviewRequest{
				Code:     sampleCode,
				Language: "javascript",
				Filename: "test.js",
			},
			UseAuth: true,
		})
		if !result.Succeeded {
			return
		}
		id, ok := checkReviewShape(t, result)
		if !ok {
			return
		}
		t.Session().CaptureReviewID(id)
		t.Debug("review created with id %s, overall score %s, %d issues",
			id,
			result.Body.GetByKey("overall_score").JSONString(),
			result.Body.GetByKey("issues").Count())
		if result.Body.GetByKey("user_id").StringValue() == "" {
			t.Warnf("review was not associated with the authenticated user")
		}
	})

	t.Run("submit complex code", func(t *T) {
		t.RequireAuthToken()
		result := t.Probe(ProbeOpts{
			Method:         http.MethodPost,
			Path:           "review",
			ExpectedStatus: http.StatusOK,
			Body: servicedef.ReviewRequest{
				Code:     complexSampleCode,
				Language: "javascript",
				Filename: "complex_test.js",
			},
			UseAuth: true,
		})
		if !result.Succeeded {
			return
		}
		if _, ok := checkReviewShape(t, result); !ok {
			return
		}
		t.Debug("scores: overall %s, security %s, performance %s, quality %s",
			result.Body.GetByKey("overall_score").JSONString(),
			result.Body.GetByKey("security_score").JSONString(),
			result.Body.GetByKey("performance_score").JSONString(),
			result.Body.GetByKey("quality_score").JSONString())
		warnIfFallback(t, result)
	})

	t.Run("empty code rejected", func(t *T) {
		t.Probe(ProbeOpts{
			Method:         http.MethodPost,
			Path:           "review",
			ExpectedStatus: http.StatusUnprocessableEntity,
			Body: servicedef.ReviewRequest{
				Code:     "",
				Language: "python",
			},
		})
	})

	t.Run("unknown review id", func(t *T) {
		t.Probe(ProbeOpts{
			Method:         http.MethodGet,
			Path:           "review/invalid-id-123",
			ExpectedStatus: http.StatusNotFound,
		})
	})

	t.Run("fetch by id", func(t *T) {
		id := t.RequireReviewID()
		result := t.Probe(ProbeOpts{
			Method:         http.MethodGet,
			Path:           "review/" + id,
			ExpectedStatus: http.StatusOK,
		})
		if !result.Succeeded {
			return
		}
		if !checkObjectShape(t, result, []string{"id"}) {
			return
		}
		assert.Equal(t, id, result.Body.GetByKey("id").StringValue(),
			"fetched review has a different id than requested")
		t.Debug("review retrieved: %s", result.Body.GetByKey("filename").StringValue())
	})
}
