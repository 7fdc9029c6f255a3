package apitests

import (
	"net/http"

	"github.com/codemind-ai/review-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
)

const testUserPassword = "testpass123"
const testUserName = "Test User"

func DoAuthTests(t *T) {
	t.Run("signup", func(t *T) {
		result := t.Probe(ProbeOpts{
			Method:         http.MethodPost,
			Path:           "auth/signup",
			ExpectedStatus: http.StatusOK,
			Body: servicedef.SignupRequest{
				Email:    t.Session().TestUserEmail(),
				Password: testUserPassword,
				Name:     testUserName,
			},
		})
		if !result.Succeeded {
			return
		}
		if token, ok := checkAccessToken(t, result); ok {
			t.Session().SetAuthToken(token)
			t.Debug("signup issued a token")
		}
	})

	t.Run("login", func(t *T) {
		result := t.Probe(ProbeOpts{
			Method:         http.MethodPost,
			Path:           "auth/login",
			ExpectedStatus: http.StatusOK,
			Body: servicedef.LoginRequest{
				Email:    t.Session().TestUserEmail(),
				Password: testUserPassword,
			},
		})
		if !result.Succeeded {
			return
		}
		if token, ok := checkAccessToken(t, result); ok {
			t.Session().SetAuthToken(token)
			t.Debug("login issued a token")
		}
	})

	t.Run("current user", func(t *T) {
		t.RequireAuthToken()
		result := t.Probe(ProbeOpts{
			Method:         http.MethodGet,
			Path:           "auth/me",
			ExpectedStatus: http.StatusOK,
			UseAuth:        true,
		})
		if !result.Succeeded {
			return
		}
		if !checkObjectShape(t, result, servicedef.UserFields) {
			return
		}
		// Guards against the service leaking another user's record.
		assert.Equal(t, t.Session().TestUserEmail(), result.Body.GetByKey("email").StringValue(),
			"current-user email does not match the signup identity")
	})

	t.Run("invalid login", func(t *T) {
		t.Probe(ProbeOpts{
			Method:         http.MethodPost,
			Path:           "auth/login",
			ExpectedStatus: http.StatusUnauthorized,
			Body: servicedef.LoginRequest{
				Email:    "nonexistent@test.com",
				Password: "wrongpassword",
			},
		})
	})

	t.Run("duplicate signup", func(t *T) {
		t.Probe(ProbeOpts{
			Method:         http.MethodPost,
			Path:           "auth/signup",
			ExpectedStatus: http.StatusBadRequest,
			Body: servicedef.SignupRequest{
				Email:    t.Session().TestUserEmail(),
				Password: testUserPassword,
				Name:     "Duplicate User",
			},
		})
	})

	t.Run("protected endpoint without token", func(t *T) {
		// The token is restored even if the probe fails, so the later
		// authenticated scenarios are unaffected.
		saved := t.Session().ClearAuthToken()
		defer t.Session().RestoreAuthToken(saved)

		t.Probe(ProbeOpts{
			Method:         http.MethodGet,
			Path:           "auth/me",
			ExpectedStatus: http.StatusUnauthorized,
			UseAuth:        true,
		})
	})

	t.Run("resend verification", func(t *T) {
		t.RequireAuthToken()
		result := t.Probe(ProbeOpts{
			Method:         http.MethodPost,
			Path:           "auth/resend-verification",
			ExpectedStatus: http.StatusOK,
			UseAuth:        true,
		})
		if !result.Succeeded {
			return
		}
		if checkObjectShape(t, result, []string{"message"}) {
			t.Debug("verification resend response: %s", result.Body.GetByKey("message").StringValue())
		}
	})

	t.Run("verify with unknown token", func(t *T) {
		t.Probe(ProbeOpts{
			Method:         http.MethodGet,
			Path:           "auth/verify/invalid-token-123",
			ExpectedStatus: http.StatusNotFound,
		})
	})
}
