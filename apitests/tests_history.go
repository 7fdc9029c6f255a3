package apitests

import "net/http"

func DoHistoryTests(t *T) {
	t.Run("authenticated", func(t *T) {
		t.RequireAuthToken()
		result := t.Probe(ProbeOpts{
			Method:         http.MethodGet,
			Path:           "history",
			ExpectedStatus: http.StatusOK,
			UseAuth:        true,
		})
		if !result.Succeeded {
			return
		}
		found, ok := checkHistory(t, result)
		if !ok {
			return
		}
		t.Debug("authenticated history has %d entries", result.Body.Count())
		if t.Session().ReviewID().IsDefined() {
			if found {
				t.Debug("the run's review is present in the user's history")
			} else {
				t.Warnf("review %s was not found in the user's history",
					t.Session().ReviewID().StringValue())
			}
		}
	})

	t.Run("anonymous", func(t *T) {
		// Clearing the token documents the intent even though this probe
		// would not attach it; restoration is unconditional.
		saved := t.Session().ClearAuthToken()
		defer t.Session().RestoreAuthToken(saved)

		result := t.Probe(ProbeOpts{
			Method:         http.MethodGet,
			Path:           "history",
			ExpectedStatus: http.StatusOK,
		})
		if !result.Succeeded {
			return
		}
		if _, ok := checkHistory(t, result); ok {
			t.Debug("anonymous history has %d entries", result.Body.Count())
		}
	})
}
