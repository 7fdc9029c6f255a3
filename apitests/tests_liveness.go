package apitests

import "net/http"

func DoLivenessTests(t *T) {
	result := t.Probe(ProbeOpts{
		Method:         http.MethodGet,
		Path:           "",
		ExpectedStatus: http.StatusOK,
	})
	if result.Succeeded {
		t.Debug("service is live: %s", truncated(result.Text))
	}
}
