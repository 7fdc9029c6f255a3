package client

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *ReviewServiceClient {
	return NewReviewServiceClient(url, Options{
		ReadTimeout:     time.Second * 5,
		AnalysisTimeout: time.Second * 5,
	})
}

func jsonHandler(status int, body string) http.Handler {
	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")
	return httphelpers.HandlerWithResponse(status, headers, []byte(body))
}

func TestExecuteSendsJSONBodyWithContentTypeAndBearer(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(
		jsonHandler(200, `{"access_token":"tok-1"}`))
	server := httptest.NewServer(handler)
	defer server.Close()

	c := newTestClient(server.URL)
	result := c.Execute(Probe{
		Method:         http.MethodPost,
		Path:           "auth/login",
		ExpectedStatus: 200,
		JSONBody:       map[string]string{"email": "a@b.c", "password": "pw"},
		BearerToken:    "existing-token",
	}, nil)

	assert.True(t, result.Succeeded)
	assert.Equal(t, 200, result.StatusCode)
	assert.Equal(t, "tok-1", result.Body.GetByKey("access_token").StringValue())

	info := <-requestsCh
	assert.Equal(t, "/auth/login", info.Request.URL.Path)
	assert.Equal(t, "application/json", info.Request.Header.Get("Content-Type"))
	assert.Equal(t, "Bearer existing-token", info.Request.Header.Get("Authorization"))
	assert.JSONEq(t, `{"email":"a@b.c","password":"pw"}`, string(info.Body))
}

func TestExecuteOmitsAuthorizationWhenNoToken(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(401))
	server := httptest.NewServer(handler)
	defer server.Close()

	c := newTestClient(server.URL)
	result := c.Execute(Probe{
		Method:         http.MethodGet,
		Path:           "auth/me",
		ExpectedStatus: 401,
	}, nil)

	assert.True(t, result.Succeeded)
	info := <-requestsCh
	assert.Empty(t, info.Request.Header.Get("Authorization"))
}

func TestExecuteFilePayloadUsesMultipartContentType(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(
		jsonHandler(200, `{"filename":"test.py","language":"python"}`))
	server := httptest.NewServer(handler)
	defer server.Close()

	c := newTestClient(server.URL)
	result := c.Execute(Probe{
		Method:         http.MethodPost,
		Path:           "upload-review",
		ExpectedStatus: 200,
		File: &FileUpload{
			FileName:    "test.py",
			ContentType: "text/plain",
			Content:     []byte("print('hi')"),
		},
	}, nil)

	require.True(t, result.Succeeded)
	info := <-requestsCh
	contentType := info.Request.Header.Get("Content-Type")
	assert.Contains(t, contentType, "multipart/form-data")
	assert.NotContains(t, contentType, "application/json")
	assert.Contains(t, string(info.Body), "print('hi')")
	assert.Contains(t, string(info.Body), `filename="test.py"`)
}

func TestExecuteStatusMismatchIsNotATransportError(t *testing.T) {
	server := httptest.NewServer(jsonHandler(500, `{"detail":"boom"}`))
	defer server.Close()

	c := newTestClient(server.URL)
	result := c.Execute(Probe{
		Method:         http.MethodGet,
		Path:           "history",
		ExpectedStatus: 200,
	}, nil)

	assert.False(t, result.Succeeded)
	assert.NoError(t, result.Err)
	assert.Equal(t, 500, result.StatusCode)
	assert.Equal(t, "boom", result.Body.GetByKey("detail").StringValue())
}

func TestExecuteNonJSONBodyDegradesToRawText(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithResponse(200, nil, []byte("plain text body")))
	defer server.Close()

	c := newTestClient(server.URL)
	result := c.Execute(Probe{
		Method:         http.MethodGet,
		Path:           "",
		ExpectedStatus: 200,
	}, nil)

	assert.True(t, result.Succeeded)
	assert.True(t, result.Body.IsNull())
	assert.Equal(t, "plain text body", result.Text)
}

func TestExecuteTransportFailureReturnsFailedResult(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	url := server.URL
	server.Close()

	c := newTestClient(url)
	result := c.Execute(Probe{
		Method:         http.MethodGet,
		Path:           "history",
		ExpectedStatus: 200,
	}, nil)

	assert.False(t, result.Succeeded)
	assert.Error(t, result.Err)
	assert.Equal(t, 0, result.StatusCode)
	assert.Empty(t, result.Text)
}

func TestURLFor(t *testing.T) {
	c := newTestClient("http://example.com/api/")
	assert.Equal(t, "http://example.com/api/auth/me", c.URLFor("auth/me"))
	assert.Equal(t, "http://example.com/api/auth/me", c.URLFor("/auth/me"))
	assert.Equal(t, "http://example.com/api/", c.URLFor(""))
}

func TestWaitForServiceSucceedsWhenRootResponds(t *testing.T) {
	server := httptest.NewServer(jsonHandler(200, `{"message":"ok"}`))
	defer server.Close()

	c := newTestClient(server.URL)
	assert.NoError(t, c.WaitForService(time.Second*2, &discardWriter{}))
}

func TestWaitForServiceTimesOutWhenUnreachable(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	url := server.URL
	server.Close()

	c := newTestClient(url)
	err := c.WaitForService(time.Millisecond*100, &discardWriter{})
	assert.Error(t, err)
}

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }
