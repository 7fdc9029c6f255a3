// Package client implements the HTTP probe layer of the harness: issuing a
// single request against the code-review service, applying the appropriate
// timeout, and reporting the status and parsed body without ever treating a
// contract violation as a transport crash.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/codemind-ai/review-contract-tests/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DefaultReadTimeout applies to read-only calls.
const DefaultReadTimeout = time.Second * 30

// DefaultAnalysisTimeout applies to calls that may invoke the service's
// analysis backend, which can be slow.
const DefaultAnalysisTimeout = time.Second * 60

const serviceWaitPollInterval = time.Millisecond * 500

// ReviewServiceClient issues probes against one code-review service.
type ReviewServiceClient struct {
	baseURL         string
	httpClient      *http.Client
	readTimeout     time.Duration
	analysisTimeout time.Duration
}

// Options configures a ReviewServiceClient. Zero values fall back to the
// defaults above.
type Options struct {
	ReadTimeout     time.Duration
	AnalysisTimeout time.Duration
	HTTPClient      *http.Client
}

func NewReviewServiceClient(baseURL string, opts Options) *ReviewServiceClient {
	c := &ReviewServiceClient{
		baseURL:         strings.TrimSuffix(baseURL, "/"),
		httpClient:      opts.HTTPClient,
		readTimeout:     opts.ReadTimeout,
		analysisTimeout: opts.AnalysisTimeout,
	}
	if c.httpClient == nil {
		// Timeouts are applied per request via context, so the client itself
		// carries none.
		c.httpClient = &http.Client{}
	}
	if c.readTimeout == 0 {
		c.readTimeout = DefaultReadTimeout
	}
	if c.analysisTimeout == 0 {
		c.analysisTimeout = DefaultAnalysisTimeout
	}
	return c
}

func (c *ReviewServiceClient) BaseURL() string {
	return c.baseURL
}

// URLFor joins the base URL with an endpoint path. The empty path addresses
// the service root.
func (c *ReviewServiceClient) URLFor(path string) string {
	return c.baseURL + "/" + strings.TrimPrefix(path, "/")
}

// FileUpload describes a multipart file payload.
type FileUpload struct {
	FieldName   string
	FileName    string
	ContentType string
	Content     []byte
}

// Probe describes a single request/response contract check.
type Probe struct {
	Method         string
	Path           string
	ExpectedStatus int
	JSONBody       interface{}
	File           *FileUpload
	BearerToken    string
}

// ProbeResult reports what happened when a probe was executed. Succeeded
// refers only to the status-code check; deeper body assertions are the
// caller's business.
type ProbeResult struct {
	StatusCode int
	Body       ldvalue.Value
	Text       string
	Succeeded  bool
	Err        error
}

// IsObject reports whether the parsed body was a JSON object.
func (r ProbeResult) IsObject() bool {
	return r.Body.Type() == ldvalue.ObjectType
}

// IsArray reports whether the parsed body was a JSON array.
func (r ProbeResult) IsArray() bool {
	return r.Body.Type() == ldvalue.ArrayType
}

// Execute performs one probe. It never returns an error: transport failures
// (DNS, connection refusal, timeout) are reported as a failed ProbeResult
// with an empty body, so the caller can keep running later scenarios. A
// non-2xx status is not a transport failure; the status and whatever body
// was readable are returned as a normal execution.
func (c *ReviewServiceClient) Execute(p Probe, logger framework.Logger) ProbeResult {
	if logger == nil {
		logger = framework.NullLogger()
	}

	// Submissions and uploads may trigger expensive analysis on the server
	// side; everything else gets the short timeout.
	timeout := c.readTimeout
	if p.Method == http.MethodPost {
		timeout = c.analysisTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var body io.Reader
	contentType := "application/json"
	if p.File != nil {
		buf, multipartType, err := encodeMultipart(p.File)
		if err != nil {
			return ProbeResult{Err: err}
		}
		body = buf
		contentType = multipartType
	} else if p.JSONBody != nil {
		data, err := json.Marshal(p.JSONBody)
		if err != nil {
			return ProbeResult{Err: fmt.Errorf("could not marshal request body: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, p.Method, c.URLFor(p.Path), body)
	if err != nil {
		return ProbeResult{Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	if p.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+p.BearerToken)
	}

	logger.Printf("%s %s (expecting status %d)", p.Method, req.URL, p.ExpectedStatus)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Printf("transport error: %s", err)
		return ProbeResult{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Printf("error reading response body: %s", err)
		return ProbeResult{StatusCode: resp.StatusCode, Err: err}
	}

	result := ProbeResult{
		StatusCode: resp.StatusCode,
		Body:       ldvalue.Parse(data),
		Text:       string(data),
		Succeeded:  resp.StatusCode == p.ExpectedStatus,
	}
	logger.Printf("received status %d", resp.StatusCode)
	if result.IsObject() {
		logger.Printf("response keys: %s", strings.Join(result.Body.Keys(), ", "))
	}
	return result
}

// encodeMultipart builds a multipart/form-data body for a file payload.
// File payloads must never carry a JSON content-type header, so the
// returned content type is the multipart one including the boundary.
func encodeMultipart(file *FileUpload) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	field := file.FieldName
	if field == "" {
		field = "file"
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, field, file.FileName))
	if file.ContentType != "" {
		header.Set("Content-Type", file.ContentType)
	}
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

// WaitForService polls the service root until it answers with a 200 or the
// timeout elapses. A freshly deployed service can take a moment to come up,
// and failing the whole run on a slow start would make every scenario
// result meaningless.
func (c *ReviewServiceClient) WaitForService(timeout time.Duration, output io.Writer) error {
	fmt.Fprintf(output, "Connecting to review service at %s", c.baseURL)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		err := c.pingRoot()
		if err == nil {
			fmt.Fprintln(output)
			return nil
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("timed out waiting for service, result of last query was: %w", err)
		}
		time.Sleep(serviceWaitPollInterval)
	}
}

func (c *ReviewServiceClient) pingRoot() error {
	ctx, cancel := context.WithTimeout(context.Background(), c.readTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URLFor(""), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service returned status code %d", resp.StatusCode)
	}
	return nil
}
