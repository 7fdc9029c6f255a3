package apitests

import (
	"net/http"

	"github.com/codemind-ai/review-contract-tests/client"
)

// uploadedFileContent is a Python snippet with a command-injection hole and
// a redundant loop, mirroring what the upload endpoint is expected to flag.
const uploadedFileContent = `import os
import subprocess

def unsafe_function(user_input):
    # Security vulnerability: command injection
    result = subprocess.run(f"echo {user_input}", shell=True)
    return result

# Performance issue: inefficient loop
data = []
for i in range(10000):
    data.append(str(i))
    data = data  # Redundant assignment
`

func DoUploadTests(t *T) {
	t.Run("file review", func(t *T) {
		result := t.Probe(ProbeOpts{
			Method:         http.MethodPost,
			Path:           "upload-review",
			ExpectedStatus: http.StatusOK,
			File: &client.FileUpload{
				FieldName:   "file",
				FileName:    "test_security.py",
				ContentType: "text/plain",
				Content:     []byte(uploadedFileContent),
			},
		})
		if !result.Succeeded {
			return
		}
		if checkObjectShape(t, result, []string{"filename", "language"}) {
			t.Debug("uploaded %s reviewed as %s",
				result.Body.GetByKey("filename").StringValue(),
				result.Body.GetByKey("language").StringValue())
		}
	})
}
