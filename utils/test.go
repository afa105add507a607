package utils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestingT is the part of *testing.T the helpers need. *rapid.T satisfies
// it too, so property checks can fail their own run.
type TestingT interface {
	Helper()
	Errorf(format string, args ...interface{})
	FailNow()
}

// TestCredentials holds HTTP Basic credentials for a test request
type TestCredentials struct {
	Email    string
	Password string
}

// TestRequest represents a test HTTP request. Body is sent as JSON unless
// Form is set, in which case it is sent form-encoded.
type TestRequest struct {
	Method  string
	Path    string
	Body    interface{}
	Form    url.Values
	Auth    *TestCredentials
	Headers map[string]string
}

// TestResponse represents a test HTTP response
type TestResponse struct {
	StatusCode int
	Header     http.Header
	Raw        []byte
	Body       map[string]interface{}
}

// MakeTestRequest makes a test HTTP request
func MakeTestRequest(t TestingT, router *gin.Engine, req TestRequest) TestResponse {
	t.Helper()

	var body io.Reader = http.NoBody
	contentType := ""
	switch {
	case req.Form != nil:
		body = bytes.NewBufferString(req.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case req.Body != nil:
		raw, err := json.Marshal(req.Body)
		require.NoError(t, err, "Failed to marshal request body")
		body = bytes.NewBuffer(raw)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequest(req.Method, req.Path, body)
	require.NoError(t, err, "Failed to create request")

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.Auth != nil {
		httpReq.SetBasicAuth(req.Auth.Email, req.Auth.Password)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)

	response := TestResponse{
		StatusCode: w.Code,
		Header:     w.Header(),
		Raw:        w.Body.Bytes(),
	}

	// every JSON body the API writes is an object
	if w.Body.Len() > 0 && json.Valid(response.Raw) && response.Raw[0] == '{' {
		require.NoError(t, json.Unmarshal(response.Raw, &response.Body))
	}

	return response
}

// AssertResponse asserts the test response
func AssertResponse(t TestingT, response TestResponse, expectedStatusCode int, expectedBody map[string]interface{}) {
	t.Helper()
	assert.Equal(t, expectedStatusCode, response.StatusCode)
	if expectedBody != nil {
		assert.Equal(t, expectedBody, response.Body)
	}
}

// AssertMessage asserts the status code and the {"message": ...} body
func AssertMessage(t TestingT, response TestResponse, expectedStatusCode int, message string) {
	t.Helper()
	AssertResponse(t, response, expectedStatusCode, map[string]interface{}{"message": message})
}
